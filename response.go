package atoll

import (
	"bytes"
	"fmt"
)

// Response is a server reply to a single request.
//
// Data is filled in by decodeBody on the first Future.Get call.
type Response struct {
	RequestId uint32
	Code      uint32
	// Error contains an error message sent by the server.
	Error string
	// Data contains deserialized data for untyped requests.
	Data []interface{}
	buf  []byte

	decoded bool
}

func (resp *Response) decodeBody() (err error) {
	if resp.decoded {
		return nil
	}
	resp.decoded = true

	if resp.buf != nil {
		d := newDecoder(bytes.NewReader(resp.buf))

		var l int
		if l, err = d.DecodeMapLen(); err != nil {
			return err
		}
		for ; l > 0; l-- {
			var cd int
			if cd, err = d.DecodeInt(); err != nil {
				return err
			}
			switch cd {
			case KeyData:
				var res interface{}
				var ok bool
				if res, err = d.DecodeInterface(); err != nil {
					return err
				}
				if resp.Data, ok = res.([]interface{}); !ok {
					return ClientError{ErrProtocolError,
						fmt.Sprintf("result is not an array: %v", res)}
				}
			case KeyError:
				if resp.Error, err = d.DecodeString(); err != nil {
					return err
				}
			default:
				if err = d.Skip(); err != nil {
					return err
				}
			}
		}
	}

	if resp.Code != OkCode {
		return Error{resp.Code, resp.Error}
	}
	return nil
}

func (resp *Response) decodeBodyTyped(res interface{}) (err error) {
	if resp.buf != nil {
		d := newDecoder(bytes.NewReader(resp.buf))

		var l int
		if l, err = d.DecodeMapLen(); err != nil {
			return err
		}
		for ; l > 0; l-- {
			var cd int
			if cd, err = d.DecodeInt(); err != nil {
				return err
			}
			switch cd {
			case KeyData:
				if err = d.Decode(res); err != nil {
					return err
				}
			case KeyError:
				if resp.Error, err = d.DecodeString(); err != nil {
					return err
				}
			default:
				if err = d.Skip(); err != nil {
					return err
				}
			}
		}
	}

	if resp.Code != OkCode {
		return Error{resp.Code, resp.Error}
	}
	return nil
}
