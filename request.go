package atoll

import (
	"github.com/google/uuid"
)

// Request is a single caller issued operation bundled with its own
// completion handle.
//
// A Request is created on the caller's goroutine and its ownership is
// transferred into the session's request queue. Whoever takes it off a
// rejection path resolves the future with an error exactly once; a request
// is never both resolved and dispatched.
type Request struct {
	requestId uint32
	opcode    uint8
	statement string
	params    []interface{}
	prepareId uuid.UUID
	// hosts is the host preference plan. It is filled in by the load
	// balancing policy on the session loop just before dispatch.
	hosts []Host
	fut   *Future
}

// NewQueryRequest returns a new Request to execute a statement with
// positional parameters.
func NewQueryRequest(statement string, params ...interface{}) *Request {
	return &Request{
		opcode:    OpQuery,
		statement: statement,
		params:    params,
		fut:       NewFuture(),
	}
}

// NewPrepareRequest returns a new Request to prepare a statement. The
// prepared statement id is generated client side.
func NewPrepareRequest(statement string) *Request {
	return &Request{
		opcode:    OpPrepare,
		statement: statement,
		prepareId: uuid.New(),
		fut:       NewFuture(),
	}
}

// NewExecuteRequest returns a new Request to execute a previously prepared
// statement.
func NewExecuteRequest(prepareId uuid.UUID, params ...interface{}) *Request {
	return &Request{
		opcode:    OpExecute,
		prepareId: prepareId,
		params:    params,
		fut:       NewFuture(),
	}
}

// Future returns the completion handle of the request.
func (req *Request) Future() *Future {
	return req.fut
}

// Opcode returns the opcode of the request envelope.
func (req *Request) Opcode() uint8 {
	return req.opcode
}

// Statement returns the statement text carried by the request.
func (req *Request) Statement() string {
	return req.statement
}

// PrepareId returns the client generated prepared statement id, or the zero
// UUID for plain queries.
func (req *Request) PrepareId() uuid.UUID {
	return req.prepareId
}

// Hosts returns the host preference plan of the request. It is empty until
// the session loop has consulted the load balancing policy.
func (req *Request) Hosts() []Host {
	return req.hosts
}

// BodyEncode encodes the request envelope body.
func (req *Request) BodyEncode(enc *encoder) error {
	fields := 2
	if req.statement != "" {
		fields++
	}
	if req.params != nil {
		fields++
	}
	if req.opcode != OpQuery {
		fields++
	}
	if err := enc.EncodeMapLen(fields); err != nil {
		return err
	}
	if err := encodeUint(enc, KeyRequestId); err != nil {
		return err
	}
	if err := encodeUint(enc, uint64(req.requestId)); err != nil {
		return err
	}
	if err := encodeUint(enc, KeyCode); err != nil {
		return err
	}
	if err := encodeUint(enc, uint64(req.opcode)); err != nil {
		return err
	}
	if req.statement != "" {
		if err := encodeUint(enc, KeyStatement); err != nil {
			return err
		}
		if err := enc.EncodeString(req.statement); err != nil {
			return err
		}
	}
	if req.opcode != OpQuery {
		if err := encodeUint(enc, KeyPrepareId); err != nil {
			return err
		}
		if err := enc.EncodeString(req.prepareId.String()); err != nil {
			return err
		}
	}
	if req.params != nil {
		if err := encodeUint(enc, KeyParams); err != nil {
			return err
		}
		if err := enc.Encode(req.params); err != nil {
			return err
		}
	}
	return nil
}
