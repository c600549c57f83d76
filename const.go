package atoll

// Request opcodes of the Atoll wire envelope.
const (
	OpQuery   = 0x07
	OpPrepare = 0x09
	OpExecute = 0x0a
)

// Keys of the Atoll wire envelope maps.
const (
	KeyRequestId = 0x00
	KeyCode      = 0x01
	KeyStatement = 0x10
	KeyParams    = 0x11
	KeyKeyspace  = 0x12
	KeyPrepareId = 0x13
	KeyData      = 0x30
	KeyError     = 0x31
)

// OkCode is the response code of a successfully executed request.
const OkCode = 0x00

// PacketLengthBytes is a size of the frame length prefix.
const PacketLengthBytes = 5
