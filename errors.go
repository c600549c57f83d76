package atoll

import "fmt"

// Error is wrapper around error returned by an Atoll server.
type Error struct {
	Code uint32
	Msg  string
}

// Error converts an Error to a string.
func (srverr Error) Error() string {
	return fmt.Sprintf("%s (0x%x)", srverr.Msg, srverr.Code)
}

// ClientError is an error produced by this client, i.e. a session state
// violation, queue overflow or dispatch failure.
type ClientError struct {
	Code uint32
	Msg  string
}

// Error converts a ClientError to a string.
func (clierr ClientError) Error() string {
	return fmt.Sprintf("%s (0x%x)", clierr.Msg, clierr.Code)
}

// Temporary returns true if next attempt to perform request may succeeded.
//
// Currently it returns true when:
//
// - the request queue was full at enqueue time
//
// - every I/O worker refused the request
//
// - no pooled connection was ready for any host of the query plan
func (clierr ClientError) Temporary() bool {
	switch clierr.Code {
	case ErrRequestQueueFull, ErrNoWorkersAvailable, ErrConnectionNotReady:
		return true
	default:
		return false
	}
}

// Atoll client error codes.
const (
	ErrSessionState       = 0x4000 + iota // Connect/Shutdown called in a wrong state.
	ErrRequestQueueFull                   // Request queue full at enqueue time.
	ErrNoWorkersAvailable                 // Every I/O worker refused the request.
	ErrResolveFailed                      // A contact point failed to resolve.
	ErrConnectionShutdown                 // Request aborted by session shutdown.
	ErrConnectionNotReady                 // No pooled connection for the query plan.
	ErrProtocolError                      // Malformed frame or body.
	ErrEventQueueFull                     // Event queue cannot cover the connection matrix.
)

// Atoll server error codes.
const (
	ErrUnknown        = 0  // Unknown error
	ErrSyntax         = 1  // Statement could not be parsed
	ErrUnauthorized   = 2  // Statement not permitted for this user
	ErrInvalid        = 3  // Statement is correct but forbidden by schema
	ErrUnprepared     = 4  // Prepared statement id is not known to the host
	ErrNoSuchKeyspace = 5  // Keyspace does not exist
	ErrNoSuchTable    = 6  // Table does not exist
	ErrUnavailable    = 7  // Not enough replicas alive for the consistency level
	ErrOverloaded     = 8  // Host is overloaded
	ErrBootstrapping  = 9  // Host is still bootstrapping
	ErrServerTimeout  = 10 // Coordinator timed out waiting for replicas
	ErrAlreadyExists  = 11 // Keyspace or table already exists
	ErrConfig         = 12 // Invalid configuration option
)
