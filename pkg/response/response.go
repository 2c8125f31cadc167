package response

import "net/http"

// Payload is the body returned by every relationship endpoint. Status mirrors
// the outcome of the operation and is not always equal to the HTTP status:
// the check endpoints answer 200 OK with a payload status of 404 when nothing
// is found.
type Payload struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func Ok(message string) *Payload {
	return &Payload{Status: http.StatusOK, Message: message}
}

func NotFound(message string) *Payload {
	return &Payload{Status: http.StatusNotFound, Message: message}
}

// Error is a failure with a fixed HTTP status and a deterministic,
// username-parameterized message. Everything else (DB down, kafka down, ...)
// stays a plain error and surfaces as a 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Payload converts the error into the body sent to the client.
func (e *Error) Payload() *Payload {
	return &Payload{Status: e.Status, Message: e.Message}
}
