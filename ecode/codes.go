package ecode

// Business error codes carried in the response envelope alongside the
// HTTP status.
const (
	OK = 0

	RequestErr       = -400
	Unauthorized     = -401
	AccessDenied     = -403
	NothingFound     = -404
	MethodNotAllowed = -405
	ConflictErr      = -409
	ServerErr        = -500
)

var messages = map[int]string{
	OK:               "success",
	RequestErr:       "invalid request",
	Unauthorized:     "unauthorized",
	AccessDenied:     "access denied",
	NothingFound:     "not found",
	MethodNotAllowed: "method not allowed",
	ConflictErr:      "conflict",
	ServerErr:        "internal server error",
}

// Text returns the default human-readable message for a code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}
