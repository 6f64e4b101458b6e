package service

type ErrorCode string

const (
	CodeValidation ErrorCode = "validation"
	CodeIntegrity  ErrorCode = "integrity"
	CodeNotFound   ErrorCode = "not_found"
	CodeDuplicate  ErrorCode = "duplicate"
	CodeStorage    ErrorCode = "storage"
	CodeExternal   ErrorCode = "external"
)

// Error is a business failure with a user-facing message. Anything that is
// not an *Error gets replaced by the operation's generic message at the
// transport boundary.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	ErrInvalidPhone      = NewError(CodeValidation, "Invalid Phone Number")
	ErrInvalidEmail      = NewError(CodeValidation, "Invalid Email")
	ErrDuplicateUser     = NewError(CodeDuplicate, "A user with the same email already exists")
	ErrTampered          = NewError(CodeIntegrity, "Ticket details could not be verified")
	ErrNoTicketType      = NewError(CodeNotFound, "No ticket type available for registration at this time")
	ErrNoDayPassBookings = NewError(CodeNotFound, "No day pass bookings found")
)
