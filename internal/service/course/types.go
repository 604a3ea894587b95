package course

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation_error"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeForbidden    ErrorCode = "forbidden"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeInternal     ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

type CreateParams struct {
	TeacherID   string
	Title       string
	Description string
	Price       float64
	Category    string
	VideoURL    string
}

type UpdateParams struct {
	Title       string
	Description string
	Price       *float64
	Category    string
}

type ReviewParams struct {
	StudentID string
	Rating    float64
	Comment   string
}

// FilterParams are all optional; empty/nil fields match everything.
type FilterParams struct {
	Category  string
	Teacher   string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
}
