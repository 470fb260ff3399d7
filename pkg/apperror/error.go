package apperror

import "net/http"

type AppError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Body is the JSON payload sent to the client: the field map when there is
// one, otherwise {"message": ...}.
func (e *AppError) Body() map[string]string {
	if len(e.Fields) > 0 {
		return e.Fields
	}
	return map[string]string{"message": e.Message}
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func withField(code int, field, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fields:  map[string]string{field: message},
	}
}

// Validation carries a field -> message map.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Fields:  fields,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// Conflict is a state conflict (duplicate handle, email, like). Clients
// receive these as 400.
func Conflict(field, message string) *AppError {
	return withField(http.StatusBadRequest, field, message)
}

func InvalidCredentials() *AppError {
	return withField(http.StatusBadRequest, "credentials", "Email or password is incorrect")
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(field, message string) *AppError {
	return withField(http.StatusForbidden, field, message)
}

func NotFound(field, message string) *AppError {
	return withField(http.StatusNotFound, field, message)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
