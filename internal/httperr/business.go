package httperr

import (
	"errors"
	"net/http"
)

// BusinessError is an expected domain outcome with a stable code, the HTTP
// status it maps to and the message shown to API clients.
type BusinessError struct {
	Code    string
	Status  int
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness builds a 400 business error.
func ErrBusiness(code, message string) error {
	return BusinessError{Code: code, Status: http.StatusBadRequest, Message: message}
}

func ErrBusinessNotFound(code, message string) error {
	return BusinessError{Code: code, Status: http.StatusNotFound, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness unwraps the first BusinessError in err's chain.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
