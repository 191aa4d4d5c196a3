package httperr

import "errors"

// BusinessError is a domain rule violation identified by a stable
// code. Services return them; handlers translate each code into a
// status and a localized message.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness reports whether err carries the given rule code, however
// deeply wrapped.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	return errors.As(err, &be) && be.Code == code
}
