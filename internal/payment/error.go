package payment

import "errors"

var (
	ErrRecordNotFound   = errors.New("payment record not found")
	ErrSignatureInvalid = errors.New("payment signature invalid")
)
