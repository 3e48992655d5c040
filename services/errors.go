package services

import "errors"

var (
	// ErrInvalidCredentials covers unknown users, wrong passwords and
	// inactive accounts alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrBillTotalMismatch  = errors.New("total amount does not equal storage + operation + extra fees")
	ErrBillState          = errors.New("bill status does not allow this operation")
	ErrUnknownReference   = errors.New("referenced customer or warehouse does not exist")
	ErrNotFound           = errors.New("record not found")
)
