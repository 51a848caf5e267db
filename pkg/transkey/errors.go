package transkey

import "errors"

var (
	ErrNotFound   = errors.New("transkey: translation not found")
	ErrInvalidKey = errors.New("transkey: invalid translation key")
)
