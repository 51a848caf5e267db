package i18n

import "errors"

var (
	ErrInvalidChoice = errors.New("i18n: invalid choice condition")
	ErrEmptyLine     = errors.New("i18n: empty translation line")
)
