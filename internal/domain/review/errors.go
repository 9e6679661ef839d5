package review

import "errors"

var (
	ErrUnknownSection    = errors.New("unknown section")
	ErrUnknownField      = errors.New("unknown field")
	ErrNoOpenTransaction = errors.New("no section is being edited")
	ErrSectionMismatch   = errors.New("edit does not belong to the section being edited")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrFieldNotEditable  = errors.New("field is not editable")
	ErrInvalidNumber     = errors.New("invalid number")
	ErrInvalidValue      = errors.New("invalid value")
	ErrVisitNotFound     = errors.New("visit not found")
	ErrSessionNotFound   = errors.New("review session not found")
)
