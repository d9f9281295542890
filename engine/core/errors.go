package core

import (
	"errors"
)

var (
	ErrDuplicateResource       = errors.New("duplicate resource")
	ErrRIDCollision            = errors.New("resource id collision")
	ErrUnsatisfiedDependencies = errors.New("cyclic or unsatisfiable exporter dependencies")
	ErrMalformedNID            = errors.New("nid is not in 'type.name' form")
	ErrMissingTexture          = errors.New("missing image for sheet")
	ErrInvalidDocument         = errors.New("empty or invalid source document")
	ErrUnsupportedParam        = errors.New("unsupported param value")
	ErrUnsupportedMedia        = errors.New("unsupported media format")
	ErrBadMagic                = errors.New("not an RLRS resource file")
	ErrBadLength               = errors.New("length field out of range")
)
