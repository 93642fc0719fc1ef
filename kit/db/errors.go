package db

import "errors"

var (
	ErrNotFound = errors.New("db: not found")
	ErrInvalid  = errors.New("db: invalid")
	ErrInternal = errors.New("db: internal")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsInvalid(err error) bool  { return errors.Is(err, ErrInvalid) }
func IsInternal(err error) bool { return errors.Is(err, ErrInternal) }
