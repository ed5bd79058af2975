package core

import "errors"

var (
	ErrDeckNotFound     = errors.New("deck not found")
	ErrOpponentNotFound = errors.New("opponent not found")
	ErrOpponentExists   = errors.New("opponent already exists")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidCount     = errors.New("invalid count")
)
