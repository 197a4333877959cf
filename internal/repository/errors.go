package repository

import "errors"

// Referential-integrity failures. Plain lookups report an absent row as
// a nil result; these errors are reserved for operations that require
// the referenced rows to exist.
var (
	ErrRoomNotFound = errors.New("room not found")
	ErrUserNotFound = errors.New("user not found")
)
