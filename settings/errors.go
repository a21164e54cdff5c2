package settings

import (
	"errors"
	"fmt"
)

// ErrNoFileLoaded is returned by Save when the store has never been
// bound to a file.
var ErrNoFileLoaded = errors.New("no settings file loaded")

// KeyNotFoundError is returned when a requested key has no entry.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("setting not found: %s", e.Key)
}

// ConversionError is returned when a stored value can not be parsed as
// the requested numeric type. Boolean reads never produce one.
type ConversionError struct {
	Key    string
	Value  string
	Target string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("setting %q: can not convert %q to %s", e.Key, e.Value, e.Target)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
