// Package settings implements a key-value settings store persisted as a
// flat "key=value" text file, with typed accessors for common primitive
// types.
package settings

import "fmt"

// Setting is a single key-value entry.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s Setting) String() string {
	return fmt.Sprintf("%s=%s", s.Key, s.Value)
}
