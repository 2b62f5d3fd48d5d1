// Package ids produces task identifiers.
package ids

import (
	"errors"

	"github.com/rs/xid"
)

// MaxAttempts bounds how many ids Unique draws before giving up.
const MaxAttempts = 8

// ErrExhausted is returned when every attempt produced an id already in use.
var ErrExhausted = errors.New("could not generate a unique id")

// Generator returns a new candidate id on each call.
type Generator func() string

// New returns a 20 character xid string.
func New() string {
	return xid.New().String()
}

// Unique draws ids from gen until one is not reported as taken.
func Unique(gen Generator, taken func(id string) bool) (string, error) {
	if gen == nil {
		gen = New
	}
	for i := 0; i < MaxAttempts; i++ {
		id := gen()
		if id == "" || taken(id) {
			continue
		}
		return id, nil
	}
	return "", ErrExhausted
}
