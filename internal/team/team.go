package team

import (
	"errors"
	"unicode/utf8"
)

// IDLength is the number of characters in a development team ID.
const IDLength = 10

// ErrAborted is returned when the user aborted a prompt, so no team was resolved.
var ErrAborted = errors.New("no development team resolved")

// Kind says how the caller asked for a development team.
type Kind int

const (
	// NotRequested means no team is needed; the resolver is not consulted.
	NotRequested Kind = iota
	// UseDefault means the flag was passed without a value.
	UseDefault
	// Explicit means the caller supplied a literal value.
	Explicit
)

func (k Kind) String() string {
	switch k {
	case UseDefault:
		return "default"
	case Explicit:
		return "explicit"
	default:
		return "none"
	}
}

// Request is the caller's team selection.
type Request struct {
	Kind  Kind
	Value string // only set for Explicit
}

// Default requests the cached default team.
func Default() Request {
	return Request{Kind: UseDefault}
}

// ExplicitID requests a literal team ID.
func ExplicitID(v string) Request {
	return Request{Kind: Explicit, Value: v}
}

// Valid reports whether id has the length of a development team ID.
// The character set is not checked.
func Valid(id string) bool {
	return utf8.RuneCountInString(id) == IDLength
}
