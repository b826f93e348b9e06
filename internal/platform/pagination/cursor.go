package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidCursor indicates the cursor could not be decoded or belongs to
// another collection.
var ErrInvalidCursor = errors.New("invalid cursor format")

// Cursor marks the last item a client has seen.
type Cursor struct {
	Type  string // collection the cursor belongs to, e.g. "chat"
	Value string // document ID of the last item on the page
}

// Encode returns an opaque URL-safe token.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Type + ":" + c.Value))
}

// DecodeCursor parses a token produced by Encode. An empty token yields the
// zero Cursor, which means "start from the beginning".
func DecodeCursor(s string) (Cursor, error) {
	if s == "" {
		return Cursor{}, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	typ, value, ok := strings.Cut(string(b), ":")
	if !ok || typ == "" || value == "" {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{Type: typ, Value: value}, nil
}

// DecodeCursorFor decodes s and rejects cursors of a different type. It
// returns the document ID to start after, empty for the first page.
func DecodeCursorFor(s, cursorType string) (string, error) {
	c, err := DecodeCursor(s)
	if err != nil {
		return "", err
	}
	if c.Value != "" && c.Type != cursorType {
		return "", ErrInvalidCursor
	}
	return c.Value, nil
}
