// Package text stores decoded UTF-8 source as an indexable sequence of
// characters and hands out views into it.
//
// Views never outlive a mutation silently: every mutation of a Text bumps its
// generation, and reads through a view cut at an older generation fail with
// a StaleView error.
package text

import (
	"io"
	"strings"

	"flowlang/internal/errors"
)

// Text is an owned, ordered sequence of decoded characters.
type Text struct {
	chars      []Char
	generation uint64
}

// FromChars copies chars into a new Text.
func FromChars(chars []Char) *Text {
	owned := make([]Char, len(chars))
	copy(owned, chars)
	return &Text{chars: owned}
}

// Len returns the number of characters.
func (t *Text) Len() int {
	return len(t.chars)
}

// At returns the character at index i.
func (t *Text) At(i int) (Char, error) {
	if i < 0 || i >= len(t.chars) {
		return 0, errors.IndexOutOfRangeError(i, len(t.chars))
	}
	return t.chars[i], nil
}

// Chars returns a copy of the stored characters.
func (t *Text) Chars() []Char {
	return append([]Char(nil), t.chars...)
}

// Set replaces the character at index i. Existing views become stale.
func (t *Text) Set(i int, c Char) error {
	if i < 0 || i >= len(t.chars) {
		return errors.IndexOutOfRangeError(i, len(t.chars))
	}
	t.chars[i] = c
	t.generation++
	return nil
}

// Append adds characters at the end. Existing views become stale.
func (t *Text) Append(chars ...Char) {
	t.chars = append(t.chars, chars...)
	t.generation++
}

// Clone returns an independent copy; views of t do not cover the clone.
func (t *Text) Clone() *Text {
	return FromChars(t.chars)
}

// View covers the whole text.
func (t *Text) View() View {
	return View{text: t, start: 0, end: len(t.chars), generation: t.generation}
}

// Slice covers the characters in [start, end).
func (t *Text) Slice(start, end int) (View, error) {
	if start < 0 || end < start || end > len(t.chars) {
		return View{}, errors.InvalidRangeError(start, end, len(t.chars))
	}
	return View{text: t, start: start, end: end, generation: t.generation}, nil
}

// Bytes re-emits the original encoded bytes.
func (t *Text) Bytes() []byte {
	return appendChars(make([]byte, 0, len(t.chars)), t.chars)
}

func (t *Text) String() string {
	return string(t.Bytes())
}

// WriteTo writes the original encoded bytes to w.
func (t *Text) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.Bytes())
	return int64(n), err
}

// Compare orders two texts lexicographically by character value.
func (t *Text) Compare(other *Text) int {
	return compareChars(t.chars, other.chars)
}

// Less reports whether t sorts before other.
func (t *Text) Less(other *Text) bool {
	return t.Compare(other) < 0
}

// Equal reports whether t holds exactly the characters of s.
func (t *Text) Equal(s string) bool {
	return t.String() == s
}

func appendChars(dst []byte, chars []Char) []byte {
	for _, c := range chars {
		dst = c.AppendTo(dst)
	}
	return dst
}

func compareChars(a, b []Char) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Compare orders two strings the way Text.Compare would order their decoded
// forms. Invalid UTF-8 sorts by byte.
func Compare(a, b string) int {
	ta, errA := Decode([]byte(a))
	tb, errB := Decode([]byte(b))
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return ta.Compare(tb)
}
