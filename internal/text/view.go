package text

import (
	"io"

	"flowlang/internal/errors"
)

// View is a non-owning range [start, end) inside a Text. It is only readable
// while the Text has not been mutated since the view was taken.
type View struct {
	text       *Text
	start      int
	end        int
	generation uint64
}

// Valid reports whether the view can still be read. The zero View is valid
// and empty.
func (v View) Valid() bool {
	return v.text == nil || v.text.generation == v.generation
}

func (v View) check() error {
	if !v.Valid() {
		return errors.StaleViewError()
	}
	return nil
}

// Len returns the number of characters covered.
func (v View) Len() int {
	return v.end - v.start
}

// IsEmpty reports whether the view covers no characters.
func (v View) IsEmpty() bool {
	return v.end == v.start
}

// Start and End are the character offsets of the view inside its Text.
func (v View) Start() int { return v.start }
func (v View) End() int   { return v.end }

// At returns the i-th character of the view.
func (v View) At(i int) (Char, error) {
	if err := v.check(); err != nil {
		return 0, err
	}
	if i < 0 || i >= v.Len() {
		return 0, errors.IndexOutOfRangeError(i, v.Len())
	}
	return v.text.chars[v.start+i], nil
}

// Slice narrows the view to [start, end) relative to the view.
func (v View) Slice(start, end int) (View, error) {
	if err := v.check(); err != nil {
		return View{}, err
	}
	if start < 0 || end < start || end > v.Len() {
		return View{}, errors.InvalidRangeError(start, end, v.Len())
	}
	return View{text: v.text, start: v.start + start, end: v.start + end, generation: v.generation}, nil
}

func (v View) chars() []Char {
	if v.text == nil {
		return nil
	}
	return v.text.chars[v.start:v.end]
}

// Bytes re-emits the original bytes covered by the view.
func (v View) Bytes() ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	return appendChars(nil, v.chars()), nil
}

// String re-emits the covered text. A stale view renders as "".
func (v View) String() string {
	b, err := v.Bytes()
	if err != nil {
		return ""
	}
	return string(b)
}

// WriteTo writes the covered bytes to w.
func (v View) WriteTo(w io.Writer) (int64, error) {
	b, err := v.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// ToOwned copies the covered characters into a new Text.
func (v View) ToOwned() (*Text, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	return FromChars(v.chars()), nil
}

// Equal reports whether the view holds exactly s.
func (v View) Equal(s string) bool {
	return v.Valid() && v.String() == s
}

// Compare orders two views lexicographically by character value. Stale
// views compare as empty.
func (v View) Compare(other View) int {
	var a, b []Char
	if v.Valid() {
		a = v.chars()
	}
	if other.Valid() {
		b = other.chars()
	}
	return compareChars(a, b)
}
