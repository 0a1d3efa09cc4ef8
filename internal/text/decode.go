package text

import (
	"os"

	"flowlang/internal/errors"
)

// Decode validates raw UTF-8 and expands it into a Text. Decoding stops at
// the first malformed sequence; no partial Text is returned.
func Decode(raw []byte) (*Text, error) {
	chars := make([]Char, 0, len(raw))
	for offset := 0; offset < len(raw); {
		lead := raw[offset]
		n := sequenceLength(lead)
		if n == 0 {
			return nil, errors.InvalidLeadByteError(offset, lead)
		}
		if remaining := len(raw) - offset; remaining < n {
			return nil, errors.TruncatedSequenceError(offset, n, remaining)
		}
		for i := 1; i < n; i++ {
			if b := raw[offset+i]; b>>6 != 0b10 {
				return nil, errors.InvalidContinuationByteError(offset+i, b)
			}
		}
		chars = append(chars, packChar(raw[offset:offset+n]))
		offset += n
	}
	return &Text{chars: chars}, nil
}

// MustDecode is Decode for literals known to be valid. It panics otherwise.
func MustDecode(s string) *Text {
	t, err := Decode([]byte(s))
	if err != nil {
		panic(err)
	}
	return t
}

// LoadSourceFile reads path and decodes it.
func LoadSourceFile(path string) (*Text, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.SourceUnreadableError(path, err)
	}
	return Decode(raw)
}
