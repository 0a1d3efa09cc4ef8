package text

import "math/bits"

// Char is one decoded character holding its original encoded bytes.
//
// Bytes 0..2 hold the lead byte and up to two continuation bytes. The top
// byte holds the length tag (1..3) or, for a 4-byte sequence, the fourth
// byte itself; continuation bytes are always >= 0x80, so the two cases never
// collide.
type Char uint32

// packChar builds a Char from an already validated sequence of 1-4 bytes.
func packChar(seq []byte) Char {
	var c uint32
	for i, b := range seq {
		c |= uint32(b) << (8 * i)
	}
	if len(seq) < 4 {
		c |= uint32(len(seq)) << 24
	}
	return Char(c)
}

// ASCII returns the Char for a single ASCII byte.
func ASCII(b byte) Char {
	return packChar([]byte{b})
}

// CharOf encodes r the way the decoder would store it.
func CharOf(r rune) Char {
	var buf [4]byte
	switch {
	case r < 0x80:
		return ASCII(byte(r))
	case r < 0x800:
		buf[0] = 0xC0 | byte(r>>6)
		buf[1] = 0x80 | byte(r)&0x3F
		return packChar(buf[:2])
	case r < 0x10000:
		buf[0] = 0xE0 | byte(r>>12)
		buf[1] = 0x80 | byte(r>>6)&0x3F
		buf[2] = 0x80 | byte(r)&0x3F
		return packChar(buf[:3])
	default:
		buf[0] = 0xF0 | byte(r>>18)
		buf[1] = 0x80 | byte(r>>12)&0x3F
		buf[2] = 0x80 | byte(r>>6)&0x3F
		buf[3] = 0x80 | byte(r)&0x3F
		return packChar(buf[:4])
	}
}

// Len is the number of bytes needed to re-emit c; 0 for the zero Char.
func (c Char) Len() int {
	tag := uint32(c) >> 24
	if tag <= 3 {
		return int(tag)
	}
	return 4
}

// AppendTo appends the original bytes of c to dst.
func (c Char) AppendTo(dst []byte) []byte {
	for i := 0; i < c.Len(); i++ {
		dst = append(dst, byte(uint32(c)>>(8*i)))
	}
	return dst
}

// Bytes returns the original encoded bytes.
func (c Char) Bytes() []byte {
	return c.AppendTo(make([]byte, 0, 4))
}

// IsASCII reports whether c is a single-byte character.
func (c Char) IsASCII() bool {
	return c.Len() == 1
}

// Byte returns the lead byte; meaningful as a character only when IsASCII.
func (c Char) Byte() byte {
	return byte(c)
}

// Is reports whether c is the ASCII character b.
func (c Char) Is(b byte) bool {
	return c == ASCII(b)
}

// Rune decodes the scalar value. Only used for display; the stored bytes
// are the source of truth.
func (c Char) Rune() rune {
	b0 := rune(c.Byte())
	switch c.Len() {
	case 1:
		return b0
	case 2:
		return (b0&0x1F)<<6 | rune(byte(c>>8))&0x3F
	case 3:
		return (b0&0x0F)<<12 | (rune(byte(c>>8))&0x3F)<<6 | rune(byte(c>>16))&0x3F
	case 4:
		return (b0&0x07)<<18 | (rune(byte(c>>8))&0x3F)<<12 | (rune(byte(c>>16))&0x3F)<<6 | rune(byte(c>>24))&0x3F
	}
	return 0
}

func (c Char) String() string {
	return string(c.Bytes())
}

// sequenceLength classifies a lead byte by its leading one-bits. It returns
// 0 for a byte that cannot start a sequence.
func sequenceLength(lead byte) int {
	switch bits.LeadingZeros8(^lead) {
	case 0:
		return 1
	case 2:
		return 2
	case 3:
		return 3
	case 4:
		return 4
	default:
		return 0
	}
}
