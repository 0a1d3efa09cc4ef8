package parser

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"flowlang/token"
)

func TestSeekBalancedBlocks(t *testing.T) {
	tokens := scan(t, "func f() returns Int if x then y; end while z do end for end end trailing")
	idx, ok := SeekBalanced(tokens)
	assert.True(t, ok)
	assert.Equal(t, len(tokens)-2, idx)
	assert.Equal(t, token.End, tokens[idx].Kind)

	_, ok = SeekBalanced(scan(t, "func f() returns Int if x then y; end"))
	assert.False(t, ok)
}

func TestSeekBalancedBrackets(t *testing.T) {
	tokens := scan(t, "(a (b) c) d")
	idx, ok := SeekBalanced(tokens)
	assert.True(t, ok)
	assert.Equal(t, 6, idx)

	idx, ok = SeekBalanced(scan(t, "[x [y] ( z] w"))
	assert.True(t, ok)
	assert.Equal(t, 7, idx)

	_, ok = SeekBalanced(scan(t, "(a (b)"))
	assert.False(t, ok)
}

func TestSeekBalancedRejectsNonOpeners(t *testing.T) {
	_, ok := SeekBalanced(nil)
	assert.False(t, ok)
	_, ok = SeekBalanced(scan(t, "x end"))
	assert.False(t, ok)
	_, ok = SeekBalanced(scan(t, "end"))
	assert.False(t, ok)
}

var blockOpeners = []token.Kind{token.Func, token.If, token.While, token.For}

// genBlock builds a random correctly nested block.
func genBlock(r *rand.Rand, depth int) []token.Token {
	out := []token.Token{{Kind: blockOpeners[r.Intn(len(blockOpeners))]}}
	for n := r.Intn(4); n > 0; n-- {
		if depth < 4 && r.Intn(2) == 0 {
			out = append(out, genBlock(r, depth+1)...)
		} else {
			out = append(out, token.Token{Kind: token.Identifier}, token.Token{Kind: token.EOL})
		}
	}
	return append(out, token.Token{Kind: token.End})
}

func TestSeekBalancedRandomNesting(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		block := genBlock(r, 0)
		input := append(append([]token.Token(nil), block...), genBlock(r, 0)...)

		idx, ok := SeekBalanced(input)
		if assert.True(t, ok) {
			assert.Equal(t, len(block)-1, idx)
		}

		_, ok = SeekBalanced(block[:len(block)-1])
		assert.False(t, ok)
	}
}
