package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowlang/internal/errors"
	"flowlang/internal/golden"
	"flowlang/internal/text"
)

func TestGoldenCases(t *testing.T) {
	files, err := filepath.Glob("testdata/*.md")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".md"), func(t *testing.T) {
			content, err := os.ReadFile(file)
			require.NoError(t, err)

			cases, err := golden.ExtractTestCases(content)
			require.NoError(t, err)

			for _, tc := range cases {
				t.Run(tc.Name, func(t *testing.T) {
					runGoldenCase(t, tc)
				})
			}
		})
	}
}

func runGoldenCase(t *testing.T, tc golden.TestCase) {
	src, err := text.Decode([]byte(tc.Source()))
	require.NoError(t, err)

	tokens, tokErr := Tokenize(src)
	var (
		tree     *Tree
		parseErr = tokErr
	)
	if tokErr == nil {
		tree, parseErr = Parse(tokens)
	}

	for _, a := range tc.Assertions {
		switch a.Type {
		case golden.AssertionTokens:
			require.NoError(t, tokErr, "line %d", a.Line)
			names := make([]string, len(tokens))
			for i, tok := range tokens {
				names[i] = tok.Kind.String()
			}
			assert.Equal(t, golden.Normalize(a.Content), strings.Join(names, " "), "line %d", a.Line)

		case golden.AssertionAST:
			require.NoError(t, parseErr, "line %d", a.Line)
			assert.Equal(t, golden.Normalize(a.Content), golden.Normalize(tree.Arena.Format()), "line %d", a.Line)

		case golden.AssertionError:
			require.Error(t, parseErr, "line %d", a.Line)
			kind, msg, hasMsg := strings.Cut(a.Content, ": ")
			assert.Equal(t, errors.Kind(strings.TrimSpace(kind)), errors.KindOf(parseErr), "line %d", a.Line)
			if hasMsg {
				assert.Equal(t, strings.TrimSpace(msg), parseErr.Error(), "line %d", a.Line)
			}
		}
	}
}
