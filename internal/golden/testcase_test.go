package golden

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTestCases(t *testing.T) {
	doc := "# Expressions\n\n" +
		"Some prose.\n\n" +
		"## Test: addition\n\n" +
		"```flow-body\na+b;\n```\n\n" +
		"```ast\n(func test (returns Int)\n  (+ a b))\n```\n\n" +
		"## Test: broken\n\n" +
		"```flow-program\nfunc f( returns Int end\n```\n\n" +
		"```error\nUnbalancedParameterList\n```\n"

	cases, err := ExtractTestCases([]byte(doc))
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "addition", cases[0].Name)
	assert.Equal(t, InputBody, cases[0].InputType)
	assert.Equal(t, "a+b;", cases[0].Input)
	assert.Equal(t, "func test() returns Int ;\na+b;\nend\n", cases[0].Source())
	require.Len(t, cases[0].Assertions, 1)
	assert.Equal(t, AssertionAST, cases[0].Assertions[0].Type)
	assert.Equal(t, "(func test (returns Int) (+ a b))", Normalize(cases[0].Assertions[0].Content))

	assert.Equal(t, InputProgram, cases[1].InputType)
	assert.Equal(t, cases[1].Input, cases[1].Source())
	assert.Equal(t, AssertionError, cases[1].Assertions[0].Type)
}

func TestExtractRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "fence outside test",
			doc:  "```ast\n(x)\n```\n",
			want: "outside of test case",
		},
		{
			name: "missing input",
			doc:  "## Test: nothing\n\n```ast\n(x)\n```\n",
			want: "has no input fence",
		},
		{
			name: "missing assertion",
			doc:  "## Test: lonely\n\n```flow-body\nx;\n```\n",
			want: "has no assertion fences",
		},
		{
			name: "unknown language",
			doc:  "## Test: odd\n\n```flow-body\nx;\n```\n\n```yaml\na: b\n```\n",
			want: "unknown fence language 'yaml'",
		},
		{
			name: "two inputs",
			doc:  "## Test: twice\n\n```flow-body\nx;\n```\n\n```flow-body\ny;\n```\n",
			want: "multiple input fences",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTestCases([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUnlabelledFencesAreIgnored(t *testing.T) {
	doc := "Intro\n\n```\nnot a test\n```\n\n## Test: one\n\n```flow-body\nx;\n```\n```tokens\nIdentifier EOL\n```\n"
	cases, err := ExtractTestCases([]byte(doc))
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, AssertionTokens, cases[0].Assertions[0].Type)
}
