package errors

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Text model errors

func InvalidLeadByteError(offset int, b byte) *CompilerError {
	return Newf(InvalidLeadByte, Position{Offset: offset},
		"invalid UTF-8 lead byte 0x%02X at byte offset %d", b, offset).
		WithNote("a lead byte must start with 0, 110, 1110 or 11110").
		Build()
}

func TruncatedSequenceError(offset, want, have int) *CompilerError {
	return Newf(TruncatedSequence, Position{Offset: offset},
		"truncated UTF-8 sequence at byte offset %d: need %d bytes, only %d remain", offset, want, have).
		WithLength(have).
		Build()
}

func InvalidContinuationByteError(offset int, b byte) *CompilerError {
	return Newf(InvalidContinuationByte, Position{Offset: offset},
		"invalid UTF-8 continuation byte 0x%02X at byte offset %d", b, offset).
		WithNote("continuation bytes must start with the bits 10").
		Build()
}

func IndexOutOfRangeError(index, length int) *CompilerError {
	return Newf(IndexOutOfRange, Position{Offset: index},
		"index %d out of range for text of length %d", index, length).
		Build()
}

func InvalidRangeError(start, end, length int) *CompilerError {
	return Newf(IndexOutOfRange, Position{Offset: start},
		"range [%d, %d) out of bounds for text of length %d", start, end, length).
		Build()
}

func StaleViewError() *CompilerError {
	return New(StaleView, "text view used after its text was modified", Position{}).
		WithHelp("take a new view after mutating the text").
		Build()
}

func SourceUnreadableError(path string, cause error) *CompilerError {
	return Newf(SourceUnreadable, Position{}, "failed to read source file %s: %v", path, cause).
		WithCause(cause).
		Build()
}

// Tokenizer errors

func UnterminatedCommentError(pos Position) *CompilerError {
	return New(UnterminatedComment, "comment opened with '#' is never closed", pos).
		WithHelp("close the comment with a second '#'").
		Build()
}

func UnterminatedStringError(pos Position) *CompilerError {
	return New(UnterminatedStringLiteral, "string literal is missing its closing quote", pos).
		Build()
}

func UnknownOperatorError(op string, pos Position) *CompilerError {
	return Newf(UnknownOperatorSequence, pos, "unknown operator sequence '%s'", op).
		WithLength(len([]rune(op))).
		WithNote("separate adjacent operators with whitespace").
		Build()
}

// Parser errors

func MissingFunctionNameError(pos Position) *CompilerError {
	return New(MissingFunctionName, "function declaration is missing a name", pos).Build()
}

func MissingParameterListError(pos Position) *CompilerError {
	return New(MissingParameterList,
		"function declaration expects a parenthetical parameter list, did you forget a '('?", pos).
		Build()
}

func UnbalancedParameterListError(pos Position) *CompilerError {
	return New(UnbalancedParameterList,
		"function declaration parameter list is missing a closing parenthesis", pos).
		Build()
}

// MissingReturnTypeError reports a header without `returns Type`. found is
// the text seen in place of the keyword, used to suggest a fix for typos.
func MissingReturnTypeError(found string, pos Position) *CompilerError {
	builder := New(MissingReturnType, "function declaration is missing a return type", pos).
		WithLength(max(1, len([]rune(found))))
	if found != "" && found != "returns" {
		if match := ClosestKeyword(found); match == "returns" {
			builder = builder.WithReplacement(fmt.Sprintf("did you mean '%s'?", match), match, pos, len([]rune(found)))
		}
	}
	return builder.WithHelp("declare the return type with `returns Type`").Build()
}

func MalformedParameterPairError(expected string, pos Position) *CompilerError {
	return Newf(MalformedParameterPair, pos, "expected to see a %s", expected).
		WithNote("parameters are written as `Type name`, separated by commas").
		Build()
}

func UnterminatedBlockError(opener string, pos Position) *CompilerError {
	return Newf(UnterminatedBlock, pos,
		"%s block opened but improperly closed, are you missing an end token?", opener).
		WithLength(len([]rune(opener))).
		Build()
}

func UnterminatedExpressionLineError(pos Position) *CompilerError {
	return New(UnterminatedExpressionLine, "expression line is missing its terminating ';'", pos).
		Build()
}

func MissingOperandError(op, side string, pos Position) *CompilerError {
	return Newf(MissingOperand, pos, "operator '%s' is missing its %s operand", op, side).
		WithLength(len([]rune(op))).
		Build()
}

func AmbiguousExpressionError(reason string, pos Position) *CompilerError {
	return Newf(AmbiguousOrInvalidExpression, pos, "invalid expression: %s", reason).
		Build()
}

func UnsupportedExpressionError(class, op string, pos Position) *CompilerError {
	return Newf(UnsupportedExpression, pos, "%s expression '%s' is not supported yet", class, op).
		WithLength(len([]rune(op))).
		Build()
}

// keywords is the fixed keyword table, duplicated here so suggestions do not
// depend on the token package.
var keywords = []string{
	"func", "if", "elif", "else", "then", "do", "while", "for",
	"import", "returns", "let", "end",
}

// ClosestKeyword returns the keyword that best matches word, or "" when
// nothing is close.
func ClosestKeyword(word string) string {
	ranks := fuzzy.RankFindFold(word, keywords)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	// RankFind only matches when word is a subsequence of the target; try the
	// other direction for words with extra letters ("returnss").
	for _, kw := range keywords {
		if fuzzy.MatchFold(kw, word) && len(word)-len(kw) <= 2 {
			return kw
		}
	}
	return ""
}
