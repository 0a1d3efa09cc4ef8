package errors

// Kind tags a front-end failure. The caller shows the message verbatim; the
// kind and code are what tooling matches on.
type Kind string

const (
	// Text model
	InvalidLeadByte         Kind = "InvalidLeadByte"
	TruncatedSequence       Kind = "TruncatedSequence"
	InvalidContinuationByte Kind = "InvalidContinuationByte"
	IndexOutOfRange         Kind = "IndexOutOfRange"
	StaleView               Kind = "StaleView"
	SourceUnreadable        Kind = "SourceUnreadable"

	// Tokenizer
	UnterminatedComment       Kind = "UnterminatedComment"
	UnterminatedStringLiteral Kind = "UnterminatedStringLiteral"
	UnknownOperatorSequence   Kind = "UnknownOperatorSequence"

	// Parser
	MissingFunctionName          Kind = "MissingFunctionName"
	MissingParameterList         Kind = "MissingParameterList"
	UnbalancedParameterList      Kind = "UnbalancedParameterList"
	MissingReturnType            Kind = "MissingReturnType"
	MalformedParameterPair       Kind = "MalformedParameterPair"
	UnterminatedBlock            Kind = "UnterminatedBlock"
	UnterminatedExpressionLine   Kind = "UnterminatedExpressionLine"
	MissingOperand               Kind = "MissingOperand"
	AmbiguousOrInvalidExpression Kind = "AmbiguousOrInvalidExpression"
	UnsupportedExpression        Kind = "UnsupportedExpression"
)

// Error codes for the Flow front end.
//
// Error code ranges:
// E0100-E0109: Text model and source loading errors
// E0110-E0119: Tokenizer errors
// E0120-E0139: Parser errors
var codes = map[Kind]string{
	InvalidLeadByte:         "E0100",
	TruncatedSequence:       "E0101",
	InvalidContinuationByte: "E0102",
	IndexOutOfRange:         "E0103",
	StaleView:               "E0104",
	SourceUnreadable:        "E0105",

	UnterminatedComment:       "E0110",
	UnterminatedStringLiteral: "E0111",
	UnknownOperatorSequence:   "E0112",

	MissingFunctionName:          "E0120",
	MissingParameterList:         "E0121",
	UnbalancedParameterList:      "E0122",
	MissingReturnType:            "E0123",
	MalformedParameterPair:       "E0124",
	UnterminatedBlock:            "E0125",
	UnterminatedExpressionLine:   "E0126",
	MissingOperand:               "E0127",
	AmbiguousOrInvalidExpression: "E0128",
	UnsupportedExpression:        "E0129",
}

// Code returns the stable error code for a kind, or "" for an unknown kind.
func (k Kind) Code() string {
	return codes[k]
}

// Stage reports which front-end stage produces errors of this kind.
func (k Kind) Stage() string {
	code := k.Code()
	switch {
	case code == "":
		return "unknown"
	case code < "E0110":
		return "text"
	case code < "E0120":
		return "tokenizer"
	default:
		return "parser"
	}
}
