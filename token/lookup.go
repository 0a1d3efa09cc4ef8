package token

// Keywords maps reserved words to their kinds.
var Keywords = map[string]Kind{
	"func":    Func,
	"if":      If,
	"elif":    Elif,
	"else":    Else,
	"then":    Then,
	"do":      Do,
	"while":   While,
	"for":     For,
	"import":  Import,
	"returns": Returns,
	"let":     Let,
	"end":     End,
}

// Operators is the table of every valid operator run.
var Operators = map[string]Kind{
	"++": PostInc,
	"--": PostDec,
	".":  Period,
	"!":  LogNot,
	"*":  Mul,
	"/":  Div,
	"%":  Mod,
	"+":  Add,
	"-":  Sub,
	"<":  LessThan,
	"<=": LessEqual,
	">":  GreaterThan,
	">=": GreaterEqual,
	"==": Equals,
	"!=": NotEquals,
	"=":  Assign,
	"+=": AddAssign,
	"-=": SubAssign,
	"*=": MulAssign,
	"/=": DivAssign,
}

// Punctuation maps the fixed single-character tokens.
var Punctuation = map[byte]Kind{
	';': EOL,
	'@': Prepocessor,
	'(': OpenParen,
	')': CloseParen,
	'[': OpenSquare,
	']': CloseSquare,
	'{': OpenCurly,
	'}': CloseCurly,
	',': Comma,
}

// LookupIdentifier reclassifies a word run as a keyword when it is one.
func LookupIdentifier(word string) Kind {
	if k, ok := Keywords[word]; ok {
		return k
	}
	return Identifier
}

// LookupOperator resolves a maximal operator run.
func LookupOperator(run string) (Kind, bool) {
	k, ok := Operators[run]
	return k, ok
}

// Spelling returns the fixed source text of a keyword, operator or
// punctuation kind, or "" for kinds whose text varies.
func Spelling(k Kind) string {
	for word, kind := range Keywords {
		if kind == k {
			return word
		}
	}
	for op, kind := range Operators {
		if kind == k {
			return op
		}
	}
	for ch, kind := range Punctuation {
		if kind == k {
			return string(ch)
		}
	}
	return ""
}
