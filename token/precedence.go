package token

// Binding says how an operator takes its operands.
type Binding int

const (
	NoBinding Binding = iota
	BinaryInfix
	LeftUnary
	RightUnary
	CallBinding
)

func (b Binding) String() string {
	switch b {
	case BinaryInfix:
		return "binary"
	case LeftUnary:
		return "prefix"
	case RightUnary:
		return "postfix"
	case CallBinding:
		return "call"
	default:
		return "none"
	}
}

// Higher numbers bind looser; the pivot of a span is the highest number at
// the lowest parenthesis depth.
var precedence = map[Kind]int{
	Let:          1,
	FuncCall:     1,
	PostInc:      1,
	PostDec:      1,
	Period:       2,
	LogNot:       3,
	Mul:          4,
	Div:          4,
	Mod:          4,
	Add:          5,
	Sub:          5,
	LessThan:     6,
	LessEqual:    6,
	GreaterThan:  7,
	GreaterEqual: 7,
	Equals:       8,
	NotEquals:    8,
	Assign:       9,
	AddAssign:    10,
	SubAssign:    10,
	MulAssign:    11,
	DivAssign:    11,
}

// Precedence returns the precedence slot of k, or 0 when k is not an operator.
func Precedence(k Kind) int {
	return precedence[k]
}

// BindingOf classifies how the operator k reduces.
func BindingOf(k Kind) Binding {
	switch k {
	case LogNot, Let:
		return LeftUnary
	case PostInc, PostDec:
		return RightUnary
	case FuncCall:
		return CallBinding
	}
	if Precedence(k) > 0 {
		return BinaryInfix
	}
	return NoBinding
}
