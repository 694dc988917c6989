package compiler

// ---------------------------------------------------------------------------
// Precedence: binding strength of infix operators
// ---------------------------------------------------------------------------

// Precedence is the ordered binding strength the compiler uses to decide
// how greedily an infix operator consumes the expression that follows it.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

// next returns the next-higher precedence level. Parsing a binary
// operator's right operand at next() is what makes equal-precedence chains
// group to the left: the right operand refuses to absorb a same-level
// operator, leaving it for the caller's loop.
func (p Precedence) next() Precedence {
	if p >= PrecPrimary {
		return PrecPrimary
	}
	return p + 1
}

// precedenceOf maps a token type to its infix precedence. Tokens that are
// not infix operators map to PrecNone, which never continues a parse.
func precedenceOf(typ TokenType) Precedence {
	switch typ {
	case TokenLParen, TokenDot:
		return PrecCall
	case TokenMinus, TokenPlus:
		return PrecTerm
	case TokenSlash, TokenStar:
		return PrecFactor
	case TokenBangEqual, TokenEqualEqual:
		return PrecEquality
	case TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual:
		return PrecComparison
	case TokenAnd:
		return PrecAnd
	case TokenOr:
		return PrecOr
	default:
		return PrecNone
	}
}
