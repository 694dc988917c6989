package compiler

import (
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: Tokenizer for Ember source
// ---------------------------------------------------------------------------

// eof marks end of input in the lookahead. It is distinct from any rune
// that can appear in the source, so a literal NUL byte scans as an
// unexpected character instead of truncating the input.
const eof rune = -1

// Lexer tokenizes Ember source code. It is a single-pass scanner with one
// character of lookahead; tokens are produced lazily, one per NextToken
// call, until TokenEOF.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current character
	line    int  // current line (1-based)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = eof
		l.pos = l.readPos
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
		l.ch = r
		l.pos = l.readPos
		l.readPos += size
	}
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// makeToken builds a token ending at the current scan position. The line is
// taken at the end of the token, so a string literal spanning lines is
// attributed to the line its closing quote sits on.
func (l *Lexer) makeToken(typ TokenType) Token {
	return Token{Type: typ, Line: l.line}
}

func (l *Lexer) errorToken(msg string) Token {
	return Token{Type: TokenError, Literal: msg, Line: l.line}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	switch {
	case l.ch == eof:
		return l.makeToken(TokenEOF)

	case l.ch == '(':
		l.readChar()
		return l.makeToken(TokenLParen)

	case l.ch == ')':
		l.readChar()
		return l.makeToken(TokenRParen)

	case l.ch == '{':
		l.readChar()
		return l.makeToken(TokenLBrace)

	case l.ch == '}':
		l.readChar()
		return l.makeToken(TokenRBrace)

	case l.ch == ',':
		l.readChar()
		return l.makeToken(TokenComma)

	case l.ch == '.':
		l.readChar()
		return l.makeToken(TokenDot)

	case l.ch == '-':
		l.readChar()
		return l.makeToken(TokenMinus)

	case l.ch == '+':
		l.readChar()
		return l.makeToken(TokenPlus)

	case l.ch == ';':
		l.readChar()
		return l.makeToken(TokenSemicolon)

	case l.ch == '/':
		l.readChar()
		return l.makeToken(TokenSlash)

	case l.ch == '*':
		l.readChar()
		return l.makeToken(TokenStar)

	case l.ch == '!':
		return l.twoCharToken('=', TokenBangEqual, TokenBang)

	case l.ch == '=':
		return l.twoCharToken('=', TokenEqualEqual, TokenEqual)

	case l.ch == '>':
		return l.twoCharToken('=', TokenGreaterEqual, TokenGreater)

	case l.ch == '<':
		return l.twoCharToken('=', TokenLessEqual, TokenLess)

	case l.ch == '"':
		return l.readString()

	case isDigit(l.ch):
		return l.readNumber()

	case isAlpha(l.ch):
		return l.readIdentifierOrKeyword()

	default:
		l.readChar()
		return l.errorToken("Unexpected character")
	}
}

// twoCharToken consumes the current character and probes one further
// character: on a match it is consumed too and the two-char token type is
// produced, otherwise the one-char type.
func (l *Lexer) twoCharToken(next rune, twoType, oneType TokenType) Token {
	l.readChar()
	if l.ch == next {
		l.readChar()
		return l.makeToken(twoType)
	}
	return l.makeToken(oneType)
}

// skipWhitespaceAndComments skips whitespace and // line comments, counting
// newlines. Neither produces a token.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()

		case '\n':
			l.line++
			l.readChar()

		case '/':
			if l.peekChar() != '/' {
				return
			}
			// Line comment: skip to end of line, leaving the newline for
			// the whitespace branch to count.
			for l.ch != '\n' && l.ch != eof {
				l.readChar()
			}

		default:
			return
		}
	}
}

// readString reads a string literal. The opening quote has not been
// consumed yet. Unterminated strings produce an error token at the line
// where input ran out, not a fault.
func (l *Lexer) readString() Token {
	l.readChar() // consume opening "

	start := l.pos
	for l.ch != '"' && l.ch != eof {
		if l.ch == '\n' {
			l.line++
		}
		l.readChar()
	}

	if l.ch == eof {
		return l.errorToken("Unterminated string")
	}

	literal := l.input[start:l.pos]
	l.readChar() // consume closing "
	return Token{Type: TokenString, Literal: literal, Line: l.line}
}

// readNumber reads a number literal: a digit run with an optional fraction.
// The '.' is only consumed when a digit follows it, so "644.." lexes as the
// number 644 followed by two Dot tokens.
func (l *Lexer) readNumber() Token {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume .
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return Token{Type: TokenNumber, Literal: l.input[start:l.pos], Line: l.line}
}

// readIdentifierOrKeyword reads a run of letters/underscores and decides
// whether it is a reserved word.
func (l *Lexer) readIdentifierOrKeyword() Token {
	start := l.pos

	for isAlpha(l.ch) {
		l.readChar()
	}

	lexeme := l.input[start:l.pos]
	if typ, ok := keywordType(lexeme); ok {
		return l.makeToken(typ)
	}
	return Token{Type: TokenIdentifier, Literal: lexeme, Line: l.line}
}

// keywordType checks the fixed keyword table: dispatch on the first byte,
// then compare the remaining suffix.
func keywordType(lexeme string) (TokenType, bool) {
	switch lexeme[0] {
	case 'a':
		return checkSuffix(lexeme, 1, "nd", TokenAnd)
	case 'c':
		return checkSuffix(lexeme, 1, "lass", TokenClass)
	case 'e':
		return checkSuffix(lexeme, 1, "lse", TokenElse)
	case 'i':
		return checkSuffix(lexeme, 1, "f", TokenIf)
	case 'n':
		return checkSuffix(lexeme, 1, "il", TokenNil)
	case 'o':
		return checkSuffix(lexeme, 1, "r", TokenOr)
	case 'p':
		return checkSuffix(lexeme, 1, "rint", TokenPrint)
	case 'r':
		return checkSuffix(lexeme, 1, "eturn", TokenReturn)
	case 's':
		return checkSuffix(lexeme, 1, "uper", TokenSuper)
	case 'v':
		return checkSuffix(lexeme, 1, "ar", TokenVar)
	case 'w':
		return checkSuffix(lexeme, 1, "hile", TokenWhile)
	case 't':
		if len(lexeme) > 1 {
			switch lexeme[1] {
			case 'h':
				return checkSuffix(lexeme, 2, "is", TokenThis)
			case 'r':
				return checkSuffix(lexeme, 2, "ue", TokenTrue)
			}
		}
	case 'f':
		if len(lexeme) > 1 {
			switch lexeme[1] {
			case 'a':
				return checkSuffix(lexeme, 2, "lse", TokenFalse)
			case 'o':
				return checkSuffix(lexeme, 2, "r", TokenFor)
			case 'u':
				return checkSuffix(lexeme, 2, "n", TokenFun)
			}
		}
	}
	return TokenIdentifier, false
}

func checkSuffix(lexeme string, from int, suffix string, typ TokenType) (TokenType, bool) {
	if lexeme[from:] == suffix {
		return typ, true
	}
	return TokenIdentifier, false
}

// Helper functions

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

// Tokenize returns all tokens from the input, including the trailing EOF.
// Error tokens do not stop the scan; they are ordinary tokens.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}
