package compiler

import (
	"fmt"
	"strconv"

	"github.com/ember-lang/ember/vm"
)

// ---------------------------------------------------------------------------
// Compiler: single-pass precedence-climbing compiler
// ---------------------------------------------------------------------------
//
// The compiler drives the lexer one token of lookahead ahead of the parse
// position and emits instructions directly into the chunk as it parses; no
// AST is materialized.

// Error is a compile-time syntax error. Errors are collected, never
// thrown: compilation keeps going (subject to panic-mode suppression) and
// returns everything it managed to collect. AtEnd distinguishes "at end of
// input, no token available" from "at this token".
type Error struct {
	Token   Token
	AtEnd   bool
	Message string
}

func (e Error) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("Error at end: %s", e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token, e.Message)
}

// Compiler holds the state of one compilation. It lives for the duration
// of a single Compile call and is discarded after.
type Compiler struct {
	lexer     *Lexer
	current   Token
	previous  Token
	errors    []Error
	panicMode bool
	lastLine  int // line of the last consumed token
	chunk     *vm.Chunk
}

// Compile compiles a single expression into a chunk. The chunk is always
// returned, even when errors occurred, so callers can inspect partially
// generated code; callers that care about correctness must check the error
// list before executing.
func Compile(source string) (*vm.Chunk, []Error) {
	chunk := vm.NewChunk()
	c := newCompiler(NewLexer(source), chunk)
	c.expression()
	c.finish()
	return chunk, c.errors
}

func newCompiler(lexer *Lexer, chunk *vm.Chunk) *Compiler {
	c := &Compiler{
		lexer: lexer,
		chunk: chunk,
	}
	c.current = lexer.NextToken()
	return c
}

// finish always emits the trailing Return, tagged with the line of the
// last consumed token, regardless of whether errors occurred.
func (c *Compiler) finish() {
	c.emitAtLastLine(vm.OpReturn)
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

// parsePrecedence parses everything the upcoming tokens can bind at the
// given precedence or tighter. The loop hands control back to the caller
// as soon as the current token's operator binds too loosely to continue.
func (c *Compiler) parsePrecedence(min Precedence) {
	c.advance()
	c.prefixRule(c.previous)

	for precedenceOf(c.current.Type) >= min {
		c.advance()
		c.infixRule(c.previous)
	}
}

func (c *Compiler) prefixRule(token Token) {
	switch token.Type {
	case TokenLParen:
		c.grouping()
	case TokenMinus:
		c.unary(token)
	case TokenNumber:
		c.number(token)
	case TokenEOF:
		c.errorAtEnd("Expect expression")
	default:
		c.errorAt(token, "Expect expression")
	}
}

func (c *Compiler) infixRule(token Token) {
	switch token.Type {
	case TokenPlus, TokenMinus, TokenStar, TokenSlash:
		c.binary(token)
	default:
		// Tokens like '<' or '.' carry an infix precedence but have no
		// compiled form yet.
		c.errorAt(token, "Unsupported operator")
	}
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(TokenRParen, "Expect to have ')' at the end of grouping expression")
}

// unary parses the operand expression, then emits the negation tagged
// with the operator's own line rather than the operand's.
func (c *Compiler) unary(opToken Token) {
	c.expression()
	c.emit(vm.OpNegate, opToken.Line)
}

// number allocates a fresh constant slot and emits a Constant referencing
// it, tagged with the literal's own line.
func (c *Compiler) number(token Token) {
	f, err := strconv.ParseFloat(token.Literal, 64)
	if err != nil {
		c.errorAt(token, "Invalid number literal")
		return
	}
	index := c.chunk.AddConstant(vm.NumberValue(f))
	c.chunk.AddInstruction(vm.OpConstant, index, token.Line)
}

// binary parses the right operand one precedence level above the
// operator's own, which keeps equal-precedence chains left-associative,
// then emits the operation tagged with the line of the last consumed
// token (where the expression actually completed).
func (c *Compiler) binary(opToken Token) {
	c.parsePrecedence(precedenceOf(opToken.Type).next())

	switch opToken.Type {
	case TokenPlus:
		c.emitAtLastLine(vm.OpAdd)
	case TokenMinus:
		c.emitAtLastLine(vm.OpSubtract)
	case TokenStar:
		c.emitAtLastLine(vm.OpMultiply)
	case TokenSlash:
		c.emitAtLastLine(vm.OpDivide)
	}
}

// consume expects the current token to be of the given type and advances
// past it; otherwise it reports the unmet expectation and resumes.
func (c *Compiler) consume(typ TokenType, msg string) {
	if c.current.Type == typ {
		c.advance()
		return
	}
	if c.current.Type == TokenEOF {
		c.errorAtEnd(msg)
		return
	}
	c.errorAt(c.current, msg)
}

// advance shifts the lookahead window one token. Lexer error tokens are
// reported through the ordinary error path and skipped; there is no
// separate lexer exception channel.
func (c *Compiler) advance() {
	c.previous = c.current
	if c.previous.Type != TokenEOF {
		c.lastLine = c.previous.Line
	}

	for {
		c.current = c.lexer.NextToken()
		if c.current.Type != TokenError {
			break
		}
		c.errorAt(c.current, c.current.Literal)
	}
}

// errorAt records an error at a token and enters panic mode, suppressing
// further reports. There is no statement boundary to resynchronize at
// yet, so panic mode persists for the rest of the compilation.
func (c *Compiler) errorAt(token Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.errors = append(c.errors, Error{Token: token, Message: msg})
}

// errorAtEnd records an error at end of input, where no token is
// available to point at.
func (c *Compiler) errorAtEnd(msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.errors = append(c.errors, Error{AtEnd: true, Message: msg})
}

func (c *Compiler) emit(op vm.Op, line int) {
	c.chunk.AddInstruction(op, 0, line)
}

func (c *Compiler) emitAtLastLine(op vm.Op) {
	c.emit(op, c.lastLine)
}
