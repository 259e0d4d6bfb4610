package ylang

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/log"
)

const EOF rune = -1

type stateFunc func(l *Lexer) stateFunc

// Lexer turns source text into tokens. Run emits them on Chan and stops at
// the first invalid character, leaving the failure in Err.
type Lexer struct {
	reader *bufio.Reader
	done   chan Token
	line   int
	err    *LexerError
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		done:   make(chan Token),
		line:   1,
	}
}

func NewLexerFromString(source string) *Lexer {
	return NewLexer(strings.NewReader(source))
}

// ScanTokens lexes source and returns every token, ending with a single EOF
// token. No tokens are returned on failure.
func ScanTokens(source string) ([]Token, error) {
	return NewLexerFromString(source).RunBlocking()
}

func (l *Lexer) Chan() <-chan Token {
	return l.done
}

// Err reports why the token channel was closed early. It is only meaningful
// once Chan has been drained.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}

	return l.err
}

func (l *Lexer) Run() {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	close(l.done)
}

func (l *Lexer) RunBlocking() ([]Token, error) {
	go l.Run()

	var tokens []Token
	for t := range l.Chan() {
		tokens = append(tokens, t)
	}

	if err := l.Err(); err != nil {
		return nil, err
	}

	log.LogVf("lexed %d tokens over %d lines", len(tokens), l.line)
	return tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			return l.emitValue(TokenEOF, "", l.line)
		case r == ' ' || r == '\r' || r == '\t':
			l.next()
		case r == '\n':
			l.next()
			l.line++
		case isDigit(r):
			return numberState
		case r == '"':
			return stringState
		case unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for isDigit(l.peek()) {
		num.WriteRune(l.next())
	}

	// A trailing dot without digits is left for the next token
	if l.peek() == '.' && isDigit(l.peekSecond()) {
		num.WriteRune(l.next())
		for isDigit(l.peek()) {
			num.WriteRune(l.next())
		}
	}

	return l.emitLiteral(TokenNumber, num.String(), num.String(), l.line)
}

func stringState(l *Lexer) stateFunc {
	start := l.line
	l.next() // Skip the leading double-quote

	var str strings.Builder
	for r := l.next(); r != '"'; r = l.next() {
		if r == EOF {
			return l.fail(&LexerError{Kind: UnterminatedString, Line: start})
		}

		if r == '\n' {
			l.line++
		}

		str.WriteRune(r)
	}

	return l.emitLiteral(TokenString, `"`+str.String()+`"`, str.String(), start)
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r) || unicode.IsDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emitValue(t, id.String(), l.line)
	}

	return l.emitValue(TokenIdentifier, id.String(), l.line)
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if r == '!' || r == '=' || r == '<' || r == '>' || r == '/' { // Some operators can be two runes
		op := string(r) + string(l.peek())
		if op == "//" {
			return lineCommentState
		}

		if tok, ok := operatorTable[op]; ok {
			l.next() // Skip
			return l.emitValue(tok, op, l.line)
		}
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emitValue(tok, string(r), l.line)
	}

	return l.fail(&LexerError{Kind: UnexpectedCharacter, Line: l.line, Char: r})
}

// The newline ending the comment is left to defaultState so it is counted.
func lineCommentState(l *Lexer) stateFunc {
	for r := l.peek(); r != '\n' && r != EOF; r = l.peek() {
		l.next()
	}

	return defaultState
}

func (l *Lexer) fail(err *LexerError) stateFunc {
	l.err = err
	return nil
}

func (l *Lexer) emitValue(t TokenType, val string, line int) stateFunc {
	return l.emitLiteral(t, val, "", line)
}

func (l *Lexer) emitLiteral(t TokenType, val, literal string, line int) stateFunc {
	l.done <- Token{
		Typ:     t,
		Value:   val,
		Literal: literal,
		Line:    line,
	}

	if t == TokenEOF {
		return nil
	}

	return defaultState
}

func (l *Lexer) peek() rune {
	r := l.next()
	if r != EOF {
		_ = l.reader.UnreadRune()
	}

	return r
}

func (l *Lexer) peekSecond() rune {
	buf, _ := l.reader.Peek(2 * utf8.UTFMax)
	_, size := utf8.DecodeRune(buf)
	if size >= len(buf) {
		return EOF
	}

	r, _ := utf8.DecodeRune(buf[size:])
	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
