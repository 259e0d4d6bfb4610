package ylang

import "fmt"

type TokenType uint64

const (
	TokenEOF TokenType = iota

	// Single-character tokens
	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
	TokenComma
	TokenDot
	TokenMinus
	TokenPlus
	TokenSemicolon
	TokenSlash
	TokenStar

	// One or two character tokens
	TokenBang
	TokenBangEqual
	TokenEqual
	TokenEqualEqual
	TokenGreater
	TokenGreaterEqual
	TokenLess
	TokenLessEqual

	// Literals
	TokenIdentifier
	TokenString
	TokenNumber

	// Keywords
	TokenAnd
	TokenClass
	TokenElse
	TokenFalse
	TokenFor
	TokenFun
	TokenIf
	TokenNil
	TokenOr
	TokenPrint
	TokenReturn
	TokenSuper
	TokenThis
	TokenTrue
	TokenVar
	TokenWhile
)

var tokenNames = [...]string{
	TokenEOF:              "EOF",
	TokenOpenParentheses:  "OpenParentheses",
	TokenCloseParentheses: "CloseParentheses",
	TokenOpenCurly:        "OpenCurly",
	TokenCloseCurly:       "CloseCurly",
	TokenComma:            "Comma",
	TokenDot:              "Dot",
	TokenMinus:            "Minus",
	TokenPlus:             "Plus",
	TokenSemicolon:        "Semicolon",
	TokenSlash:            "Slash",
	TokenStar:             "Star",
	TokenBang:             "Bang",
	TokenBangEqual:        "BangEqual",
	TokenEqual:            "Equal",
	TokenEqualEqual:       "EqualEqual",
	TokenGreater:          "Greater",
	TokenGreaterEqual:     "GreaterEqual",
	TokenLess:             "Less",
	TokenLessEqual:        "LessEqual",
	TokenIdentifier:       "Identifier",
	TokenString:           "String",
	TokenNumber:           "Number",
	TokenAnd:              "And",
	TokenClass:            "Class",
	TokenElse:             "Else",
	TokenFalse:            "False",
	TokenFor:              "For",
	TokenFun:              "Fun",
	TokenIf:               "If",
	TokenNil:              "Nil",
	TokenOr:               "Or",
	TokenPrint:            "Print",
	TokenReturn:           "Return",
	TokenSuper:            "Super",
	TokenThis:             "This",
	TokenTrue:             "True",
	TokenVar:              "Var",
	TokenWhile:            "While",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

var keywordTable = map[string]TokenType{
	"and":    TokenAnd,
	"class":  TokenClass,
	"else":   TokenElse,
	"false":  TokenFalse,
	"for":    TokenFor,
	"fun":    TokenFun,
	"if":     TokenIf,
	"nil":    TokenNil,
	"or":     TokenOr,
	"print":  TokenPrint,
	"return": TokenReturn,
	"super":  TokenSuper,
	"this":   TokenThis,
	"true":   TokenTrue,
	"var":    TokenVar,
	"while":  TokenWhile,
}

var operatorTable = map[string]TokenType{
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	"{":  TokenOpenCurly,
	"}":  TokenCloseCurly,
	",":  TokenComma,
	".":  TokenDot,
	"-":  TokenMinus,
	"+":  TokenPlus,
	";":  TokenSemicolon,
	"/":  TokenSlash,
	"*":  TokenStar,
	"!":  TokenBang,
	"!=": TokenBangEqual,
	"=":  TokenEqual,
	"==": TokenEqualEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
}

// Token is a classified lexeme. Literal holds the payload of number and
// string tokens (the digits, or the text between the quotes) and is empty
// for every other type.
type Token struct {
	Typ     TokenType
	Value   string
	Literal string
	Line    int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Typ, t.Value)
}
