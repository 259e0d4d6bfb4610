package ylang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) ([]Stmt, error) {
	t.Helper()

	toks, err := ScanTokens(source)
	require.NoError(t, err, source)

	return NewParser(toks).Parse()
}

func TestParser(t *testing.T) {
	cases := []struct {
		data   []Token
		expect []Stmt
	}{
		{
			[]Token{
				{TokenVar, "var", "", 1},
				{TokenIdentifier, "x", "", 1},
				{TokenEqual, "=", "", 1},
				{TokenNumber, "1", "1", 1},
				{TokenSemicolon, ";", "", 1},
				{TokenEOF, "", "", 1},
			},
			[]Stmt{
				&VariableDecl{
					Name:  Token{TokenIdentifier, "x", "", 1},
					Value: &LiteralExpr{Number(1)},
				},
			},
		},
		{
			[]Token{
				{TokenVar, "var", "", 1},
				{TokenIdentifier, "empty", "", 1},
				{TokenSemicolon, ";", "", 1},
				{TokenEOF, "", "", 1},
			},
			[]Stmt{
				&VariableDecl{
					Name: Token{TokenIdentifier, "empty", "", 1},
				},
			},
		},
		{
			[]Token{
				{TokenPrint, "print", "", 1},
				{TokenString, "\"string\"", "string", 1},
				{TokenSemicolon, ";", "", 1},
				{TokenEOF, "", "", 1},
			},
			[]Stmt{
				&PrintStmt{Expr: &LiteralExpr{String("string")}},
			},
		},
		{
			[]Token{
				{TokenMinus, "-", "", 1},
				{TokenIdentifier, "x", "", 1},
				{TokenSemicolon, ";", "", 1},
				{TokenEOF, "", "", 1},
			},
			[]Stmt{
				&ExprStmt{
					Expr: &UnaryExpr{
						Operator: Token{TokenMinus, "-", "", 1},
						Operand:  &VariableExpr{Name: Token{TokenIdentifier, "x", "", 1}},
					},
				},
			},
		},
		{
			[]Token{
				{TokenOpenCurly, "{", "", 1},
				{TokenTrue, "true", "", 1},
				{TokenSemicolon, ";", "", 1},
				{TokenOpenCurly, "{", "", 1},
				{TokenCloseCurly, "}", "", 1},
				{TokenCloseCurly, "}", "", 1},
				{TokenEOF, "", "", 1},
			},
			[]Stmt{
				&BlockStmt{
					Statements: []Stmt{
						&ExprStmt{Expr: &LiteralExpr{Boolean(true)}},
						&BlockStmt{},
					},
				},
			},
		},
		{
			[]Token{
				{TokenEOF, "", "", 1},
			},
			nil,
		},
		{
			// A sequence without its EOF token
			[]Token{
				{TokenNil, "nil", "", 1},
				{TokenSemicolon, ";", "", 1},
			},
			[]Stmt{
				&ExprStmt{Expr: &LiteralExpr{Nil{}}},
			},
		},
	}

	for _, c := range cases {
		got, err := NewParser(c.data).Parse()
		require.NoError(t, err)
		assert.Equal(t, c.expect, got)
	}
}

func TestParserPrecedence(t *testing.T) {
	cases := []struct {
		data   string
		expect string
	}{
		{"1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"1 + 3 * 2;", "(+ 1 (* 3 2))"},
		{"(1 + 3) * 2;", "(* (group (+ 1 3)) 2)"},
		{"1 - 3 + 1;", "(+ (- 1 3) 1)"},
		{"8 / 4 / 2;", "(/ (/ 8 4) 2)"},
		{"1 < 2 == 3 > 4;", "(== (< 1 2) (> 3 4))"},
		{"1 != 2 == true;", "(== (!= 1 2) true)"},
		{"--1;", "(- (- 1))"},
		{"!true == false;", "(== (! true) false)"},
		{"-a * b;", "(* (- a) b)"},
		{"1 <= 2 >= 3;", "(>= (<= 1 2) 3)"},
	}

	for _, c := range cases {
		stmts, err := parseSource(t, c.data)
		require.NoError(t, err, c.data)
		require.Len(t, stmts, 1, c.data)

		stmt, ok := stmts[0].(*ExprStmt)
		require.True(t, ok, c.data)
		assert.Equal(t, c.expect, PrintExpr(stmt.Expr), c.data)
	}
}

func TestParserErrors(t *testing.T) {
	cases := []struct {
		data   string
		expect *ParserError
	}{
		{"print 1", &ParserError{"Expect ';' after value, found EOF", 1}},
		{"1 + 2", &ParserError{"Expect ';' after expression, found EOF", 1}},
		{"var = 1;", &ParserError{"Expect variable name, found Equal", 1}},
		{"var x = 1", &ParserError{"Expect ';' after variable declaration, found EOF", 1}},
		{"(1 + 2;", &ParserError{"Expect ')' after expression, found Semicolon", 1}},
		{"{ print 1;\n", &ParserError{"Expect '}' after block, found EOF", 2}},
		{"print 1;\n}", &ParserError{"Unexpected token CloseCurly", 2}},
		{"print;", &ParserError{"Unexpected token Semicolon", 1}},
		{"1 +;", &ParserError{"Unexpected token Semicolon", 1}},
	}

	for _, c := range cases {
		stmts, err := parseSource(t, c.data)
		assert.Nil(t, stmts, c.data)

		var parseErr *ParserError
		require.ErrorAs(t, err, &parseErr, c.data)
		assert.Equal(t, c.expect, parseErr, c.data)
	}
}

func TestParserStopsAtFirstError(t *testing.T) {
	_, err := parseSource(t, "print ;\nprint 2;\nvar;")

	var parseErr *ParserError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Line)
}

func TestParseAll(t *testing.T) {
	toks, err := ScanTokens("print ;\nprint 2;\nvar;\nvar y = 3;\n1 +")
	require.NoError(t, err)

	stmts, err := NewParser(toks).ParseAll()

	var errs *ParseErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs.Errors, 3)
	assert.Equal(t, 1, errs.Errors[0].Line)
	assert.Equal(t, 3, errs.Errors[1].Line)
	assert.Equal(t, 5, errs.Errors[2].Line)
	assert.Len(t, strings.Split(err.Error(), "\n"), 3)

	require.Len(t, stmts, 2)
	assert.IsType(t, &PrintStmt{}, stmts[0])
	assert.IsType(t, &VariableDecl{}, stmts[1])
}

func TestParseAllWithoutErrors(t *testing.T) {
	toks, err := ScanTokens("var a = 1; { print a; }")
	require.NoError(t, err)

	all, err := NewParser(toks).ParseAll()
	require.NoError(t, err)

	first, err := NewParser(toks).Parse()
	require.NoError(t, err)
	assert.Equal(t, first, all)
}
