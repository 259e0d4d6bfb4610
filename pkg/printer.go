package ylang

import (
	"fmt"
	"strings"
)

// PrintExpr renders expr in prefix form, e.g. (* (group (+ 1 2)) 3).
func PrintExpr(expr Expr) string {
	switch e := expr.(type) {
	case *BinaryExpr:
		return parenthesize(e.Operator.Value, e.Op1, e.Op2)
	case *UnaryExpr:
		return parenthesize(e.Operator.Value, e.Operand)
	case *LiteralExpr:
		return e.Value.String()
	case *GroupingExpr:
		return parenthesize("group", e.Inner)
	case *VariableExpr:
		return e.Name.Value
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

// PrintStatement renders a statement, nesting blocks by indentation.
func PrintStatement(stmt Stmt) string {
	var str strings.Builder
	printStmt(&str, stmt, 0)

	return str.String()
}

func printStmt(str *strings.Builder, stmt Stmt, depth int) {
	str.WriteString(strings.Repeat("  ", depth))

	switch s := stmt.(type) {
	case *ExprStmt:
		str.WriteString(PrintExpr(s.Expr))
	case *PrintStmt:
		str.WriteString("(print " + PrintExpr(s.Expr) + ")")
	case *VariableDecl:
		if s.Value == nil {
			str.WriteString("(var " + s.Name.Value + ")")
			break
		}

		str.WriteString("(var " + s.Name.Value + " " + PrintExpr(s.Value) + ")")
	case *BlockStmt:
		str.WriteString("(block")
		for _, child := range s.Statements {
			str.WriteString("\n")
			printStmt(str, child, depth+1)
		}
		str.WriteString(")")
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var str strings.Builder
	str.WriteString("(" + name)

	for _, expr := range exprs {
		str.WriteString(" " + PrintExpr(expr))
	}
	str.WriteString(")")

	return str.String()
}
