package ylang

import (
	"fmt"
	"io"

	"fortio.org/log"
)

// Interpreter walks statements against an environment. print writes to out.
type Interpreter struct {
	out io.Writer
}

func NewInterpreter(out io.Writer) *Interpreter {
	return &Interpreter{
		out: out,
	}
}

// Interpret executes stmts in order and stops at the first error.
func (i *Interpreter) Interpret(stmts []Stmt, env *Environment) error {
	for _, stmt := range stmts {
		if err := i.Execute(stmt, env); err != nil {
			return err
		}
	}

	return nil
}

func (i *Interpreter) Execute(stmt Stmt, env *Environment) error {
	switch s := stmt.(type) {
	case *ExprStmt:
		log.LogVf("exec expression statement")
		_, err := i.Evaluate(s.Expr, env)
		return err
	case *PrintStmt:
		log.LogVf("exec print statement")
		v, err := i.Evaluate(s.Expr, env)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(i.out, v.String()); err != nil {
			return fmt.Errorf("writing print output: %w", err)
		}

		return nil
	case *VariableDecl:
		var v Value = Nil{}
		if s.Value != nil {
			var err error
			if v, err = i.Evaluate(s.Value, env); err != nil {
				return err
			}
		}

		log.LogVf("exec var %s = %s", s.Name.Value, v)
		env.Define(s.Name.Value, v)
		return nil
	case *BlockStmt:
		log.LogVf("exec block of %d statements", len(s.Statements))
		return i.Interpret(s.Statements, NewEnclosedEnvironment(env))
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

func (i *Interpreter) Evaluate(expr Expr, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *GroupingExpr:
		return i.Evaluate(e.Inner, env)
	case *VariableExpr:
		if v, ok := env.Get(e.Name.Value); ok {
			return v, nil
		}

		return nil, runtimeErrorf(e.Name.Line, "Undefined variable '%s'", e.Name.Value)
	case *UnaryExpr:
		return i.unary(e, env)
	case *BinaryExpr:
		return i.binary(e, env)
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (i *Interpreter) unary(e *UnaryExpr, env *Environment) (Value, error) {
	v, err := i.Evaluate(e.Operand, env)
	if err != nil {
		return nil, err
	}

	n, ok := v.(Number)
	if !ok {
		return nil, runtimeErrorf(e.Operator.Line, "Operand must be a number, got '%s'", v)
	}

	if e.Operator.Typ != TokenMinus {
		return nil, runtimeErrorf(e.Operator.Line, "Invalid unary operator '%s'", e.Operator.Value)
	}

	return -n, nil
}

func (i *Interpreter) binary(e *BinaryExpr, env *Environment) (Value, error) {
	lhs, err := i.Evaluate(e.Op1, env)
	if err != nil {
		return nil, err
	}

	rhs, err := i.Evaluate(e.Op2, env)
	if err != nil {
		return nil, err
	}

	op := e.Operator
	n1, ok1 := lhs.(Number)
	n2, ok2 := rhs.(Number)
	if !ok1 || !ok2 {
		return nil, runtimeErrorf(op.Line, "Operands must be numbers, got '%s' and '%s'", lhs, rhs)
	}

	switch op.Typ {
	case TokenPlus:
		return n1 + n2, nil
	case TokenMinus:
		return n1 - n2, nil
	case TokenStar:
		return n1 * n2, nil
	case TokenSlash:
		return n1 / n2, nil
	default:
		return nil, runtimeErrorf(op.Line, "Invalid binary operator '%s'", op.Value)
	}
}
