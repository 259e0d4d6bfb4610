package ylang

import (
	"fmt"

	"fortio.org/log"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Kind is the static kind of a lowered value. Without control flow every
// expression has exactly one kind.
type Kind int

const (
	KindNil Kind = iota
	KindNumber
	KindString
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	default:
		return "nil"
	}
}

// IRValue is a lowered value. Value is nil for KindNil.
type IRValue struct {
	Kind  Kind
	Value value.Value
}

type ValueLookup struct {
	vals map[string]IRValue
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]IRValue),
	}
}

func (l *ValueLookup) Inherit(t2 *ValueLookup) {
	for k, v := range t2.vals {
		l.Set(k, v)
	}
}

func (l *ValueLookup) Get(id string) (IRValue, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val IRValue) {
	l.vals[id] = val
}

type LLVMIRBuilder struct {
	mod    *ir.Module
	block  *ir.Block
	values *ValueLookup

	printf  *ir.Func
	strings map[string]constant.Constant
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:     ir.NewModule(),
		values:  NewValueLookup(),
		strings: make(map[string]constant.Constant),
	}

	defineBuiltins(builder)

	main := builder.mod.NewFunc("main", types.I32)
	builder.block = main.NewBlock("entry")

	return builder
}

func (b *LLVMIRBuilder) Module() *ir.Module {
	return b.mod
}

func (b *LLVMIRBuilder) finish() {
	b.block.NewRet(constant.NewInt(types.I32, 0))
}

func (b *LLVMIRBuilder) statement(stmt Stmt) error {
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := b.expression(s.Expr)
		return err
	case *PrintStmt:
		v, err := b.expression(s.Expr)
		if err != nil {
			return err
		}

		b.print(v)
		return nil
	case *VariableDecl:
		return b.variableDecl(s)
	case *BlockStmt:
		return b.blockStmt(s)
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

func (b *LLVMIRBuilder) variableDecl(s *VariableDecl) error {
	v := IRValue{Kind: KindNil}
	if s.Value != nil {
		var err error
		if v, err = b.expression(s.Value); err != nil {
			return err
		}
	}

	b.values.Set(s.Name.Value, v)
	return nil
}

func (b *LLVMIRBuilder) blockStmt(s *BlockStmt) error {
	prevVals := b.values
	b.values = NewValueLookup()
	b.values.Inherit(prevVals)

	defer func() {
		b.values = prevVals
	}()

	for _, stmt := range s.Statements {
		if err := b.statement(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (b *LLVMIRBuilder) print(v IRValue) {
	switch v.Kind {
	case KindNumber:
		b.block.NewCall(b.printf, b.stringConstant("%g\n"), v.Value)
	case KindString:
		b.block.NewCall(b.printf, b.stringConstant("%s\n"), v.Value)
	case KindBoolean:
		text := b.block.NewSelect(v.Value, b.stringConstant("true"), b.stringConstant("false"))
		b.block.NewCall(b.printf, b.stringConstant("%s\n"), text)
	default:
		b.block.NewCall(b.printf, b.stringConstant("%s\n"), b.stringConstant("nil"))
	}
}

func (b *LLVMIRBuilder) expression(expr Expr) (IRValue, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return b.literal(e), nil
	case *GroupingExpr:
		return b.expression(e.Inner)
	case *VariableExpr:
		if v, ok := b.values.Get(e.Name.Value); ok {
			return v, nil
		}

		return IRValue{}, b.errorf(e.Name, "Undefined variable '%s'", e.Name.Value)
	case *UnaryExpr:
		return b.unaryExpression(e)
	case *BinaryExpr:
		return b.binaryExpression(e)
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (b *LLVMIRBuilder) literal(e *LiteralExpr) IRValue {
	switch v := e.Value.(type) {
	case Number:
		return IRValue{KindNumber, constant.NewFloat(types.Double, float64(v))}
	case String:
		return IRValue{KindString, b.stringConstant(string(v))}
	case Boolean:
		return IRValue{KindBoolean, constant.NewBool(bool(v))}
	default:
		return IRValue{Kind: KindNil}
	}
}

func (b *LLVMIRBuilder) unaryExpression(e *UnaryExpr) (IRValue, error) {
	v, err := b.expression(e.Operand)
	if err != nil {
		return IRValue{}, err
	}

	if v.Kind != KindNumber {
		return IRValue{}, b.errorf(e.Operator, "Operand must be a number, got %s", v.Kind)
	}

	if e.Operator.Typ != TokenMinus {
		return IRValue{}, b.errorf(e.Operator, "Invalid unary operator '%s'", e.Operator.Value)
	}

	return IRValue{KindNumber, b.block.NewFNeg(v.Value)}, nil
}

func (b *LLVMIRBuilder) binaryExpression(e *BinaryExpr) (IRValue, error) {
	v1, err := b.expression(e.Op1)
	if err != nil {
		return IRValue{}, err
	}

	v2, err := b.expression(e.Op2)
	if err != nil {
		return IRValue{}, err
	}

	op := e.Operator
	if v1.Kind != KindNumber || v2.Kind != KindNumber {
		return IRValue{}, b.errorf(op, "Operands must be numbers, got %s and %s", v1.Kind, v2.Kind)
	}

	switch op.Typ {
	case TokenPlus:
		return IRValue{KindNumber, b.block.NewFAdd(v1.Value, v2.Value)}, nil
	case TokenMinus:
		return IRValue{KindNumber, b.block.NewFSub(v1.Value, v2.Value)}, nil
	case TokenStar:
		return IRValue{KindNumber, b.block.NewFMul(v1.Value, v2.Value)}, nil
	case TokenSlash:
		return IRValue{KindNumber, b.block.NewFDiv(v1.Value, v2.Value)}, nil

	default:
		return IRValue{}, b.errorf(op, "Invalid binary operator '%s'", op.Value)
	}
}

// stringConstant returns an i8* to a NUL-terminated global holding s. Equal
// strings share one global.
func (b *LLVMIRBuilder) stringConstant(s string) constant.Constant {
	if ptr, ok := b.strings[s]; ok {
		return ptr
	}

	data := constant.NewCharArrayFromString(s + "\x00")
	glob := b.mod.NewGlobalDef(fmt.Sprintf(".str.%d", len(b.strings)), data)

	zero := constant.NewInt(types.I64, 0)
	ptr := constant.NewGetElementPtr(data.Typ, glob, zero, zero)
	b.strings[s] = ptr

	return ptr
}

func (b *LLVMIRBuilder) errorf(tok Token, format string, args ...interface{}) *CompileError {
	return &CompileError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
	}
}

// LLVMGenerator lowers a parsed program into a module whose main function
// performs the program's prints.
type LLVMGenerator struct {
	stmts []Stmt
}

func NewLLVMGenerator(stmts []Stmt) *LLVMGenerator {
	return &LLVMGenerator{
		stmts: stmts,
	}
}

func (g LLVMGenerator) Do() (*ir.Module, error) {
	builder := NewLLVMIRBuilder()
	for _, stmt := range g.stmts {
		if err := builder.statement(stmt); err != nil {
			return nil, err
		}
	}

	builder.finish()
	log.LogVf("lowered %d statements to LLVM IR", len(g.stmts))

	return builder.Module(), nil
}
