package ylang

// Expr is one of BinaryExpr, UnaryExpr, LiteralExpr, GroupingExpr or
// VariableExpr. The set is closed; switches over it are expected to be total.
type Expr interface {
	exprNode()
}

type BinaryExpr struct {
	Operator Token
	Op1      Expr
	Op2      Expr
}

type UnaryExpr struct {
	Operator Token
	Operand  Expr
}

type LiteralExpr struct {
	Value Value
}

type GroupingExpr struct {
	Inner Expr
}

type VariableExpr struct {
	Name Token
}

func (*BinaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*LiteralExpr) exprNode()  {}
func (*GroupingExpr) exprNode() {}
func (*VariableExpr) exprNode() {}

// Stmt is one of ExprStmt, PrintStmt, VariableDecl or BlockStmt.
type Stmt interface {
	stmtNode()
}

type ExprStmt struct {
	Expr Expr
}

type PrintStmt struct {
	Expr Expr
}

// VariableDecl binds Name in the current scope. A nil Value declares nil.
type VariableDecl struct {
	Name  Token
	Value Expr
}

type BlockStmt struct {
	Statements []Stmt
}

func (*ExprStmt) stmtNode()     {}
func (*PrintStmt) stmtNode()    {}
func (*VariableDecl) stmtNode() {}
func (*BlockStmt) stmtNode()    {}
