package ylang

import (
	"fmt"
	"io"
	"os"

	"github.com/llir/llvm/ir"
)

// Compiler lowers programs to LLVM IR instead of interpreting them.
type Compiler struct{}

func NewCompiler() *Compiler {
	return &Compiler{}
}

func (c *Compiler) Compile(filename string) (*ir.Module, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer file.Close()

	return c.CompileFromReader(file)
}

func (c *Compiler) CompileFromReader(reader io.Reader) (*ir.Module, error) {
	tokens, err := NewLexer(reader).RunBlocking()
	if err != nil {
		return nil, err
	}

	return c.compile(tokens)
}

func (c *Compiler) CompileString(source string) (*ir.Module, error) {
	tokens, err := ScanTokens(source)
	if err != nil {
		return nil, err
	}

	return c.compile(tokens)
}

func (c *Compiler) compile(tokens []Token) (*ir.Module, error) {
	stmts, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, err
	}

	return NewLLVMGenerator(stmts).Do()
}
