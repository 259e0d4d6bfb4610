package ylang

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

func defineBuiltins(b *LLVMIRBuilder) {
	b.printf = builtinPrintf(b.mod)
}

// Resolved from libc at link time.
func builtinPrintf(mod *ir.Module) *ir.Func {
	printf := mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true

	return printf
}
