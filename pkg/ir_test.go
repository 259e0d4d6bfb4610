package ylang

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueLookup(t *testing.T) {
	vals := NewValueLookup()

	val1 := IRValue{KindNumber, constant.NewFloat(types.Double, 1)}
	val2 := IRValue{KindBoolean, constant.NewBool(true)}

	vals.Set("id1", val1)
	vals.Set("id2", val2)

	got, ok := vals.Get("id1")
	assert.True(t, ok)
	assert.Equal(t, val1, got)

	got, ok = vals.Get("id2")
	assert.True(t, ok)
	assert.Equal(t, val2, got)

	_, ok = vals.Get("id3")
	assert.False(t, ok)
}

func TestValueLookupInherit(t *testing.T) {
	vals1 := NewValueLookup()

	val1 := IRValue{KindNumber, constant.NewFloat(types.Double, 1)}
	val2 := IRValue{KindNumber, constant.NewFloat(types.Double, 2)}

	vals1.Set("id1", val1)
	vals1.Set("id2", val2)

	vals2 := NewValueLookup()

	val3 := IRValue{KindNumber, constant.NewFloat(types.Double, 3)}
	val4 := IRValue{Kind: KindNil}

	vals2.Set("id1", val3)
	vals2.Set("id4", val4)

	vals1.Inherit(vals2)

	got, _ := vals1.Get("id1")
	assert.Equal(t, val3, got)
	got, _ = vals1.Get("id2")
	assert.Equal(t, val2, got)
	got, _ = vals1.Get("id4")
	assert.Equal(t, val4, got)
}

func compileSource(t *testing.T, source string) string {
	t.Helper()

	mod, err := NewCompiler().CompileString(source)
	require.NoError(t, err, source)

	return mod.String()
}

func TestCompile(t *testing.T) {
	cases := []struct {
		data   string
		expect []string
	}{
		{
			"print 1 + 2 * 3;",
			[]string{"declare i32 @printf(", "define i32 @main()", "fmul double", "fadd double", "ret i32 0"},
		},
		{
			"var x = 4; print -x / 2 - 1;",
			[]string{"fneg double", "fdiv double", "fsub double"},
		},
		{
			"print true; print false;",
			[]string{"select i1 true", `c"true\00"`, `c"false\00"`},
		},
		{
			"print nil; print \"text\";",
			[]string{`c"nil\00"`, `c"text\00"`, `c"%s\0A\00"`},
		},
	}

	for _, c := range cases {
		got := compileSource(t, c.data)
		for _, want := range c.expect {
			assert.Contains(t, got, want, c.data)
		}
	}
}

func TestCompileInternsStrings(t *testing.T) {
	got := compileSource(t, "print \"same\"; print \"same\";")
	assert.Equal(t, 1, strings.Count(got, `c"same\00"`))
}

func TestCompileBlockScoping(t *testing.T) {
	got := compileSource(t, "var x = 1; { var x = \"inner\"; print x; } print x + 1;")
	assert.Contains(t, got, `c"inner\00"`)
	assert.Contains(t, got, "fadd double")
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		data   string
		expect *CompileError
	}{
		{"print \"a\" + \"b\";", &CompileError{"Operands must be numbers, got string and string", 1}},
		{"print y;", &CompileError{"Undefined variable 'y'", 1}},
		{"{ var z = 1; }\nprint z;", &CompileError{"Undefined variable 'z'", 2}},
		{"print -true;", &CompileError{"Operand must be a number, got boolean", 1}},
		{"print !1;", &CompileError{"Invalid unary operator '!'", 1}},
		{"print 1 < 2;", &CompileError{"Invalid binary operator '<'", 1}},
		{"print 1;\nprint 1 == 1;", &CompileError{"Invalid binary operator '=='", 2}},
		{"print \"a\" != \"b\";", &CompileError{"Operands must be numbers, got string and string", 1}},
		{"print nil == false;", &CompileError{"Operands must be numbers, got nil and boolean", 1}},
	}

	for _, c := range cases {
		_, err := NewCompiler().CompileString(c.data)

		var compileErr *CompileError
		require.ErrorAs(t, err, &compileErr, c.data)
		assert.Equal(t, c.expect, compileErr, c.data)
	}
}

func TestCompileFromReader(t *testing.T) {
	mod, err := NewCompiler().CompileFromReader(strings.NewReader("print 1;"))
	require.NoError(t, err)
	assert.Contains(t, mod.String(), "@printf(")

	_, err = NewCompiler().CompileFromReader(strings.NewReader("print 1"))
	var parseErr *ParserError
	assert.ErrorAs(t, err, &parseErr)
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.y")
	require.NoError(t, os.WriteFile(path, []byte("var x = 2;\nprint x * 3;\n"), 0o644))

	mod, err := NewCompiler().Compile(path)
	require.NoError(t, err)
	assert.Contains(t, mod.String(), "fmul double")

	_, err = NewCompiler().Compile(filepath.Join(dir, "missing.y"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
