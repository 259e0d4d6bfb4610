package ylang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()
	env.Define("id1", Number(1))
	env.Define("id2", String("two"))

	v, ok := env.Get("id1")
	assert.True(t, ok)
	assert.Equal(t, Number(1), v)

	v, ok = env.Get("id2")
	assert.True(t, ok)
	assert.Equal(t, String("two"), v)

	_, ok = env.Get("id3")
	assert.False(t, ok)

	env.Define("id1", Nil{})
	v, _ = env.Get("id1")
	assert.Equal(t, Nil{}, v)
}

func TestEnvironmentEnclosing(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", Number(1))
	global.Define("y", Number(2))

	outer := NewEnclosedEnvironment(global)
	outer.Define("x", Number(3))

	inner := NewEnclosedEnvironment(outer)
	inner.Define("z", Boolean(true))

	v, _ := inner.Get("x")
	assert.Equal(t, Number(3), v)

	v, _ = inner.Get("y")
	assert.Equal(t, Number(2), v)

	v, _ = inner.Get("z")
	assert.Equal(t, Boolean(true), v)

	_, ok := outer.Get("z")
	assert.False(t, ok)

	v, _ = global.Get("x")
	assert.Equal(t, Number(1), v)

	assert.Same(t, outer, inner.Enclosing())
	assert.Nil(t, global.Enclosing())
}
