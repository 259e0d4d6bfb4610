package ylang

import (
	"math"
	"strconv"
)

// Value is a runtime value: Number, String, Boolean or Nil.
type Value interface {
	String() string
	value()
}

type Number float64

func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

type String string

func (s String) String() string {
	return string(s)
}

type Boolean bool

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

type Nil struct{}

func (Nil) String() string {
	return "nil"
}

func (Number) value()  {}
func (String) value()  {}
func (Boolean) value() {}
func (Nil) value()     {}
