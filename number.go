package jsonvalue

import (
	"math"
	"strconv"
)

// NumberType tells which numeric representation a Number holds.
type NumberType uint8

const (
	IntNumber    NumberType = iota // int64
	FloatNumber                    // float32
	DoubleNumber                   // float64
)

func (k NumberType) String() string {
	switch k {
	case IntNumber:
		return "int"
	case FloatNumber:
		return "float"
	case DoubleNumber:
		return "double"
	default:
		return "unknown"
	}
}

// Number wraps one of the three numeric representations a Value can hold.
// There is no automatic promotion: Int(1) and Double(1) are different numbers.
// The zero Number is Int(0).
type Number struct {
	kind NumberType
	i    int64
	f    float64 // float32 values are stored widened; kind keeps the distinction
}

func IntNum(n int64) Number     { return Number{kind: IntNumber, i: n} }
func FloatNum(f float32) Number { return Number{kind: FloatNumber, f: float64(f)} }
func DoubleNum(f float64) Number {
	return Number{kind: DoubleNumber, f: f}
}

func (n Number) Kind() NumberType { return n.kind }

// Int64 converts the stored number to int64. Floating point values are
// truncated toward zero.
func (n Number) Int64() int64 {
	if n.kind == IntNumber {
		return n.i
	}
	return int64(n.f)
}

// Uint64 converts the stored number to uint64 the way a Go conversion would.
func (n Number) Uint64() uint64 {
	if n.kind == IntNumber {
		return uint64(n.i)
	}
	return uint64(n.f)
}

func (n Number) Float32() float32 {
	if n.kind == IntNumber {
		return float32(n.i)
	}
	return float32(n.f)
}

func (n Number) Float64() float64 {
	switch n.kind {
	case IntNumber:
		return float64(n.i)
	case FloatNumber:
		return float64(float32(n.f))
	default:
		return n.f
	}
}

// Equal reports whether n and o hold the same representation and the same value.
func (n Number) Equal(o Number) bool {
	if n.kind != o.kind {
		return false
	}
	if n.kind == IntNumber {
		return n.i == o.i
	}
	return n.f == o.f
}

// IsFinite is false for NaN and infinities, which JSON text cannot carry.
func (n Number) IsFinite() bool {
	if n.kind == IntNumber {
		return true
	}
	return !math.IsNaN(n.f) && !math.IsInf(n.f, 0)
}

func (n Number) String() string {
	switch n.kind {
	case IntNumber:
		return strconv.FormatInt(n.i, 10)
	case FloatNumber:
		return strconv.FormatFloat(n.f, 'g', -1, 32)
	default:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
}

// any returns the natural Go representation: int64, float32 or float64.
func (n Number) any() any {
	switch n.kind {
	case IntNumber:
		return n.i
	case FloatNumber:
		return float32(n.f)
	default:
		return n.f
	}
}
