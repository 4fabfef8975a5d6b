package jsonvalue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, NullKind, v.Kind())
	assert.True(t, v.Equal(Null()))
}

func TestAccessorsMatchKindOnly(t *testing.T) {
	v := Int(7)
	n, ok := v.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(7), n)

	_, ok = v.AsDouble()
	assert.False(t, ok, "Int must not read as Double")
	_, ok = v.AsString()
	assert.False(t, ok)

	f, ok := Float(1.5).AsFloat()
	require.True(t, ok)
	assert.Equal(t, float32(1.5), f)
}

func TestNumberKindAndRepresentation(t *testing.T) {
	v := Double(2.5)
	assert.Equal(t, NumberKind, v.Kind())
	assert.Equal(t, "number", v.Kind().String())

	n, ok := v.AsNumber()
	require.True(t, ok)
	assert.Equal(t, DoubleNumber, n.Kind())

	names := map[NumberType]string{IntNumber: "int", FloatNumber: "float", DoubleNumber: "double"}
	for typ, want := range names {
		assert.Equal(t, want, typ.String())
	}
}

func TestNumbersAreNotPromoted(t *testing.T) {
	assert.False(t, Int(1).Equal(Double(1)))
	assert.False(t, Float(1).Equal(Double(1)))
	assert.True(t, Double(0.5).Equal(Double(0.5)))
	assert.Equal(t, IntNumber, IntNum(3).Kind())
	assert.Equal(t, int64(3), DoubleNum(3.9).Int64())
	assert.Equal(t, float64(float32(0.1)), FloatNum(0.1).Float64())
}

func TestSetReplacesWholeNode(t *testing.T) {
	v := MustFromAny(map[string]any{"a": 1})
	v.SetString("x")
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "x", s)

	v.SetArray([]Value{Bool(true)})
	n, ok := v.Count()
	require.True(t, ok)
	assert.Equal(t, 1, n)

	v.SetNull()
	assert.True(t, v.IsNull())
}

func TestCopiesAreIndependent(t *testing.T) {
	orig := MustFromAny(map[string]any{
		"tags": []any{"a", "b"},
		"meta": map[string]any{"n": 1},
	})
	cp := orig

	cp.Set([]string{"meta", "n"}, Int(2))
	tags := cp.Get("tags")
	require.NoError(t, tags.Append(String("c")))
	cp.Set([]string{"tags"}, tags)

	assert.Equal(t, int64(1), mustInt(t, orig.Get("meta", "n")))
	n, _ := orig.Get("tags").Count()
	assert.Equal(t, 2, n)
	n, _ = cp.Get("tags").Count()
	assert.Equal(t, 3, n)
}

func TestAccessorsReturnCopies(t *testing.T) {
	v := Array(Int(1), Int(2))
	elems, _ := v.AsArray()
	elems[0] = Int(99)
	assert.True(t, v.Get("0").Equal(Int(1)))

	o := Object(map[string]Value{"k": Bool(true)})
	members, _ := o.AsObject()
	delete(members, "k")
	assert.True(t, o.Get("k").Equal(Bool(true)))
}

func TestCloneSharesNothing(t *testing.T) {
	v := MustFromAny(map[string]any{"a": []any{1, 2}})
	c := v.Clone()
	c.obj["a"].arr[0] = Int(5)
	assert.True(t, v.Get("a", "0").Equal(Int(1)))
}

func TestKeysAreSorted(t *testing.T) {
	v := MustFromAny(map[string]any{"b": 1, "a": 2, "c": 3})
	assert.Equal(t, []string{"a", "b", "c"}, v.Keys())
	assert.Nil(t, Int(1).Keys())
}

func TestCountOnScalar(t *testing.T) {
	_, ok := String("abc").Count()
	assert.False(t, ok)
}

func TestStringRendering(t *testing.T) {
	v := MustFromAny(map[string]any{"b": []any{true, nil}, "a": 1.5})
	assert.Equal(t, `{"a":1.5,"b":[true,null]}`, v.String())
	assert.Equal(t, "NaN", Double(math.NaN()).String())
}

func mustInt(t *testing.T, v Value) int64 {
	t.Helper()
	n, ok := v.AsInt()
	if !ok {
		t.Fatalf("expected Int, got %s %v", v.Kind(), v)
	}
	return n
}
