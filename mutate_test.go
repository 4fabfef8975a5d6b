package jsonvalue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndInsert(t *testing.T) {
	v := Array(Int(1))
	shared := v

	require.NoError(t, v.Append(Int(3)))
	require.NoError(t, v.Insert(Int(2), 1))
	require.NoError(t, v.Insert(Int(4), 3))
	assert.Equal(t, "[1,2,3,4]", v.String())
	assert.Equal(t, "[1]", shared.String())

	err := v.Insert(Int(0), 9)
	var ie *IndexOutOfRangeError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 4, ie.Count)
}

func TestAppendOnNonArray(t *testing.T) {
	v := String("x")
	err := v.Append(Int(1))
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ArrayKind, se.Expected)
	assert.Equal(t, StringKind, se.Actual)
	assert.True(t, v.Equal(String("x")))
}

func TestSetKey(t *testing.T) {
	v := Object(nil)
	shared := v
	require.NoError(t, v.SetKey("a", Int(1)))
	assert.Equal(t, `{"a":1}`, v.String())
	assert.Equal(t, `{}`, shared.String())

	arr := Array()
	assert.True(t, errors.Is(arr.SetKey("a", Null()), ErrShapeMismatch))
}

func TestMerge(t *testing.T) {
	a := MustFromAny(map[string]any{"x": 1, "nested": map[string]any{"k": 1}})
	b := MustFromAny(map[string]any{"y": 2, "nested": map[string]any{"j": 2}})

	m, err := a.Merge(b)
	require.NoError(t, err)
	assert.Equal(t, `{"nested":{"j":2},"x":1,"y":2}`, m.String())
	assert.Equal(t, `{"nested":{"k":1},"x":1}`, a.String())
}

func TestMergeNonObjects(t *testing.T) {
	_, err := Array().Merge(Object(nil))
	var me *MergeError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ArrayKind, me.Left)
	assert.Equal(t, ObjectKind, me.Right)
	assert.True(t, errors.Is(err, ErrMerge))
}
