package jsonvalue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Value {
	return MustFromAny(map[string]any{
		"users": []any{
			map[string]any{"name": "ada", "langs": []any{"go", "c"}},
			map[string]any{"name": "bob", "langs": []any{"ml"}},
			map[string]any{"nick": "x"},
		},
		"count": 3,
	})
}

func TestGetFansOutOverArrays(t *testing.T) {
	v := sample()

	got := v.Get("users", "name")
	want := Array(String("ada"), String("bob"), Null())
	assert.True(t, got.Equal(want), "got %s", got)

	assert.True(t, v.Get("users", "1", "name").Equal(String("bob")))

	// out of range index fans out and finds nothing
	got = v.Get("users", "9")
	assert.True(t, got.Equal(Array(Null(), Null(), Null())), "got %s", got)

	got = v.Get("users", "langs", "0")
	assert.True(t, got.Equal(Array(String("go"), String("ml"), Null())), "got %s", got)
}

func TestGetLenient(t *testing.T) {
	v := sample()
	assert.True(t, v.Get("missing").IsNull())
	assert.True(t, v.Get("count", "deeper").IsNull())
	assert.True(t, v.Get().Equal(v))
}

func TestLookupStrict(t *testing.T) {
	v := sample()

	got, err := v.Lookup("users", "0", "langs", "1")
	require.NoError(t, err)
	assert.True(t, got.Equal(String("c")))

	_, err = v.Lookup("users", "name")
	var pe *PathError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"users", "name"}, pe.Path)
	assert.Equal(t, ArrayKind, pe.Kind)
	assert.True(t, errors.Is(err, ErrBadPath))

	_, err = v.Lookup("count", "x")
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, NumberKind, pe.Kind)

	_, err = v.Lookup("users", "3")
	require.ErrorAs(t, err, &pe)
}

func TestSetCreatesStructure(t *testing.T) {
	var v Value
	v.Set([]string{"a", "b"}, Int(1))
	assert.Equal(t, `{"a":{"b":1}}`, v.String())

	// scalar on the way is replaced by an object
	v.Set([]string{"a", "b", "c"}, Bool(true))
	assert.Equal(t, `{"a":{"b":{"c":true}}}`, v.String())
}

func TestSetPadsArrays(t *testing.T) {
	v := MustFromAny(map[string]any{"xs": []any{1}})
	v.Set([]string{"xs", "3"}, Int(4))
	assert.Equal(t, `{"xs":[1,null,null,4]}`, v.String())

	// non-index segment on an array replaces it with an object
	v.Set([]string{"xs", "k"}, Int(0))
	assert.Equal(t, `{"xs":{"k":0}}`, v.String())
}

func TestSetTargetsOneLocation(t *testing.T) {
	v := sample()
	before := v
	v.Set([]string{"users", "0", "name"}, String("ADA"))

	assert.True(t, v.Get("users", "0", "name").Equal(String("ADA")))
	assert.True(t, v.Get("users", "1", "name").Equal(String("bob")))
	assert.True(t, before.Get("users", "0", "name").Equal(String("ada")))
}

func TestSetEmptyPathReplaces(t *testing.T) {
	v := Int(1)
	v.Set(nil, String("x"))
	assert.True(t, v.Equal(String("x")))
}

func TestRemove(t *testing.T) {
	v := MustFromAny(map[string]any{"a": map[string]any{"b": 1, "c": 2}, "xs": []any{1}})
	before := v

	assert.True(t, v.Remove("a", "b"))
	assert.Equal(t, `{"a":{"c":2},"xs":[1]}`, v.String())
	assert.Equal(t, `{"a":{"b":1,"c":2},"xs":[1]}`, before.String())
}

func TestRemoveNoop(t *testing.T) {
	v := MustFromAny(map[string]any{"a": map[string]any{"b": 1}, "xs": []any{1}})
	want := v.String()

	assert.False(t, v.Remove())
	assert.False(t, v.Remove("missing"))
	assert.False(t, v.Remove("a", "b", "c"))
	assert.False(t, v.Remove("xs", "0"))
	assert.Equal(t, want, v.String())
}

func TestArrayIndex(t *testing.T) {
	for seg, want := range map[string]bool{"0": true, "12": true, "": false, "-1": false, "+1": false, "1a": false} {
		_, ok := arrayIndex(seg)
		assert.Equal(t, want, ok, "segment %q", seg)
	}
}
