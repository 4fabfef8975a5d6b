package jsonvalue

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	SKU   string  `json:"sku"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty,omitempty"`
}

type order struct {
	ID       int64             `json:"id"`
	Items    []item            `json:"items"`
	Labels   map[string]string `json:"labels,omitempty"`
	Note     *string           `json:"note"`
	Raw      []byte            `json:"raw,omitempty"`
	Placed   time.Time         `json:"placed"`
	Extra    Value             `json:"extra,omitempty"`
	internal int
}

func TestStructRoundTrip(t *testing.T) {
	note := "leave at door"
	in := order{
		ID:     7,
		Items:  []item{{SKU: "a", Price: 1.5, Qty: 2}, {SKU: "b", Price: 3}},
		Labels: map[string]string{"z": "1", "a": "2"},
		Note:   &note,
		Raw:    []byte{0, 1, 2},
		Placed: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Extra:  MustFromAny(map[string]any{"k": []any{true}}),
	}

	v, err := Encode(in)
	require.NoError(t, err)

	assert.True(t, v.Get("id").Equal(Int(7)))
	assert.True(t, v.Get("items", "0", "price").Equal(Double(1.5)))
	assert.True(t, v.Get("items", "1", "qty").IsNull(), "omitempty zero must be absent")
	assert.True(t, v.Get("raw").Equal(String("AAEC")))
	assert.True(t, v.Get("placed").Equal(String("2024-05-01T12:00:00Z")))
	assert.True(t, v.Get("extra", "k", "0").Equal(Bool(true)))
	_, err = v.Lookup("internal")
	assert.Error(t, err)

	out, err := DecodeAs[order](v)
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Items, out.Items)
	assert.Equal(t, in.Labels, out.Labels)
	require.NotNil(t, out.Note)
	assert.Equal(t, note, *out.Note)
	assert.Equal(t, in.Raw, out.Raw)
	assert.True(t, in.Placed.Equal(out.Placed))
	assert.True(t, in.Extra.Equal(out.Extra))
}

func TestEncodeNilsAndOptionalFields(t *testing.T) {
	v, err := Encode(order{ID: 1})
	require.NoError(t, err)

	assert.True(t, v.Get("items").IsNull())
	assert.True(t, v.Get("note").IsNull())
	_, err = v.Lookup("labels")
	assert.Error(t, err, "nil map with omitempty is skipped")

	out, err := DecodeAs[order](MustFromAny(map[string]any{
		"id": 1, "items": nil, "note": nil, "placed": "2024-01-01T00:00:00Z",
	}))
	require.NoError(t, err)
	assert.Nil(t, out.Items)
	assert.Nil(t, out.Note)
}

func TestEncodeDoesNotAliasValues(t *testing.T) {
	doc := MustFromAny(map[string]any{"a": []any{1}})
	v, err := Encode(doc)
	require.NoError(t, err)
	v.obj["a"].arr[0] = Int(2)
	assert.True(t, doc.Get("a", "0").Equal(Int(1)))
}

func TestDecodeMissingKeyPath(t *testing.T) {
	v := MustFromAny(map[string]any{
		"id":     1,
		"placed": "2024-01-01T00:00:00Z",
		"note":   nil,
		"items":  []any{map[string]any{"sku": "a", "price": 1}, map[string]any{"sku": "b"}},
	})
	_, err := DecodeAs[order](v)

	var mk *MissingKeyError
	require.ErrorAs(t, err, &mk)
	assert.Equal(t, "price", mk.Key)
	assert.Equal(t, "$.items[1].price", mk.Path.String())
	assert.True(t, errors.Is(err, ErrMissingKey))
}

func TestDecodeShapeMismatchPath(t *testing.T) {
	_, err := DecodeAs[[]string](MustFromAny([]any{"a", 1}))

	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "$[1]", se.Path.String())
	assert.Equal(t, StringKind, se.Expected)
	assert.Equal(t, NumberKind, se.Actual)
	assert.Equal(t, reflect.TypeOf(""), se.Type)
}

func TestDecodeNumbersNarrow(t *testing.T) {
	i, err := DecodeAs[int](Double(3.9))
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	i8, err := DecodeAs[int8](Int(300))
	require.NoError(t, err)
	assert.Equal(t, int8(44), i8)

	f, err := DecodeAs[float64](Int(2))
	require.NoError(t, err)
	assert.Equal(t, 2.0, f)

	f32, err := DecodeAs[float32](Double(0.1))
	require.NoError(t, err)
	assert.Equal(t, float32(0.1), f32)

	u, err := DecodeAs[uint16](Float(7.5))
	require.NoError(t, err)
	assert.Equal(t, uint16(7), u)
}

func TestDecodeNumberKeepsKind(t *testing.T) {
	type holder struct {
		N Number `json:"n"`
	}
	h, err := DecodeAs[holder](Object(map[string]Value{"n": Float(1.25)}))
	require.NoError(t, err)
	assert.Equal(t, FloatNumber, h.N.Kind())

	v, err := Encode(h)
	require.NoError(t, err)
	assert.True(t, v.Get("n").Equal(Float(1.25)))
}

func TestEncodePrimitivesKeepKind(t *testing.T) {
	cases := []struct {
		in   any
		want Value
	}{
		{nil, Null()},
		{true, Bool(true)},
		{"s", String("s")},
		{int8(-3), Int(-3)},
		{uint32(9), Int(9)},
		{float32(0.5), Float(0.5)},
		{2.0, Double(2)},
		{IntNum(5), Int(5)},
	}
	for _, tc := range cases {
		got, err := Encode(tc.in)
		require.NoError(t, err)
		assert.True(t, got.Equal(tc.want), "%T: got %s", tc.in, got)
	}
}

func TestDecodeIntoAny(t *testing.T) {
	got, err := DecodeAs[any](MustFromAny(map[string]any{"a": []any{1, "x"}}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{int64(1), "x"}}, got)

	type holder struct {
		V any `json:"v"`
	}
	h, err := DecodeAs[holder](MustFromAny(map[string]any{"v": nil}))
	require.NoError(t, err)
	assert.Nil(t, h.V)
}

func TestDecodeIntoNonEmptyInterface(t *testing.T) {
	type holder struct {
		S interface{ String() string } `json:"s"`
	}
	_, err := DecodeAs[holder](MustFromAny(map[string]any{"s": "x"}))
	var ue *UnsupportedShapeError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "$.s", ue.Path.String())
}

func TestDecodeArrayPadsAndTruncates(t *testing.T) {
	got, err := DecodeAs[[3]int](MustFromAny([]any{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, [3]int{1, 2, 0}, got)

	got2, err := DecodeAs[[1]int](MustFromAny([]any{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, [1]int{1}, got2)
}

func TestUnsupportedTypes(t *testing.T) {
	_, err := Encode(struct{ C chan int }{C: make(chan int)})
	var ue *UnsupportedTypeError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "$.C", ue.Path.String())

	_, err = Encode(map[int]string{1: "a"})
	require.ErrorAs(t, err, &ue)

	_, err = DecodeAs[map[int]string](Object(nil))
	require.ErrorAs(t, err, &ue)
}

func TestInvalidTarget(t *testing.T) {
	v := Int(1)
	var ie *InvalidTargetError

	require.ErrorAs(t, Decode(v, nil), &ie)
	require.ErrorAs(t, Decode(v, 3), &ie)
	var p *int
	require.ErrorAs(t, Decode(v, p), &ie)
	assert.True(t, errors.Is(Decode(v, p), ErrInvalidTarget))
}

type base struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type derived struct {
	base
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type Meta struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type withPtr struct {
	*Meta
	Extra int `json:"extra"`
}

func TestEmbeddedFields(t *testing.T) {
	v, err := Encode(derived{base: base{ID: 1, Name: "inner"}, Name: "outer", Kind: "k"})
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"kind":"k","name":"outer"}`, v.String())

	out, err := DecodeAs[derived](v)
	require.NoError(t, err)
	assert.Equal(t, 1, out.ID)
	assert.Equal(t, "outer", out.Name)
	assert.Equal(t, "", out.base.Name)
}

func TestEmbeddedPointer(t *testing.T) {
	v, err := Encode(withPtr{Extra: 2})
	require.NoError(t, err)
	assert.Equal(t, `{"extra":2}`, v.String())

	out, err := DecodeAs[withPtr](MustFromAny(map[string]any{"id": 3, "name": "n", "extra": 2}))
	require.NoError(t, err)
	require.NotNil(t, out.Meta)
	assert.Equal(t, 3, out.ID)

	_, err = DecodeAs[withPtr](MustFromAny(map[string]any{"extra": 2}))
	var mk *MissingKeyError
	require.ErrorAs(t, err, &mk)
	assert.Equal(t, "$.id", mk.Path.String())
}

type account struct {
	DisplayName string
	HomeCity    string `json:"city"`
	Secret      string `json:"-"`
}

func TestKeyStrategies(t *testing.T) {
	cases := map[KeyStrategy]string{
		KeyAsIs:           "DisplayName",
		KeySnake:          "display_name",
		KeyCamel:          "displayName",
		KeyKebab:          "display-name",
		KeyScreamingSnake: "DISPLAY_NAME",
	}
	for ks, key := range cases {
		c := NewCoder(Options{KeyStrategy: ks})
		v, err := c.Encode(account{DisplayName: "d", HomeCity: "c", Secret: "s"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{key, "city"}, v.Keys(), "strategy %d", ks)

		back, err := DecodeWith[account](c, v)
		require.NoError(t, err)
		assert.Equal(t, "d", back.DisplayName)
		assert.Empty(t, back.Secret)
	}
}

func TestCustomTagName(t *testing.T) {
	type row struct {
		A int `db:"alpha" json:"ignored"`
	}
	c := NewCoder(Options{TagName: "db"})
	v, err := c.Encode(row{A: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":1}`, v.String())
}

type recordLogger struct {
	NopLogger
	mu    sync.Mutex
	lines []Fields
}

func (l *recordLogger) Debug(_ string, f Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, f)
}

func TestCoderLogsFailures(t *testing.T) {
	log := &recordLogger{}
	c := NewCoder(Options{Logger: log})

	_, err := DecodeWith[[]int](c, MustFromAny([]any{1, "x"}))
	require.Error(t, err)

	require.Len(t, log.lines, 1)
	assert.Equal(t, "$[1]", log.lines[0]["path"])
	assert.Equal(t, "*[]int", log.lines[0]["type"])
}
