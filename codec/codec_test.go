package codec

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/jsonvalue"
)

func doc() jsonvalue.Value {
	return jsonvalue.MustFromAny(map[string]any{
		"id":     int64(42),
		"neg":    int64(-7),
		"price":  19.5,
		"whole":  2.0,
		"name":   "widget",
		"active": true,
		"none":   nil,
		"tags":   []any{"a", "b"},
		"empty":  []any{},
		"dims":   map[string]any{"w": int64(3), "h": 4.25},
	})
}

func TestRoundTripKeepsIntAndDouble(t *testing.T) {
	codecs := map[string]Codec[jsonvalue.Value]{
		"json":       JSON[jsonvalue.Value]{},
		"cbor":       MustCBOR(false),
		"cbor-det":   MustCBOR(true),
		"msgpack":    Msgpack{},
		"yaml":       YAML{},
		"limit+json": Limit[jsonvalue.Value]{Inner: JSON[jsonvalue.Value]{}, MaxDecode: 1 << 20},
	}
	in := doc()
	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			b, err := c.Encode(in)
			require.NoError(t, err)
			out, err := c.Decode(b)
			require.NoError(t, err)
			assert.True(t, out.Equal(in), "got %s", out)
		})
	}
}

func TestFloatRepresentation(t *testing.T) {
	in := jsonvalue.Array(jsonvalue.Float(1.5))

	b, err := Msgpack{}.Encode(in)
	require.NoError(t, err)
	out, err := Msgpack{}.Decode(b)
	require.NoError(t, err)
	assert.True(t, out.Equal(in), "msgpack keeps float32, got %s", out)

	for name, c := range map[string]Codec[jsonvalue.Value]{
		"json": JSON[jsonvalue.Value]{},
		"cbor": MustCBOR(true),
		"yaml": YAML{},
	} {
		b, err := c.Encode(in)
		require.NoError(t, err, name)
		out, err := c.Decode(b)
		require.NoError(t, err, name)
		assert.True(t, out.Equal(jsonvalue.Array(jsonvalue.Double(1.5))), "%s: got %s", name, out)
	}
}

func TestProtobufNumbersBecomeDouble(t *testing.T) {
	in := jsonvalue.MustFromAny(map[string]any{"n": int64(3), "s": "x", "xs": []any{true, nil}})
	b, err := Protobuf{}.Encode(in)
	require.NoError(t, err)
	out, err := Protobuf{}.Decode(b)
	require.NoError(t, err)

	want := jsonvalue.MustFromAny(map[string]any{"n": 3.0, "s": "x", "xs": []any{true, nil}})
	assert.True(t, out.Equal(want), "got %s", out)
}

func TestCBORDeterministicIsStable(t *testing.T) {
	c := MustCBOR(true)
	a, err := c.Encode(doc())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		b, err := c.Encode(doc())
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestJSONRejectsNonFinite(t *testing.T) {
	_, err := JSON[jsonvalue.Value]{}.Encode(jsonvalue.Double(math.NaN()))
	require.Error(t, err)
}

func TestYAMLNonFinite(t *testing.T) {
	in := jsonvalue.Array(jsonvalue.Double(math.Inf(1)), jsonvalue.Double(math.Inf(-1)))
	b, err := YAML{}.Encode(in)
	require.NoError(t, err)
	out, err := YAML{}.Decode(b)
	require.NoError(t, err)
	assert.True(t, out.Equal(in), "got %s", out)
}

func TestYAMLDecodeHandWritten(t *testing.T) {
	src := `
base: &b
  port: 8080
  ratio: 0.5
svc:
  conf: *b
  name: api
  on: true
`
	out, err := YAML{}.Decode([]byte(src))
	require.NoError(t, err)
	assert.True(t, out.Get("svc", "conf", "port").Equal(jsonvalue.Int(8080)))
	assert.True(t, out.Get("svc", "conf", "ratio").Equal(jsonvalue.Double(0.5)))
	assert.True(t, out.Get("svc", "on").Equal(jsonvalue.Bool(true)))

	_, err = YAML{}.Decode([]byte("? [a, b]\n: 1\n"))
	require.Error(t, err)
}

func TestYAMLRejectsSelfReferencingAlias(t *testing.T) {
	for _, src := range []string{
		"a: &a [*a]\n",
		"a: &a {x: 1, self: *a}\n",
		"- &a [[*a]]\n",
	} {
		_, err := YAML{}.Decode([]byte(src))
		require.ErrorIs(t, err, ErrAliasCycle, "src %q", src)
	}
}

func TestYAMLCapsAliasExpansion(t *testing.T) {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 6; i++ {
		p := fmt.Sprintf("*l%d", i-1)
		refs := strings.TrimSuffix(strings.Repeat(p+", ", 10), ", ")
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, refs)
	}
	_, err := YAML{}.Decode([]byte(b.String()))
	require.ErrorIs(t, err, ErrAliasExpansion)

	// the same anchor reused side by side is fine
	out, err := YAML{}.Decode([]byte("a: &a {n: 1}\nb: [*a, *a, *a]\n"))
	require.NoError(t, err)
	assert.True(t, out.Get("b", "2", "n").Equal(jsonvalue.Int(1)), "got %s", out)
}

func TestYAMLStringsStayStrings(t *testing.T) {
	in := jsonvalue.Array(jsonvalue.String("true"), jsonvalue.String("1"), jsonvalue.String("null"))
	b, err := YAML{}.Encode(in)
	require.NoError(t, err)
	out, err := YAML{}.Decode(b)
	require.NoError(t, err)
	assert.True(t, out.Equal(in), "got %s", out)
}

func TestLimitRejectsLargePayload(t *testing.T) {
	c := Limit[jsonvalue.Value]{Inner: JSON[jsonvalue.Value]{}, MaxDecode: 8}
	_, err := c.Decode([]byte(`"` + strings.Repeat("x", 16) + `"`))
	require.ErrorIs(t, err, ErrTooLarge)

	v, err := c.Decode([]byte(`[1]`))
	require.NoError(t, err)
	assert.True(t, v.Equal(jsonvalue.Array(jsonvalue.Int(1))))
}
