package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathRendering(t *testing.T) {
	var p Path
	assert.Equal(t, "$", p.String())

	p = p.WithKey("items").WithIndex(2).WithKey("price")
	assert.Equal(t, "$.items[2].price", p.String())
	assert.Equal(t, []string{"items", "2", "price"}, p.Strings())
}

func TestPathWithDoesNotAlias(t *testing.T) {
	base := Path{}.WithKey("a")
	x := base.WithKey("x")
	y := base.WithKey("y")
	assert.Equal(t, "$.a.x", x.String())
	assert.Equal(t, "$.a.y", y.String())
	assert.Equal(t, "$.a", base.String())
}

func TestPathStringsFeedGet(t *testing.T) {
	v := MustFromAny(map[string]any{"items": []any{map[string]any{"price": 1}}})
	p := Path{}.WithKey("items").WithIndex(0).WithKey("price")
	assert.True(t, v.Get(p.Strings()...).Equal(Int(1)))
}
