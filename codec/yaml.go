package codec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/jsonvalue"
)

// YAML is a Value codec backed by gopkg.in/yaml.v3. Floats are always tagged
// !!float, so an integral Double is not read back as an Int. Float values
// come back as Double. Mapping keys are written sorted.
type YAML struct{}

var _ Codec[jsonvalue.Value] = YAML{}

func (YAML) Encode(v jsonvalue.Value) ([]byte, error) {
	return yaml.Marshal(toNode(v))
}

func (YAML) Decode(b []byte) (jsonvalue.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return jsonvalue.Null(), err
	}
	w := nodeWalker{active: map[*yaml.Node]bool{}}
	return w.fromNode(&doc)
}

func toNode(v jsonvalue.Value) *yaml.Node {
	switch v.Kind() {
	case jsonvalue.BoolKind:
		b, _ := v.AsBool()
		return scalar("!!bool", strconv.FormatBool(b))
	case jsonvalue.StringKind:
		s, _ := v.AsString()
		return scalar("!!str", s)
	case jsonvalue.NumberKind:
		n, _ := v.AsNumber()
		if n.Kind() == jsonvalue.IntNumber {
			return scalar("!!int", strconv.FormatInt(n.Int64(), 10))
		}
		return scalar("!!float", formatFloat(n))
	case jsonvalue.ArrayKind:
		elems, _ := v.AsArray()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range elems {
			node.Content = append(node.Content, toNode(e))
		}
		return node
	case jsonvalue.ObjectKind:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.Keys() {
			node.Content = append(node.Content, scalar("!!str", k), toNode(v.Get(k)))
		}
		return node
	default:
		return scalar("!!null", "null")
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func formatFloat(n jsonvalue.Number) string {
	f := n.Float64()
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

var (
	ErrAliasCycle     = errors.New("codec: yaml alias refers to itself")
	ErrAliasExpansion = errors.New("codec: yaml aliases expand too far")
)

// maxAliasNodes caps the nodes produced by alias expansion in one document.
const maxAliasNodes = 1 << 16

type nodeWalker struct {
	active  map[*yaml.Node]bool // alias targets being expanded
	depth   int                 // nesting of alias expansions
	aliased int
}

func (w *nodeWalker) fromNode(n *yaml.Node) (jsonvalue.Value, error) {
	if w.depth > 0 {
		if w.aliased++; w.aliased > maxAliasNodes {
			return jsonvalue.Null(), fmt.Errorf("%w: more than %d nodes", ErrAliasExpansion, maxAliasNodes)
		}
	}
	switch n.Kind {
	case 0:
		return jsonvalue.Null(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jsonvalue.Null(), nil
		}
		return w.fromNode(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return jsonvalue.Null(), fmt.Errorf("codec: yaml line %d: unresolved alias", n.Line)
		}
		if w.active[n.Alias] {
			return jsonvalue.Null(), fmt.Errorf("%w: line %d", ErrAliasCycle, n.Line)
		}
		w.active[n.Alias] = true
		w.depth++
		v, err := w.fromNode(n.Alias)
		w.depth--
		delete(w.active, n.Alias)
		return v, err
	case yaml.SequenceNode:
		elems := make([]jsonvalue.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := w.fromNode(c)
			if err != nil {
				return jsonvalue.Null(), err
			}
			elems[i] = v
		}
		return jsonvalue.Array(elems...), nil
	case yaml.MappingNode:
		fields := make(map[string]jsonvalue.Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return jsonvalue.Null(), fmt.Errorf("codec: yaml line %d: non-scalar mapping key", k.Line)
			}
			val, err := w.fromNode(v)
			if err != nil {
				return jsonvalue.Null(), err
			}
			fields[k.Value] = val
		}
		return jsonvalue.Object(fields), nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return jsonvalue.Null(), fmt.Errorf("codec: yaml line %d: unexpected node kind %v", n.Line, n.Kind)
}

func fromScalar(n *yaml.Node) (jsonvalue.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return jsonvalue.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return jsonvalue.Null(), err
		}
		return jsonvalue.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return jsonvalue.Int(i), nil
		}
		// out of int64 range
		var f float64
		if err := n.Decode(&f); err != nil {
			return jsonvalue.Null(), err
		}
		return jsonvalue.Double(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return jsonvalue.Null(), err
		}
		return jsonvalue.Double(f), nil
	default:
		return jsonvalue.String(n.Value), nil
	}
}
