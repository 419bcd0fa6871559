package logic

import (
	"fmt"
	"strconv"
	"strings"
)

// CanonicalName returns a deterministic string key for f, used by the
// encoder to memoize one model variable per distinct formula and by Equal
// to decide structural equality. It is identical for structurally equal
// formulae and distinguishing for unequal ones (the round-trip property).
//
// Formulae may be cyclic (an operand referencing an ancestor). Traversal
// keeps a stack of the nodes currently being printed; re-entering one of
// them emits a run of dots instead of recursing, with length equal to the
// stack-depth difference plus one.
func CanonicalName(f Formula) string {
	return canonicalRec(f, map[Formula]int{}, 0)
}

func canonicalRec(f Formula, stack map[Formula]int, depth int) string {
	if name, ok := AsProp(f); ok {
		return "p:" + name
	}
	if val, ok := AsConst(f); ok {
		return "c:" + formatNum(val)
	}

	if at, onStack := stack[f]; onStack {
		return strings.Repeat(".", depth-at+1)
	}
	stack[f] = depth
	defer delete(stack, f)

	ops := Operands(f)
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = canonicalRec(op, stack, depth+1)
	}

	sym := Variant(f)
	if c, ok := CoefParam(f); ok {
		sym = "coef:" + formatNum(c)
	} else if e, ok := ExpParam(f); ok {
		sym = "exp:" + formatNum(e)
	}

	name := sym + "(" + strings.Join(parts, ",") + ")"
	if ov := LogicOverride(f); ov != nil {
		name += "@" + ov.String()
	}
	return name
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// displaySymbols maps each operator variant to the infix/prefix symbol
// from the specification's operator table.
var displaySymbols = map[string]string{
	"and": "⊗", "wand": "∧", "or": "⊕", "wor": "∨",
	"implies": "→", "equiv": "↔", "not": "¬", "inv": "∼",
	"delta": "△", "nabla": "▽",
}

// DisplayName renders f for humans, using the specification's operator
// symbols. Like CanonicalName it is cycle-safe.
func DisplayName(f Formula) string {
	return displayRec(f, map[Formula]int{}, 0)
}

func displayRec(f Formula, stack map[Formula]int, depth int) string {
	if name, ok := AsProp(f); ok {
		return name
	}
	if val, ok := AsConst(f); ok {
		return formatNum(val)
	}

	if at, onStack := stack[f]; onStack {
		return strings.Repeat(".", depth-at+1)
	}
	stack[f] = depth
	defer delete(stack, f)

	ops := Operands(f)
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = displayRec(op, stack, depth+1)
	}

	variant := Variant(f)

	var body string
	switch variant {
	case "not", "inv", "delta", "nabla":
		body = displaySymbols[variant] + "(" + parts[0] + ")"
	case "coef":
		c, _ := CoefParam(f)
		body = formatNum(c) + "⋅(" + parts[0] + ")"
	case "exp":
		e, _ := ExpParam(f)
		body = "(" + parts[0] + ")^" + formatNum(e)
	case "implies", "equiv":
		body = "(" + parts[0] + " " + displaySymbols[variant] + " " + parts[1] + ")"
	default: // and, wand, or, wor: n-ary, joined by the variant's symbol
		body = "(" + strings.Join(parts, " "+displaySymbols[variant]+" ") + ")"
	}

	if ov := LogicOverride(f); ov != nil {
		body += fmt.Sprintf("[%s]", ov)
	}
	return body
}

// String implements fmt.Stringer for every formula node via DisplayName.
func (n *propNode) String() string     { return DisplayName(n) }
func (n *constNode) String() string    { return DisplayName(n) }
func (n *andNode) String() string      { return DisplayName(n) }
func (n *weakAndNode) String() string  { return DisplayName(n) }
func (n *orNode) String() string       { return DisplayName(n) }
func (n *weakOrNode) String() string   { return DisplayName(n) }
func (n *impliesNode) String() string  { return DisplayName(n) }
func (n *equivNode) String() string    { return DisplayName(n) }
func (n *notNode) String() string      { return DisplayName(n) }
func (n *invNode) String() string      { return DisplayName(n) }
func (n *deltaNode) String() string    { return DisplayName(n) }
func (n *nablaNode) String() string    { return DisplayName(n) }
func (n *coefNode) String() string     { return DisplayName(n) }
func (n *expNode) String() string      { return DisplayName(n) }
