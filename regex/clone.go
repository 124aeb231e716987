package regex

// cloneNode returns a structurally identical, independent copy of n, used
// to desugar X+ into X . X* without two positions in the tree sharing the
// same node instance (AssignPositions must visit each subtree exactly
// once per occurrence).
func cloneNode(n Node) Node {
	switch t := n.(type) {
	case *Literal:
		c := &Literal{C: t.C}
		c.delimiter = t.delimiter
		return c
	case *Range:
		ranges := make([]byteRange, len(t.Ranges))
		copy(ranges, t.Ranges)
		c := &Range{Ranges: ranges, Invert: t.Invert}
		c.delimiter = t.delimiter
		return c
	case *Epsilon:
		c := &Epsilon{}
		c.delimiter = t.delimiter
		return c
	case *Concat:
		c := &Concat{Left: cloneNode(t.Left), Right: cloneNode(t.Right)}
		c.delimiter = t.delimiter
		return c
	case *Alt:
		c := &Alt{Left: cloneNode(t.Left), Right: cloneNode(t.Right)}
		c.delimiter = t.delimiter
		return c
	case *AltTop:
		c := &AltTop{Alt: Alt{Left: cloneNode(t.Left), Right: cloneNode(t.Right)}}
		c.delimiter = t.delimiter
		return c
	case *Kleene:
		c := &Kleene{Child: cloneNode(t.Child)}
		c.delimiter = t.delimiter
		return c
	default:
		panic("regex: cloneNode: unknown node type")
	}
}
