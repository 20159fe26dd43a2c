package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first, source order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *DeclStmt:
		Walk(n.Name, v)
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *RoutineDecl:
		Walk(n.Name, v)
		for _, s := range n.Body {
			Walk(s, v)
		}

	case *CallStmt:
		Walk(n.Name, v)

	case *OutStmt:
		Walk(n.X, v)

	case *ParenExpr:
		Walk(n.X, v)

	case *Interpolation:
		for _, f := range n.Fragments {
			Walk(f, v)
		}

	case *RefFragment:
		Walk(n.Name, v)

	case *Operation:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *RandomExpr:
		Walk(n.Min, v)
		Walk(n.Max, v)
		Walk(n.Charset, v)

	case *UnaryExpr:
		Walk(n.X, v)

	case *ReplaceExpr:
		Walk(n.X, v)
		Walk(n.Target, v)
		Walk(n.With, v)

	case *CipherExpr:
		Walk(n.X, v)
		Walk(n.Key, v)

	default:
		// Leaf nodes: Name, BasicLit, LitFragment
	}
}

// Inspect traverses an AST and calls f for each node.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
