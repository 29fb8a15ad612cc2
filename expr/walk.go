package expr

// Walk traverses e depth first, left to right, calling visit for each
// node before its children. Children are skipped when visit returns
// false. Marker positions in a rendered skeleton follow this same order,
// so a walk sees value positions in the order they bind.
func Walk(e Expr, visit func(Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	switch x := e.(type) {
	case *AndExpr:
		for _, k := range x.Operands {
			Walk(k, visit)
		}
	case *OrExpr:
		for _, k := range x.Operands {
			Walk(k, visit)
		}
	case *NotExpr:
		Walk(x.Operand, visit)
	}
}
