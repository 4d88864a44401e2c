package grammar

// CollectRefs returns the names of all rules referenced (directly) by an
// expression, including references inside terminators. Dialect building
// uses this to validate that every reachable reference resolves.
func CollectRefs(e Expr) []string {
	var out []string
	seen := make(map[string]struct{})
	walkExpr(e, func(x Expr) {
		if r, ok := x.(refExpr); ok {
			if _, dup := seen[r.name]; !dup {
				seen[r.name] = struct{}{}
				out = append(out, r.name)
			}
		}
	})
	return out
}

func walkExpr(e Expr, fn func(Expr)) {
	if e == nil {
		return
	}
	fn(e)
	switch x := e.(type) {
	case seqExpr:
		for _, it := range x.items {
			walkExpr(it, fn)
		}
	case oneOfExpr:
		for _, alt := range x.alts {
			walkExpr(alt, fn)
		}
	case optExpr:
		walkExpr(x.inner, fn)
	case repExpr:
		walkExpr(x.inner, fn)
		for _, t := range x.cfg.terms {
			walkExpr(t, fn)
		}
	case delimitedExpr:
		walkExpr(x.elem, fn)
		walkExpr(x.delim, fn)
		for _, t := range x.cfg.terms {
			walkExpr(t, fn)
		}
	case bracketedExpr:
		walkExpr(x.inner, fn)
	case untilExpr:
		for _, t := range x.terms {
			walkExpr(t, fn)
		}
	case recoveredExpr:
		walkExpr(x.inner, fn)
		for _, t := range x.terms {
			walkExpr(t, fn)
		}
	}
}

// exprName names an expression for unparsable-span annotations. Only rule
// references carry a meaningful name; everything else is anonymous.
func exprName(e Expr) string {
	switch x := e.(type) {
	case refExpr:
		return x.name
	case oneOfExpr:
		if len(x.alts) == 1 {
			return exprName(x.alts[0])
		}
	}
	return "expression"
}
