package ast

// Walk traverses the tree starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		for _, decl := range n.Decls {
			Walk(decl, fn)
		}

	case *VarDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		Walk(n.Value, fn)

	case *ResourceDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		Walk(n.Body, fn)

	case *ModuleDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		Walk(n.Body, fn)

	case *ArrayExpr:
		for _, item := range n.Items {
			Walk(item, fn)
		}

	case *ObjectExpr:
		for _, prop := range n.Properties {
			Walk(prop, fn)
		}

	case *ObjectProperty:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		Walk(n.Value, fn)

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *TernaryExpr:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		Walk(n.Else, fn)

	case *CallExpr:
		Walk(n.Callee, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *LambdaExpr:
		for _, param := range n.Params {
			Walk(param, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *MemberExpr:
		Walk(n.Target, fn)
		if n.Member != nil {
			Walk(n.Member, fn)
		}

	case *IndexExpr:
		Walk(n.Target, fn)
		Walk(n.Index, fn)

	case *ParenExpr:
		Walk(n.Inner, fn)

	case *ForExpr:
		if n.Item != nil {
			Walk(n.Item, fn)
		}
		if n.Index != nil {
			Walk(n.Index, fn)
		}
		Walk(n.Source, fn)
		Walk(n.Body, fn)
	}
}
