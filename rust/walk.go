package rust

// Inspect traverses the AST rooted at node in depth-first order. It calls
// f for each node; if f returns false, the children of that node are
// skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Module:
		for _, item := range n.Items {
			Inspect(item, f)
		}

	// Items
	case *ConstDecl:
		Inspect(n.Type, f)
		Inspect(n.Value, f)
	case *FunctionDecl:
		for _, param := range n.Params {
			Inspect(param, f)
		}
		if n.ReturnType != nil {
			Inspect(n.ReturnType, f)
		}
		Inspect(n.Body, f)
	case *Param:
		Inspect(n.Type, f)
	case *StructDecl:
		for _, field := range n.Fields {
			Inspect(field, f)
		}
		for _, elem := range n.Elems {
			Inspect(elem, f)
		}
	case *Field:
		Inspect(n.Type, f)
	case *EnumDecl:
		for _, v := range n.Variants {
			Inspect(v, f)
		}

	// Types
	case *RefType:
		Inspect(n.Elem, f)
	case *ArrayType:
		Inspect(n.Elem, f)
		Inspect(n.Len, f)
	case *SliceType:
		Inspect(n.Elem, f)
	case *TupleType:
		for _, elem := range n.Elems {
			Inspect(elem, f)
		}

	// Statements
	case *Block:
		for _, stmt := range n.Stmts {
			Inspect(stmt, f)
		}
		if n.Tail != nil {
			Inspect(n.Tail, f)
		}
	case *LetStmt:
		if n.Type != nil {
			Inspect(n.Type, f)
		}
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *ReturnStmt:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *ExprStmt:
		Inspect(n.Expr, f)
	case *AssignStmt:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *IfStmt:
		Inspect(n.Cond, f)
		Inspect(n.Then, f)
		if n.Else != nil {
			Inspect(n.Else, f)
		}
	case *WhileStmt:
		Inspect(n.Cond, f)
		Inspect(n.Body, f)
	case *LoopStmt:
		Inspect(n.Body, f)

	// Expressions
	case *BinaryExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *UnaryExpr:
		Inspect(n.Operand, f)
	case *RefExpr:
		Inspect(n.Operand, f)
	case *CallExpr:
		Inspect(n.Func, f)
		for _, arg := range n.Args {
			Inspect(arg, f)
		}
	case *FieldExpr:
		Inspect(n.Expr, f)
	case *IndexExpr:
		Inspect(n.Expr, f)
		Inspect(n.Index, f)
	case *StructLit:
		for _, field := range n.Fields {
			Inspect(field, f)
		}
	case *FieldInit:
		Inspect(n.Value, f)
	case *ArrayLit:
		for _, elem := range n.Elems {
			Inspect(elem, f)
		}
	case *TupleLit:
		for _, elem := range n.Elems {
			Inspect(elem, f)
		}
	case *ParenExpr:
		Inspect(n.Expr, f)
	}
}
