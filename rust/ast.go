package rust

// Module represents a Rust source file. Items are kept in declaration
// order.
type Module struct {
	Items []Item
}

// Pos returns the span from the first to the last item.
func (m *Module) Pos() Span {
	if len(m.Items) == 0 {
		return Span{}
	}
	return Span{Start: m.Items[0].Pos().Start, End: m.Items[len(m.Items)-1].Pos().End}
}

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Span
}

// Item is the interface for top-level declarations.
type Item interface {
	Node
	ItemName() string
	itemNode()
}

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expressions.
type Expr interface {
	Node
	exprNode()
}

// Type is the interface for type expressions.
type Type interface {
	Node
	typeNode()
}

// Items

// ConstDecl represents a const item.
type ConstDecl struct {
	Name    string
	Type    Type
	Value   Expr
	Pub     bool
	Derives []string
	Span    Span
}

func (c *ConstDecl) Pos() Span        { return c.Span }
func (c *ConstDecl) ItemName() string { return c.Name }
func (c *ConstDecl) itemNode()        {}

// FunctionDecl represents a free function.
type FunctionDecl struct {
	Name       string
	Params     []*Param
	ReturnType Type // nil when omitted
	Body       *Block
	Pub        bool
	Derives    []string
	Span       Span
}

func (f *FunctionDecl) Pos() Span        { return f.Span }
func (f *FunctionDecl) ItemName() string { return f.Name }
func (f *FunctionDecl) itemNode()        {}

// Param represents a function parameter.
type Param struct {
	Name    string
	Mutable bool
	Type    Type
	Span    Span
}

func (p *Param) Pos() Span { return p.Span }

// StructKind distinguishes the three struct shapes.
type StructKind uint8

const (
	StructNamed StructKind = iota // struct S { x: T }
	StructTuple                   // struct S(A, B);
	StructUnit                    // struct S;
)

// StructDecl represents a struct item.
type StructDecl struct {
	Name    string
	Kind    StructKind
	Fields  []*Field // StructNamed
	Elems   []Type   // StructTuple
	Pub     bool
	Derives []string
	Span    Span
}

func (s *StructDecl) Pos() Span        { return s.Span }
func (s *StructDecl) ItemName() string { return s.Name }
func (s *StructDecl) itemNode()        {}

// Field represents a named struct field.
type Field struct {
	Name string
	Type Type
	Pub  bool
	Span Span
}

func (f *Field) Pos() Span { return f.Span }

// EnumDecl represents a fieldless enum.
type EnumDecl struct {
	Name     string
	Variants []*Variant
	Pub      bool
	Derives  []string
	Span     Span
}

func (e *EnumDecl) Pos() Span        { return e.Span }
func (e *EnumDecl) ItemName() string { return e.Name }
func (e *EnumDecl) itemNode()        {}

// Variant represents a unit enum variant.
type Variant struct {
	Name string
	Span Span
}

func (v *Variant) Pos() Span { return v.Span }

// Types

// PrimitiveKind enumerates the built-in scalar and string types.
type PrimitiveKind uint8

const (
	PrimU8 PrimitiveKind = iota
	PrimU16
	PrimU32
	PrimU64
	PrimU128
	PrimUsize
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimI128
	PrimIsize
	PrimF32
	PrimF64
	PrimBool
	PrimChar
	PrimStr
	PrimString
)

var primitiveNames = [...]string{
	PrimU8:     "u8",
	PrimU16:    "u16",
	PrimU32:    "u32",
	PrimU64:    "u64",
	PrimU128:   "u128",
	PrimUsize:  "usize",
	PrimI8:     "i8",
	PrimI16:    "i16",
	PrimI32:    "i32",
	PrimI64:    "i64",
	PrimI128:   "i128",
	PrimIsize:  "isize",
	PrimF32:    "f32",
	PrimF64:    "f64",
	PrimBool:   "bool",
	PrimChar:   "char",
	PrimStr:    "str",
	PrimString: "String",
}

func (k PrimitiveKind) String() string {
	if int(k) < len(primitiveNames) {
		return primitiveNames[k]
	}
	return "unknown"
}

// IsNumeric reports whether k is an integer or float kind.
func (k PrimitiveKind) IsNumeric() bool {
	return k <= PrimF64
}

// LookupPrimitive returns the primitive kind named by name.
func LookupPrimitive(name string) (PrimitiveKind, bool) {
	for i, n := range primitiveNames {
		if n == name {
			return PrimitiveKind(i), true
		}
	}
	return 0, false
}

// PrimitiveType represents a built-in type such as i32 or bool.
type PrimitiveType struct {
	Kind PrimitiveKind
	Span Span
}

func (p *PrimitiveType) Pos() Span { return p.Span }
func (p *PrimitiveType) typeNode() {}

// NamedType references a user-declared struct or enum.
type NamedType struct {
	Name string
	Span Span
}

func (n *NamedType) Pos() Span { return n.Span }
func (n *NamedType) typeNode() {}

// RefType represents &T or &mut T.
type RefType struct {
	Mutable bool
	Elem    Type
	Span    Span
}

func (r *RefType) Pos() Span { return r.Span }
func (r *RefType) typeNode() {}

// ArrayType represents [T; N].
type ArrayType struct {
	Elem Type
	Len  Expr
	Span Span
}

func (a *ArrayType) Pos() Span { return a.Span }
func (a *ArrayType) typeNode() {}

// SliceType represents [T].
type SliceType struct {
	Elem Type
	Span Span
}

func (s *SliceType) Pos() Span { return s.Span }
func (s *SliceType) typeNode() {}

// TupleType represents (A, B, ...). The empty tuple is the unit type.
type TupleType struct {
	Elems []Type
	Span  Span
}

func (t *TupleType) Pos() Span { return t.Span }
func (t *TupleType) typeNode() {}

// IsUnit reports whether t is the unit type ().
func (t *TupleType) IsUnit() bool { return len(t.Elems) == 0 }

// Statements

// Block represents a braced block. Tail is the trailing expression
// without a semicolon, or nil.
type Block struct {
	Stmts []Stmt
	Tail  Expr
	Span  Span
}

func (b *Block) Pos() Span { return b.Span }
func (b *Block) stmtNode() {}

// LetStmt represents a local binding.
type LetStmt struct {
	Name    string
	Mutable bool
	Type    Type // nil when omitted
	Value   Expr // nil when omitted
	Span    Span
}

func (l *LetStmt) Pos() Span { return l.Span }
func (l *LetStmt) stmtNode() {}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Value Expr // nil for a bare return
	Span  Span
}

func (r *ReturnStmt) Pos() Span { return r.Span }
func (r *ReturnStmt) stmtNode() {}

// ExprStmt represents an expression followed by a semicolon.
type ExprStmt struct {
	Expr Expr
	Span Span
}

func (e *ExprStmt) Pos() Span { return e.Span }
func (e *ExprStmt) stmtNode() {}

// AssignStmt represents an assignment or compound assignment.
type AssignStmt struct {
	Left  Expr
	Op    TokenKind // =, +=, -=, etc.
	Right Expr
	Span  Span
}

func (a *AssignStmt) Pos() Span { return a.Span }
func (a *AssignStmt) stmtNode() {}

// IfStmt represents an if statement.
type IfStmt struct {
	Cond Expr
	Then *Block
	Else Stmt // nil, *Block or *IfStmt
	Span Span
}

func (i *IfStmt) Pos() Span { return i.Span }
func (i *IfStmt) stmtNode() {}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Cond Expr
	Body *Block
	Span Span
}

func (w *WhileStmt) Pos() Span { return w.Span }
func (w *WhileStmt) stmtNode() {}

// LoopStmt represents an infinite loop.
type LoopStmt struct {
	Body *Block
	Span Span
}

func (l *LoopStmt) Pos() Span { return l.Span }
func (l *LoopStmt) stmtNode() {}

// BreakStmt represents a break statement.
type BreakStmt struct {
	Span Span
}

func (b *BreakStmt) Pos() Span { return b.Span }
func (b *BreakStmt) stmtNode() {}

// ContinueStmt represents a continue statement.
type ContinueStmt struct {
	Span Span
}

func (c *ContinueStmt) Pos() Span { return c.Span }
func (c *ContinueStmt) stmtNode() {}

// Expressions

// LiteralKind classifies literals.
type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitChar
	LitBool
)

// Literal represents a literal value. For numbers Value is the source
// text without suffix, including a folded leading minus sign. For strings
// and chars Value is the decoded content.
type Literal struct {
	Kind   LiteralKind
	Value  string
	Suffix string
	Span   Span
}

func (l *Literal) Pos() Span { return l.Span }
func (l *Literal) exprNode() {}

// IsNegative reports whether a numeric literal carries a folded sign.
func (l *Literal) IsNegative() bool {
	return (l.Kind == LitInt || l.Kind == LitFloat) && len(l.Value) > 0 && l.Value[0] == '-'
}

// Ident represents a name in value position.
type Ident struct {
	Name string
	Span Span

	// UnitStruct is set by Check when the name refers to a unit struct.
	UnitStruct bool
}

func (i *Ident) Pos() Span { return i.Span }
func (i *Ident) exprNode() {}

// PathExpr represents a path such as Color::Red.
type PathExpr struct {
	Segments []string
	Span     Span

	// Variant is set by Check when the path names an enum variant.
	Variant string
}

func (p *PathExpr) Pos() Span { return p.Span }
func (p *PathExpr) exprNode() {}

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	Left  Expr
	Op    TokenKind
	Right Expr
	Span  Span
}

func (b *BinaryExpr) Pos() Span { return b.Span }
func (b *BinaryExpr) exprNode() {}

// UnaryExpr represents -x or !x.
type UnaryExpr struct {
	Op      TokenKind
	Operand Expr
	Span    Span
}

func (u *UnaryExpr) Pos() Span { return u.Span }
func (u *UnaryExpr) exprNode() {}

// RefExpr represents a borrow &x or &mut x.
type RefExpr struct {
	Mutable bool
	Operand Expr
	Span    Span
}

func (r *RefExpr) Pos() Span { return r.Span }
func (r *RefExpr) exprNode() {}

// CallExpr represents a call.
type CallExpr struct {
	Func Expr
	Args []Expr
	Span Span

	// TupleStruct is set by Check when Func names a tuple struct, making
	// the call a constructor.
	TupleStruct bool
}

func (c *CallExpr) Pos() Span { return c.Span }
func (c *CallExpr) exprNode() {}

// FieldExpr represents x.name or x.0.
type FieldExpr struct {
	Expr  Expr
	Field string
	Span  Span
}

func (f *FieldExpr) Pos() Span { return f.Span }
func (f *FieldExpr) exprNode() {}

// IsTupleIndex reports whether the field is a positional index.
func (f *FieldExpr) IsTupleIndex() bool {
	return len(f.Field) > 0 && f.Field[0] >= '0' && f.Field[0] <= '9'
}

// IndexExpr represents x[i].
type IndexExpr struct {
	Expr  Expr
	Index Expr
	Span  Span
}

func (i *IndexExpr) Pos() Span { return i.Span }
func (i *IndexExpr) exprNode() {}

// StructLit represents S { x: e, y }.
type StructLit struct {
	Name   string
	Fields []*FieldInit
	Span   Span
}

func (s *StructLit) Pos() Span { return s.Span }
func (s *StructLit) exprNode() {}

// FieldInit is one field of a struct literal. Shorthand fields have a
// Value of *Ident with the field's name.
type FieldInit struct {
	Name      string
	Value     Expr
	Shorthand bool
	Span      Span
}

func (f *FieldInit) Pos() Span { return f.Span }

// ArrayLit represents [a, b, c].
type ArrayLit struct {
	Elems []Expr
	Span  Span
}

func (a *ArrayLit) Pos() Span { return a.Span }
func (a *ArrayLit) exprNode() {}

// TupleLit represents (a, b) and the unit value ().
type TupleLit struct {
	Elems []Expr
	Span  Span
}

func (t *TupleLit) Pos() Span { return t.Span }
func (t *TupleLit) exprNode() {}

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	Expr Expr
	Span Span
}

func (p *ParenExpr) Pos() Span { return p.Span }
func (p *ParenExpr) exprNode() {}
