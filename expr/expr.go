package expr

// Expr is a node in a WHERE-clause expression tree.
//
// The set of implementations is closed: expressions are built from the
// constructors in this package (And, Or, Not, Eq, In, Null, NotNull).
// Values attached to leaf nodes never appear in rendered SQL text; they
// surface as bind parameters.
type Expr interface {
	isExpr()
}

// AndExpr is the conjunction of its operands.
type AndExpr struct {
	Operands []Expr
}

// OrExpr is the disjunction of its operands.
type OrExpr struct {
	Operands []Expr
}

// NotExpr negates its operand.
type NotExpr struct {
	Operand Expr
}

// EqExpr compares a column against a single value.
type EqExpr struct {
	Column string
	Value  any
}

// InExpr tests column membership in a collection. Values may be a slice
// or a placeholder that reveals to one; expansion to one marker per
// element happens in Finalize, not in Render.
type InExpr struct {
	Column string
	Values any
}

// NullExpr tests a column for NULL, or NOT NULL when Negate is set.
type NullExpr struct {
	Column string
	Negate bool
}

func (*AndExpr) isExpr()  {}
func (*OrExpr) isExpr()   {}
func (*NotExpr) isExpr()  {}
func (*EqExpr) isExpr()   {}
func (*InExpr) isExpr()   {}
func (*NullExpr) isExpr() {}

// And returns the conjunction of exprs. And with no operands renders as
// nothing, so callers can assemble conditions in a loop and attach the
// result unconditionally.
func And(exprs ...Expr) *AndExpr { return &AndExpr{Operands: exprs} }

// Or returns the disjunction of exprs. Or with no operands renders as
// nothing.
func Or(exprs ...Expr) *OrExpr { return &OrExpr{Operands: exprs} }

// Not negates e. The operand is always parenthesized in rendered SQL.
func Not(e Expr) *NotExpr { return &NotExpr{Operand: e} }

// Eq compares column to value. Use Null for IS NULL tests; Eq with a nil
// value renders a bind parameter, and SQL equality against NULL matches
// no rows.
func Eq(column string, value any) *EqExpr { return &EqExpr{Column: column, Value: value} }

// In tests column membership in values.
func In(column string, values any) *InExpr { return &InExpr{Column: column, Values: values} }

// Null tests column IS NULL.
func Null(column string) *NullExpr { return &NullExpr{Column: column} }

// NotNull tests column IS NOT NULL.
func NotNull(column string) *NullExpr { return &NullExpr{Column: column, Negate: true} }

// Query describes a single-table SELECT.
type Query struct {
	Table   string   // required
	Columns []string // empty selects *
	Where   Expr     // nil for no WHERE clause
	OrderBy []string // column names; a leading "-" orders descending
	Limit   any      // nil for no LIMIT; a value or placeholder otherwise
	Offset  any      // nil for no OFFSET; a value or placeholder otherwise
}
