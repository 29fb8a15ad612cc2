package expr

import (
	"fmt"
	"strings"
)

// Render lowers q to a skeleton and its positional parameters.
//
// The skeleton quotes identifiers for d but writes the neutral Marker for
// every value position, so skeletons built for the same dialect compare
// byte for byte regardless of the values involved. Parameters line up
// with markers left to right and keep collections unexpanded; Finalize
// turns the pair into executable SQL.
func Render(q *Query, d Dialect) (string, []any, error) {
	if q == nil {
		return "", nil, ErrNilQuery
	}
	if !d.Valid() {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownDialect, string(d))
	}
	r := &renderer{dialect: d}
	if err := r.writeQuery(q); err != nil {
		return "", nil, err
	}
	return r.sb.String(), r.params, nil
}

type renderer struct {
	dialect Dialect
	sb      strings.Builder
	params  []any
}

// marker emits one neutral bind marker and records its parameter.
func (r *renderer) marker(v any) {
	r.sb.WriteByte(Marker)
	r.params = append(r.params, v)
}

func (r *renderer) ident(name string) error {
	if !validIdent(name) {
		return fmt.Errorf("%w: %q", ErrBadIdentifier, name)
	}
	quoteTo(&r.sb, r.dialect, name)
	return nil
}

func (r *renderer) writeQuery(q *Query) error {
	r.sb.WriteString("SELECT ")
	if len(q.Columns) == 0 {
		r.sb.WriteByte('*')
	} else {
		for i, c := range q.Columns {
			if i > 0 {
				r.sb.WriteString(", ")
			}
			if err := r.ident(c); err != nil {
				return err
			}
		}
	}
	r.sb.WriteString(" FROM ")
	if err := r.ident(q.Table); err != nil {
		return err
	}
	if !emptyExpr(q.Where) {
		r.sb.WriteString(" WHERE ")
		if err := r.writeExpr(q.Where); err != nil {
			return err
		}
	}
	if len(q.OrderBy) > 0 {
		r.sb.WriteString(" ORDER BY ")
		for i, c := range q.OrderBy {
			if i > 0 {
				r.sb.WriteString(", ")
			}
			name, desc := strings.CutPrefix(c, "-")
			if err := r.ident(name); err != nil {
				return err
			}
			if desc {
				r.sb.WriteString(" DESC")
			}
		}
	}
	if q.Limit != nil {
		r.sb.WriteString(" LIMIT ")
		r.marker(q.Limit)
	}
	if q.Offset != nil {
		r.sb.WriteString(" OFFSET ")
		r.marker(q.Offset)
	}
	return nil
}

func (r *renderer) writeExpr(e Expr) error {
	switch x := e.(type) {
	case *AndExpr:
		return r.writeJoin(x.Operands, " AND ")
	case *OrExpr:
		return r.writeJoin(x.Operands, " OR ")
	case *NotExpr:
		r.sb.WriteString("NOT (")
		if err := r.writeExpr(x.Operand); err != nil {
			return err
		}
		r.sb.WriteByte(')')
		return nil
	case *EqExpr:
		if err := r.ident(x.Column); err != nil {
			return err
		}
		r.sb.WriteString(" = ")
		r.marker(x.Value)
		return nil
	case *InExpr:
		if err := r.ident(x.Column); err != nil {
			return err
		}
		r.sb.WriteString(" IN (")
		r.marker(x.Values)
		r.sb.WriteByte(')')
		return nil
	case *NullExpr:
		if err := r.ident(x.Column); err != nil {
			return err
		}
		if x.Negate {
			r.sb.WriteString(" IS NOT NULL")
		} else {
			r.sb.WriteString(" IS NULL")
		}
		return nil
	default:
		return fmt.Errorf("expr: unsupported expression %T", e)
	}
}

// writeJoin renders the non-empty operands separated by sep. A single
// live operand renders bare; two or more are parenthesized as a group.
func (r *renderer) writeJoin(operands []Expr, sep string) error {
	var live []Expr
	for _, k := range operands {
		if !emptyExpr(k) {
			live = append(live, k)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return r.writeExpr(live[0])
	}
	r.sb.WriteByte('(')
	for i, k := range live {
		if i > 0 {
			r.sb.WriteString(sep)
		}
		if err := r.writeExpr(k); err != nil {
			return err
		}
	}
	r.sb.WriteByte(')')
	return nil
}

// emptyExpr reports whether e contributes no SQL text: nil, a composite
// of only empty operands, or a negation of an empty operand.
func emptyExpr(e Expr) bool {
	switch x := e.(type) {
	case nil:
		return true
	case *AndExpr:
		for _, k := range x.Operands {
			if !emptyExpr(k) {
				return false
			}
		}
		return true
	case *OrExpr:
		for _, k := range x.Operands {
			if !emptyExpr(k) {
				return false
			}
		}
		return true
	case *NotExpr:
		return emptyExpr(x.Operand)
	}
	return false
}
