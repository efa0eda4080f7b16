package specification

import (
	"errors"
	"fmt"
	"strings"

	"erp/domain/query"
	"erp/domain/shared"

	"gorm.io/gorm/clause"
)

// ErrUnsupported is returned for specification types with no SQL form
var ErrUnsupported = errors.New("unsupported specification")

// likeEscape is the ESCAPE character used for LIKE patterns. '!' needs no
// escaping in any of the supported SQL dialects.
const likeEscape = '!'

// Translate converts a specification tree into a GORM clause expression.
// A nil spec means no constraint and yields a nil expression.
//
// Text matching upper-cases both sides so results do not depend on the
// column collation, mirroring the in-memory evaluator.
func Translate[T any](spec shared.Specification[T]) (clause.Expression, error) {
	if spec == nil {
		return nil, nil
	}

	switch s := spec.(type) {
	case shared.AndSpecification[T]:
		left, right, err := translatePair(s.Left, s.Right)
		if err != nil {
			return nil, err
		}
		return clause.And(left, right), nil
	case shared.OrSpecification[T]:
		left, right, err := translatePair(s.Left, s.Right)
		if err != nil {
			return nil, err
		}
		return clause.Or(left, right), nil
	case shared.NotSpecification[T]:
		inner, err := Translate(s.Spec)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return clause.Expr{SQL: "1 = 0"}, nil
		}
		return clause.Not(inner), nil
	}

	return translateLeaf(spec)
}

func translatePair[T any](left, right shared.Specification[T]) (clause.Expression, clause.Expression, error) {
	l, err := Translate(left)
	if err != nil {
		return nil, nil, err
	}
	r, err := Translate(right)
	if err != nil {
		return nil, nil, err
	}
	if l == nil {
		l = clause.Expr{SQL: "1 = 1"}
	}
	if r == nil {
		r = clause.Expr{SQL: "1 = 1"}
	}
	return l, r, nil
}

func translateLeaf[T any](spec shared.Specification[T]) (clause.Expression, error) {
	switch s := spec.(type) {
	case query.EqualsSpec[T]:
		if s.Value == nil {
			return clause.Expr{SQL: "1 = 0"}, nil
		}
		if text, ok := s.Value.(string); ok {
			return upperEq(s.Field, text), nil
		}
		return clause.Eq{Column: Column(s.Field), Value: s.Value}, nil
	case query.ContainsSpec[T]:
		return like(s.Field, "%"+EscapeLike(strings.ToUpper(s.Term))+"%"), nil
	case query.PrefixSpec[T]:
		return like(s.Field, EscapeLike(strings.ToUpper(s.Prefix))+"%"), nil
	case query.BetweenSpec[T]:
		return between(s), nil
	case query.InSpec[T]:
		if len(s.Values) == 0 {
			return clause.Expr{SQL: "1 = 0"}, nil
		}
		if upper, ok := upperAll(s.Values); ok {
			return clause.Expr{SQL: "UPPER(?) IN ?", Vars: []any{Column(s.Field), upper}}, nil
		}
		return clause.IN{Column: Column(s.Field), Values: s.Values}, nil
	case query.NoneSpec[T]:
		return clause.Expr{SQL: "1 = 0"}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, spec)
}

func like[T any](field query.Field[T], pattern string) clause.Expression {
	return clause.Expr{
		SQL:  "UPPER(?) LIKE ? ESCAPE '" + string(likeEscape) + "'",
		Vars: []any{Column(field), pattern},
	}
}

// upperEq compares text without regard to case on every driver, so a
// case-sensitive collation answers like MySQL's utf8mb4_unicode_ci does
func upperEq[T any](field query.Field[T], value string) clause.Expression {
	return clause.Expr{
		SQL:  "UPPER(?) = ?",
		Vars: []any{Column(field), strings.ToUpper(value)},
	}
}

// upperAll upper-cases a set made only of strings
func upperAll(values []any) ([]any, bool) {
	out := make([]any, len(values))
	for i, v := range values {
		text, ok := v.(string)
		if !ok {
			return nil, false
		}
		out[i] = strings.ToUpper(text)
	}
	return out, true
}

func between[T any](s query.BetweenSpec[T]) clause.Expression {
	col := Column(s.Field)
	var conds []clause.Expression
	if s.From != nil {
		conds = append(conds, clause.Gte{Column: col, Value: *s.From})
	}
	if s.To != nil {
		conds = append(conds, clause.Lte{Column: col, Value: *s.To})
	}
	if len(conds) == 0 {
		return clause.Expr{SQL: "? IS NOT NULL", Vars: []any{col}}
	}
	return clause.And(conds...)
}

// Column quotes the storage column of a field
func Column[T any](field query.Field[T]) clause.Column {
	return clause.Column{Name: field.Column}
}

// EscapeLike escapes LIKE wildcards and the escape character itself
func EscapeLike(s string) string {
	r := strings.NewReplacer(
		string(likeEscape), string(likeEscape)+string(likeEscape),
		"%", string(likeEscape)+"%",
		"_", string(likeEscape)+"_",
	)
	return r.Replace(s)
}

// OrderBy converts resolved orders into an ORDER BY clause
func OrderBy[T any](orders []query.Order[T]) clause.OrderBy {
	columns := make([]clause.OrderByColumn, 0, len(orders))
	for _, o := range orders {
		columns = append(columns, clause.OrderByColumn{Column: Column(o.Field), Desc: o.Desc})
	}
	return clause.OrderBy{Columns: columns}
}
