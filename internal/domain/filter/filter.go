// Package filter evaluates the predicate expressions attached to reference
// records, such as "for-job-group(D1102)" or "not-for-departement(75)".
package filter

import (
	"fmt"
	"strings"
)

// Kind is what a filter expression compares.
type Kind string

// Known filter kinds.
const (
	KindJobGroup    Kind = "for-job-group"
	KindDepartement Kind = "for-departement"
	KindJob         Kind = "for-job"
)

const negationPrefix = "not-"

// kindAliases maps the short spellings of the kinds, such as
// "job-group(D1102)", to their canonical form.
//
//nolint:gochecknoglobals // immutable lookup table
var kindAliases = map[Kind]Kind{
	"job-group":   KindJobGroup,
	"departement": KindDepartement,
	"job":         KindJob,
}

// Target is what filters are evaluated against.
type Target interface {
	JobGroupID() string
	DepartementID() string
	JobCode() string
}

// Expr is a parsed filter expression.
type Expr struct {
	Negated bool
	Kind    Kind
	Arg     string
}

// Parse parses a single expression.
func Parse(expr string) (Expr, error) {
	s := strings.TrimSpace(expr)
	var e Expr
	if rest, ok := strings.CutPrefix(s, negationPrefix); ok {
		e.Negated = true
		s = rest
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Expr{}, fmt.Errorf("%w: %q: missing parentheses", ErrInvalidFilter, expr)
	}
	e.Kind = Kind(s[:open])
	if canonical, ok := kindAliases[e.Kind]; ok {
		e.Kind = canonical
	}
	e.Arg = s[open+1 : len(s)-1]

	switch e.Kind {
	case KindJobGroup, KindDepartement, KindJob:
	default:
		return Expr{}, fmt.Errorf("%w: %q: unknown kind %q", ErrInvalidFilter, expr, e.Kind)
	}
	if e.Arg == "" || strings.ContainsAny(e.Arg, "()") {
		return Expr{}, fmt.Errorf("%w: %q: malformed argument", ErrInvalidFilter, expr)
	}
	return e, nil
}

// Matches evaluates the expression against t.
func (e Expr) Matches(t Target) bool {
	var got string
	switch e.Kind {
	case KindJobGroup:
		got = t.JobGroupID()
	case KindDepartement:
		got = t.DepartementID()
	case KindJob:
		got = t.JobCode()
	}
	return (got == e.Arg) != e.Negated
}

// String returns the expression in its persisted form.
func (e Expr) String() string {
	s := fmt.Sprintf("%s(%s)", e.Kind, e.Arg)
	if e.Negated {
		return negationPrefix + s
	}
	return s
}

// List is a conjunction of expressions.
type List []Expr

// ParseAll parses every expression of filters.
func ParseAll(filters []string) (List, error) {
	list := make(List, 0, len(filters))
	for _, f := range filters {
		e, err := Parse(f)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, nil
}

// Matches reports whether every expression matches. An empty list matches.
func (l List) Matches(t Target) bool {
	for _, e := range l {
		if !e.Matches(t) {
			return false
		}
	}
	return true
}

// HasDepartementScope reports whether the list restricts matches to a
// departement.
func (l List) HasDepartementScope() bool {
	for _, e := range l {
		if e.Kind == KindDepartement && !e.Negated {
			return true
		}
	}
	return false
}

// Matches parses filters and reports whether all of them match t. Parsing
// completes before evaluation, so a malformed expression is reported even
// when an earlier one does not match.
func Matches(filters []string, t Target) (bool, error) {
	list, err := ParseAll(filters)
	if err != nil {
		return false, err
	}
	return list.Matches(t), nil
}
