package filter

import (
	"fmt"
	"strings"
)

// SQLCondition is a WHERE clause fragment with its positional parameters.
type SQLCondition struct {
	// Clause uses Postgres placeholders, e.g. "name ILIKE $1".
	Clause string
	Params []any
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SQL renders the filter as a condition whose first placeholder is
// $startArg. An empty filter renders an empty clause.
func (f Filter) SQL(startArg int) SQLCondition {
	if f.IsEmpty() {
		return SQLCondition{}
	}

	clauses := make([]string, 0, len(f.Predicates))
	params := make([]any, 0, len(f.Predicates))

	for i, p := range f.Predicates {
		placeholder := fmt.Sprintf("$%d", startArg+i)

		switch p.Comparator {
		case Equals:
			clauses = append(clauses, fmt.Sprintf("%s = %s", p.Column, placeholder))
			params = append(params, p.Value)
		case DoesNotEqual:
			clauses = append(clauses, fmt.Sprintf("%s <> %s", p.Column, placeholder))
			params = append(params, p.Value)
		case Contains:
			clauses = append(clauses, fmt.Sprintf("%s ILIKE %s", p.Column, placeholder))
			params = append(params, "%"+likeEscaper.Replace(p.Value)+"%")
		case DoesNotContain:
			clauses = append(clauses, fmt.Sprintf("%s NOT ILIKE %s", p.Column, placeholder))
			params = append(params, "%"+likeEscaper.Replace(p.Value)+"%")
		}
	}

	return SQLCondition{
		Clause: strings.Join(clauses, " AND "),
		Params: params,
	}
}

// Match evaluates the filter in memory. value returns the current value of a
// field by its filter name.
func (f Filter) Match(value func(field string) string) bool {
	for _, p := range f.Predicates {
		if !p.Match(value(p.Field)) {
			return false
		}
	}
	return true
}

// Match reports whether v satisfies the predicate. Contains comparisons are
// case-insensitive, like ILIKE.
func (p Predicate) Match(v string) bool {
	switch p.Comparator {
	case Equals:
		return v == p.Value
	case DoesNotEqual:
		return v != p.Value
	case Contains:
		return strings.Contains(strings.ToLower(v), strings.ToLower(p.Value))
	case DoesNotContain:
		return !strings.Contains(strings.ToLower(v), strings.ToLower(p.Value))
	}
	return false
}
