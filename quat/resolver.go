package quat

// 12 Mar 2026
// Operator expressions from _pdbx_struct_assembly_gen.oper_expression.
// Three shapes occur:
//   "1"             a single operator
//   "1,2,5" "(1-60)"  a list, possibly with ranges, maybe in parentheses
//   "(1-60)(61-88)"   two parenthesized lists. Every operator of the
//                     first combines with every operator of the second.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Resolved is the result of resolving one expression. Exactly one of
// the two slices is non-nil: Unary for a flat list of operator ids,
// Pairs for the composed form, first-group id then second-group id.
type Resolved struct {
	Unary []string
	Pairs [][2]string
}

// expandList turns a comma list like "1,2,5-8,P" into ids, in the
// order written, ranges in ascending order. A token with a dash must
// have integer bounds. Other tokens are literal ids.
func expandList(list string) ([]string, error) {
	var ret []string
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, errors.New("empty element in operator list " + list)
		}
		i := strings.IndexByte(tok, '-')
		if i < 1 { // no dash, or leading dash: a literal id
			ret = append(ret, tok)
			continue
		}
		lo, err1 := strconv.Atoi(tok[:i])
		hi, err2 := strconv.Atoi(tok[i+1:])
		if err1 != nil || err2 != nil {
			return nil, errors.New("range bounds in " + tok + " are not integers")
		}
		if hi < lo {
			return nil, errors.New("backwards range " + tok)
		}
		for n := lo; n <= hi; n++ {
			ret = append(ret, strconv.Itoa(n))
		}
	}
	return ret, nil
}

// groups breaks an expression into its parenthesized groups. It is an
// error if anything sits outside the parentheses or a parenthesis is
// left open. An expression with no parentheses at all is one group.
func groups(expr string) ([]string, error) {
	if !strings.ContainsAny(expr, "()") {
		return []string{expr}, nil
	}
	var ret []string
	s := expr
	for len(s) > 0 {
		if s[0] != '(' {
			return nil, fmt.Errorf("unexpected text at %q in expression %q", s, expr)
		}
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return nil, fmt.Errorf("unbalanced parenthesis in expression %q", expr)
		}
		ret = append(ret, s[1:end])
		s = s[end+1:]
	}
	return ret, nil
}

// ResolveExpression parses one operator expression. One group gives a
// unary list. Two groups give the Cartesian pairs, first group id
// first. Anything else is a malformed expression and the caller
// should skip the record it came from.
func ResolveExpression(expr string) (Resolved, error) {
	var r Resolved
	g, err := groups(strings.TrimSpace(expr))
	if err != nil {
		return r, err
	}
	switch len(g) {
	case 1:
		if r.Unary, err = expandList(g[0]); err != nil {
			return Resolved{}, err
		}
	case 2:
		first, err := expandList(g[0])
		if err != nil {
			return Resolved{}, err
		}
		second, err := expandList(g[1])
		if err != nil {
			return Resolved{}, err
		}
		r.Pairs = make([][2]string, 0, len(first)*len(second))
		for _, a := range first {
			for _, b := range second {
				r.Pairs = append(r.Pairs, [2]string{a, b})
			}
		}
	default:
		return r, fmt.Errorf("expression %q has %d groups, want 1 or 2", expr, len(g))
	}
	return r, nil
}
