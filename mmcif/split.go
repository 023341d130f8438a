package mmcif

// 13 Mar 2026
// Splitting a cif line into fields. Fields are separated by white
// space, except that a quoted field keeps its spaces and a closing
// quote only counts if white space follows it. 'it's fine' is one
// field. Most lines have no quotes at all, so those take the fast
// path through bytes.Fields.

import (
	"bytes"
	"errors"
)

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

func iswhite(b byte) bool { return asciiSpace[b] }

// hasQuote says whether we need the quote-aware splitter.
func hasQuote(b []byte) bool {
	for _, c := range b {
		if c == squote || c == dquote {
			return true
		}
	}
	return false
}

// splitCifLine breaks a line into fields, honouring quotes. The
// returned slices point into the input. Scratch is reused between
// calls via ret[:0].
func splitCifLine(in []byte, ret [][]byte) ([][]byte, error) {
	ret = ret[:0]
	if !hasQuote(in) {
		return append(ret, bytes.Fields(in)...), nil
	}
	i := 0
	for i < len(in) {
		for i < len(in) && iswhite(in[i]) {
			i++
		}
		if i == len(in) {
			break
		}
		if c := in[i]; c == squote || c == dquote {
			// quoted field: ends at quote followed by white space
			q := c
			start := i + 1
			j := start
			for {
				if j >= len(in) {
					return nil, errors.New("unterminated quote: " + string(in))
				}
				if in[j] == q && (j+1 == len(in) || iswhite(in[j+1])) {
					break
				}
				j++
			}
			ret = append(ret, in[start:j])
			i = j + 1
		} else {
			start := i
			for i < len(in) && !iswhite(in[i]) {
				i++
			}
			ret = append(ret, in[start:i])
		}
	}
	return ret, nil
}
