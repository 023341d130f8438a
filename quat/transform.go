package quat

// 12 Mar 2026

import (
	"log"
	"strings"

	"github.com/andrew-torda/bioassembly/xform"
)

// ChainSep separates the original chain id from the operator id when
// renaming chains in flattened assemblies, as in "A_2".
const ChainSep = "_"

// ComposedSep separates the two operator ids inside the id of a
// composed transform, as in "1x60". It must stay distinct from
// ChainSep and from anything that appears in operator ids.
const ComposedSep = "x"

// GenRecord is one row of _pdbx_struct_assembly_gen: which chains of
// which assembly get which operators. AsymIDs is the comma-separated
// chain id list exactly as it appears in the file.
type GenRecord struct {
	AssemblyID string
	AsymIDs    string
	OperExpr   string
}

// Transformation says: clone this chain and move it with this matrix.
// ID is the operator id, or first and second id joined by ComposedSep
// for a composed operator. Two Transformations with the same three
// fields are interchangeable.
type Transformation struct {
	ChainID string
	ID      string
	Mat     xform.Matrix4
}

// splitIDs splits a comma separated chain id list. Long lists get
// wrapped in the file, so tokens can carry whitespace from the wrap
// point and have to be trimmed.
func splitIDs(s string) []string {
	var ret []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			ret = append(ret, tok)
		}
	}
	return ret
}

// TransformationList builds the flat list of transformations for one
// assembly id: every chain of every matching generator record crossed
// with that record's resolved operators. Unary-derived entries come
// first, then composed ones, as the original file semantics have it.
// A malformed expression loses its record. An operator id missing
// from the table loses just that one entry. Both get a warning and
// neither stops the build. lg may be nil.
func TransformationList(assemblyID string, gens []GenRecord, table OperatorTable, lg *log.Logger) []Transformation {
	var ret []Transformation

	warn := func(v ...interface{}) {
		if lg != nil {
			lg.Println(v...)
		}
	}

	// resolve each matching record once, then walk the results twice
	type resolvedGen struct {
		chains []string
		res    Resolved
	}
	var recs []resolvedGen
	for _, g := range gens {
		if g.AssemblyID != assemblyID {
			continue
		}
		res, err := ResolveExpression(g.OperExpr)
		if err != nil {
			warn("assembly", assemblyID, "skipping record:", err)
			continue
		}
		recs = append(recs, resolvedGen{chains: splitIDs(g.AsymIDs), res: res})
	}

	for _, r := range recs { // unary pass
		for _, chainID := range r.chains {
			for _, op := range r.res.Unary {
				m, ok := table[op]
				if !ok {
					warn("assembly", assemblyID, "no operator", op, "in table, skipping")
					continue
				}
				ret = append(ret, Transformation{ChainID: chainID, ID: op, Mat: m})
			}
		}
	}

	for _, r := range recs { // composed pass
		for _, chainID := range r.chains {
			for _, pair := range r.res.Pairs {
				m1, ok1 := table[pair[0]]
				m2, ok2 := table[pair[1]]
				if !ok1 || !ok2 {
					warn("assembly", assemblyID, "no operator", pair[0], "or", pair[1], "in table, skipping composed")
					continue
				}
				// The second operator acts first. Files such as 1M4X
				// rely on exactly this product order.
				ret = append(ret, Transformation{
					ChainID: chainID,
					ID:      pair[0] + ComposedSep + pair[1],
					Mat:     m1.Mul(m2),
				})
			}
		}
	}
	return ret
}
