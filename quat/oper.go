// Package quat rebuilds the quaternary (biologically relevant)
// structure of a macromolecule from an asymmetric unit and the
// operator and assembly tables of an mmcif file.
// The pieces are
//   - an operator table, id to 4x4 transform
//   - a resolver for operator expressions like "1,2,5" or "(1-60)(61-88)"
//   - a builder that crosses chain lists with resolved operators
//   - the reconstructor that clones, transforms and places chains.
package quat

// 12 Mar 2026

import (
	"log"
	"strconv"

	"github.com/andrew-torda/bioassembly/xform"
)

// OperRow is one row of the file's operator table, still as strings.
// Elems holds the nine rotation components row by row, then the three
// translation components. The file layer fills these out. We do the
// numeric conversion here, since a broken number drops the row and
// that policy belongs with the table.
type OperRow struct {
	ID    string
	Elems [12]string
}

// OperatorTable maps operator ids to their transforms. Ids are
// strings. Files use "1", "2", ... but also "P" or "X0".
type OperatorTable map[string]xform.Matrix4

// NewOperatorTable converts parsed rows to transforms. A row with any
// unparseable component is dropped with a warning. Its id is then
// simply absent, which later shows up as a skipped transformation,
// not an abort. lg may be nil.
func NewOperatorTable(rows []OperRow, lg *log.Logger) OperatorTable {
	t := make(OperatorTable, len(rows))
rowloop:
	for _, r := range rows {
		var rot [9]float64
		var trans [3]float64
		for i, s := range r.Elems {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				if lg != nil {
					lg.Println("operator", r.ID, "unparseable component", s, "- dropping operator")
				}
				continue rowloop
			}
			if i < 9 {
				rot[i] = v
			} else {
				trans[i-9] = v
			}
		}
		t[r.ID] = xform.New(rot, trans)
	}
	return t
}
