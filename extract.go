package bioassembly

// 16 Mar 2026
// Adapters from the parsed cif tables to the core's input rows, and
// the driver that strings table, resolver and reconstructor together.

import (
	"fmt"
	"log"

	"github.com/andrew-torda/bioassembly/mmcif"
	"github.com/andrew-torda/bioassembly/quat"
	"github.com/andrew-torda/bioassembly/structure"
)

// operElems is the fixed column order the operator table wants:
// nine rotation components row by row, then the translation.
var operElems = []string{
	"matrix[1][1]", "matrix[1][2]", "matrix[1][3]",
	"matrix[2][1]", "matrix[2][2]", "matrix[2][3]",
	"matrix[3][1]", "matrix[3][2]", "matrix[3][3]",
	"vector[1]", "vector[2]", "vector[3]",
}

// OperRows pulls _pdbx_struct_oper_list into rows for the operator
// table. A row with a missing column gets an empty string there,
// which the table builder treats as a numeric failure, which is
// exactly the right outcome.
func OperRows(f *mmcif.File) []quat.OperRow {
	t := f.Category("_pdbx_struct_oper_list")
	iID := t.Col("id")
	if iID < 0 {
		return nil
	}
	cols := make([]int, len(operElems))
	for i, n := range operElems {
		cols[i] = t.Col(n)
	}
	var rows []quat.OperRow
	for _, v := range t.Vals {
		r := quat.OperRow{ID: v[iID]}
		for i, c := range cols {
			if c >= 0 {
				r.Elems[i] = v[c]
			}
		}
		rows = append(rows, r)
	}
	return rows
}

// GenRecords pulls _pdbx_struct_assembly_gen into generator records.
func GenRecords(f *mmcif.File) []quat.GenRecord {
	t := f.Category("_pdbx_struct_assembly_gen")
	iA, iO, iC := t.Col("assembly_id"), t.Col("oper_expression"), t.Col("asym_id_list")
	if iA < 0 || iO < 0 || iC < 0 {
		return nil
	}
	var gens []quat.GenRecord
	for _, v := range t.Vals {
		gens = append(gens, quat.GenRecord{
			AssemblyID: v[iA],
			OperExpr:   v[iO],
			AsymIDs:    v[iC],
		})
	}
	return gens
}

// Assemblies lists the assembly ids declared in the file, in file
// order. Files without a _pdbx_struct_assembly block fall back to
// the distinct ids of the generator records.
func Assemblies(f *mmcif.File) []string {
	t := f.Category("_pdbx_struct_assembly")
	if i := t.Col("id"); i >= 0 {
		var ids []string
		for _, v := range t.Vals {
			ids = append(ids, v[i])
		}
		return ids
	}
	var ids []string
	seen := make(map[string]bool)
	for _, g := range GenRecords(f) {
		if !seen[g.AssemblyID] {
			seen[g.AssemblyID] = true
			ids = append(ids, g.AssemblyID)
		}
	}
	return ids
}

// BuildAssembly rebuilds assembly number assemblyIndex (counting from
// zero, in the order the file declares them). Asking for an index the
// file does not have is a caller error and fails loudly. Everything
// recoverable further down, a broken operator row, a malformed
// expression, only costs the copies involved and goes to lg. Chains
// match by internal id, the mmcif convention.
func BuildAssembly(f *mmcif.File, assemblyIndex int, multiModel bool, lg *log.Logger) (*structure.Structure, error) {
	ids := Assemblies(f)
	if assemblyIndex < 0 || assemblyIndex >= len(ids) {
		return nil, fmt.Errorf("assembly index %d out of range, file has %d assemblies",
			assemblyIndex, len(ids))
	}
	table := quat.NewOperatorTable(OperRows(f), lg)
	transforms := quat.TransformationList(ids[assemblyIndex], GenRecords(f), table, lg)
	return quat.Rebuild(f.Structure, transforms, quat.MatchID, multiModel, lg), nil
}
