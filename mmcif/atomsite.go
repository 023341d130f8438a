package mmcif

// 14 Mar 2026
// The atom_site table. One line per atom, and for a virus capsid
// that can be a few hundred thousand lines, so rows go straight into
// the structure model instead of through the generic string tables.

import (
	"strconv"

	"github.com/andrew-torda/bioassembly/structure"
)

// acn holds the column index of everything we pull from an atom_site
// row, -1 when the file does not have the column.
type acn struct {
	groupPDB, id, typeSymbol, labelAtomID, labelAltID,
	labelCompID, labelAsymID, labelEntityID, labelSeqID,
	insCode, cartnX, cartnY, cartnZ, occ, biso,
	authSeqID, authAsymID, modelNum int
}

// atomCols maps the header lines to column indices. Only the
// coordinates and the internal chain id are truly required.
func atomCols(headers [][]byte) (acn, error) {
	want := map[string]*int{}
	var a acn
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"group_PDB", &a.groupPDB}, {"id", &a.id},
		{"type_symbol", &a.typeSymbol}, {"label_atom_id", &a.labelAtomID},
		{"label_alt_id", &a.labelAltID}, {"label_comp_id", &a.labelCompID},
		{"label_asym_id", &a.labelAsymID}, {"label_entity_id", &a.labelEntityID},
		{"label_seq_id", &a.labelSeqID}, {"pdbx_PDB_ins_code", &a.insCode},
		{"Cartn_x", &a.cartnX}, {"Cartn_y", &a.cartnY}, {"Cartn_z", &a.cartnZ},
		{"occupancy", &a.occ}, {"B_iso_or_equiv", &a.biso},
		{"auth_seq_id", &a.authSeqID}, {"auth_asym_id", &a.authAsymID},
		{"pdbx_PDB_model_num", &a.modelNum},
	} {
		*p.dst = -1
		want[p.name] = p.dst
	}
	for i, h := range headers {
		_, col := category(h)
		if dst, ok := want[col]; ok {
			*dst = i
		}
	}
	if a.cartnX < 0 || a.cartnY < 0 || a.cartnZ < 0 || a.labelAsymID < 0 {
		return a, readError{desc: "atom_site is missing coordinate or chain id columns"}
	}
	return a, nil
}

// isDotOrQ: the file's two ways of saying "no value".
func isDotOrQ(s []byte) bool {
	return len(s) == 1 && (s[0] == '.' || s[0] == '?')
}

func colStr(row [][]byte, i int) string {
	if i < 0 || isDotOrQ(row[i]) {
		return ""
	}
	return string(row[i])
}

func colInt(row [][]byte, i int, dflt int) int {
	if i < 0 || isDotOrQ(row[i]) {
		return dflt
	}
	n, err := strconv.Atoi(string(row[i]))
	if err != nil {
		return dflt
	}
	return n
}

func colFloat(row [][]byte, i int, dflt float32) float32 {
	if i < 0 || isDotOrQ(row[i]) {
		return dflt
	}
	v, err := strconv.ParseFloat(string(row[i]), 32)
	if err != nil {
		return dflt
	}
	return float32(v)
}

func colByte(row [][]byte, i int) byte {
	if i < 0 || isDotOrQ(row[i]) || len(row[i]) == 0 {
		return 0
	}
	return row[i][0]
}

// stateAtomTable consumes atom_site rows into the structure model.
// Chains are grouped by label_asym_id within each model. The entity
// link and the chain kind are refined later from the entity table.
// Without one, HETATM plus HOH still marks water and HETATM a ligand.
func stateAtomTable(rd *Reader) stateFn {
	a, err := atomCols(rd.headers)
	if err != nil {
		rd.fill(err.Error(), true)
		return nil
	}
	ncol := len(rd.headers)
	rd.headers = rd.headers[:0]

	s := rd.f.Structure
	var curModelNum, curModelIdx int
	firstRow := true
	chains := make(map[string]*structure.Chain) // current model only
	var cur *structure.Chain

	for ; !isSpecial(rd.cbytes()); rd.cscan() {
		row, err := splitCifLine(rd.cbytes(), rd.scrtch)
		if err != nil {
			rd.fill(err.Error(), true)
			return nil
		}
		if len(row) != ncol {
			rd.fill("atom_site row has "+strconv.Itoa(len(row))+
				" fields, want "+strconv.Itoa(ncol), true)
			return nil
		}

		mnum := colInt(row, a.modelNum, 1)
		if firstRow || mnum != curModelNum {
			if !firstRow {
				curModelIdx++
			}
			curModelNum = mnum
			chains = make(map[string]*structure.Chain)
			cur = nil
			firstRow = false
		}

		asymID := colStr(row, a.labelAsymID)
		if cur == nil || cur.ID != asymID {
			if c, ok := chains[asymID]; ok {
				cur = c
			} else {
				cur = &structure.Chain{
					ID:       asymID,
					Name:     colStr(row, a.authAsymID),
					EntityID: colStr(row, a.labelEntityID),
				}
				if cur.Name == "" {
					cur.Name = asymID
				}
				if len(chains) == 0 && rd.natomHint > 0 {
					// most of a file is usually its first chain
					cur.Atoms = make([]structure.Atom, 0, rd.natomHint)
					cur.Coords = make(structure.XyzSl, 0, rd.natomHint)
				}
				chains[asymID] = cur
				s.AddChain(cur, curModelIdx)
			}
		}

		het := colStr(row, a.groupPDB) == "HETATM"
		comp := colStr(row, a.labelCompID)
		switch {
		case het && comp == "HOH":
			cur.Kind = structure.Water
		case het:
			cur.Kind = structure.NonPolymer
		}

		cur.Atoms = append(cur.Atoms, structure.Atom{
			Serial:  colInt(row, a.id, 0),
			Name:    colStr(row, a.labelAtomID),
			Elem:    colStr(row, a.typeSymbol),
			CompID:  comp,
			SeqID:   colInt(row, a.labelSeqID, structure.BrokenSeq),
			AuthSeq: colInt(row, a.authSeqID, structure.BrokenSeq),
			InsCode: colByte(row, a.insCode),
			AltLoc:  colByte(row, a.labelAltID),
			Occ:     colFloat(row, a.occ, 1),
			Bfac:    colFloat(row, a.biso, 0),
			Het:     het,
		})
		cur.Coords = append(cur.Coords, structure.Xyz{
			X: colFloat(row, a.cartnX, 0),
			Y: colFloat(row, a.cartnY, 0),
			Z: colFloat(row, a.cartnZ, 0),
		})
	}
	if !rd.ok {
		return nil
	}
	return stateTop
}
