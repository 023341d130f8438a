package mmcif

// 14 Mar 2026
// The reader is a small state machine, one function per state, each
// returning the next state. A table we were told to keep is stored
// generically as strings. The atom_site table is special cased. It is
// far bigger than everything else and goes straight into the
// structure model.

import (
	"errors"
	"io"
	"strings"

	"github.com/andrew-torda/bioassembly/structure"
)

// Table is a kept loop: column names without the category prefix, and
// one string slice per row.
type Table struct {
	Names []string
	Vals  [][]string
}

// Col gives the index of a column, -1 if the file did not have it.
func (t *Table) Col(name string) int {
	for i, n := range t.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// File is what Read returns. Data holds single data items by full
// name like "_entry.id". Tables holds kept loops by category name
// like "_entity". Structure is the coordinate model.
type File struct {
	Data      map[string]string
	Tables    map[string]Table
	Structure *structure.Structure
}

// Category returns a table for a category whether the file wrote it
// as a loop or, as happens for single-row categories, as one data
// item per line. In the second case a one-row table is synthesized.
func (f *File) Category(name string) Table {
	if t, ok := f.Tables[name]; ok {
		return t
	}
	var t Table
	var row []string
	prefix := name + "."
	// Data is a map, so collect deterministically via the name list.
	for _, k := range sortedKeys(f.Data) {
		if strings.HasPrefix(k, prefix) {
			t.Names = append(t.Names, k[len(prefix):])
			row = append(row, f.Data[k])
		}
	}
	if len(row) > 0 {
		t.Vals = [][]string{row}
	}
	return t
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ { // small map, insertion sort will do
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// Reader reads one data block of an mmcif file.
type Reader struct {
	cmmtScanner
	dataToKeep   map[string]bool
	tablesToKeep map[string]bool
	headers      [][]byte
	scrtch       [][]byte
	natomHint    int
	f            *File
}

// The categories any assembly rebuild needs.
var dfltTables = []string{
	"_pdbx_struct_oper_list",
	"_pdbx_struct_assembly",
	"_pdbx_struct_assembly_gen",
	"_entity",
}

// NewReader sets up a reader. The caller decides what the io.Reader
// is: file, decompressor, http body.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		return nil
	}
	rd := &Reader{
		cmmtScanner:  newCmmtScanner(r, '#'),
		dataToKeep:   map[string]bool{"_entry.id": true},
		tablesToKeep: make(map[string]bool),
		scrtch:       make([][]byte, 0, 32),
	}
	for _, t := range dfltTables {
		rd.tablesToKeep[t] = true
	}
	return rd
}

// AddTables names more categories whose loops should be kept.
func (rd *Reader) AddTables(s []string) {
	for _, t := range s {
		rd.tablesToKeep[t] = true
	}
}

// AddItems names more single data items to keep.
func (rd *Reader) AddItems(s []string) {
	for _, t := range s {
		rd.dataToKeep[t] = true
	}
}

// SetNAtomHint tells the reader roughly how many atoms to expect, so
// coordinate slices can be sized up front. Zero means no idea.
func (rd *Reader) SetNAtomHint(n int) { rd.natomHint = n }

// category splits "_atom_site.label_asym_id" into category and
// column. No dot means no column.
func category(b []byte) (cat, col string) {
	s := string(b)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// isSpecial is true when a line is not more table content: a new
// directive or end of file.
func isSpecial(b []byte) bool {
	switch {
	case b == nil:
		return true
	case b[0] == '_':
		return true
	case len(b) >= 5 && string(b[:5]) == "loop_":
		return true
	}
	return false
}

type stateFn func(*Reader) stateFn

// stateTop looks at the current line and picks the next state.
func stateTop(rd *Reader) stateFn {
	b := rd.cbytes()
	if !rd.ok {
		return nil
	}
	switch {
	case b == nil:
		return nil
	case len(b) >= 5 && string(b[:5]) == "loop_":
		return stateLoop
	case len(b) >= 5 && string(b[:5]) == "data_":
		return stateData
	case b[0] == '_':
		return stateDItem
	default:
		rd.fill("do not know what to do with line", true)
		return nil
	}
}

// stateData jumps over the data_xxxx block header.
func stateData(rd *Reader) stateFn {
	if !rd.cscan() {
		return nil
	}
	return stateTop
}

// stateLoop jumps over the loop_ line itself.
func stateLoop(rd *Reader) stateFn {
	if !rd.cscan() {
		return nil
	}
	return stateLoopHdr
}

// stateLoopHdr collects the _category.column header lines and decides
// whether the table that follows is worth keeping.
func stateLoopHdr(rd *Reader) stateFn {
	rd.headers = rd.headers[:0]
	for ok := true; ok && rd.cbytes() != nil && rd.cbytes()[0] == '_'; ok = rd.cscan() {
		h := make([]byte, len(rd.cbytes()))
		copy(h, rd.cbytes())
		rd.headers = append(rd.headers, h)
	}
	if len(rd.headers) == 0 {
		rd.fill("loop_ with no headers", true)
		return nil
	}
	cat, _ := category(rd.headers[0])
	if cat == "_atom_site" {
		return stateAtomTable
	}
	if rd.tablesToKeep[cat] {
		return stateLoopTable
	}
	return stateSkipLoopTable
}

// getRow collects the next ncol values, reading as many lines as it
// takes and honouring semicolon blocks. A nil return with ok true
// means the table ended.
func (rd *Reader) getRow(ncol int) (row []string, ok bool) {
	for len(row) < ncol {
		b := rd.cbytes()
		if isSpecial(b) {
			if len(row) > 0 {
				rd.fill("table row cut short", true)
				return nil, false
			}
			return nil, true
		}
		if b[0] == ';' { // multiline value
			val := string(b[1:])
			for {
				if !rd.cscan() || rd.cbytes() == nil {
					rd.fill("unterminated semicolon block", true)
					return nil, false
				}
				if rd.cbytes()[0] == ';' {
					break
				}
				val += " " + string(rd.cbytes())
			}
			row = append(row, val)
		} else {
			t, err := splitCifLine(b, rd.scrtch)
			if err != nil {
				rd.fill(err.Error(), true)
				return nil, false
			}
			for _, w := range t {
				row = append(row, string(w))
			}
		}
		if !rd.cscan() {
			return nil, false
		}
	}
	if len(row) > ncol {
		rd.fill("too many values in table row", true)
		return nil, false
	}
	return row, true
}

// stateLoopTable stores a kept table generically.
func stateLoopTable(rd *Reader) stateFn {
	cat, _ := category(rd.headers[0])
	var t Table
	for _, h := range rd.headers {
		_, col := category(h)
		t.Names = append(t.Names, col)
	}
	ncol := len(t.Names)
	for {
		row, ok := rd.getRow(ncol)
		if !ok {
			return nil
		}
		if row == nil {
			break
		}
		t.Vals = append(t.Vals, row)
	}
	rd.f.Tables[cat] = t
	return stateTop
}

// stateSkipLoopTable runs over a table nobody asked for.
func stateSkipLoopTable(rd *Reader) stateFn {
	for ; !isSpecial(rd.cbytes()); rd.cscan() {
	}
	if !rd.ok {
		return nil
	}
	return stateTop
}

// stateDItem reads a single data item, maybe with the value on the
// following line or in a semicolon block.
func stateDItem(rd *Reader) stateFn {
	t, err := splitCifLine(rd.cbytes(), rd.scrtch)
	if err != nil {
		rd.fill(err.Error(), true)
		return nil
	}
	name := string(t[0])
	var value string
	switch {
	case len(t) == 2:
		value = string(t[1])
		if !rd.cscan() {
			return nil
		}
	case len(t) == 1:
		if !rd.cscan() || rd.cbytes() == nil {
			rd.fill("item "+name+" has no value", true)
			return nil
		}
		b := rd.cbytes()
		if b[0] == ';' {
			value = string(b[1:])
			for {
				if !rd.cscan() || rd.cbytes() == nil {
					rd.fill("unterminated semicolon block for "+name, true)
					return nil
				}
				if rd.cbytes()[0] == ';' {
					break
				}
				value += " " + string(rd.cbytes())
			}
			if !rd.cscan() {
				return nil
			}
		} else {
			u, err := splitCifLine(b, rd.scrtch)
			if err != nil || len(u) == 0 {
				rd.fill("item "+name+" has a broken value line", true)
				return nil
			}
			value = string(u[0])
			if !rd.cscan() {
				return nil
			}
		}
	default:
		rd.fill("item line with too many fields", true)
		return nil
	}

	cat, _ := category([]byte(name))
	if rd.dataToKeep[name] || rd.tablesToKeep[cat] {
		rd.f.Data[name] = value
	}
	return stateTop
}

// Read parses the input and returns the file contents.
func (rd *Reader) Read() (*File, error) {
	if rd == nil {
		return nil, errors.New("nil mmcif reader")
	}
	rd.f = &File{
		Data:      make(map[string]string),
		Tables:    make(map[string]Table),
		Structure: &structure.Structure{},
	}
	if !rd.cscan() {
		return nil, rd.lerr
	}
	for state := stateTop; state != nil && rd.ok; {
		state = state(rd)
	}
	if !rd.ok {
		return nil, rd.lerr
	}
	if rd.n == 0 {
		return nil, errors.New("zero length file")
	}
	rd.finish()
	return rd.f, nil
}

// finish links entities to chains and fills in what the atom table
// alone could not know.
func (rd *Reader) finish() {
	f := rd.f
	if id, ok := f.Data["_entry.id"]; ok {
		f.Structure.Name = id
	}

	ent := f.Category("_entity")
	iID, iType, iDesc := ent.Col("id"), ent.Col("type"), ent.Col("pdbx_description")
	for _, row := range ent.Vals {
		if iID < 0 {
			break
		}
		e := &structure.EntityInfo{ID: row[iID]}
		if iType >= 0 {
			e.Type = row[iType]
		}
		if iDesc >= 0 && row[iDesc] != "?" && row[iDesc] != "." {
			e.Description = row[iDesc]
		}
		f.Structure.AddEntity(e)
	}

	for _, m := range f.Structure.Models {
		for _, c := range m {
			e := f.Structure.EntityByID(c.EntityID)
			if e == nil {
				continue
			}
			c.Entity = e
			e.Chains = append(e.Chains, c)
			switch e.Type {
			case "water":
				c.Kind = structure.Water
			case "non-polymer":
				c.Kind = structure.NonPolymer
			case "polymer":
				c.Kind = structure.Polymer
			}
		}
	}
}
