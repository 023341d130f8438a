package bioassembly_test

// 20 Mar 2026

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/bioassembly"
	"github.com/andrew-torda/bioassembly/quat"
)

const testfile = "testdata/mini.cif"

func TestReadFile(t *testing.T) {
	f, err := bioassembly.ReadFile(testfile)
	if err != nil {
		t.Fatal(err)
	}
	if f.Structure.Name != "MINI" {
		t.Error("entry id wrong:", f.Structure.Name)
	}
	if n := len(f.Structure.Chains()); n != 3 {
		t.Error("want 3 chains, got", n)
	}
}

func TestExtraction(t *testing.T) {
	f, err := bioassembly.ReadFile(testfile)
	if err != nil {
		t.Fatal(err)
	}
	rows := bioassembly.OperRows(f)
	if len(rows) != 2 {
		t.Fatal("want 2 operator rows, got", len(rows))
	}
	table := quat.NewOperatorTable(rows, nil)
	if !table["1"].IsIdent(1e-9) {
		t.Error("operator 1 should be the identity")
	}
	if m := table["2"]; m[0][3] != 10 {
		t.Error("operator 2 should translate by 10 along x")
	}
	gens := bioassembly.GenRecords(f)
	if len(gens) != 2 || gens[0].AsymIDs != "A,B" {
		t.Error("generator records wrong:", gens)
	}
	ids := bioassembly.Assemblies(f)
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "2" {
		t.Error("assembly ids wrong:", ids)
	}
}

func TestBuildAssembly(t *testing.T) {
	f, err := bioassembly.ReadFile(testfile)
	if err != nil {
		t.Fatal(err)
	}
	s, err := bioassembly.BuildAssembly(f, 0, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !s.BioAssembly {
		t.Error("result should be flagged as generated")
	}
	if len(s.Models) != 2 {
		t.Fatal("assembly 1 should have 2 models, got", len(s.Models))
	}
	// model 0: identity copies of A and B; model 1: shifted by 10
	if len(s.Models[0]) != 2 || s.Models[0][0].ID != "A" || s.Models[0][1].ID != "B" {
		t.Error("model 0 should be chains A,B in asymmetric unit order")
	}
	if p := s.Models[1][0].Coords[0]; p.X != 10 {
		t.Error("model 1 should be shifted, got", p)
	}
	if len(s.Entities) != 1 {
		t.Error("only entity 1 takes part in assembly 1, got", len(s.Entities), "entities")
	}
}

func TestBuildComposedAssembly(t *testing.T) {
	f, err := bioassembly.ReadFile(testfile)
	if err != nil {
		t.Fatal(err)
	}
	s, err := bioassembly.BuildAssembly(f, 1, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Models) != 1 || len(s.Models[0]) != 1 {
		t.Fatal("assembly 2 is one composed copy of chain A")
	}
	if p := s.Models[0][0].Coords[0]; p.X != 10 {
		t.Error("composed operator should shift A by 10, got", p)
	}
}

func TestBadAssemblyIndex(t *testing.T) {
	f, err := bioassembly.ReadFile(testfile)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bioassembly.BuildAssembly(f, 5, true, nil); err == nil {
		t.Error("out of range assembly index must be an error")
	}
	if _, err := bioassembly.BuildAssembly(f, -1, true, nil); err == nil {
		t.Error("negative assembly index must be an error")
	}
}

// Big entries wrap long asym_id_list values in a semicolon block.
// Every chain in the list must still turn up in the built assembly.
func TestWrappedAsymList(t *testing.T) {
	const wrapped = `data_WRAP
_entry.id WRAP
loop_
_entity.id
_entity.type
1 polymer
loop_
_pdbx_struct_assembly.id
1
loop_
_pdbx_struct_assembly_gen.assembly_id
_pdbx_struct_assembly_gen.oper_expression
_pdbx_struct_assembly_gen.asym_id_list
1 1
;A,
B,C
;
loop_
_pdbx_struct_oper_list.id
_pdbx_struct_oper_list.matrix[1][1]
_pdbx_struct_oper_list.matrix[1][2]
_pdbx_struct_oper_list.matrix[1][3]
_pdbx_struct_oper_list.matrix[2][1]
_pdbx_struct_oper_list.matrix[2][2]
_pdbx_struct_oper_list.matrix[2][3]
_pdbx_struct_oper_list.matrix[3][1]
_pdbx_struct_oper_list.matrix[3][2]
_pdbx_struct_oper_list.matrix[3][3]
_pdbx_struct_oper_list.vector[1]
_pdbx_struct_oper_list.vector[2]
_pdbx_struct_oper_list.vector[3]
1 1.0 0.0 0.0 0.0 1.0 0.0 0.0 0.0 1.0 0.0 0.0 0.0
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.label_atom_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_entity_id
_atom_site.label_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.auth_asym_id
_atom_site.pdbx_PDB_model_num
ATOM 1 CA ALA A 1 1 0.0 0.0 0.0 A 1
ATOM 2 CA ALA B 1 1 5.0 0.0 0.0 B 1
ATOM 3 CA ALA C 1 1 9.0 0.0 0.0 C 1
`
	f, err := bioassembly.Read(strings.NewReader(wrapped))
	if err != nil {
		t.Fatal(err)
	}
	s, err := bioassembly.BuildAssembly(f, 0, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Models) != 1 || len(s.Models[0]) != 3 {
		t.Fatal("assembly should hold all three listed chains, got", s.Models)
	}
	if s.Models[0][2].ID != "C" {
		t.Errorf("third chain should be %q, got %q", "C", s.Models[0][2].ID)
	}
}

func TestRejectOldFormat(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "old.pdb")
	pdb := "HEADER    PROTEIN\nATOM      1  N   ALA A   1       0.000   0.000   0.000\n"
	if err := os.WriteFile(fname, []byte(pdb), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := bioassembly.ReadFile(fname)
	if err == nil || !strings.Contains(err.Error(), "old PDB format") {
		t.Error("old format should be refused with a clear message, got", err)
	}
}

func TestLogWhere(t *testing.T) {
	lg, err := bioassembly.LogWhere("")
	if err != nil || lg == nil {
		t.Fatal("quiet logger should always work")
	}
	lg.Println("goes nowhere")

	dir := t.TempDir()
	fname := filepath.Join(dir, "diag.log")
	lg, err = bioassembly.LogWhere(fname)
	if err != nil {
		t.Fatal(err)
	}
	lg.Println("hello")
	b, err := os.ReadFile(fname)
	if err != nil || !strings.Contains(string(b), "hello") {
		t.Error("log file should contain the message")
	}
}
