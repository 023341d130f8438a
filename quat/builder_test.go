package quat

// 20 Mar 2026

import (
	"testing"

	"github.com/andrew-torda/bioassembly/structure"
)

// testAsym builds a two chain asymmetric unit, both chains of the
// same entity, two atoms each.
func testAsym() *structure.Structure {
	e := &structure.EntityInfo{ID: "1", Type: "polymer", Description: "test molecule"}
	mk := func(id string) *structure.Chain {
		c := &structure.Chain{
			ID: id, Name: id, EntityID: "1", Entity: e,
			Atoms:  []structure.Atom{{Name: "CA", SeqID: 1}, {Name: "CB", SeqID: 1}},
			Coords: structure.XyzSl{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 2, Z: 3}},
		}
		e.Chains = append(e.Chains, c)
		return c
	}
	s := &structure.Structure{Name: "TEST"}
	s.Models = [][]*structure.Chain{{mk("A"), mk("B")}}
	s.Entities = []*structure.EntityInfo{e}
	return s
}

// testTransforms is the concrete scenario: chains A and B, operator
// 1 the identity and operator 2 a shift of 10 along x.
func testTransforms() []Transformation {
	table := NewOperatorTable(
		[]OperRow{identRow("1"), transRow("2", "10", "0", "0")}, nil)
	gens := []GenRecord{{AssemblyID: "1", AsymIDs: "A,B", OperExpr: "1,2"}}
	return TransformationList("1", gens, table, nil)
}

func TestRebuildMultiModel(t *testing.T) {
	asym := testAsym()
	out := Rebuild(asym, testTransforms(), MatchID, true, nil)

	if !out.BioAssembly {
		t.Error("output should be flagged as a generated assembly")
	}
	if len(out.Models) != 2 {
		t.Fatal("want 2 models, got", len(out.Models))
	}
	for mi, m := range out.Models {
		if len(m) != 2 {
			t.Fatalf("model %d: want chains A and B, got %d chains", mi, len(m))
		}
		if m[0].ID != "A" || m[1].ID != "B" {
			t.Errorf("model %d: chain order %s,%s, want A,B", mi, m[0].ID, m[1].ID)
		}
	}
	// model 0 is the identity copy, model 1 the shifted one
	if p := out.Models[0][0].Coords[0]; p.X != 0 {
		t.Error("identity copy moved:", p)
	}
	if p := out.Models[1][0].Coords[0]; p.X != 10 || p.Y != 0 {
		t.Error("operator 2 copy should sit at x=10, got", p)
	}
	if p := out.Models[1][1].Coords[1]; p.X != 11 || p.Y != 2 || p.Z != 3 {
		t.Error("second atom of shifted B wrong:", p)
	}
}

func TestRebuildFlattened(t *testing.T) {
	asym := testAsym()
	out := Rebuild(asym, testTransforms(), MatchID, false, nil)

	if len(out.Models) != 1 {
		t.Fatal("flattened output must be one model, got", len(out.Models))
	}
	var names []string
	for _, c := range out.Models[0] {
		names = append(names, c.ID)
	}
	want := []string{"A_1", "B_1", "A_2", "B_2"}
	if !strEq(names, want) {
		t.Error("got chain ids", names, "want", want)
	}
	for _, c := range out.Models[0] {
		if c.Name != c.ID {
			t.Error("public name should be renamed too:", c.Name, "vs", c.ID)
		}
	}
}

func TestFlattenedComposedName(t *testing.T) {
	asym := testAsym()
	table := NewOperatorTable([]OperRow{identRow("1"), transRow("2", "5", "0", "0")}, nil)
	gens := []GenRecord{{AssemblyID: "1", AsymIDs: "A", OperExpr: "(1)(2)"}}
	ts := TransformationList("1", gens, table, nil)
	out := Rebuild(asym, ts, MatchID, false, nil)
	if len(out.Models) != 1 || len(out.Models[0]) != 1 {
		t.Fatal("want one chain in one model")
	}
	if got := out.Models[0][0].ID; got != "A_1x2" {
		t.Error("composed rename should be A_1x2, got", got)
	}
}

func TestEntitySharing(t *testing.T) {
	asym := testAsym()
	out := Rebuild(asym, testTransforms(), MatchID, true, nil)

	if len(out.Entities) != 1 {
		t.Fatal("want exactly one entity record, got", len(out.Entities))
	}
	e := out.Entities[0]
	if e == asym.Entities[0] {
		t.Error("output entity must be a copy, not the input's record")
	}
	n := 0
	for _, m := range out.Models {
		for _, c := range m {
			if c.Entity != e {
				t.Error("chain", c.ID, "does not share the one entity record")
			}
			n++
		}
	}
	if len(e.Chains) != n {
		t.Error("entity should register all", n, "copies, has", len(e.Chains))
	}
}

func TestShuffledInputSameOutput(t *testing.T) {
	asym := testAsym()
	ts := testTransforms()
	rev := make([]Transformation, len(ts))
	for i := range ts {
		rev[i] = ts[len(ts)-1-i]
	}
	a := Rebuild(asym, ts, MatchID, true, nil)
	b := Rebuild(asym, rev, MatchID, true, nil)
	if len(a.Models) != len(b.Models) {
		t.Fatal("model counts differ")
	}
	for mi := range a.Models {
		for ci := range a.Models[mi] {
			ca, cb := a.Models[mi][ci], b.Models[mi][ci]
			if ca.ID != cb.ID {
				t.Fatalf("model %d chain %d: %s vs %s", mi, ci, ca.ID, cb.ID)
			}
			for k := range ca.Coords {
				if ca.Coords[k] != cb.Coords[k] {
					t.Fatal("coordinates differ after shuffling input")
				}
			}
		}
	}
}

func TestRebuildTwiceSame(t *testing.T) {
	asym := testAsym()
	ts := testTransforms()
	a := Rebuild(asym, ts, MatchID, true, nil)
	b := Rebuild(asym, ts, MatchID, true, nil)
	if len(a.Models) != len(b.Models) || a.NAtom() != b.NAtom() {
		t.Fatal("two runs from the same input disagree")
	}
	for mi := range a.Models {
		for ci := range a.Models[mi] {
			if a.Models[mi][ci].ID != b.Models[mi][ci].ID {
				t.Fatal("chain order differs between runs")
			}
		}
	}
}

func TestAsymUnitUntouched(t *testing.T) {
	asym := testAsym()
	out := Rebuild(asym, testTransforms(), MatchID, true, nil)

	if p := asym.Chains()[0].Coords[0]; p.X != 0 || p.Y != 0 || p.Z != 0 {
		t.Error("asymmetric unit coordinates were modified:", p)
	}
	// and the output must hold clones, not the originals
	out.Models[0][0].Coords[0].X = 999
	if asym.Chains()[0].Coords[0].X == 999 {
		t.Error("output chain aliases the asymmetric unit")
	}
	if len(asym.Entities[0].Chains) != 2 {
		t.Error("input entity membership changed")
	}
}

func TestMatchByName(t *testing.T) {
	// one public name covering a polymer and a water chain
	e1 := &structure.EntityInfo{ID: "1", Type: "polymer"}
	e2 := &structure.EntityInfo{ID: "2", Type: "water"}
	poly := &structure.Chain{ID: "A", Name: "X", EntityID: "1", Entity: e1,
		Kind:   structure.Polymer,
		Atoms:  []structure.Atom{{Name: "CA"}},
		Coords: structure.XyzSl{{X: 1}}}
	wat := &structure.Chain{ID: "C", Name: "X", EntityID: "2", Entity: e2,
		Kind:   structure.Water,
		Atoms:  []structure.Atom{{Name: "O"}},
		Coords: structure.XyzSl{{X: 2}}}
	s := &structure.Structure{Name: "T"}
	s.Models = [][]*structure.Chain{{wat, poly}} // file order: water first
	s.Entities = []*structure.EntityInfo{e1, e2}

	table := NewOperatorTable([]OperRow{identRow("1")}, nil)
	gens := []GenRecord{{AssemblyID: "1", AsymIDs: "X", OperExpr: "1"}}
	ts := TransformationList("1", gens, table, nil)

	out := Rebuild(s, ts, MatchName, true, nil)
	if len(out.Models) != 1 || len(out.Models[0]) != 2 {
		t.Fatal("both chains under the public name should transform")
	}
	// polymer comes back before water whatever the file order was
	if out.Models[0][0].Kind != structure.Polymer || out.Models[0][1].Kind != structure.Water {
		t.Error("chain kind order wrong in the transformed group")
	}
	if len(out.Entities) != 2 {
		t.Error("want two entity records, got", len(out.Entities))
	}
}
