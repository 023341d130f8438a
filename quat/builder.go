package quat

// 13 Mar 2026
// The reconstructor. Everything here works on clones. The asymmetric
// unit that comes in goes out untouched, and all per-run bookkeeping
// (model slots, entity registry) lives in local variables, so several
// rebuilds can run at the same time from the same input.

import (
	"log"
	"sort"

	"github.com/andrew-torda/bioassembly/structure"
)

// How chains are matched against a transformation's chain id.
// MatchID uses the internal id, right when the data came from mmcif.
// MatchName uses the public name and pulls in every chain under that
// name: polymer, ligands, water. That is the old-format convention.
const (
	MatchID byte = iota
	MatchName
)

// orderTransformations sorts a copy of the transformation list:
// lexicographically by transform id, and within one id by the
// position of the chain in the asymmetric unit. The sort is stable,
// so equal entries keep their relative order. After this, the output
// depends only on the declared structure, not on whatever order the
// list was generated in.
func orderTransformations(asym *structure.Structure, transforms []Transformation) []Transformation {
	pos := make(map[string]int)
	for i, c := range asym.Chains() {
		if _, ok := pos[c.ID]; !ok {
			pos[c.ID] = i
		}
	}
	ts := make([]Transformation, len(transforms))
	copy(ts, transforms)
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].ID != ts[j].ID {
			return ts[i].ID < ts[j].ID
		}
		return pos[ts[i].ChainID] < pos[ts[j].ChainID]
	})
	return ts
}

// Rebuild generates the biological assembly. Each transformation
// clones its chain (or chains, under MatchName), moves the clone and
// places it in the output. With multiModel true, each distinct
// transform id gets its own model. Otherwise everything lands in one
// model and clones are renamed id + "_" + transformId, public name
// likewise. Entity records are cloned once per entity and shared by
// all the copies that reference them. lg may be nil.
func Rebuild(asym *structure.Structure, transforms []Transformation,
	match byte, multiModel bool, lg *log.Logger) *structure.Structure {

	ts := orderTransformations(asym, transforms)

	out := &structure.Structure{Name: asym.Name}

	var modelIndex []string // transform id -> model slot
	entities := make(map[string]*structure.EntityInfo)

	slotOf := func(id string) int {
		for i, s := range modelIndex {
			if s == id {
				return i
			}
		}
		modelIndex = append(modelIndex, id)
		return len(modelIndex) - 1
	}

	for _, t := range ts {
		var chains []*structure.Chain
		if match == MatchID {
			if c := asym.ChainByID(t.ChainID); c != nil {
				chains = append(chains, c)
			}
		} else {
			chains = asym.ChainsByName(t.ChainID)
		}
		if len(chains) == 0 {
			if lg != nil {
				lg.Println("no chain", t.ChainID, "in asymmetric unit, skipping transform", t.ID)
			}
			continue
		}

		for _, src := range chains {
			c := src.Clone()
			t.Mat.ApplySl(c.Coords)

			if multiModel {
				out.AddChain(c, slotOf(t.ID))
			} else {
				c.ID = c.ID + ChainSep + t.ID
				c.Name = c.Name + ChainSep + t.ID
				out.AddChain(c, 0)
			}

			if c.Entity != nil {
				e, ok := entities[c.EntityID]
				if !ok {
					e = c.Entity.CloneShallow()
					entities[c.EntityID] = e
					out.AddEntity(e)
				}
				c.Entity = e
				e.Chains = append(e.Chains, c)
			}
		}
	}

	out.BioAssembly = true
	return out
}
