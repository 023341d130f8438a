// Package structure holds the in-memory model of a macromolecule.
// A Structure is a set of models, a model is an ordered set of chains,
// a chain is a run of atoms with one set of coordinates per atom.
// Chains that are chemically the same molecule share one EntityInfo
// record. The sharing matters. Code that copies chains must point the
// copies back at a single EntityInfo, never duplicate it per chain.
package structure

// 11 Mar 2026

// Xyz is one coordinate. float32 is enough for coordinates from
// structure files, which carry three decimal places.
type Xyz struct{ X, Y, Z float32 }

// XyzSl is a slice of coordinates, one per atom of a chain.
type XyzSl []Xyz

// Chain kinds. Water gets its own kind since a public chain name can
// span a polymer chain, some ligand chains and a water chain, and
// callers want them back in that order.
const (
	Polymer byte = iota
	NonPolymer
	Water
)

// BrokenSeq is stored when a file has "." or "?" where a residue
// number should be.
const BrokenSeq = -9999

// Atom is everything we keep about one atom except its coordinates.
// Coordinates live in the chain's parallel slice so that geometric
// operations can run down one flat array.
type Atom struct {
	Serial  int    // id in the file
	Name    string // atom name, like CA
	Elem    string // element symbol
	CompID  string // residue / component name, like ALA or HOH
	SeqID   int    // label_seq_id, BrokenSeq if absent
	AuthSeq int    // author residue number
	InsCode byte   // insertion code, 0 if none
	AltLoc  byte   // alternate location indicator, 0 if none
	Occ     float32
	Bfac    float32
	Het     bool // true for HETATM records
}

// Chain is an ordered run of atoms under one internal chain id.
// ID is the internal (label_asym_id) identifier, Name the public
// (auth_asym_id) one. Entity points at the shared EntityInfo, or is
// nil if the file had no entity table.
type Chain struct {
	ID       string
	Name     string
	EntityID string
	Kind     byte
	Atoms    []Atom
	Coords   XyzSl // parallel to Atoms
	Entity   *EntityInfo
}

// EntityInfo is the shared description of one molecule. All chains of
// the entity, in the asymmetric unit or in a generated assembly, point
// at the one instance.
type EntityInfo struct {
	ID          string
	Type        string // polymer, non-polymer, water, branched
	Description string
	Chains      []*Chain // member chains, in the order they registered
}

// Structure is a set of models plus the entity registry.
// Models[0] is the first model. For files with one model, that is all
// there is. BioAssembly marks a structure that was generated from an
// asymmetric unit rather than read from a file.
type Structure struct {
	Name        string // entry id, like 1M4X
	Models      [][]*Chain
	Entities    []*EntityInfo
	BioAssembly bool
}

// Clone deep-copies a chain's atoms and coordinates. The entity
// pointer is carried over as is. Whoever clones chains into a new
// structure has to re-link entities there anyway.
func (c *Chain) Clone() *Chain {
	n := &Chain{
		ID:       c.ID,
		Name:     c.Name,
		EntityID: c.EntityID,
		Kind:     c.Kind,
		Entity:   c.Entity,
	}
	n.Atoms = make([]Atom, len(c.Atoms))
	copy(n.Atoms, c.Atoms)
	n.Coords = make(XyzSl, len(c.Coords))
	copy(n.Coords, c.Coords)
	return n
}

// CloneShallow copies an entity record without its member chains.
// Used when building an output structure which registers its own
// members.
func (e *EntityInfo) CloneShallow() *EntityInfo {
	return &EntityInfo{ID: e.ID, Type: e.Type, Description: e.Description}
}

// Chains returns the chains of the first model, or nil if there are
// no models. Assembly generation only ever reads the first model.
func (s *Structure) Chains() []*Chain {
	if len(s.Models) == 0 {
		return nil
	}
	return s.Models[0]
}

// ChainByID finds a chain of the first model by internal id.
func (s *Structure) ChainByID(id string) *Chain {
	for _, c := range s.Chains() {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ChainsByName collects all first-model chains sharing a public name,
// polymer first, then non-polymers, then water. A public name from an
// old-format file can cover several internal chain records, and they
// transform together.
func (s *Structure) ChainsByName(name string) []*Chain {
	var ret []*Chain
	for _, kind := range []byte{Polymer, NonPolymer, Water} {
		for _, c := range s.Chains() {
			if c.Name == name && c.Kind == kind {
				ret = append(ret, c)
			}
		}
	}
	return ret
}

// AddChain appends a chain to model i. Models in between are created
// empty if the index is past the end, though normal use appends to
// the next free slot.
func (s *Structure) AddChain(c *Chain, i int) {
	for len(s.Models) <= i {
		s.Models = append(s.Models, nil)
	}
	s.Models[i] = append(s.Models[i], c)
}

// AddEntity registers an entity record with the structure.
func (s *Structure) AddEntity(e *EntityInfo) {
	s.Entities = append(s.Entities, e)
}

// EntityByID finds a registered entity record, or nil.
func (s *Structure) EntityByID(id string) *EntityInfo {
	for _, e := range s.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// NAtom counts atoms over all models and chains.
func (s *Structure) NAtom() (n int) {
	for _, m := range s.Models {
		for _, c := range m {
			n += len(c.Atoms)
		}
	}
	return
}
