package mmcif

// 15 Mar 2026
// Writing a structure back out. This is not a general cif writer.
// It writes the one category readers of generated assemblies need,
// atom_site, plus the entity table, in the same shape for an
// asymmetric unit or a rebuilt assembly.

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/andrew-torda/bioassembly/structure"
)

var atomSiteHdrs = []string{
	"group_PDB", "id", "type_symbol", "label_atom_id", "label_alt_id",
	"label_comp_id", "label_asym_id", "label_entity_id", "label_seq_id",
	"pdbx_PDB_ins_code", "Cartn_x", "Cartn_y", "Cartn_z",
	"occupancy", "B_iso_or_equiv", "auth_seq_id", "auth_asym_id",
	"pdbx_PDB_model_num",
}

// dotIf gives the cif "no value" marker for empty strings.
func dotIf(s string) string {
	if s == "" {
		return "."
	}
	return s
}

func seqStr(n int) string {
	if n == structure.BrokenSeq {
		return "."
	}
	return strconv.Itoa(n)
}

func byteStr(b byte) string {
	if b == 0 {
		return "."
	}
	return string(b)
}

// Write serializes a structure as a single mmcif data block. Models
// become pdbx_PDB_model_num 1, 2, ... in order.
func Write(w io.Writer, s *structure.Structure) error {
	bw := bufio.NewWriter(w)
	name := s.Name
	if name == "" {
		name = "XXXX"
	}
	fmt.Fprintln(bw, "data_"+name)
	fmt.Fprintln(bw, "#")
	fmt.Fprintf(bw, "_entry.id %s\n", name)
	if s.BioAssembly {
		fmt.Fprintln(bw, "_bioassembly.generated yes")
	}
	fmt.Fprintln(bw, "#")

	if len(s.Entities) > 0 {
		fmt.Fprintln(bw, "loop_")
		fmt.Fprintln(bw, "_entity.id")
		fmt.Fprintln(bw, "_entity.type")
		fmt.Fprintln(bw, "_entity.pdbx_description")
		for _, e := range s.Entities {
			desc := dotIf(e.Description)
			if desc != "." {
				desc = "'" + desc + "'"
			}
			fmt.Fprintf(bw, "%s %s %s\n", e.ID, dotIf(e.Type), desc)
		}
		fmt.Fprintln(bw, "#")
	}

	fmt.Fprintln(bw, "loop_")
	for _, h := range atomSiteHdrs {
		fmt.Fprintln(bw, "_atom_site."+h)
	}
	serial := 0
	for mi, model := range s.Models {
		for _, c := range model {
			grp := "ATOM"
			for i, at := range c.Atoms {
				serial++
				if at.Het {
					grp = "HETATM"
				} else {
					grp = "ATOM"
				}
				p := c.Coords[i]
				fmt.Fprintf(bw, "%s %d %s %s %s %s %s %s %s %s %.3f %.3f %.3f %.2f %.2f %s %s %d\n",
					grp, serial, dotIf(at.Elem), dotIf(at.Name), byteStr(at.AltLoc),
					dotIf(at.CompID), dotIf(c.ID), dotIf(c.EntityID), seqStr(at.SeqID),
					byteStr(at.InsCode), p.X, p.Y, p.Z, at.Occ, at.Bfac,
					seqStr(at.AuthSeq), dotIf(c.Name), mi+1)
			}
		}
	}
	fmt.Fprintln(bw, "#")
	return bw.Flush()
}
