// Package bioassembly is the upper layer over the pieces: open a
// structure file (or fetch one by its four letter code), read it,
// and rebuild one of its biological assemblies. The real work is in
// the quat package. Here lives the file plumbing and the adapters
// from parsed cif tables to the core's input rows.
package bioassembly

// 16 Mar 2026

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/bioassembly/mmcif"
	"github.com/andrew-torda/bioassembly/zwrap"
)

// LogWhere picks a destination for diagnostics. "" discards, "stdout"
// and "stderr" do the obvious, anything else is a file to append to.
func LogWhere(dest string) (*log.Logger, error) {
	var w io.Writer
	switch dest {
	case "":
		w = io.Discard
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		fp, err := os.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		w = fp
	}
	return log.New(w, "bioassembly: ", log.Lshortfile), nil
}

// looksLikeCif peeks at the first lines. Old PDB format gets a clear
// message rather than a parse failure further in.
func looksLikeCif(rdr io.Reader) error {
	cifWords := []string{"data_", "_entry.id", "loop_", "_atom_site"}
	pdbWords := []string{"HEADER", "COMPND", "SOURCE", "REMARK", "SEQRES", "ATOM", "HETATM"}
	const maxTestLines = 5000
	scnnr := bufio.NewScanner(rdr)
	for i := 0; scnnr.Scan() && i < maxTestLines; i++ {
		s := scnnr.Text()
		for _, w := range cifWords {
			if strings.HasPrefix(s, w) {
				return nil
			}
		}
		for _, w := range pdbWords {
			if strings.HasPrefix(s, w) {
				return errors.New("file is in old PDB format, only mmcif is handled")
			}
		}
	}
	return errors.New("cannot recognise file format")
}

// isGzipped looks for the gzip magic in the first two bytes.
func isGzipped(fname string) bool {
	fp, err := os.Open(fname)
	if err != nil {
		return false
	}
	defer fp.Close()
	var b [2]byte
	if _, err := io.ReadFull(fp, b[:]); err != nil {
		return false
	}
	return b[0] == 0x1f && b[1] == 0x8b
}

// countAtoms maps a plain file and counts coordinate lines, so the
// reader can size its slices once. Any failure just means no hint.
func countAtoms(fname string) int {
	fp, err := os.Open(fname)
	if err != nil {
		return 0
	}
	defer fp.Close()
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return 0
	}
	defer mm.Unmap()
	n := bytes.Count(mm, []byte("\nATOM "))
	n += bytes.Count(mm, []byte("\nHETATM "))
	return n
}

// ReadFile opens a structure file, compressed or not, checks it is
// mmcif, and parses it.
func ReadFile(fname string) (*mmcif.File, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	rdr, err := zwrap.WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return nil, errors.New("reading " + fname + ": " + err.Error())
	}

	var hint int
	if !isGzipped(fname) {
		hint = countAtoms(fname)
	}

	// the sniff consumes the reader, so reopen for the real parse
	sniffErr := looksLikeCif(rdr)
	rdr.Close()
	if sniffErr != nil {
		return nil, errors.New(fname + ": " + sniffErr.Error())
	}
	if fp, err = os.Open(fname); err != nil {
		return nil, err
	}
	rdr2, err := zwrap.WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return nil, err
	}
	defer rdr2.Close()

	mr := mmcif.NewReader(rdr2)
	if hint > 0 {
		mr.SetNAtomHint(hint)
	}
	f, err := mr.Read()
	if err != nil {
		return nil, errors.New(fname + ": " + err.Error())
	}
	return f, nil
}

// Read parses mmcif from any reader, for callers that already have a
// stream, such as an http body from FetchEntry.
func Read(r io.Reader) (*mmcif.File, error) {
	return mmcif.NewReader(r).Read()
}
