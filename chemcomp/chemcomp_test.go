package chemcomp

// 20 Mar 2026

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const dict = `data_ALA
_chem_comp.id ALA
_chem_comp.name ALANINE
_chem_comp.type 'L-peptide linking'
_chem_comp.formula 'C3 H7 N O2'
#
data_HOH
_chem_comp.id HOH
_chem_comp.name WATER
_chem_comp.type non-polymer
_chem_comp.formula 'H2 O'
`

func TestParse(t *testing.T) {
	p := &Provider{comps: make(map[string]Component)}
	if err := p.parse(strings.NewReader(dict)); err != nil {
		t.Fatal(err)
	}
	if len(p.comps) != 2 {
		t.Fatal("want 2 components, got", len(p.comps))
	}
	ala := p.comps["ALA"]
	if ala.Name != "ALANINE" || ala.Type != "L-peptide linking" {
		t.Error("ALA parsed wrong:", ala)
	}
	if p.comps["HOH"].Formula != "H2 O" {
		t.Error("HOH formula wrong:", p.comps["HOH"])
	}
}

// seedCache drops a gzipped dictionary where the provider will look,
// so no test goes near the network.
func seedCache(t *testing.T, dir string) {
	t.Helper()
	fp, err := os.Create(filepath.Join(dir, dictFname))
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(fp)
	if _, err := zw.Write([]byte(dict)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fp.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLookupFromCache(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)
	p := NewProvider(dir)
	c, ok := p.Lookup("ALA")
	if !ok {
		t.Fatal("ALA should be in the dictionary; load error:", p.Err())
	}
	if c.Name != "ALANINE" {
		t.Error("wrong component back:", c)
	}
	if _, ok := p.Lookup("ZZZ"); ok {
		t.Error("ZZZ should miss")
	}
}

// Many goroutines may hit the first Lookup at once. All must block
// until the one load finishes and then agree.
func TestConcurrentLookup(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)
	p := NewProvider(dir)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := p.Lookup("HOH"); !ok {
				t.Error("concurrent lookup missed HOH")
			}
		}()
	}
	wg.Wait()
}
