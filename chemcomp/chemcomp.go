// Package chemcomp caches the chemical component dictionary. The
// dictionary is one big download, so it happens once: the first
// Lookup kicks off a background load and every Lookup blocks until
// the load is done. After that, lookups are map reads. The rest of
// the code only depends on this one blocking Lookup contract.
package chemcomp

// 17 Mar 2026

import (
	"bufio"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/andrew-torda/bioassembly/zwrap"
)

const dictURL = "https://files.wwpdb.org/pub/pdb/data/monomers/components.cif.gz"
const dictFname = "components.cif.gz"

// Component is the part of a dictionary entry we keep.
type Component struct {
	ID      string
	Name    string
	Type    string
	Formula string
}

// Provider hands out components. Zero value is not usable, call
// NewProvider. One Provider may be shared between goroutines.
type Provider struct {
	dir   string // cache directory
	once  sync.Once
	done  chan struct{}
	err   error
	comps map[string]Component
}

// NewProvider makes a provider caching under dir. Nothing is loaded
// until the first Lookup.
func NewProvider(dir string) *Provider {
	return &Provider{dir: dir, done: make(chan struct{})}
}

// Lookup blocks until the one-time load has finished, then answers
// from the map. A failed load makes every lookup miss. Err tells the
// caller why.
func (p *Provider) Lookup(id string) (Component, bool) {
	p.once.Do(func() { go p.load() })
	<-p.done
	c, ok := p.comps[id]
	return c, ok
}

// Err reports whether the load went wrong. Valid after any Lookup
// has returned.
func (p *Provider) Err() error { return p.err }

// load fetches the dictionary if the cache does not have it, then
// parses it. Runs once, in the background.
func (p *Provider) load() {
	defer close(p.done)
	p.comps = make(map[string]Component)

	fname := filepath.Join(p.dir, dictFname)
	if _, err := os.Stat(fname); err != nil {
		if p.err = p.download(fname); p.err != nil {
			return
		}
	}
	fp, err := os.Open(fname)
	if err != nil {
		p.err = err
		return
	}
	defer fp.Close()
	rdr, err := zwrap.WrapMaybe(fp)
	if err != nil {
		p.err = err
		return
	}
	p.err = p.parse(rdr)
}

// download gets the dictionary into the cache directory, via a
// temporary name so a torn download never looks like a cache hit.
func (p *Provider) download(fname string) error {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return err
	}
	resp, err := http.Get(dictURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return errors.New("fetching dictionary: " + resp.Status)
	}
	tmp := fname + ".part"
	fp, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err = io.Copy(fp, resp.Body); err != nil {
		fp.Close()
		os.Remove(tmp)
		return err
	}
	if err = fp.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, fname)
}

// parse runs down the dictionary keeping four items per component.
// The dictionary is a long series of data_XXX blocks. A full cif
// parse is not worth it for four fields, a line scan is.
func (p *Provider) parse(r io.Reader) error {
	scnnr := bufio.NewScanner(r)
	scnnr.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	var cur Component
	flush := func() {
		if cur.ID != "" {
			p.comps[cur.ID] = cur
		}
	}
	for scnnr.Scan() {
		s := strings.TrimSpace(scnnr.Text())
		switch {
		case strings.HasPrefix(s, "data_"):
			flush()
			cur = Component{}
		case strings.HasPrefix(s, "_chem_comp.id "):
			cur.ID = itemValue(s)
		case strings.HasPrefix(s, "_chem_comp.name "):
			cur.Name = itemValue(s)
		case strings.HasPrefix(s, "_chem_comp.type "):
			cur.Type = itemValue(s)
		case strings.HasPrefix(s, "_chem_comp.formula "):
			cur.Formula = itemValue(s)
		}
	}
	flush()
	return scnnr.Err()
}

// itemValue takes the value half of a "_name value" line and strips
// the quoting. Multi-line values come back empty, which is fine for
// the fields we keep.
func itemValue(s string) string {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return ""
	}
	v := strings.TrimSpace(s[i:])
	v = strings.Trim(v, "'\"")
	if v == "." || v == "?" {
		return ""
	}
	return v
}
