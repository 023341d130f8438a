package bioassembly

// 16 Mar 2026
// Fetch an entry from one of the archive sites. Some sites serve
// gzipped files, so the body may need wrapping before it reads as
// text. The siteNum wraps around rather than erroring, which makes
// it easy to cycle through mirrors.

import (
	"errors"
	"io"
	"net/http"

	"github.com/andrew-torda/bioassembly/zwrap"
)

var sites = []struct {
	urlBase   string
	urlSuffix string
	gzipped   bool
}{
	{"https://files.rcsb.org/download/", ".cif.gz", true},
	{"https://www.ebi.ac.uk/pdbe/entry-files/download/", ".cif", false},
	{"http://ftp.pdbj.org/mmcif/", ".cif.gz", true},
}

// FetchEntry goes to an archive site and returns a reader for the
// entry with the given four letter code.
func FetchEntry(acqCode string, siteNum int) (io.ReadCloser, error) {
	if len(acqCode) != 4 {
		return nil, errors.New("acq code should be four char, not " + acqCode)
	}
	if siteNum >= len(sites) || siteNum < 0 {
		siteNum = ((siteNum % len(sites)) + len(sites)) % len(sites)
	}
	url := sites[siteNum].urlBase + acqCode + sites[siteNum].urlSuffix

	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		resp.Body.Close()
		return nil, errors.New("wanted " + acqCode + " using " + url + ", got " + resp.Status)
	}
	if sites[siteNum].gzipped {
		body, err := zwrap.Wrap(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		return body, nil
	}
	return resp.Body, nil
}
