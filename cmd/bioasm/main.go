// 18 Mar 2026
// bioasm reads a structure file, or fetches an entry by its four
// letter code, rebuilds one of its biological assemblies and writes
// the result as mmcif.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/bioassembly"
	"github.com/andrew-torda/bioassembly/mmcif"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] file.cif|CODE")
	flag.PrintDefaults()
}

func mymain() int {
	asmNum := flag.Int("a", 1, "assembly number to build, counting from 1")
	flat := flag.Bool("flat", false, "one model with renamed chains instead of one model per operator")
	fetch := flag.Bool("fetch", false, "argument is a four letter code to download, not a file")
	site := flag.Int("site", 0, "which archive site to fetch from")
	outfile := flag.String("o", "", "output file, default stdout")
	logdest := flag.String("v", "stderr", "diagnostics to stdout, stderr, a file, or \"\" for quiet")
	list := flag.Bool("l", false, "list the assemblies in the file and stop")
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return exitFailure
	}

	lg, err := bioassembly.LogWhere(*logdest)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	var f *mmcif.File
	if *fetch {
		rdr, err := bioassembly.FetchEntry(flag.Arg(0), *site)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
		f, err = bioassembly.Read(rdr)
		rdr.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
	} else {
		if f, err = bioassembly.ReadFile(flag.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
	}

	if *list {
		for _, id := range bioassembly.Assemblies(f) {
			fmt.Println(id)
		}
		return exitSuccess
	}

	s, err := bioassembly.BuildAssembly(f, *asmNum-1, !*flat, lg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	out := os.Stdout
	if *outfile != "" {
		if out, err = os.Create(*outfile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
		defer out.Close()
	}
	if err := mmcif.Write(out, s); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	lg.Println("assembly", *asmNum, "has", len(s.Models), "models and", s.NAtom(), "atoms")
	return exitSuccess
}

func main() { os.Exit(mymain()) }
