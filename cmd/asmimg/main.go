// 18 Mar 2026
// asmimg draws a projection of a structure or a rebuilt assembly to
// a png, one colour per model. With -font it labels the chains.

package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path"

	"github.com/andrew-torda/bioassembly"
	"github.com/andrew-torda/bioassembly/render"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] file.cif out.png")
	flag.PrintDefaults()
}

func mymain() int {
	asmNum := flag.Int("a", 0, "assembly to build first, 0 draws the file as is")
	wpix := flag.Int("w", 800, "image width in pixels")
	hpix := flag.Int("h", 800, "image height in pixels")
	fontPath := flag.String("font", "", "ttf font for chain labels, no font no labels")
	fontSize := flag.Float64("fontsize", 11, "label size in points")
	logdest := flag.String("v", "stderr", "diagnostics to stdout, stderr, a file, or \"\" for quiet")
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		return exitFailure
	}

	lg, err := bioassembly.LogWhere(*logdest)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	f, err := bioassembly.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	s := f.Structure
	if *asmNum > 0 {
		if s, err = bioassembly.BuildAssembly(f, *asmNum-1, true, lg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
	}

	img, err := render.Draw(s, &render.Opts{
		Wpix: *wpix, Hpix: *hpix, FontPath: *fontPath, FontSize: *fontSize,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	fp, err := os.Create(flag.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	defer fp.Close()
	if err := png.Encode(fp, img); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	return exitSuccess
}

func main() { os.Exit(mymain()) }
