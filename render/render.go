// Package render draws a quick orthographic projection of a
// structure, one colour per model, so one can eyeball whether a
// generated assembly looks like a ring, a shell or a mistake. It is
// a sanity check, not molecular graphics.
package render

// 17 Mar 2026

import (
	"errors"
	"image"
	"image/color"
	"os"

	"github.com/andrew-torda/matrix"
	"github.com/golang/freetype"

	"github.com/andrew-torda/bioassembly/structure"
)

// Opts says how to draw. FontPath empty means no chain labels.
type Opts struct {
	Wpix, Hpix int
	FontPath   string
	FontSize   float64
}

// Model colours cycle through this palette.
var palette = []color.RGBA{
	{0x20, 0x50, 0xa0, 0xff},
	{0xa0, 0x30, 0x30, 0xff},
	{0x30, 0x80, 0x30, 0xff},
	{0x80, 0x60, 0x10, 0xff},
	{0x60, 0x30, 0x80, 0xff},
	{0x10, 0x70, 0x70, 0xff},
}

// bounds finds the x/y extent over every model of the structure, so
// all models land in one common frame.
func bounds(s *structure.Structure) (minx, miny, maxx, maxy float32, ok bool) {
	first := true
	for _, m := range s.Models {
		for _, c := range m {
			for _, p := range c.Coords {
				if first {
					minx, maxx, miny, maxy = p.X, p.X, p.Y, p.Y
					first = false
					continue
				}
				if p.X < minx {
					minx = p.X
				}
				if p.X > maxx {
					maxx = p.X
				}
				if p.Y < miny {
					miny = p.Y
				}
				if p.Y > maxy {
					maxy = p.Y
				}
			}
		}
	}
	return minx, miny, maxx, maxy, !first
}

// frame maps coordinates to pixels with a margin.
type frame struct {
	minx, miny float32
	scale      float32
	wpix, hpix int
}

const margin = 10

func newFrame(s *structure.Structure, wpix, hpix int) (frame, error) {
	f := frame{wpix: wpix, hpix: hpix}
	minx, miny, maxx, maxy, ok := bounds(s)
	if !ok {
		return f, errors.New("structure has no coordinates")
	}
	f.minx, f.miny = minx, miny
	dx, dy := maxx-minx, maxy-miny
	if dx <= 0 {
		dx = 1
	}
	if dy <= 0 {
		dy = 1
	}
	sx := float32(wpix-2*margin) / dx
	sy := float32(hpix-2*margin) / dy
	if sy < sx {
		f.scale = sy
	} else {
		f.scale = sx
	}
	return f, nil
}

func (f *frame) pixel(p structure.Xyz) (int, int) {
	x := margin + int(f.scale*(p.X-f.minx))
	y := margin + int(f.scale*(p.Y-f.miny))
	if x < 0 {
		x = 0
	}
	if x >= f.wpix {
		x = f.wpix - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= f.hpix {
		y = f.hpix - 1
	}
	return x, y
}

// accumulate counts one model's atoms into the grid, pixel by pixel.
// The grid is resized, not reallocated, between models. Exported via
// Draw only, but split out so the counting can be tested without
// drawing anything.
func accumulate(m []*structure.Chain, f *frame, grid *matrix.FMatrix2d) {
	grid.Resize(f.hpix, f.wpix)
	for i := range grid.Mat {
		row := grid.Mat[i]
		for j := range row {
			row[j] = 0
		}
	}
	for _, c := range m {
		for _, p := range c.Coords {
			x, y := f.pixel(p)
			grid.Mat[y][x]++
		}
	}
}

// shade composites a count grid onto the image in the given colour.
// More atoms behind a pixel means more colour.
func shade(img *image.RGBA, grid *matrix.FMatrix2d, col color.RGBA) {
	for y, row := range grid.Mat {
		for x, n := range row {
			if n == 0 {
				continue
			}
			w := n * 60
			if w > 255 {
				w = 255
			}
			old := img.RGBAAt(x, y)
			f := w / 255
			mix := func(o, c uint8) uint8 {
				return uint8(float32(o)*(1-f) + float32(c)*f)
			}
			img.SetRGBA(x, y, color.RGBA{
				mix(old.R, col.R), mix(old.G, col.G), mix(old.B, col.B), 0xff})
		}
	}
}

// labels writes each chain's public name at its centroid.
func labels(img *image.RGBA, s *structure.Structure, f *frame, o *Opts) error {
	fbytes, err := os.ReadFile(o.FontPath)
	if err != nil {
		return err
	}
	fnt, err := freetype.ParseFont(fbytes)
	if err != nil {
		return err
	}
	size := o.FontSize
	if size == 0 {
		size = 11
	}
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(fnt)
	c.SetFontSize(size)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.Black)
	for _, m := range s.Models {
		for _, ch := range m {
			if len(ch.Coords) == 0 {
				continue
			}
			var cx, cy float32
			for _, p := range ch.Coords {
				cx += p.X
				cy += p.Y
			}
			n := float32(len(ch.Coords))
			x, y := f.pixel(structure.Xyz{X: cx / n, Y: cy / n})
			if _, err := c.DrawString(ch.Name, freetype.Pt(x, y)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Draw renders the structure. Models get palette colours in order,
// the asymmetric-unit-or-first model first.
func Draw(s *structure.Structure, o *Opts) (image.Image, error) {
	if o.Wpix <= 2*margin || o.Hpix <= 2*margin {
		return nil, errors.New("image size too small")
	}
	f, err := newFrame(s, o.Wpix, o.Hpix)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, o.Wpix, o.Hpix))
	for y := 0; y < o.Hpix; y++ {
		for x := 0; x < o.Wpix; x++ {
			img.SetRGBA(x, y, color.RGBA{0xff, 0xff, 0xff, 0xff})
		}
	}
	grid := new(matrix.FMatrix2d)
	for i, m := range s.Models {
		accumulate(m, &f, grid)
		shade(img, grid, palette[i%len(palette)])
	}
	if o.FontPath != "" {
		if err := labels(img, s, &f, o); err != nil {
			return nil, err
		}
	}
	return img, nil
}
