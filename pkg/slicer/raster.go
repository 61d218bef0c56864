package slicer

import (
	"image"
	"image/color"
	"math"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// maskOn is the pixel value of a filled cross-section.
var maskOn = color.Gray{Y: 0xff}

// rasterize fills the polygon loops of one plane onto a zeroed canvas.
//
// A single uniform scale ppm = min(pixelX/physicalX, pixelY/physicalY)
// preserves the aspect ratio; the model may letterbox but never distorts.
// Each vertex maps via pixel = round(model*ppm + canvas/2), centering the
// model origin at the canvas midpoint — geometry not centered at its own
// origin appears off-center. Loops that map to fewer than three distinct
// pixels draw nothing. Loops are filled independently and additively at
// full intensity: a loop nested inside another re-fills pixels that are
// already set, so inner boundaries do NOT become holes.
func rasterize(polys [][]v3.Vec, cfg Config) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, cfg.PixelX, cfg.PixelY))
	ppm := math.Min(
		float64(cfg.PixelX)/cfg.PhysicalX,
		float64(cfg.PixelY)/cfg.PhysicalY,
	)

	for _, poly := range polys {
		var points []image.Point
		for _, p := range poly {
			pt := image.Point{
				X: int(math.Round(p.X*ppm + float64(cfg.PixelX)/2)),
				Y: int(math.Round(p.Y*ppm + float64(cfg.PixelY)/2)),
			}
			if !slices.Contains(points, pt) {
				points = append(points, pt)
			}
		}
		if len(points) >= 3 {
			fillPolygon(img, points)
		}
	}
	return img
}

// fillPolygon scan-fills a polygon with even-odd parity and then traces its
// outline so boundary pixels are always set.
func fillPolygon(img *image.Gray, pts []image.Point) {
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	b := img.Bounds()
	minY = max(minY, b.Min.Y)
	maxY = min(maxY, b.Max.Y-1)

	var xs []float64
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		for i, p1 := range pts {
			p2 := pts[(i+1)%len(pts)]
			if p1.Y == p2.Y {
				continue
			}
			// Half-open span [min(y1,y2), max(y1,y2)) so a vertex shared
			// by two edges counts once.
			if (p1.Y <= y && y < p2.Y) || (p2.Y <= y && y < p1.Y) {
				t := float64(y-p1.Y) / float64(p2.Y-p1.Y)
				xs = append(xs, float64(p1.X)+t*float64(p2.X-p1.X))
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := max(int(math.Ceil(xs[i])), b.Min.X)
			x1 := min(int(math.Floor(xs[i+1])), b.Max.X-1)
			for x := x0; x <= x1; x++ {
				img.SetGray(x, y, maskOn)
			}
		}
	}

	for i, p1 := range pts {
		drawLine(img, p1, pts[(i+1)%len(pts)])
	}
}

// drawLine rasterizes the segment from a to b (Bresenham). Out-of-canvas
// pixels are dropped by SetGray.
func drawLine(img *image.Gray, a, b image.Point) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}

	err := dx + dy
	x, y := a.X, a.Y
	for {
		img.SetGray(x, y, maskOn)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
