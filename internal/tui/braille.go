package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
)

type brailleBuf struct {
	w, h int        // in cells
	m    [][]uint8  // per-cell 8-bit mask
	col  [][]string // per-cell hex color, last writer wins
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	col := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		col[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, col: col}
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, hex string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[mx%2][my%4]
	b.col[cy][cx] = hex
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, hex string) {
	wMic, hMic := b.w*2, b.h*4
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= wMic && x1 >= wMic) || (y0 >= hMic && y1 >= hMic) {
		return
	}
	if abs(x1-x0)+abs(y1-y0) > 8*(wMic+hMic) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, hex)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *brailleBuf) strokeRing(r orb.Ring, c colorful.Color) {
	hex := c.Hex()
	for i := 0; i+1 < len(r); i++ {
		b.drawLineMicro(round(r[i][0]), round(r[i][1]), round(r[i+1][0]), round(r[i+1][1]), hex)
	}
}

// fillRings fills with the even-odd rule over all rings together, so holes
// stay empty.
func (b *brailleBuf) fillRings(rings []orb.Ring, c colorful.Color) {
	hex := c.Hex()
	wMic, hMic := b.w*2, b.h*4
	var bound orb.Bound
	for i, r := range rings {
		if i == 0 {
			bound = r.Bound()
		} else {
			bound = bound.Union(r.Bound())
		}
	}
	y0 := max(0, int(math.Floor(bound.Min[1])))
	y1 := min(hMic-1, int(math.Ceil(bound.Max[1])))
	xs := make([]float64, 0, 16)
	for yMic := y0; yMic <= y1; yMic++ {
		y := float64(yMic) + 0.5
		xs = xs[:0]
		for _, r := range rings {
			for i := 0; i+1 < len(r); i++ {
				a, e := r[i], r[i+1]
				if (a[1] <= y && e[1] > y) || (e[1] <= y && a[1] > y) {
					t := (y - a[1]) / (e[1] - a[1])
					xs = append(xs, a[0]+t*(e[0]-a[0]))
				}
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xa := max(0, round(xs[i]))
			xb := min(wMic-1, round(xs[i+1]))
			for xMic := xa; xMic <= xb; xMic++ {
				b.setPixel(xMic, yMic, hex)
			}
		}
	}
}

// toLines renders each row, styling runs of equal color once.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		run := []rune{}
		runHex := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runHex == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runHex)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			r, hex := ' ', ""
			if mask != 0 {
				r, hex = rune(0x2800+int(mask)), b.col[y][x]
			}
			if hex != runHex {
				flush()
				runHex = hex
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
