package match3

import (
	"errors"
	"fmt"
	"strings"

	"match3battle/internal/util"
)

const DefaultSize = 6

var ErrOutOfBounds = errors.New("position out of bounds")

// Pos addresses a cell; row 0 is the top row.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Adjacent reports whether q is one orthogonal step from p.
func (p Pos) Adjacent(q Pos) bool {
	dr, dc := p.Row-q.Row, p.Col-q.Col
	return (dr == 0 && (dc == 1 || dc == -1)) || (dc == 0 && (dr == 1 || dr == -1))
}

// Grid is a size×size board indexed [row][col]. It is mutated in place and
// keeps the random source used by Refill.
type Grid struct {
	size  int
	cells [][]Tile
	rng   util.Rand
}

// NewGrid fills a board cell by cell, left to right and top to bottom. A draw
// that would complete a run of three with the two cells already placed to its
// left or above is redrawn once, excluding every kind that would complete a run
// there, so the result never contains a run of three.
func NewGrid(size int, rng util.Rand) *Grid {
	if size <= 0 {
		size = DefaultSize
	}
	g := &Grid{size: size, cells: make([][]Tile, size), rng: rng}
	for r := 0; r < size; r++ {
		g.cells[r] = make([]Tile, size)
		for c := 0; c < size; c++ {
			t := Draw(rng)
			forbidden := g.forbiddenAt(r, c)
			for _, k := range forbidden {
				if t.Kind == k {
					t = Draw(rng, forbidden...)
					break
				}
			}
			g.cells[r][c] = t
		}
	}
	return g
}

func (g *Grid) forbiddenAt(r, c int) []Element {
	var out []Element
	if c >= 2 && g.cells[r][c-1].Kind == g.cells[r][c-2].Kind {
		out = append(out, g.cells[r][c-1].Kind)
	}
	if r >= 2 && g.cells[r-1][c].Kind == g.cells[r-2][c].Kind {
		out = append(out, g.cells[r-1][c].Kind)
	}
	return out
}

// FromKinds builds a board from explicit rows. An empty string leaves the cell empty.
func FromKinds(rows [][]Element, rng util.Rand) (*Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, errors.New("empty grid")
	}
	g := &Grid{size: size, cells: make([][]Tile, size), rng: rng}
	for r, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), size)
		}
		g.cells[r] = make([]Tile, size)
		for c, k := range row {
			if k != "" && !k.Valid() {
				return nil, fmt.Errorf("row %d col %d: unknown element %q", r, c, k)
			}
			g.cells[r][c] = Tile{Kind: k}
		}
	}
	return g, nil
}

func (g *Grid) Size() int { return g.size }

func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

func (g *Grid) check(p Pos) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %s on %dx%d grid", ErrOutOfBounds, p, g.size, g.size)
	}
	return nil
}

// At returns the tile at p. It panics if p is outside the grid.
func (g *Grid) At(p Pos) Tile {
	if err := g.check(p); err != nil {
		panic(err)
	}
	return g.cells[p.Row][p.Col]
}

// Swap exchanges two cells. Adjacency is the caller's concern.
func (g *Grid) Swap(a, b Pos) error {
	if err := g.check(a); err != nil {
		return err
	}
	if err := g.check(b); err != nil {
		return err
	}
	g.cells[a.Row][a.Col], g.cells[b.Row][b.Col] = g.cells[b.Row][b.Col], g.cells[a.Row][a.Col]
	return nil
}

// RemoveMatches empties the given cells. Nothing is cleared if any position is out of bounds.
func (g *Grid) RemoveMatches(cells []Pos) error {
	for _, p := range cells {
		if err := g.check(p); err != nil {
			return err
		}
	}
	for _, p := range cells {
		g.cells[p.Row][p.Col] = Tile{}
	}
	return nil
}

// Collapse drops the tiles of every column to the bottom, keeping their order.
func (g *Grid) Collapse() {
	for c := 0; c < g.size; c++ {
		write := g.size - 1
		for r := g.size - 1; r >= 0; r-- {
			if g.cells[r][c].Empty() {
				continue
			}
			if write != r {
				g.cells[write][c] = g.cells[r][c]
				g.cells[r][c] = Tile{}
			}
			write--
		}
	}
}

// Refill draws a fresh tile for every empty cell. New runs are left for the
// next detection pass.
func (g *Grid) Refill() {
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if g.cells[r][c].Empty() {
				g.cells[r][c] = Draw(g.rng)
			}
		}
	}
}

// Empties counts cells without a tile.
func (g *Grid) Empties() int {
	n := 0
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].Empty() {
				n++
			}
		}
	}
	return n
}

// Clone copies the cells. The copy shares the random source.
func (g *Grid) Clone() *Grid {
	out := &Grid{size: g.size, cells: make([][]Tile, g.size), rng: g.rng}
	for r := range g.cells {
		out.cells[r] = append([]Tile(nil), g.cells[r]...)
	}
	return out
}

func (g *Grid) Kinds() [][]Element {
	out := make([][]Element, g.size)
	for r := range g.cells {
		out[r] = make([]Element, g.size)
		for c, t := range g.cells[r] {
			out[r][c] = t.Kind
		}
	}
	return out
}

func (g *Grid) String() string {
	var sb strings.Builder
	for r := range g.cells {
		for c, t := range g.cells[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if t.Empty() {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(t.Kind[0])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
