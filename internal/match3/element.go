package match3

import "match3battle/internal/util"

type Element string

const (
	Fire  Element = "fire"
	Water Element = "water"
	Earth Element = "earth"
	Light Element = "light"
	Dark  Element = "dark"
)

// Elements is the tile catalog in draw order.
var Elements = []Element{Fire, Water, Earth, Light, Dark}

func (e Element) Valid() bool {
	for _, k := range Elements {
		if k == e {
			return true
		}
	}
	return false
}

// Tile is a board token. The zero Tile marks a removed cell awaiting collapse.
type Tile struct {
	Kind Element
}

func (t Tile) Empty() bool { return t.Kind == "" }

// Draw picks a tile uniformly from the catalog minus the excluded kinds.
// If every kind is excluded the whole catalog is used.
func Draw(rng util.Rand, exclude ...Element) Tile {
	pool := Elements
	if len(exclude) > 0 {
		pool = make([]Element, 0, len(Elements))
		for _, e := range Elements {
			skip := false
			for _, x := range exclude {
				if e == x {
					skip = true
					break
				}
			}
			if !skip {
				pool = append(pool, e)
			}
		}
		if len(pool) == 0 {
			pool = Elements
		}
	}
	return Tile{Kind: pool[rng.Intn(len(pool))]}
}
