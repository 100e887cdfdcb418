package match3

// Group is one detected run, or a horizontal run with the vertical runs merged into it.
type Group struct {
	Kind  Element `json:"kind"`
	Cells []Pos   `json:"cells"`
}

func (gr Group) Size() int { return len(gr.Cells) }

// FindMatchGroups scans rows, then columns, for runs of three or more.
//
// A cell is recorded once even when it sits in both a horizontal and a vertical
// run. A vertical run joins the first existing group of the same kind that
// already owns a cell in its column; otherwise it opens a new group. Some L, T
// and cross shapes therefore come back as two groups of the same kind, and
// damage and charge are computed per group, so this merge rule must not change.
func FindMatchGroups(g *Grid) []Group {
	size := g.size
	visited := make([][]bool, size)
	for i := range visited {
		visited[i] = make([]bool, size)
	}
	var groups []Group

	for r := 0; r < size; r++ {
		c := 0
		for c < size-2 {
			kind := g.cells[r][c].Kind
			run := 1
			for k := c + 1; k < size && g.cells[r][k].Kind == kind; k++ {
				run++
			}
			if kind != "" && run >= 3 {
				gr := Group{Kind: kind}
				for i := 0; i < run; i++ {
					if !visited[r][c+i] {
						visited[r][c+i] = true
						gr.Cells = append(gr.Cells, Pos{Row: r, Col: c + i})
					}
				}
				groups = append(groups, gr)
			}
			c += run
		}
	}

	for c := 0; c < size; c++ {
		r := 0
		for r < size-2 {
			kind := g.cells[r][c].Kind
			run := 1
			for k := r + 1; k < size && g.cells[k][c].Kind == kind; k++ {
				run++
			}
			if kind != "" && run >= 3 {
				idx := groupInColumn(groups, kind, c)
				if idx < 0 {
					groups = append(groups, Group{Kind: kind})
					idx = len(groups) - 1
				}
				for i := 0; i < run; i++ {
					if !visited[r+i][c] {
						visited[r+i][c] = true
						groups[idx].Cells = append(groups[idx].Cells, Pos{Row: r + i, Col: c})
					}
				}
				if len(groups[idx].Cells) == 0 {
					groups = groups[:idx]
				}
			}
			r += run
		}
	}
	return groups
}

func groupInColumn(groups []Group, kind Element, col int) int {
	for i, gr := range groups {
		if gr.Kind != kind {
			continue
		}
		for _, p := range gr.Cells {
			if p.Col == col {
				return i
			}
		}
	}
	return -1
}

// Cells flattens groups into one position list.
func Cells(groups []Group) []Pos {
	var out []Pos
	for _, gr := range groups {
		out = append(out, gr.Cells...)
	}
	return out
}
