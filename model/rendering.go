package model

import (
	"github.com/gdamore/tcell/v2"
)

const (
	gridPosBlock = '█'

	// each cell is drawn two terminal columns wide to look roughly square
	cellWidth = 2
)

// TerminalRenderer draws grids as colored blocks on a tcell screen.
//
// The three layers are mixed additively: a cell alive only in the red layer is
// red, alive in red and green is yellow, alive in all three is white.
type TerminalRenderer struct {
	screen tcell.Screen
}

func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// CellColor returns the additive color of the cell at (row, col)
func CellColor(g *Grid, row, col int) tcell.Color {
	var rgb [NumLayers]int32
	for _, layer := range Layers {
		if g.cells[g.index(row, col, layer)] == uint8(Alive) {
			rgb[layer] = 255
		}
	}
	return tcell.NewRGBColor(rgb[Red], rgb[Green], rgb[Blue])
}

// Display renders the grid starting at the given screen row, below any status lines.
// Cells that do not fit on the screen are skipped.
func (r *TerminalRenderer) Display(g *Grid, top int) {
	width, height := r.screen.Size()
	for row := range g.rows {
		y := top + row
		if y >= height {
			break
		}
		for col := range g.cols {
			x := col * cellWidth
			if x+cellWidth > width {
				break
			}
			style := tcell.StyleDefault.Foreground(CellColor(g, row, col)).Background(tcell.ColorBlack)
			for i := range cellWidth {
				r.screen.SetContent(x+i, y, gridPosBlock, nil, style)
			}
		}
	}
}

// Text writes a single line of text at the given screen row
func (r *TerminalRenderer) Text(row int, text string) {
	style := tcell.StyleDefault
	for i, ch := range []rune(text) {
		r.screen.SetContent(i, row, ch, nil, style)
	}
}

// Clear clears the screen
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
}

// Show flushes pending changes to the terminal
func (r *TerminalRenderer) Show() {
	r.screen.Show()
}

// Sync redraws the whole screen, used after a terminal resize
func (r *TerminalRenderer) Sync() {
	r.screen.Sync()
}
