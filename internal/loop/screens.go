package loop

import (
	"fmt"

	"github.com/tomz197/collisions/internal/draw"
	"github.com/tomz197/collisions/internal/world"
)

const helpText = "q quit  space pause  n step  r restart"

// Columns and rows kept free around the canvas: a border on each side and
// one HUD line under the bottom border.
const (
	reserveCols = 2
	reserveRows = 3
)

// drawFrame draws the boundary, the particles and the HUD, then flushes.
func drawFrame(state *State, canvas *draw.Canvas, cw *draw.ChunkWriter) error {
	cw.WriteString("\033[H\033[2J")
	canvas.Clear()

	b := state.World.Boundary
	canvas.DrawRect(b.X(), b.Y(), b.Width(), b.Height(), state.Config.BoundaryColor())

	for _, p := range state.World.Particles {
		pos := p.Position()
		canvas.FillCircle(pos.X(), pos.Y(), p.Radius(), p.Color())
	}

	if err := canvas.Render(cw); err != nil {
		return err
	}
	if err := canvas.RenderBorder(cw); err != nil {
		return err
	}

	drawHUD(state, canvas, cw)

	return cw.Flush()
}

// drawHUD writes the status line below the canvas border.
func drawHUD(state *State, canvas *draw.Canvas, cw *draw.ChunkWriter) {
	line := hudText(state.World.Stats(), state.Paused)
	if limit := canvas.TerminalWidth() + reserveCols; len(line) > limit {
		line = line[:limit]
	}
	cw.WriteAt(1, canvas.TerminalHeight()+2, line)
}

// hudText formats the counters and conserved totals.
func hudText(st world.Stats, paused bool) string {
	status := "running"
	if paused {
		status = "paused"
	}
	return fmt.Sprintf("tick %d  collisions %d  energy %.2f  |p| %.2f  [%s]  %s",
		st.Tick, st.Collisions, st.Energy, st.Momentum.Magnitude(), status, helpText)
}
