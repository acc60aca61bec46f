// Package loop drives an interactive simulation in a raw-mode terminal.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/collisions/internal/config"
	"github.com/tomz197/collisions/internal/draw"
	"github.com/tomz197/collisions/internal/input"
	"github.com/tomz197/collisions/internal/world"
)

// Options configures Run.
type Options struct {
	Config       config.Config
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Logger       *zap.Logger       // Defaults to a no-op logger
	MaxTicks     uint64            // Stop after this many ticks; 0 runs until quit
}

// Run starts the Input → Update → Draw cycle. It returns when the user
// quits, ctx is cancelled, or MaxTicks is reached.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	cfg := opts.Config

	seed := world.ResolveSeed(cfg.Seed)
	state, err := NewState(cfg, seed)
	if err != nil {
		return err
	}
	logger.Info("simulation started",
		zap.Uint64("seed", seed),
		zap.Int("particles", len(state.World.Particles)),
		zap.Int("tick_rate", cfg.TickRate),
	)

	stream := input.StartStream(r)
	canvas := draw.NewScaledCanvas(1, 1, cfg.View.Width, cfg.View.Height)
	chunkWriter := draw.NewChunkWriter(w, 0, 0)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	defer draw.ResetStyle(w)
	draw.ClearScreen(w)

	frameTime := cfg.TickDuration()
	inputClosed := false

	for state.Running {
		if err := ctx.Err(); err != nil {
			logger.Info("simulation cancelled", zap.Uint64("tick", state.World.Tick()))
			break
		}
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		inp := input.ReadInput(stream)
		if inp.Closed && !inputClosed {
			inputClosed = true
			logger.Debug("input stream closed")
		}
		if state.ApplyInput(inp) {
			if err := state.Restart(); err != nil {
				return err
			}
			logger.Info("simulation restarted", zap.Uint64("seed", state.World.Seed()))
		}
		if !state.Running {
			break
		}

		// ===== UPDATE PHASE =====
		if state.ShouldAdvance() {
			advance(state, logger)
		}
		updateScreen(canvas, chunkWriter, termSizeFunc, logger)

		// ===== DRAW PHASE =====
		if err := drawFrame(state, canvas, chunkWriter); err != nil {
			return err
		}

		if opts.MaxTicks > 0 && state.World.Tick() >= opts.MaxTicks {
			break
		}

		// ===== FRAME TIMING =====
		if elapsed := time.Since(frameStart); elapsed < frameTime {
			select {
			case <-ctx.Done():
			case <-time.After(frameTime - elapsed):
			}
		}
	}

	st := state.World.Stats()
	logger.Info("simulation stopped",
		zap.Uint64("tick", st.Tick),
		zap.Uint64("collisions", st.Collisions),
		zap.Float64("energy", st.Energy),
	)

	draw.ClearScreen(w)
	return nil
}

// advance steps the world once and logs degenerate contacts and a
// once-per-second summary at debug level.
func advance(state *State, logger *zap.Logger) {
	pairs := state.World.Advance()
	if pairs.Degenerate > 0 {
		logger.Warn("skipped degenerate contacts",
			zap.Uint64("tick", state.World.Tick()),
			zap.Int("count", pairs.Degenerate),
		)
	}

	rate := uint64(max(state.Config.TickRate, 1))
	if state.World.Tick()%rate == 0 && logger.Core().Enabled(zap.DebugLevel) {
		st := state.World.Stats()
		logger.Debug("tick",
			zap.Uint64("tick", st.Tick),
			zap.Uint64("collisions", st.Collisions),
			zap.Float64("energy", st.Energy),
			zap.Float64("momentum", st.Momentum.Magnitude()),
			zap.Int("escaped", st.Escaped),
		)
	}
}

// updateScreen fits the canvas to the current terminal size.
func updateScreen(canvas *draw.Canvas, cw *draw.ChunkWriter, termSizeFunc draw.TermSizeFunc, logger *zap.Logger) {
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		logger.Debug("terminal size unavailable", zap.Error(err))
		return
	}
	layout := draw.FitAspect(termWidth, termHeight, canvas.LogicalWidth(), canvas.LogicalHeight(), reserveCols, reserveRows)
	canvas.ApplyLayout(layout)
	cw.SetOffset(layout.OffsetCol, layout.OffsetRow)
}
