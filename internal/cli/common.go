package cli

import (
	"log/slog"
	"os"

	"github.com/haslund/reorg/internal/engine"
	"github.com/haslund/reorg/internal/fsops"
)

// newEngine creates an engine over the real filesystem.
func newEngine() *engine.Engine {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return engine.New(fsops.NewOSFS(), log)
}
