package vmem

import (
	"log/slog"
	"os"
)

// logger is only ever touched at construction time. The translation
// hot path (Read, Write, the walker, the allocator) does no logging;
// this logger exists for the one place an operator would want a line:
// bringing a Translator up.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
})).With("component", "vmem")
