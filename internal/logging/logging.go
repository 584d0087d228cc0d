package logging

import "go.uber.org/zap"

type Logger = zap.SugaredLogger

// New returns the production logger used by the headless server paths.
// The TUI never writes to stdout; it uses Nop.
func New() *Logger {
	l, _ := zap.NewProduction()
	return l.Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return zap.NewNop().Sugar()
}
