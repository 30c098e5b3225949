package octree

import "go.uber.org/zap"

// newDefaultLogger returns the logger a tree uses when the caller does not
// supply one via WithPointLogger or WithBoundsLogger. Falls back to a no-op logger if zap's own
// production config cannot build (e.g. no writable stderr), so construction
// never fails because of logging.
func newDefaultLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
