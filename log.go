package kinetic

import "go.uber.org/zap"

// NewLogger builds the logger the world uses for step diagnostics. Worlds
// default to a nop logger; hosts that want visibility pass one in through
// World.SetLogger.
func NewLogger(development bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
