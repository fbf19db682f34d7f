package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a named zap logger. Production environments get JSON output;
// everything else gets the human-readable development encoder.
func New(appEnv, name string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)

	switch appEnv {
	case "production", "staging":
		log, err = zap.NewProduction()
	default:
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	return log.Named(name), nil
}
