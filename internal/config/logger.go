package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger from the logging section.
//
//	logging.level   debug | info | warn | error   (default info)
//	logging.format  json | console                (default json)
//	logging.output  stdout | stderr | <file path> (default stderr)
func NewLogger(v *viper.Viper) (*zap.Logger, error) {
	level := strings.ToLower(v.GetString("logging.level"))
	if level == "" {
		level = "info"
	}
	format := strings.ToLower(v.GetString("logging.format"))

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json", "":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q: must be \"json\" or \"console\"", format)
	}

	if out := v.GetString("logging.output"); out != "" {
		cfg.OutputPaths = []string{out}
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	return cfg.Build(zap.Fields(zap.String("app", "storefront")))
}
