package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogConfig struct {
	Level       string
	Environment string
	ServiceName string
	// Filename enables a rotated JSON log file next to stdout.
	Filename string
}

var log = zap.NewNop()

func Init(config *LogConfig) error {
	level := parseLevel(config.Level)

	var zapConfig zap.Config
	if config.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.TimeKey = "timestamp"
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	fields := zap.Fields(
		zap.String("service", config.ServiceName),
		zap.String("environment", config.Environment),
	)

	var built *zap.Logger
	if config.Filename != "" {
		rotator := &lumberjack.Logger{
			Filename:   config.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}

		var consoleEncoder zapcore.Encoder
		if config.Environment == "production" {
			consoleEncoder = zapcore.NewJSONEncoder(zapConfig.EncoderConfig)
		} else {
			consoleEncoder = zapcore.NewConsoleEncoder(zapConfig.EncoderConfig)
		}

		core := zapcore.NewTee(
			zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(rotator), level),
			zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level),
		)
		built = zap.New(core, zap.AddCaller(), fields)
	} else {
		var err error
		built, err = zapConfig.Build(fields)
		if err != nil {
			return err
		}
	}

	log = built
	zap.ReplaceGlobals(log)
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// L returns the process logger. It is a no-op logger until Init is called.
func L() *zap.Logger {
	return log
}

func Sync() {
	_ = log.Sync()
}

func Info(format string, v ...interface{}) {
	log.Sugar().Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	log.Sugar().Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	log.Sugar().Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	log.Sugar().Warnf(format, v...)
}
