package Logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger = new(Logger)
	opt    = new(Option)

	consoleWS = zapcore.Lock(os.Stdout)
)

type Logger struct {
	Opt       *Option
	inited    bool
	log       *zap.Logger
	zapConfig zap.Config
}

func GetLogger() *zap.Logger {
	if !logger.inited {
		_ = Init()
	}
	return logger.log
}

func Init(opts ...ModOptions) (err error) {
	if logger.inited {
		logger.log.Info("[Logger] already inited")
		return nil
	}
	for _, item := range opts {
		item(opt)
	}
	opt.fixup()
	logger.Opt = opt
	if opt.Development {
		logger.zapConfig = zap.NewDevelopmentConfig()
	} else {
		logger.zapConfig = zap.NewProductionConfig()
	}
	logger.zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logger.zapConfig.EncoderConfig.EncodeTime = timeEncoder
	logger.zapConfig.DisableStacktrace = true
	logger.zapConfig.Level.SetLevel(opt.Level)
	if err = logger.init(); err != nil {
		return
	}
	logger.inited = true
	return nil
}

func (l *Logger) init() error {
	var err error
	l.log, err = l.zapConfig.Build(l.cores())
	if err != nil {
		return err
	}
	return nil
}

func (l *Logger) fileSyncer() zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(l.Opt.LogDir, fmt.Sprintf("%s.log", l.Opt.FileName)),
		MaxSize:    l.Opt.MaxSize,
		MaxAge:     l.Opt.MaxAge,
		MaxBackups: l.Opt.MaxBackups,
		LocalTime:  true,
		Compress:   false,
	})
}

func (l *Logger) cores() zap.Option {
	priority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= l.zapConfig.Level.Level()
	})
	var cores []zapcore.Core
	if l.Opt.Development {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = timeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(consoleEncoder, consoleWS, priority))
	} else {
		fileEncoder := zapcore.NewJSONEncoder(l.zapConfig.EncoderConfig)
		cores = append(cores, zapcore.NewCore(fileEncoder, l.fileSyncer(), priority))
	}
	return zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(cores...)
	})
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05"))
}
