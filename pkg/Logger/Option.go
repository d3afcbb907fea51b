package Logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
)

type Option struct {
	LogDir      string
	FileName    string
	Level       zapcore.Level
	MaxSize     int // MB per file before rotation
	MaxBackups  int // rotated files kept
	MaxAge      int // days rotated files kept
	Development bool
}

func (i *Option) fixup() {
	if i.LogDir == "" {
		path, _ := os.Executable()
		i.LogDir = filepath.Join(filepath.Dir(path), "logs")
	}
	if i.FileName == "" {
		i.FileName = filepath.Base(os.Args[0])
	}
	if i.MaxBackups == 0 {
		i.MaxBackups = 5
	}
	if i.MaxSize == 0 {
		i.MaxSize = 100
	}
	if i.MaxAge == 0 {
		i.MaxAge = 7
	}
}

type ModOptions func(option *Option)

func SetMaxSize(MaxSize int) ModOptions {
	return func(option *Option) {
		option.MaxSize = MaxSize
	}
}

func SetMaxBackups(MaxBackups int) ModOptions {
	return func(option *Option) {
		option.MaxBackups = MaxBackups
	}
}

func SetMaxAge(MaxAge int) ModOptions {
	return func(option *Option) {
		option.MaxAge = MaxAge
	}
}

func SetLogFileDir(LogFileDir string) ModOptions {
	return func(option *Option) {
		option.LogDir = LogFileDir
	}
}

func SetFileName(FileName string) ModOptions {
	return func(option *Option) {
		option.FileName = FileName
	}
}

func SetLevelString(Level string) ModOptions {
	return func(option *Option) {
		var l zapcore.Level
		if err := l.Set(Level); err != nil {
			l = zapcore.InfoLevel
		}
		option.Level = l
	}
}

func SetDevelopment(Development bool) ModOptions {
	return func(option *Option) {
		option.Development = Development
	}
}
