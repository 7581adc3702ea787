// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger
	sugar  *zap.SugaredLogger
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

var ProviderSet = wire.NewSet(NewLog)

const (
	OutputStdout = "stdout"
	OutputFile   = "file"

	FormatConsole = "console"
	FormatJSON    = "json"
)

// Conf is the log section of the config.
type Conf struct {
	Output   string // stdout or file
	Format   string // console or json
	Path     string
	Filename string
	Level    string
	// rotation, file output only
	KeepDays   int
	RotateSize int // MB
	RotateNum  int
}

func SetDefaults() *Conf {
	return &Conf{
		Output:     OutputStdout,
		Format:     FormatConsole,
		Path:       "./logs",
		Filename:   defaultFilename,
		Level:      "INFO",
		KeepDays:   7,
		RotateSize: 100,
		RotateNum:  10,
	}
}

// Validate rejects unknown outputs and formats and fills rotation
// defaults for file output.
func (c *Conf) Validate() error {
	switch c.Output {
	case "", OutputStdout:
	case OutputFile:
		if c.Path == "" {
			return fmt.Errorf("log path is required when output is %q", OutputFile)
		}
		if c.RotateSize <= 0 {
			c.RotateSize = 100
		}
		if c.RotateNum <= 0 {
			c.RotateNum = 10
		}
		if c.KeepDays <= 0 {
			c.KeepDays = 7
		}
	default:
		return fmt.Errorf("unknown log output %q", c.Output)
	}
	switch c.Format {
	case "", FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.Format)
	}
	return nil
}

// NewLog replaces the global logger and returns it.
func NewLog(conf *Conf) (*zap.Logger, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid log config: %w", err)
	}

	var out zapcore.WriteSyncer
	if conf.Output == OutputFile {
		out = getFileLogWriter(conf)
	} else {
		out = zapcore.AddSync(os.Stdout)
	}
	level.SetLevel(parseLogLevel(conf.Level))
	newLogger := zap.New(newCore(conf.Format, out), zap.AddCallerSkip(1), zap.AddCaller())

	mu.Lock()
	logger = newLogger
	sugar = newLogger.Sugar()
	mu.Unlock()

	sugar.Debugw("log initialized",
		"output", conf.Output,
		"format", conf.Format,
		"level", level.Level().String(),
	)
	return newLogger, nil
}

func Init(conf *Conf) error {
	_, err := NewLog(conf)
	return err
}

// SetLevel changes the level of the running logger, used on config reload.
func SetLevel(l string) {
	level.SetLevel(parseLogLevel(l))
}

func GetLevel() zapcore.Level {
	return level.Level()
}

// GetLogger returns the global sugared logger, initializing a stdout logger on first use.
func GetLogger() *zap.SugaredLogger {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	if s != nil {
		return s
	}
	if err := Init(SetDefaults()); err != nil {
		return zap.NewNop().Sugar()
	}
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if logger == nil {
		return nil
	}
	return logger.Sync()
}

func newCore(format string, out zapcore.WriteSyncer) zapcore.Core {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	var encoder zapcore.Encoder
	if format == FormatJSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewCore(encoder, out, level)
}

// parseLogLevel accepts zap level names in any case plus WARNING; anything
// else is INFO.
func parseLogLevel(l string) zapcore.Level {
	l = strings.ToLower(strings.TrimSpace(l))
	if l == "warning" {
		return zapcore.WarnLevel
	}
	lvl, err := zapcore.ParseLevel(l)
	if err != nil || l == "" {
		return zapcore.InfoLevel
	}
	return lvl
}
