// Package logging provides category-scoped structured logging for
// cellforge, built on zap. The core is a pure library and stays silent by
// default: every category resolves to a nop logger until logging is
// enabled, either programmatically via Configure or by setting
// CELLFORGE_DEBUG=1 in the environment.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category identifies a cellforge subsystem.
type Category string

const (
	CategoryAttach   Category = "attach"   // pushout construction
	CategorySkeletal Category = "skeletal" // skeleton realization, inclusions
	CategoryCover    Category = "cover"    // closed-cover gluing
	CategoryJar      Category = "jar"      // homotopy extension
	CategoryVerify   Category = "verify"   // datalog law verification
	CategoryCLI      Category = "cli"      // command line entry points
)

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	loggers = map[Category]*zap.Logger{}
)

func init() {
	if os.Getenv("CELLFORGE_DEBUG") == "1" {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		if l, err := cfg.Build(); err == nil {
			root = l
		}
	}
}

// Configure installs a root logger. Passing nil restores the nop logger.
func Configure(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	root = l
	loggers = map[Category]*zap.Logger{}
}

// For returns the logger for a category. Loggers are cached per category
// and carry the category as a structured field.
func For(c Category) *zap.Logger {
	mu.RLock()
	if l, ok := loggers[c]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[c]; ok {
		return l
	}
	l := root.With(zap.String("category", string(c)))
	loggers[c] = l
	return l
}
