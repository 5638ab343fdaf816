// Package wlog is the unified logging façade used across plugin and link.
// It wraps the Kratos logging system so the core never takes a dependency on
// a concrete logger implementation — only on the kratos/log.Logger interface.
package wlog

import (
	"os"

	"github.com/go-kratos/kratos/v2/log"
)

// Logger is the process-wide logger. Defaults to a stdout logger so the
// package is useful standalone; embedding hosts should overwrite it with
// their own kratos log.Logger during startup.
var Logger log.Logger = log.NewStdLogger(os.Stdout)

var helper = log.NewHelper(Logger)

// SetLogger replaces the underlying logger and rebuilds the helper. Safe to
// call once during host startup; not safe to call concurrently with active
// dispatch traffic.
func SetLogger(l log.Logger) {
	Logger = l
	helper = log.NewHelper(l)
}

func Debugf(format string, a ...any) { helper.Debugf(format, a...) }
func Infof(format string, a ...any)  { helper.Infof(format, a...) }
func Warnf(format string, a ...any)  { helper.Warnf(format, a...) }
func Errorf(format string, a ...any) { helper.Errorf(format, a...) }
