// Package logging bridges zap to the Temporal SDK's logger interface.
package logging

import (
	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
)

// ZapAdapter implements log.Logger on top of a zap logger.
type ZapAdapter struct {
	zl *zap.SugaredLogger
}

var _ log.Logger = (*ZapAdapter)(nil)

// NewZapAdapter wraps a zap logger for use as the Temporal client logger.
// The caller skip makes call sites report their own location rather than
// this adapter's.
func NewZapAdapter(zl *zap.Logger) *ZapAdapter {
	return &ZapAdapter{zl: zl.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *ZapAdapter) Debug(msg string, keyvals ...interface{}) {
	l.zl.Debugw(msg, keyvals...)
}

func (l *ZapAdapter) Info(msg string, keyvals ...interface{}) {
	l.zl.Infow(msg, keyvals...)
}

func (l *ZapAdapter) Warn(msg string, keyvals ...interface{}) {
	l.zl.Warnw(msg, keyvals...)
}

func (l *ZapAdapter) Error(msg string, keyvals ...interface{}) {
	l.zl.Errorw(msg, keyvals...)
}
