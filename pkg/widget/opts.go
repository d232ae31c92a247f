package widget

import (
	"context"

	"go.uber.org/zap"
)

// Option is a Widget's constructor option.
type Option func(*cfg)

type cfg struct {
	ctx     context.Context
	log     *zap.Logger
	metrics Metrics
}

type noopMetrics struct{}

func (noopMetrics) SetPingStatus(uint8) {}
func (noopMetrics) AddPingAttempt(bool) {}
func (noopMetrics) IncSkippedPing()     {}

func defaultCfg() *cfg {
	return &cfg{
		ctx:     context.Background(),
		log:     zap.NewNop(),
		metrics: noopMetrics{},
	}
}

// WithLogger returns option to set the logger. Failure details of
// the remote calls are written to it.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics returns option to attach metric collector.
func WithMetrics(m Metrics) Option {
	return func(c *cfg) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithContext returns option to set the context passed to the Invoker.
// Widget never cancels it by itself.
func WithContext(ctx context.Context) Option {
	return func(c *cfg) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}
