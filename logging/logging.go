// Package logging provides the advisory sink the core reports search and
// probe events through. Disabled unless explicitly enabled: callers that
// never configure a sink get Nop() and pay only an interface call.
package logging

import "github.com/rs/zerolog"

// Sink is the minimal logging surface the core depends on. It intentionally
// has no notion of "the engine" or "the search" baked in -- callers pass
// whatever key-value pairs are relevant.
type Sink interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, err error, kv ...any)
}

type nopSink struct{}

func (nopSink) Debug(string, ...any)        {}
func (nopSink) Info(string, ...any)         {}
func (nopSink) Warn(string, ...any)         {}
func (nopSink) Error(string, error, ...any) {}

// Nop returns a sink that discards everything, the default when no logger
// is injected.
func Nop() Sink { return nopSink{} }

// zerologSink adapts zerolog.Logger to Sink.
type zerologSink struct {
	logger zerolog.Logger
}

// New wraps a zerolog.Logger as a Sink.
func New(logger zerolog.Logger) Sink { return zerologSink{logger: logger} }

func (s zerologSink) event(base *zerolog.Event, msg string, kv ...any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		base = base.Interface(key, kv[i+1])
	}
	base.Msg(msg)
}

func (s zerologSink) Debug(msg string, kv ...any) { s.event(s.logger.Debug(), msg, kv...) }
func (s zerologSink) Info(msg string, kv ...any)  { s.event(s.logger.Info(), msg, kv...) }
func (s zerologSink) Warn(msg string, kv ...any)  { s.event(s.logger.Warn(), msg, kv...) }
func (s zerologSink) Error(msg string, err error, kv ...any) {
	s.event(s.logger.Error().Err(err), msg, kv...)
}
