package logger

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Diagnostic is a severity-tagged message recorded for a restore result.
type Diagnostic struct {
	Level   zerolog.Level
	Message string
}

// IsError reports whether the diagnostic is error severity or worse.
func (d Diagnostic) IsError() bool {
	return d.Level >= zerolog.ErrorLevel && d.Level < zerolog.NoLevel
}

// Collector is a zerolog hook that records warnings and errors as diagnostics.
// It is safe for concurrent use.
type Collector struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

// Run implements zerolog.Hook.
func (c *Collector) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if level < zerolog.WarnLevel || level >= zerolog.NoLevel {
		return
	}
	c.mu.Lock()
	c.diagnostics = append(c.diagnostics, Diagnostic{Level: level, Message: msg})
	c.mu.Unlock()
}

// Diagnostics returns a copy of the recorded diagnostics in emission order.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// HasErrors reports whether any error diagnostic was recorded.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.diagnostics {
		if d.IsError() {
			return true
		}
	}
	return false
}

// Attach returns a child of log that also feeds c. A disabled log is replaced by
// one that discards output, so diagnostics are still recorded.
func (c *Collector) Attach(log *zerolog.Logger) zerolog.Logger {
	if log == nil || log.GetLevel() == zerolog.Disabled {
		discard := zerolog.New(io.Discard)
		return discard.Hook(c)
	}
	return log.Hook(c)
}
