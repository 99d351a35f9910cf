// Package trace implements eval.Tracer against logrus: structured fields
// describing one term evaluation event (an Apply dispatch, a Signal
// surfacing), logged the direct-logrus-call way synnergy-network's
// walletserver/middleware/logger.go does.
package trace

import (
	"github.com/sirupsen/logrus"

	"github.com/gitrdm/goflex/pkg/term"
)

// Logger implements eval.Tracer by emitting a structured logrus entry per
// Apply dispatch and per Signal produced. It holds the Heap its traced
// handles belong to, since Tracer's methods receive bare Handles.
type Logger struct {
	Log  *logrus.Logger
	Heap *term.Heap
}

// New builds a Logger writing to log, or a fresh default logrus.Logger if
// log is nil.
func New(log *logrus.Logger, h *term.Heap) *Logger {
	if log == nil {
		log = logrus.New()
	}
	return &Logger{Log: log, Heap: h}
}

func (l *Logger) TraceApply(fn term.Handle, args []term.Handle) {
	entry := l.Log.WithField("fn", l.describe(fn))
	entry.WithField("argc", len(args)).Debug("apply")
}

func (l *Logger) TraceSignal(sig term.Handle) {
	t := l.Heap.Get(sig)
	if t == nil || t.Kind() != term.Signal {
		return
	}
	conditions := t.SignalConditions()
	kinds := make([]string, len(conditions))
	for i, c := range conditions {
		ct := l.Heap.Get(c)
		if ct != nil && ct.Kind() == term.Condition {
			kinds[i] = ct.Condition().Kind.String()
		} else {
			kinds[i] = "?"
		}
	}
	l.Log.WithField("conditions", kinds).Warn("signal")
}

func (l *Logger) describe(h term.Handle) string {
	t := l.Heap.Get(h)
	if t == nil {
		return "Null"
	}
	return t.Kind().String()
}
