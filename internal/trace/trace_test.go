package trace_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/gitrdm/goflex/internal/trace"
	"github.com/gitrdm/goflex/pkg/term"
)

func TestTraceApplyEmitsLogLine(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	h := term.NewHeap()
	logger := trace.New(log, h)

	fn := h.NewInt(1)
	logger.TraceApply(fn, []term.Handle{h.NewInt(2)})

	if buf.Len() == 0 {
		t.Fatal("expected TraceApply to emit a log line")
	}
}

func TestTraceSignalLogsConditionKinds(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.WarnLevel)

	h := term.NewHeap()
	logger := trace.New(log, h)

	sig := h.NewSignal([]term.Handle{h.NewErrorCondition(h.NewString("boom"))})
	logger.TraceSignal(sig)

	if buf.Len() == 0 {
		t.Fatal("expected TraceSignal to emit a log line")
	}
}

func TestTraceSignalIgnoresNonSignalHandle(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.WarnLevel)

	h := term.NewHeap()
	logger := trace.New(log, h)
	logger.TraceSignal(h.NewInt(1))

	if buf.Len() != 0 {
		t.Fatal("expected TraceSignal to be a no-op on a non-Signal handle")
	}
}

func TestNewDefaultsToAFreshLogger(t *testing.T) {
	h := term.NewHeap()
	logger := trace.New(nil, h)
	if logger.Log == nil {
		t.Fatal("expected New(nil, h) to default to a fresh logrus.Logger")
	}
}
