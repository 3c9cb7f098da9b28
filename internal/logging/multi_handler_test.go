package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingHandler struct {
	handled int
	fail    bool
	level   slog.Level
}

func (h *countingHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *countingHandler) Handle(context.Context, slog.Record) error {
	h.handled++
	if h.fail {
		return errors.New("sink unavailable")
	}
	return nil
}

func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandlerDeliversPastFailingSink(t *testing.T) {
	broken := &countingHandler{fail: true}
	healthy := &countingHandler{}
	m := NewMultiHandler(broken, healthy)

	record := slog.NewRecord(time.Now(), slog.LevelError, "db unreachable", 0)
	err := m.Handle(context.Background(), record)

	assert.Error(t, err)
	assert.Equal(t, 1, broken.handled)
	assert.Equal(t, 1, healthy.handled)
}

func TestMultiHandlerSkipsSinksBelowLevel(t *testing.T) {
	errorsOnly := &countingHandler{level: slog.LevelError}
	everything := &countingHandler{level: slog.LevelDebug}
	m := NewMultiHandler(errorsOnly, everything)

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "request served", 0)
	assert.NoError(t, m.Handle(context.Background(), record))

	assert.Equal(t, 0, errorsOnly.handled)
	assert.Equal(t, 1, everything.handled)

	assert.True(t, m.Enabled(context.Background(), slog.LevelInfo))
}
