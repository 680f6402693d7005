package nvram

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hupe1980/nvram/persistence"
	"github.com/stretchr/testify/assert"
)

func TestLogger_Operations(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).WithStore("nvram.blk")
	ctx := context.Background()

	l.LogLoad(ctx, 40, errors.New("missing"))
	l.LogValidation(ctx, persistence.NewHeader(1), persistence.NewHeader(2), persistence.ErrVersionMismatch)
	l.LogArm(ctx, nil)
	l.LogSave(ctx, 40, nil)

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN","msg":"block load failed: default values will be used"`)
	assert.Contains(t, out, `"level":"ERROR","msg":"block validation failed: store will not be updated"`)
	assert.Contains(t, out, `"msg":"save hook armed"`)
	assert.Contains(t, out, `"level":"INFO","msg":"block saved"`)
	assert.Contains(t, out, `"store":"nvram.blk"`)
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	l.LogLoad(context.Background(), 40, nil)
	l.LogSave(context.Background(), 40, nil)
	assert.Empty(t, buf.String())
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	l.LogSave(context.Background(), 8, errors.New("ignored"))
	assert.NotNil(t, l.WithStore("x").Logger)
}

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	m.RecordLoad(40, 2*time.Millisecond, nil)
	m.RecordLoad(40, 4*time.Millisecond, errors.New("short"))
	m.RecordValidation(nil)
	m.RecordValidation(persistence.ErrFormatMismatch)
	m.RecordSave(40, time.Millisecond, nil)

	s := m.GetStats()
	assert.Equal(t, int64(2), s.LoadCount)
	assert.Equal(t, int64(1), s.LoadErrors)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), s.LoadAvgNanos)
	assert.Equal(t, int64(1), s.ValidationErrors)
	assert.Equal(t, int64(1), s.SaveCount)
	assert.Equal(t, int64(0), s.SaveErrors)
	assert.Equal(t, int64(40), s.BytesWritten)

	var noop MetricsCollector = NoopMetricsCollector{}
	noop.RecordSave(1, 0, nil)
}
