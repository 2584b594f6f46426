package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")
	ctx := InjectLogger(context.Background(), reqLog)

	WithCtx(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	log := slog.New(NewMultiHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	))

	log.Info("info line")
	log.Warn("warn line", "k", "v")

	assert.Contains(t, a.String(), "info line")
	assert.Contains(t, a.String(), "warn line")
	assert.NotContains(t, b.String(), "info line")
	assert.Contains(t, b.String(), `"k":"v"`)
}

func TestMongoHandlerDocument(t *testing.T) {
	h := (&MongoHandler{}).
		WithAttrs([]slog.Attr{slog.String("request_id", "rid-1"), slog.String("service", "api")}).
		WithGroup("http").(*MongoHandler)

	r := slog.NewRecord(time.Unix(10, 0), slog.LevelInfo, "request", 0)
	r.AddAttrs(slog.Int("status", 200))

	doc := h.document(r)

	assert.Equal(t, "rid-1", doc.RequestID)
	assert.Equal(t, "INFO", doc.Level)
	assert.Equal(t, "request", doc.Msg)
	require.NotNil(t, doc.Attrs)
	assert.Equal(t, "api", doc.Attrs["service"])
	assert.Equal(t, int64(200), doc.Attrs["http.status"])
}
