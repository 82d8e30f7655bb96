package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cafepos/pkg/logger"
)

func TestProductionHandlerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewHandler("production", &buf))

	log.Debug("hidden")
	log.Info("order created", "order_id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "order created", line["msg"])
	assert.EqualValues(t, 7, line["order_id"])
}

func TestExtraHandlersReceiveRecords(t *testing.T) {
	var primary, extra bytes.Buffer
	h := logger.NewHandler("local", &primary, slog.NewTextHandler(&extra, nil))

	slog.New(h).With("request_id", "abc").Info("hello")

	assert.Contains(t, primary.String(), "request_id=abc")
	assert.Contains(t, extra.String(), "msg=hello")
}

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, logger.L, logger.WithCtx(context.Background()))

	tagged := logger.L.With("request_id", "xyz")
	ctx := logger.InjectLogger(context.Background(), tagged)
	assert.Same(t, tagged, logger.WithCtx(ctx))
}
