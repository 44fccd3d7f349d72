package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestNamedAndWithKeepFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core)).Named("cart").With(zap.String("session_id", "abc"))

	l.Info("item added", zap.Int64("product_id", 7))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "cart", entries[0].LoggerName)
		ctx := entries[0].ContextMap()
		assert.Equal(t, "abc", ctx["session_id"])
		assert.Equal(t, int64(7), ctx["product_id"])
	}
}
