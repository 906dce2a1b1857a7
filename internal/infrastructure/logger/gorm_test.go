package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

type sqlStateErr struct{ code string }

func (e sqlStateErr) Error() string    { return "constraint " + e.code }
func (e sqlStateErr) SQLState() string { return e.code }

func TestGormLogger_LogMode(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	gormLog := NewGormLogger(zap.New(core), gormlogger.Info, 0)

	newLogger, ok := gormLog.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Info, gormLog.level)
	assert.Equal(t, gormlogger.Warn, newLogger.level)
}

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "UPDATE warehouse_stock SET quantity = quantity + 1", 1 }

	t.Run("logs SQL errors", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Error, 0)

		gl.Trace(WithRequestID(context.Background(), "r1"), time.Now(), query, errors.New("connection refused"))

		logs := recorded.FilterMessage("SQL error").All()
		require.Len(t, logs, 1)
		assert.Equal(t, "r1", logs[0].ContextMap()["request_id"])
	})

	t.Run("ignores record not found", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Error, 0)

		gl.Trace(context.Background(), time.Now(), query, gormlogger.ErrRecordNotFound)
		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("downgrades constraint violations to debug", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Error, 0)

		gl.Trace(context.Background(), time.Now(), query, sqlStateErr{code: "23505"})
		assert.Equal(t, 0, recorded.FilterMessage("SQL error").Len())
		assert.Equal(t, 1, recorded.FilterMessage("SQL constraint").Len())
	})

	t.Run("warns on slow queries", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn, time.Millisecond)

		gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
		require.Equal(t, 1, recorded.Len())
		assert.Equal(t, zapcore.WarnLevel, recorded.All()[0].Level)
	})

	t.Run("info level logs every statement at debug", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Info, 0)

		gl.Trace(WithUser(context.Background(), "u1", "b1"), time.Now(), query, nil)
		require.Equal(t, 1, recorded.Len())
		entry := recorded.All()[0]
		assert.Equal(t, zapcore.DebugLevel, entry.Level)
		assert.Equal(t, "b1", entry.ContextMap()["branch_id"])
	})

	t.Run("warn level skips fast statements", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn, time.Minute)

		gl.Trace(context.Background(), time.Now(), query, nil)
		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Silent, 0)

		gl.Trace(context.Background(), time.Now(), query, errors.New("x"))
		assert.Equal(t, 0, recorded.Len())
	})
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, GormLevel("silent"))
	assert.Equal(t, gormlogger.Error, GormLevel("ERROR"))
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, GormLevel("unknown"))
}
