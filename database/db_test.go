package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogger_WritesThroughZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	gl := newGormLogger(zap.New(core), gormlogger.Warn)

	gl.Error(context.Background(), "bad column %s", "rating")
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return `SELECT * FROM "media"`, 0
	}, errors.New("connection reset"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "gorm", entries[0].LoggerName)
	assert.Contains(t, entries[0].Message, "bad column rating")
	assert.Contains(t, entries[1].Message, "connection reset")
}

func TestGormLogger_IgnoresRecordNotFound(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	gl := newGormLogger(zap.New(core), gormlogger.Warn)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return `SELECT * FROM "media_types" WHERE owner_id = 42`, 0
	}, gorm.ErrRecordNotFound)

	assert.Zero(t, logs.Len())
}

func TestGormLogger_InfoOnlyInDevelopment(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	trace := func() (string, int64) { return `SELECT 1`, 1 }

	newGormLogger(zap.New(core), gormlogger.Warn).Trace(context.Background(), time.Now(), trace, nil)
	assert.Zero(t, logs.Len())

	newGormLogger(zap.New(core), gormlogger.Info).Trace(context.Background(), time.Now(), trace, nil)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "SELECT 1")
}
