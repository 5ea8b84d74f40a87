package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/jasado/jasado-middleware/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryLogWriter struct {
	mu      sync.Mutex
	entries []*models.LogEntry
	err     error
}

func (w *memoryLogWriter) Save(_ context.Context, entry *models.LogEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.entries = append(w.entries, entry)
	return nil
}

func TestLogSinkHookPersistsSourcedEntries(t *testing.T) {
	writer := &memoryLogWriter{}
	logger, _ := test.NewNullLogger()
	logger.AddHook(NewLogSinkHook(writer))

	logger.WithFields(logrus.Fields{
		LogSourceField:    models.LogSourcePricing,
		"updated_products": 12,
	}).WithError(errors.New("boom")).Error("Sales price calculation failed")
	logger.WithField("component", "http").Info("not persisted")
	logger.WithField(LogSourceField, models.LogSourcePricing).Debug("below hook levels")

	require.Len(t, writer.entries, 1)
	entry := writer.entries[0]
	assert.Equal(t, models.LogSourcePricing, entry.Source)
	assert.Equal(t, "error", entry.Level)
	assert.Equal(t, "Sales price calculation failed", entry.Message)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(entry.Fields, &fields))
	assert.Equal(t, "boom", fields["error"])
	assert.EqualValues(t, 12, fields["updated_products"])
	assert.NotContains(t, fields, LogSourceField)
}

func TestLogSinkHookReturnsWriteErrors(t *testing.T) {
	writer := &memoryLogWriter{err: errors.New("db down")}
	hook := NewLogSinkHook(writer)

	logger, _ := test.NewNullLogger()
	entry := logrus.NewEntry(logger).WithField(LogSourceField, models.LogSourceExports)
	entry.Message = "Product exports prepared successfully"
	entry.Level = logrus.InfoLevel

	err := hook.Fire(entry)
	assert.ErrorContains(t, err, "db down")
}
