package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jasado/jasado-middleware/models"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// LogSourceField is the logrus field that marks an entry for persistence.
const LogSourceField = "source"

const logSinkWriteTimeout = 5 * time.Second

// LogSinkHook persists log entries that carry a source field into the
// log_entries table so operators can read run outcomes from the admin API.
// Entries are written on a fresh context and never join a caller transaction.
type LogSinkHook struct {
	repo   LogEntryWriter
	levels []logrus.Level
}

// LogEntryWriter is the part of the log entry repository the hook needs.
type LogEntryWriter interface {
	Save(ctx context.Context, entry *models.LogEntry) error
}

func NewLogSinkHook(repo LogEntryWriter) *LogSinkHook {
	return &LogSinkHook{
		repo: repo,
		levels: []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
			logrus.WarnLevel,
			logrus.InfoLevel,
		},
	}
}

func (h *LogSinkHook) Levels() []logrus.Level {
	return h.levels
}

func (h *LogSinkHook) Fire(entry *logrus.Entry) error {
	source, ok := entry.Data[LogSourceField].(string)
	if !ok || source == "" {
		return nil
	}

	record := &models.LogEntry{
		Source:    source,
		Level:     entry.Level.String(),
		Message:   entry.Message,
		CreatedAt: entry.Time.UTC(),
	}
	if fields := sinkFields(entry.Data); len(fields) > 0 {
		raw, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("failed to encode log fields: %w", err)
		}
		record.Fields = datatypes.JSON(raw)
	}

	ctx, cancel := context.WithTimeout(context.Background(), logSinkWriteTimeout)
	defer cancel()
	if err := h.repo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to persist log entry: %w", err)
	}
	return nil
}

// sinkFields copies entry data without the source marker. Errors are stored
// as their message.
func sinkFields(data logrus.Fields) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if k == LogSourceField {
			continue
		}
		if err, isErr := v.(error); isErr {
			out[k] = err.Error()
			continue
		}
		out[k] = v
	}
	return out
}
