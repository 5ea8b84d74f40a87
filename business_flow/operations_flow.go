package businessflow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/repository"
	"github.com/jasado/jasado-middleware/utils"
	"github.com/sirupsen/logrus"
)

const defaultLogPageSize = 100

// knownTasks are reported even before their first run
var knownTasks = []string{models.TaskCalculateSalesPrices, models.TaskPrepareExports}

// OperationsFlow exposes the operational state of the periodic jobs
type OperationsFlow interface {
	ListLogEntries(ctx context.Context, req *dto.ListLogEntriesRequest) (*dto.ListLogEntriesResponse, error)
	ListTaskStatuses(ctx context.Context) (*dto.ListTaskStatusesResponse, error)
	PurgeLogEntries(ctx context.Context, retentionDays int) (int64, error)
}

// OperationsFlowImpl implements OperationsFlow
type OperationsFlowImpl struct {
	logRepo  repository.LogEntryRepository
	taskRepo repository.TaskStatusRepository
	logger   logrus.FieldLogger
	now      func() time.Time
}

func NewOperationsFlow(logRepo repository.LogEntryRepository, taskRepo repository.TaskStatusRepository, logger logrus.FieldLogger) OperationsFlow {
	return &OperationsFlowImpl{
		logRepo:  logRepo,
		taskRepo: taskRepo,
		logger:   logger,
		now:      utils.UTCNow,
	}
}

func (f *OperationsFlowImpl) ListLogEntries(ctx context.Context, req *dto.ListLogEntriesRequest) (*dto.ListLogEntriesResponse, error) {
	if req == nil {
		req = &dto.ListLogEntriesRequest{}
	}

	var filter models.LogEntryFilter
	if req.Source != "" {
		filter.Source = &req.Source
	}
	if req.Level != "" {
		filter.Level = &req.Level
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLogPageSize
	}

	total, err := f.logRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("LOG_ENTRIES_LOOKUP_FAILED", "Failed to count log entries", err)
	}
	entries, err := f.logRepo.ByFilter(ctx, filter, "created_at DESC, id DESC", limit, max(req.Offset, 0))
	if err != nil {
		return nil, NewBusinessError("LOG_ENTRIES_LOOKUP_FAILED", "Failed to list log entries", err)
	}

	items := make([]dto.LogEntryItem, 0, len(entries))
	for _, e := range entries {
		item := dto.LogEntryItem{
			ID:        e.ID,
			Source:    e.Source,
			Level:     e.Level,
			Message:   e.Message,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if len(e.Fields) > 0 {
			if err := json.Unmarshal(e.Fields, &item.Fields); err != nil {
				f.logger.WithError(err).WithField("log_entry_id", e.ID).Warn("Stored log fields are not valid JSON")
			}
		}
		items = append(items, item)
	}

	return &dto.ListLogEntriesResponse{Total: total, Items: items}, nil
}

func (f *OperationsFlowImpl) ListTaskStatuses(ctx context.Context) (*dto.ListTaskStatusesResponse, error) {
	statuses, err := f.taskRepo.List(ctx)
	if err != nil {
		return nil, NewBusinessError("TASK_STATUS_LOOKUP_FAILED", "Failed to list task statuses", err)
	}

	now := f.now()
	seen := make(map[string]struct{}, len(statuses))
	items := make([]dto.TaskStatusItem, 0, len(statuses)+len(knownTasks))
	for _, s := range statuses {
		seen[s.Name] = struct{}{}
		lastRun := s.LastRun.UTC().Format(time.RFC3339)
		items = append(items, dto.TaskStatusItem{
			Name:      s.Name,
			Succeeded: s.Status,
			LastRun:   &lastRun,
			Due:       s.ShouldRun(now),
		})
	}
	for _, name := range knownTasks {
		if _, ok := seen[name]; ok {
			continue
		}
		items = append(items, dto.TaskStatusItem{Name: name, Due: true})
	}

	return &dto.ListTaskStatusesResponse{Items: items}, nil
}

// PurgeLogEntries removes stored log entries older than retentionDays
func (f *OperationsFlowImpl) PurgeLogEntries(ctx context.Context, retentionDays int) (int64, error) {
	purged, err := f.logRepo.DeleteOlderThan(ctx, utils.DaysAgo(f.now(), retentionDays))
	if err != nil {
		return 0, NewBusinessError("LOG_ENTRIES_PURGE_FAILED", "Failed to purge log entries", err)
	}
	if purged > 0 {
		f.logger.WithField("purged", purged).Info("Old log entries purged")
	}
	return purged, nil
}
