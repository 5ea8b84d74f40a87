package dto

// ListLogEntriesRequest filters stored operational logs
type ListLogEntriesRequest struct {
	Source string `json:"source" query:"source" validate:"omitempty,oneof=pricing exports scheduler"`
	Level  string `json:"level" query:"level" validate:"omitempty,oneof=panic fatal error warning info"`
	Limit  int    `json:"limit" query:"limit" validate:"omitempty,min=1,max=500"`
	Offset int    `json:"offset" query:"offset" validate:"omitempty,min=0"`
}

type LogEntryItem struct {
	ID        uint           `json:"id" example:"1"`
	Source    string         `json:"source" example:"pricing"`
	Level     string         `json:"level" example:"info"`
	Message   string         `json:"message" example:"Sales prices calculated successfully"`
	Fields    map[string]any `json:"fields,omitempty"`
	CreatedAt string         `json:"created_at" example:"2024-01-15T03:01:12Z"`
}

type ListLogEntriesResponse struct {
	Total int64          `json:"total"`
	Items []LogEntryItem `json:"items"`
}

// TaskStatusItem is the gate state of a periodic task
type TaskStatusItem struct {
	Name      string  `json:"name" example:"calculate_sales_prices"`
	Succeeded bool    `json:"succeeded" example:"true"`
	LastRun   *string `json:"last_run,omitempty" example:"2024-01-15T03:01:12Z"`
	Due       bool    `json:"due" example:"false"`
}

type ListTaskStatusesResponse struct {
	Items []TaskStatusItem `json:"items"`
}
