package dto

// ExportBuildResult reports the rows written to the channel export tables
type ExportBuildResult struct {
	Candidates     int    `json:"candidates" example:"17500"`
	AeraRows       int    `json:"aera_rows" example:"9000"`
	WawiboxRows    int    `json:"wawibox_rows" example:"12000"`
	DurationMillis int64  `json:"duration_ms" example:"5300"`
	FinishedAt     string `json:"finished_at" example:"2024-01-15T03:05:00Z"`
}
