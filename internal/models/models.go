package models

import "time"

// Source is a catalog entry for a named dashboard data feed.
type Source struct {
	SourceID        string     `db:"source_id" json:"sourceId"`
	Name            string     `db:"name" json:"name"`
	Category        string     `db:"category" json:"category"`
	Mode            string     `db:"mode" json:"mode"`
	AcceptedFormats string     `db:"accepted_formats" json:"-"`
	RefreshCadence  string     `db:"refresh_cadence" json:"refreshCadence"`
	LastRefresh     *time.Time `db:"last_refresh" json:"lastRefresh"`
	RowCount        int        `db:"row_count" json:"rowCount"`
}

// Source modes. Only file upload is implemented; api and stream are reserved.
const (
	ModeFile   = "file"
	ModeAPI    = "api"
	ModeStream = "stream"
)

// Refresh cadences (advisory only, not enforced).
const (
	CadenceDaily     = "daily"
	CadenceWeekly    = "weekly"
	CadenceMonthly   = "monthly"
	CadenceQuarterly = "quarterly"
)

// UploadHistoryRecord is an append-only audit entry for one upload attempt.
type UploadHistoryRecord struct {
	ID          int64      `db:"id" json:"id"`
	SourceID    string     `db:"source_id" json:"sourceId"`
	DatasetKey  string     `db:"dataset_key" json:"datasetKey"`
	Filename    string     `db:"filename" json:"filename"`
	Format      string     `db:"format" json:"format"`
	Rows        int        `db:"rows" json:"rows"`
	UploadedAt  time.Time  `db:"uploaded_at" json:"uploadedAt"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt"`
	Status      string     `db:"status" json:"status"`
}

// Upload statuses.
const (
	StatusPending   = "pending"
	StatusPreview   = "preview"
	StatusPublished = "published"
	StatusFailed    = "failed"
)

// User is an admin portal account. Password hashes only, never plaintext.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// Session is a logged-in admin session held in Redis.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ParseResult is the canonical row-set produced by the format parsers.
// Rows preserve upload order; Headers preserve column order. Wrapped is set
// only when a single JSON object was wrapped into a one-row result.
type ParseResult struct {
	Headers  []string         `json:"headers"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"rowCount"`
	Wrapped  bool             `json:"-"`
}

// Document returns the canonical payload a publish would store: the original
// object for a wrapped dashboard-format result, the row array for everything
// else. Tabular uploads stay arrays even with a single data row.
func (p *ParseResult) Document() any {
	if p.Wrapped && len(p.Rows) == 1 {
		return p.Rows[0]
	}
	rows := make([]any, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = r
	}
	return rows
}

// FieldDef describes one schema field.
type FieldDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SourceSchema is the static validation contract for one source.
type SourceSchema struct {
	SourceID       string     `json:"sourceId"`
	Name           string     `json:"name"`
	RequiredFields []FieldDef `json:"requiredFields"`
	OptionalFields []FieldDef `json:"optionalFields"`
}

// ValidationResult reports schema validation findings for a parsed record.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// BlobInfo is stat-based metadata for a published document.
type BlobInfo struct {
	Exists       bool       `json:"exists"`
	LastModified *time.Time `json:"lastModified"`
	Size         int64      `json:"size"`
}

// Freshness classifications.
const (
	FreshnessFresh    = "fresh"
	FreshnessStale    = "stale"
	FreshnessCritical = "critical"
	FreshnessNoData   = "no-data"
)

// SourceWithBlobInfo is a Source joined with its published-document metadata.
type SourceWithBlobInfo struct {
	SourceID              string     `json:"sourceId"`
	Name                  string     `json:"name"`
	Category              string     `json:"category"`
	Mode                  string     `json:"mode"`
	AcceptedFormats       []string   `json:"acceptedFormats"`
	RefreshCadence        string     `json:"refreshCadence"`
	LastRefresh           *time.Time `json:"lastRefresh"`
	RowCount              int        `json:"rowCount"`
	HasProcessedData      bool       `json:"hasProcessedData"`
	ProcessedLastModified *time.Time `json:"processedLastModified"`
	ProcessedSize         int64      `json:"processedSize"`
}

// SourceHealth is the per-source freshness classification.
type SourceHealth struct {
	SourceID       string     `json:"sourceId"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	RefreshCadence string     `json:"refreshCadence"`
	LastRefresh    *time.Time `json:"lastRefresh"`
	StaleMinutes   int        `json:"staleMinutes"`
	Freshness      string     `json:"freshness"`
	RowCount       int        `json:"rowCount"`
}

// PreviewResponse is returned by the upload step. SampleRows carry at most
// ten rows; the full payload is staged server-side keyed by UploadID.
type PreviewResponse struct {
	UploadID   int64            `json:"uploadId"`
	Filename   string           `json:"filename"`
	Format     string           `json:"format"`
	Headers    []string         `json:"headers"`
	SampleRows []map[string]any `json:"sampleRows"`
	RowCount   int              `json:"rowCount"`
	Validation ValidationResult `json:"validation"`
}
