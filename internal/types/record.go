package types

import "time"

// Sentinel values substituted by the normalizer when a source column is
// missing entirely.
const (
	DefaultService = "other"
	DefaultMessage = "default message"
)

// RawRow is one untyped row as read from a tabular source: column name to
// cell value. Consumed immediately by the normalizer, never stored.
type RawRow map[string]string

// Weekday is a three-letter day name ("Mon".."Sun").
type Weekday string

// WeekdayOrder lists all seven weekdays in display order. Per-weekday
// aggregates always carry every key in this list.
var WeekdayOrder = []Weekday{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayOf derives the Weekday for a date.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday().String()[:3])
}

// NotificationRecord is the canonical unit of analysis: one historical
// notification send, fully normalized and type-coerced.
type NotificationRecord struct {
	Service     string    `json:"service"`
	MessageText string    `json:"message"`
	ClickRate   float64   `json:"click_rate"`
	SentDate    time.Time `json:"sent_date"`
	Weekday     Weekday   `json:"weekday"`
	SentCount   int       `json:"sent_count"`
	ClickCount  int       `json:"click_count"`

	// DateDefaulted marks rows whose send date could not be parsed and
	// was substituted with the ingestion timestamp.
	DateDefaulted bool `json:"date_defaulted,omitempty"`
}

// IngestSummary is the compact dataset overview returned with every
// successful ingestion.
type IngestSummary struct {
	TotalMessages        int     `json:"total_messages"`
	AvgClickRate         float64 `json:"avg_click_rate"`
	MaxClickRate         float64 `json:"max_click_rate"`
	MinClickRate         float64 `json:"min_click_rate"`
	HighPerformanceCount int     `json:"high_performance_count"`
	ServiceCount         int     `json:"services_count"`
}

// IngestResult reports row-level outcomes of one ingestion call. Rejected
// rows are counted, never surfaced individually; DateDefaulted counts rows
// that were accepted with a substituted send date.
type IngestResult struct {
	Accepted      int           `json:"accepted"`
	Rejected      int           `json:"rejected"`
	DateDefaulted int           `json:"date_defaulted"`
	Summary       IngestSummary `json:"summary"`
}

// MessageRequest describes what the caller wants in a message, for both
// matching against history and generating new candidates. All fields are
// optional; zero values mean "no preference".
type MessageRequest struct {
	Service        string   `json:"service,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	Tone           string   `json:"tone,omitempty"`
	Urgency        string   `json:"urgency,omitempty"`
	BenefitLevel   string   `json:"benefit_level,omitempty"`
	TargetAudience string   `json:"target_audience,omitempty"`
	Description    string   `json:"description,omitempty"`

	// Limit caps the number of match results; 0 means the default cap.
	Limit int `json:"limit,omitempty"`
}
