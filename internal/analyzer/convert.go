package analyzer

import (
	"strconv"
	"strings"
	"time"

	"notif-insights-go/internal/dataset"
	"notif-insights-go/internal/types"
)

// Accepted send-date formats, tried in order.
var dateFormats = []string{"2006-01-02", "2006.01.02", "2006/01/02"}

// koreanWeekdays maps the single-character day names of the source exports.
var koreanWeekdays = map[string]types.Weekday{
	"월": "Mon", "화": "Tue", "수": "Wed", "목": "Thu",
	"금": "Fri", "토": "Sat", "일": "Sun",
}

// convertRow coerces a normalized row into a canonical record. It never
// fails: every field has a documented default, and the one flag worth
// reporting (an unparseable send date replaced by the ingestion timestamp)
// travels on the record itself.
func convertRow(n dataset.NormalizedRow, now time.Time) types.NotificationRecord {
	date, defaulted := parseDate(n[dataset.FieldSentDate], now)

	rec := types.NotificationRecord{
		Service:       strings.TrimSpace(n[dataset.FieldService]),
		MessageText:   strings.TrimSpace(n[dataset.FieldMessage]),
		ClickRate:     parseClickRate(n[dataset.FieldClickRate]),
		SentDate:      date,
		Weekday:       parseWeekday(n[dataset.FieldWeekday], date),
		SentCount:     parseCount(n[dataset.FieldSentCount]),
		ClickCount:    parseCount(n[dataset.FieldClickCount]),
		DateDefaulted: defaulted,
	}
	if rec.Service == "" {
		rec.Service = types.DefaultService
	}
	if rec.MessageText == "" {
		rec.MessageText = types.DefaultMessage
	}
	return rec
}

// parseClickRate strips a trailing percent sign and parses a non-negative
// decimal, else 0. Values above 100 are treated as mis-scaled exports
// (e.g. 1250 meaning 12.50%) and divided by 100.
func parseClickRate(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	if v > 100 {
		v = v / 100
	}
	return v
}

// parseCount parses an integer after stripping thousands separators; 0 on
// any failure or negative value.
func parseCount(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v)
}

// parseDate tries the accepted formats in order. The second return is true
// when the value was absent or unparseable and now was substituted.
func parseDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s != "" {
		for _, f := range dateFormats {
			if t, err := time.Parse(f, s); err == nil {
				return t, false
			}
		}
	}
	return now, true
}

// parseWeekday takes an explicit weekday when the source carries one
// (English names or the Korean single-character form), otherwise derives
// it from the send date.
func parseWeekday(s string, date time.Time) types.Weekday {
	s = strings.TrimSpace(s)
	if wd, ok := koreanWeekdays[s]; ok {
		return wd
	}
	if len(s) >= 3 {
		prefix := strings.ToLower(s[:3])
		for _, wd := range types.WeekdayOrder {
			if strings.ToLower(string(wd)) == prefix {
				return wd
			}
		}
	}
	return types.WeekdayOf(date)
}
