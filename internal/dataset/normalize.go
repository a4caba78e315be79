package dataset

import (
	"strings"

	"notif-insights-go/internal/types"
)

// Canonical field names produced by Normalize.
const (
	FieldClickRate  = "click_rate"
	FieldMessage    = "message"
	FieldService    = "service"
	FieldSentDate   = "sent_date"
	FieldWeekday    = "weekday"
	FieldSentCount  = "sent_count"
	FieldClickCount = "click_count"
)

// NormalizedRow maps every canonical field name to a raw string value.
// All seven fields are always present; missing source columns are filled
// with the documented default.
type NormalizedRow map[string]string

// fieldAliases maps each canonical field to its accepted source column
// names, in scan order. The Korean names are the ones the original export
// files carry; the rest cover common latinized variants.
var fieldAliases = []struct {
	canonical string
	aliases   []string
}{
	{FieldClickRate, []string{"클릭율", "클릭률", "CTR", "click_rate", "clickrate", "click rate"}},
	{FieldMessage, []string{"발송 문구", "문구", "message", "내용", "content", "알림내용", "message_text", "text"}},
	{FieldService, []string{"서비스명", "서비스", "service", "service_name", "상품명", "product"}},
	{FieldSentDate, []string{"발송일", "발송날짜", "date", "send_date", "sent_date", "날짜"}},
	{FieldWeekday, []string{"요일", "weekday", "day"}},
	{FieldSentCount, []string{"발송회원수", "send_count", "sent_count", "발송수", "audience"}},
	{FieldClickCount, []string{"클릭회원수", "click_count", "클릭수", "clicks"}},
}

// fieldDefaults are substituted when no alias is present in the row.
var fieldDefaults = map[string]string{
	FieldClickRate: "0",
	FieldMessage:   types.DefaultMessage,
	FieldService:   types.DefaultService,
}

// Normalize maps a raw row's heterogeneous column names onto the canonical
// schema. For each canonical field the alias list is scanned in order and
// the first present key wins; absent fields get their default. It never
// fails and does no numeric interpretation; type coercion is the
// ingestion pipeline's job.
func Normalize(row types.RawRow) NormalizedRow {
	trimmed := make(map[string]string, len(row))
	for k, v := range row {
		trimmed[strings.ToLower(strings.TrimSpace(k))] = v
	}

	out := make(NormalizedRow, len(fieldAliases))
	for _, f := range fieldAliases {
		for _, alias := range f.aliases {
			if v, ok := trimmed[strings.ToLower(alias)]; ok {
				out[f.canonical] = v
				break
			}
		}
		if _, ok := out[f.canonical]; !ok {
			out[f.canonical] = fieldDefaults[f.canonical]
		}
	}
	return out
}
