package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"notif-insights-go/internal/types"
)

func TestNormalize_AliasResolution(t *testing.T) {
	tests := []struct {
		name  string
		row   types.RawRow
		field string
		want  string
	}{
		{"korean click rate", types.RawRow{"클릭율": "12.5"}, FieldClickRate, "12.5"},
		{"korean click rate variant", types.RawRow{"클릭률": "7.1"}, FieldClickRate, "7.1"},
		{"ctr alias", types.RawRow{"CTR": "3.2"}, FieldClickRate, "3.2"},
		{"snake case", types.RawRow{"click_rate": "9.9"}, FieldClickRate, "9.9"},
		{"korean message", types.RawRow{"발송 문구": "hello"}, FieldMessage, "hello"},
		{"english message", types.RawRow{"message": "hi"}, FieldMessage, "hi"},
		{"korean service", types.RawRow{"서비스명": "LoanA"}, FieldService, "LoanA"},
		{"date alias", types.RawRow{"send_date": "2025-01-01"}, FieldSentDate, "2025-01-01"},
		{"weekday alias", types.RawRow{"요일": "월"}, FieldWeekday, "월"},
		{"send count alias", types.RawRow{"발송회원수": "1,000"}, FieldSentCount, "1,000"},
		{"click count alias", types.RawRow{"click_count": "120"}, FieldClickCount, "120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.row)
			assert.Equal(t, tt.want, got[tt.field])
		})
	}
}

func TestNormalize_FirstAliasWins(t *testing.T) {
	row := types.RawRow{"클릭율": "1.0", "CTR": "2.0"}
	got := Normalize(row)
	assert.Equal(t, "1.0", got[FieldClickRate])
}

func TestNormalize_HeaderCaseAndWhitespace(t *testing.T) {
	row := types.RawRow{"  Click_Rate ": "4.5", "SERVICE": "LoanB"}
	got := Normalize(row)
	assert.Equal(t, "4.5", got[FieldClickRate])
	assert.Equal(t, "LoanB", got[FieldService])
}

func TestNormalize_Defaults(t *testing.T) {
	got := Normalize(types.RawRow{})

	assert.Equal(t, "0", got[FieldClickRate])
	assert.Equal(t, types.DefaultMessage, got[FieldMessage])
	assert.Equal(t, types.DefaultService, got[FieldService])
	assert.Equal(t, "", got[FieldSentDate])
	assert.Equal(t, "", got[FieldWeekday])
	assert.Equal(t, "", got[FieldSentCount])
	assert.Equal(t, "", got[FieldClickCount])

	// all seven canonical fields are always present
	assert.Len(t, got, 7)
}

func TestNormalize_KeepsPresentEmptyValue(t *testing.T) {
	// a present-but-empty column wins over the default; coercion, not
	// normalization, decides what empty means
	got := Normalize(types.RawRow{"message": ""})
	assert.Equal(t, "", got[FieldMessage])
}
