package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelimited_Comma(t *testing.T) {
	text := "service,message,click_rate\nLoanA,hello,12.5\nLoanB,hi,8.3\n"

	rows, err := ParseDelimited(text)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "LoanA", rows[0]["service"])
	assert.Equal(t, "hello", rows[0]["message"])
	assert.Equal(t, "12.5", rows[0]["click_rate"])
	assert.Equal(t, "8.3", rows[1]["click_rate"])
}

func TestParseDelimited_TabWinsOverComma(t *testing.T) {
	// a tab anywhere in the header line selects tab as the delimiter, so
	// commas inside cells survive
	text := "service\tmessage\tclick_rate\nLoanA\tbenefit, up to 50%\t12.5\n"

	rows, err := ParseDelimited(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "benefit, up to 50%", rows[0]["message"])
}

func TestParseDelimited_KoreanHeader(t *testing.T) {
	text := "서비스명,발송 문구,클릭율\nLoanA,(ad) benefit up to 50%,12.5\n"

	rows, err := ParseDelimited(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	n := Normalize(rows[0])
	assert.Equal(t, "LoanA", n[FieldService])
	assert.Equal(t, "(ad) benefit up to 50%", n[FieldMessage])
	assert.Equal(t, "12.5", n[FieldClickRate])
}

func TestParseDelimited_ShortRowOmitsTrailingColumns(t *testing.T) {
	text := "service,message,click_rate\nLoanA,hello\n"

	rows, err := ParseDelimited(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, ok := rows[0]["click_rate"]
	assert.False(t, ok)
	assert.Equal(t, "hello", rows[0]["message"])
}

func TestParseDelimited_CRLFAndEmpty(t *testing.T) {
	rows, err := ParseDelimited("service,click_rate\r\nLoanA,1.0\r\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1.0", rows[0]["click_rate"])

	rows, err = ParseDelimited("   \n  ")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseDelimited_HeaderOnly(t *testing.T) {
	rows, err := ParseDelimited("service,message,click_rate")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
