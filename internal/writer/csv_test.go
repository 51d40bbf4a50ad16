package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintab/statement-recovery/internal/models"
)

var sampleRecords = []models.TransactionRecord{
	{
		Date:        "19 Oct 22",
		PaymentType: "DD",
		Details1:    "BRITISH GAS",
		PaidOut:     "8.10",
		Balance:     "91.90",
	},
	{
		Date:        "20 Oct 22",
		PaymentType: "CR",
		Details1:    "SALARY",
		Details2:    "OCTOBER",
		PaidIn:      "1000.00",
		Balance:     "1091.90",
	},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleRecords)
	require.NoError(t, err)

	want := "Date,Payment Type,Details 1,Details 2,Paid Out,Paid In,Balance\n" +
		"19 Oct 22,DD,BRITISH GAS,,8.10,,91.90\n" +
		"20 Oct 22,CR,SALARY,OCTOBER,,1000.00,1091.90\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	require.NoError(t, err)

	assert.Equal(t, "Date,Payment Type,Details 1,Details 2,Paid Out,Paid In,Balance\n", buf.String())
}

func TestWriteCSVCustomDelimiter(t *testing.T) {
	SetDelimiter(';')
	defer SetDelimiter(',')

	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleRecords[:1])
	require.NoError(t, err)

	want := "Date;Payment Type;Details 1;Details 2;Paid Out;Paid In;Balance\n" +
		"19 Oct 22;DD;BRITISH GAS;;8.10;;91.90\n"
	assert.Equal(t, want, buf.String())
}
