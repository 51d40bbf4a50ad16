package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fintab/statement-recovery/internal/models"
)

func TestWriteXLSX(t *testing.T) {
	records := []models.TransactionRecord{
		{
			Date:        "19 Oct 22",
			PaymentType: "VIS",
			Details1:    "GWR TAUNTON SST",
			Details2:    "WESTON-S-MARE",
			PaidOut:     "8.10",
			PaidIn:      "0.00",
			Balance:     "91.90",
		},
	}

	var buf bytes.Buffer
	err := WriteXLSX(&buf, records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"Date", "Payment Type", "Details 1", "Details 2", "Paid Out", "Paid In", "Balance"}, rows[0])
	assert.Equal(t, []string{"19 Oct 22", "VIS", "GWR TAUNTON SST", "WESTON-S-MARE", "8.10", "0.00", "91.90"}, rows[1])
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
