package writer

import (
	"bytes"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintab/statement-recovery/internal/models"
)

func TestWriteXML(t *testing.T) {
	records := []models.TransactionRecord{
		{
			Date:        "19 Oct 22",
			PaymentType: "DD",
			Details1:    "BRITISH GAS",
			PaidOut:     "8.10",
			Balance:     "91.90",
		},
	}

	var buf bytes.Buffer
	err := WriteXML(&buf, records)
	require.NoError(t, err)

	want := xml.Header +
		"<transactions>\n" +
		"  <transaction>\n" +
		"    <date>19 Oct 22</date>\n" +
		"    <paymentType>DD</paymentType>\n" +
		"    <details1>BRITISH GAS</details1>\n" +
		"    <details2></details2>\n" +
		"    <paidOut>8.10</paidOut>\n" +
		"    <paidIn></paidIn>\n" +
		"    <balance>91.90</balance>\n" +
		"  </transaction>\n" +
		"</transactions>"
	assert.Equal(t, want, buf.String())
}

func TestWriteXMLRoundTrip(t *testing.T) {
	records := []models.TransactionRecord{
		{Date: "19 Oct 22", PaymentType: "DD", Details1: "A & B <SUPPLIES>", PaidOut: "8.10"},
		{Date: "20 Oct 22", PaymentType: "CR", Details1: "SALARY", PaidIn: "1000.00"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, records))

	var doc xmlDocument
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Transactions, 2)
	assert.Equal(t, "A & B <SUPPLIES>", doc.Transactions[0].Details1)
	assert.Equal(t, "1000.00", doc.Transactions[1].PaidIn)
}
