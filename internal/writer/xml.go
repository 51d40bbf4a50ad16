package writer

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/fintab/statement-recovery/internal/models"
)

// xmlTransaction mirrors the record fields as XML elements.
type xmlTransaction struct {
	XMLName     xml.Name `xml:"transaction"`
	Date        string   `xml:"date"`
	PaymentType string   `xml:"paymentType"`
	Details1    string   `xml:"details1"`
	Details2    string   `xml:"details2"`
	PaidOut     string   `xml:"paidOut"`
	PaidIn      string   `xml:"paidIn"`
	Balance     string   `xml:"balance"`
}

type xmlDocument struct {
	XMLName      xml.Name         `xml:"transactions"`
	Transactions []xmlTransaction `xml:"transaction"`
}

// WriteXML writes the records as an XML document with one <transaction>
// element per record.
func WriteXML(out io.Writer, records []models.TransactionRecord) error {
	doc := xmlDocument{Transactions: make([]xmlTransaction, len(records))}
	for i, r := range records {
		doc.Transactions[i] = xmlTransaction{
			Date:        r.Date,
			PaymentType: r.PaymentType,
			Details1:    r.Details1,
			Details2:    r.Details2,
			PaidOut:     r.PaidOut,
			PaidIn:      r.PaidIn,
			Balance:     r.Balance,
		}
	}

	if _, err := io.WriteString(out, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	return nil
}

// WriteXMLFile writes the records to an XML file at the given path.
func WriteXMLFile(path string, records []models.TransactionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return WriteXML(f, records)
}
