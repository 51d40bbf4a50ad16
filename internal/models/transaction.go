package models

// TransactionRecord is a single statement entry recovered from a PDF.
// All monetary fields are decimal strings with grouping commas removed,
// or empty when the column had no value on that row.
type TransactionRecord struct {
	Date        string `json:"date" csv:"Date"`
	PaymentType string `json:"paymentType" csv:"Payment Type"`
	Details1    string `json:"details1" csv:"Details 1"`
	Details2    string `json:"details2" csv:"Details 2"`
	PaidOut     string `json:"paidOut" csv:"Paid Out"`
	PaidIn      string `json:"paidIn" csv:"Paid In"`
	Balance     string `json:"balance" csv:"Balance"`
}

// HasAmounts reports whether any monetary field is populated.
func (r *TransactionRecord) HasAmounts() bool {
	return r.PaidIn != "" || r.PaidOut != "" || r.Balance != ""
}

// IsEmpty reports whether the record carries no data at all.
func (r *TransactionRecord) IsEmpty() bool {
	return r.Details1 == "" && r.PaymentType == "" && !r.HasAmounts()
}

// CombinedDetails joins the two detail fields for pattern matching.
func (r *TransactionRecord) CombinedDetails() string {
	if r.Details1 == "" {
		return r.Details2
	}
	if r.Details2 == "" {
		return r.Details1
	}
	return r.Details1 + " " + r.Details2
}

// AppendDetail adds text to the second detail field, space-joined.
func (r *TransactionRecord) AppendDetail(text string) {
	if text == "" {
		return
	}
	if r.Details2 == "" {
		r.Details2 = text
	} else {
		r.Details2 += " " + text
	}
}

// TextFragment is one positioned text run from a PDF page, as produced by
// the extraction layer. X grows left to right, Y bottom to top (PDF native
// coordinates), so higher Y means higher on the page.
type TextFragment struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}
