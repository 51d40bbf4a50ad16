package parser

import (
	"regexp"

	"github.com/fintab/statement-recovery/internal/models"
)

// Boilerplate patterns applied to the assembled record list. These identify
// summary rows, truncation markers and non-transactional paragraphs that
// statements interleave with real entries.
var (
	// summaryPattern marks opening/closing totals and limits that precede
	// or trail the real transaction block.
	summaryPattern = regexp.MustCompile(`(?i)balance brought|opening balance|payments in|payments out|closing balance|overdraft limit|balance carried`)

	// endMarkerPattern marks the end of the transaction block; the matching
	// record and everything after it are dropped.
	endMarkerPattern = regexp.MustCompile(`(?i)last carried forward|balance carried forward|balance carried|closing balance|balance brought forward`)

	// policyPattern matches legal and policy paragraphs printed on
	// statements, dropped even when they carry an amount.
	policyPattern = regexp.MustCompile(`(?i)financial services compensation scheme|effective from|interest rates|registered in england|ombudsman|financial ombudsman|hsbc bank plc`)

	// accountMetaPattern matches account-metadata rows (IBAN, sort code,
	// account number headers) and residual summary rows.
	accountMetaPattern = regexp.MustCompile(`(?i)overdraft limit|international bank account number|account number|sortcode|registered in england|your bank account details`)

	// percentPattern matches interest-rate lines like "19.90 %".
	percentPattern = regexp.MustCompile(`\d{1,3}(?:\.\d+)?\s*%`)
)

// maxParagraphLen is the detail length past which a row with no date,
// payment type or amount is treated as stray paragraph text.
const maxParagraphLen = 200

// postProcess runs the assembled record list through the ordered cleanup
// pipeline: image-marker removal, truncation to the genuine transaction
// block, noise filtering, forward date propagation, and the
// one-balance-per-date rule.
func postProcess(records []models.TransactionRecord) []models.TransactionRecord {
	records = dropImageRecords(records)
	records = trimToTransactionBlock(records)
	records = dropNoiseRecords(records)
	propagateDates(records)
	enforceBalancePerDate(records)
	for i := range records {
		normalizeRecord(&records[i], records[i].PaymentType, true)
	}
	return records
}

// dropImageRecords removes records whose combined text still carries an
// embedded-image placeholder.
func dropImageRecords(records []models.TransactionRecord) []models.TransactionRecord {
	kept := records[:0]
	for _, r := range records {
		combined := r.Date + " " + r.PaymentType + " " + r.Details1 + " " + r.Details2
		if imageMarkerPattern.MatchString(combined) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// trimToTransactionBlock cuts the list down to the genuine transaction
// block: everything before the first dated or typed non-summary record is
// discarded, and the first end-of-statement marker truncates the rest.
func trimToTransactionBlock(records []models.TransactionRecord) []models.TransactionRecord {
	first := -1
	for i, r := range records {
		if r.Date == "" && r.PaymentType == "" {
			continue
		}
		if summaryPattern.MatchString(r.CombinedDetails()) {
			continue
		}
		first = i
		break
	}
	if first > 0 {
		records = records[first:]
	}

	for i, r := range records {
		if endMarkerPattern.MatchString(r.CombinedDetails()) {
			return records[:i]
		}
	}
	return records
}

// dropNoiseRecords removes interest-rate lines, policy paragraphs,
// account-metadata rows, and overlong detail-only rows.
func dropNoiseRecords(records []models.TransactionRecord) []models.TransactionRecord {
	kept := records[:0]
	for _, r := range records {
		combined := r.CombinedDetails()
		if percentPattern.MatchString(combined) {
			continue
		}
		if policyPattern.MatchString(combined) || accountMetaPattern.MatchString(combined) {
			continue
		}
		if r.Date == "" && r.PaymentType == "" && !r.HasAmounts() && len(combined) > maxParagraphLen {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// propagateDates copies the most recent date forward onto date-less records.
func propagateDates(records []models.TransactionRecord) {
	lastDate := ""
	for i := range records {
		if records[i].Date != "" {
			lastDate = records[i].Date
		} else {
			records[i].Date = lastDate
		}
	}
}

// enforceBalancePerDate keeps a balance only on the last record of each
// date. An earlier same-date record with a stray balance and no paid in or
// paid out has the value moved to the side matching its payment type's
// polarity before the balance field is cleared.
func enforceBalancePerDate(records []models.TransactionRecord) {
	lastIndexByDate := make(map[string]int)
	for i, r := range records {
		if r.Date != "" {
			lastIndexByDate[r.Date] = i
		}
	}

	for i := range records {
		r := &records[i]
		last, ok := lastIndexByDate[r.Date]
		if !ok || i == last || r.Balance == "" {
			continue
		}
		if r.PaidIn == "" && r.PaidOut == "" {
			if IsCreditType(r.PaymentType) {
				r.PaidIn = r.Balance
			} else {
				r.PaidOut = r.Balance
			}
		}
		r.Balance = ""
	}
}
