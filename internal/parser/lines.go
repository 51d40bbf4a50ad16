package parser

import (
	"regexp"
	"strings"

	"github.com/fintab/statement-recovery/internal/models"
)

// lineDatePattern anchors a "D[D] Mon YY[YY]" date at the start of a line,
// e.g. "19 Oct 22" or "4 Dec 2016".
var lineDatePattern = regexp.MustCompile(`^\s*(\d{1,2}\s+[A-Za-z]{3}\s+\d{2,4})\b`)

// leadingTypePattern matches a short all-caps token at the start of text,
// the usual position of the payment type after the date.
var leadingTypePattern = regexp.MustCompile(`^([A-Z]{1,5})\b`)

// lineFold is the accumulator threaded through the line scan: the date
// carried forward onto date-less lines and the record open for
// continuation text.
type lineFold struct {
	records     []models.TransactionRecord
	currentDate string
}

// last returns the record currently open for continuations, or nil.
func (f *lineFold) last() *models.TransactionRecord {
	if len(f.records) == 0 {
		return nil
	}
	return &f.records[len(f.records)-1]
}

// ParseLines segments a sequence of reconstructed text lines into
// transaction records. It is the fallback path for documents whose layout
// information is unusable: transactions are anchored on leading dates, and
// subsequent lines are absorbed as amounts or detail continuations until
// the next dated line.
func ParseLines(lines []string) []models.TransactionRecord {
	fold := lineFold{}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if m := lineDatePattern.FindStringSubmatch(line); m != nil {
			i = fold.startDatedTransaction(lines, i, line, m[1])
			continue
		}

		money := findMoneyTokens(line)
		if len(money) > 0 || leadingTypePattern.MatchString(line) {
			fold.startUndatedTransaction(line, money)
			continue
		}

		// Neither date, money, nor payment type: pure continuation.
		if last := fold.last(); last != nil {
			last.AppendDetail(line)
		}
	}

	return fold.records
}

// startDatedTransaction opens a new record at lines[i], absorbs following
// non-dated lines, and returns the index of the last line consumed.
func (f *lineFold) startDatedTransaction(lines []string, i int, line, date string) int {
	f.currentDate = date

	dateEnd := strings.Index(line, date) + len(date)
	rest := strings.TrimSpace(line[dateEnd:])

	paymentType := ""
	if m := leadingTypePattern.FindStringSubmatch(rest); m != nil {
		paymentType = m[1]
	}
	if paymentType == "" {
		paymentType = findVocabularyType(rest)
	}

	money := findMoneyTokens(line)

	var details []string
	if rest != "" {
		noMoney := strings.TrimSpace(leadingTypePattern.ReplaceAllString(stripMoneyTokens(rest), ""))
		if noMoney != "" {
			details = append(details, noMoney)
		}
	}

	// Lookahead absorption: consume lines until the next dated line,
	// collecting amounts and detail fragments as we go.
	j := i + 1
	for j < len(lines) {
		next := strings.TrimSpace(lines[j])
		if next == "" {
			j++
			continue
		}
		if lineDatePattern.MatchString(next) {
			break
		}
		if nextMoney := findMoneyTokens(next); len(nextMoney) > 0 {
			money = append(money, nextMoney...)
			if textOnly := strings.TrimSpace(stripMoneyTokens(next)); textOnly != "" {
				details = append(details, textOnly)
			}
			j++
			continue
		}
		details = append(details, next)
		j++
	}

	f.push(f.currentDate, paymentType, details, money)
	return j - 1
}

// startUndatedTransaction handles a line with money or a payment-type token
// but no date; it inherits the most recently seen date.
func (f *lineFold) startUndatedTransaction(line string, money []string) {
	paymentType := ""
	if m := leadingTypePattern.FindStringSubmatch(line); m != nil {
		paymentType = m[1]
	}
	if paymentType == "" {
		paymentType = findVocabularyType(line)
	}

	rest := strings.TrimSpace(stripMoneyTokens(leadingTypePattern.ReplaceAllString(line, "")))
	var details []string
	if rest != "" {
		details = append(details, rest)
	}

	record := f.build(f.currentDate, paymentType, details, money)
	if IsHeaderText(record.Details1) || record.IsEmpty() {
		return
	}
	f.records = append(f.records, record)
}

// build maps the collected money tokens onto roles and normalizes the result.
func (f *lineFold) build(date, paymentType string, details, money []string) models.TransactionRecord {
	paidOut, paidIn, balance := MapMoneyArray(money, paymentType)
	record := models.TransactionRecord{
		Date:        date,
		PaymentType: paymentType,
		PaidOut:     paidOut,
		PaidIn:      paidIn,
		Balance:     balance,
	}
	if len(details) > 0 {
		record.Details1 = details[0]
	}
	if len(details) > 1 {
		record.Details2 = strings.Join(details[1:], " ")
	}
	normalizeRecord(&record, paymentType, false)
	return record
}

func (f *lineFold) push(date, paymentType string, details, money []string) {
	f.records = append(f.records, f.build(date, paymentType, details, money))
}
