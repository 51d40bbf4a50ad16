package parser

import (
	"regexp"
	"strings"

	"github.com/fintab/statement-recovery/internal/models"
)

// moneyPattern matches grouped or plain decimal amounts: "1,234.56", "8.10".
var moneyPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2}`)

// findMoneyTokens returns every amount in the text with grouping commas
// removed, in order of appearance.
func findMoneyTokens(text string) []string {
	matches := moneyPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tokens := make([]string, len(matches))
	for i, m := range matches {
		tokens[i] = strings.ReplaceAll(m, ",", "")
	}
	return tokens
}

// stripMoneyTokens removes every amount from the text.
func stripMoneyTokens(text string) string {
	return moneyPattern.ReplaceAllString(text, "")
}

// MapMoneyArray assigns roles to an ordered-by-position list of amounts by
// count. Three or more: paid out, paid in, balance (extras ignored). Two:
// paid out and balance, the two-column statement convention. One: routed by
// the payment type's credit/debit polarity. This is a fallback heuristic for
// when no column-position information exists.
func MapMoneyArray(money []string, paymentType string) (paidOut, paidIn, balance string) {
	switch {
	case len(money) >= 3:
		paidOut = money[0]
		paidIn = money[1]
		balance = money[2]
	case len(money) == 2:
		paidOut = money[0]
		balance = money[1]
	case len(money) == 1:
		if IsCreditType(paymentType) {
			paidIn = money[0]
		} else {
			paidOut = money[0]
		}
	}
	return paidOut, paidIn, balance
}

// normalizeRecord enforces mutual exclusivity of paid in and paid out using
// the payment type's polarity. When both are set, the side matching the
// polarity wins. A credit type with only paid out set has the value moved to
// paid in. The converse move (debit type with only paid in set) is suppressed
// when columnPreferred is true, because explicit column-position placement
// outranks the polarity heuristic. Idempotent.
func normalizeRecord(r *models.TransactionRecord, paymentType string, columnPreferred bool) {
	credit := IsCreditType(paymentType)

	if r.PaidIn != "" && r.PaidOut != "" {
		if credit {
			r.PaidOut = ""
		} else {
			r.PaidIn = ""
		}
	}

	if credit && r.PaidIn == "" && r.PaidOut != "" {
		r.PaidIn = r.PaidOut
		r.PaidOut = ""
	}

	if !columnPreferred && !credit && r.PaidOut == "" && r.PaidIn != "" {
		r.PaidOut = r.PaidIn
		r.PaidIn = ""
	}
}
