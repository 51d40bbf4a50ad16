package parser

import (
	"regexp"
	"strings"
)

// PaymentTypes lists the canonical payment-type tokens as they appear in
// UK statements: card purchase (VIS), cash machine (ATM), direct debit
// (DD), transfer (TFR), credit (CR), debit (DR), point of sale (POS),
// charge (CHG), interest (INT), standing order (SO/SOE), cheque markers.
var PaymentTypes = []string{
	"VIS", "ATM", "DD", "TFR", "CR", "DR", "POS", "CHG", "INT", "SO", "SOE", "CHEQUE", ")))",
}

// creditTypes are the payment types whose sole amount is an incoming
// (paid-in) value. Everything else defaults to paid out.
var creditTypes = map[string]bool{
	"CR":  true,
	"TFR": true,
	"INT": true,
}

var nonLetterPattern = regexp.MustCompile(`[^A-Z]`)

// IsCreditType reports whether the payment type routes its sole amount to
// the paid-in column. Punctuation and case noise are stripped before the
// lookup; an empty token is never a credit.
func IsCreditType(paymentType string) bool {
	if paymentType == "" {
		return false
	}
	clean := nonLetterPattern.ReplaceAllString(strings.ToUpper(paymentType), "")
	return creditTypes[clean]
}

// paymentTypeSet holds the vocabulary uppercased for exact membership tests.
var paymentTypeSet = func() map[string]bool {
	set := make(map[string]bool, len(PaymentTypes))
	for _, pt := range PaymentTypes {
		set[strings.ToUpper(pt)] = true
	}
	return set
}()

// paymentTypePatterns are word-boundary matchers for each vocabulary token,
// used when a payment type is buried inside longer detail text.
var paymentTypePatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(PaymentTypes))
	for i, pt := range PaymentTypes {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(pt) + `\b`)
	}
	return patterns
}()

// isVocabularyType reports whether the token is exactly one of the known
// payment types, ignoring case and surrounding whitespace.
func isVocabularyType(token string) bool {
	return paymentTypeSet[strings.ToUpper(strings.TrimSpace(token))]
}

// findVocabularyType scans the text for the first known payment-type token
// on a word boundary. Returns "" when none is present.
func findVocabularyType(text string) string {
	for i, pattern := range paymentTypePatterns {
		if pattern.MatchString(text) {
			return PaymentTypes[i]
		}
	}
	return ""
}

// headerMarkers identify table headers and repeated statement boilerplate
// that must never become transaction detail text.
var headerMarkers = []string{
	"payment type",
	"your bank account",
	"balance brought",
	"balance carried",
	"account name",
}

// IsHeaderText reports whether the text is statement boilerplate rather
// than transaction content. Case-insensitive substring test, not anchored.
func IsHeaderText(s string) bool {
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, marker := range headerMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
