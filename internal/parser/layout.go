package parser

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/fintab/statement-recovery/internal/models"
)

// fragmentDatePattern matches a "D[D] Mon YY[YY]" date at the start of a
// fragment's text.
var fragmentDatePattern = regexp.MustCompile(`^\s*\d{1,2}\s+[A-Za-z]{3}\s+\d{2,4}\b`)

// shortCapsPattern matches a bare short all-caps token, the shape of a
// payment-type cell that is not in the known vocabulary.
var shortCapsPattern = regexp.MustCompile(`^[A-Z]{2,4}$`)

// imageMarkerPattern detects embedded-image placeholders leaked into the
// text layer by PDF extraction. Rows carrying these are never transactions
// and may contain private binary data.
var imageMarkerPattern = regexp.MustCompile(`(?i)data:image|dataimage`)

// columnClusterTolerance is the maximum x-distance between adjacent money
// token positions that still belong to one column.
const columnClusterTolerance = 6

// visualRow is a set of fragments sharing one printed line, ordered left
// to right.
type visualRow struct {
	y     int
	frags []models.TextFragment
}

// columnLayout holds the inferred x-positions of the monetary columns.
// A zero position count means the page exposed no usable columns and the
// count-based fallback applies.
type columnLayout struct {
	paidOutX, paidInX, balanceX       float64
	hasPaidOut, hasPaidIn, hasBalance bool
}

func (c *columnLayout) empty() bool {
	return !c.hasPaidOut && !c.hasPaidIn && !c.hasBalance
}

// moneyToken is an amount found on a row, with its rounded x-position.
type moneyToken struct {
	x     float64
	value string
}

// rowData is the per-row extraction result fed into transaction folding.
type rowData struct {
	date        string
	paymentType string
	details     string
	paidOut     string
	paidIn      string
	balance     string
}

func (r *rowData) hasAmounts() bool {
	return r.paidOut != "" || r.paidIn != "" || r.balance != ""
}

// ParsePageFragments recovers transaction records from one page of
// positioned text fragments. For multi-page statements prefer
// ParseDocument, which carries the current date across page breaks.
func ParsePageFragments(frags []models.TextFragment) []models.TransactionRecord {
	return ParseDocument([][]models.TextFragment{frags})
}

// ParseDocument recovers transaction records from the positioned text
// fragments of every page of a document. Rows are reconstructed and columns
// inferred per page; the transaction fold and the post-processing pipeline
// run over the concatenated row sequence so that dates propagate across
// page breaks. An empty result means no anchors were recognizable anywhere;
// callers should retry the document through ParseLines.
func ParseDocument(pages [][]models.TextFragment) []models.TransactionRecord {
	var rows []rowData
	for _, frags := range pages {
		rows = append(rows, extractPageRows(frags)...)
	}
	records := foldRows(rows)
	return postProcess(records)
}

// extractPageRows reconstructs the page's visual rows, infers its column
// layout, and resolves each row into date, payment type, details and
// role-assigned amounts.
func extractPageRows(frags []models.TextFragment) []rowData {
	rows := buildRows(frags)
	rows = dropImageRows(rows)
	if len(rows) == 0 {
		return nil
	}

	layout := inferColumns(rows)
	dateX := findDateColumnX(rows)

	// Skip leading rows with no useful data (leftover placeholders,
	// decorative text) so the fold starts at real content.
	start := -1
	for i, row := range rows {
		for _, frag := range row.frags {
			if fragmentDatePattern.MatchString(frag.Text) || moneyPattern.MatchString(frag.Text) {
				start = i
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return nil
	}
	rows = rows[start:]

	out := make([]rowData, 0, len(rows))
	for _, row := range rows {
		out = append(out, resolveRow(row, layout, dateX))
	}
	return out
}

// buildRows groups fragments by rounded y-coordinate into visual rows,
// top-to-bottom, fragments left-to-right.
func buildRows(frags []models.TextFragment) []visualRow {
	byY := make(map[int][]models.TextFragment)
	for _, frag := range frags {
		if strings.TrimSpace(frag.Text) == "" {
			continue
		}
		y := int(math.Round(frag.Y))
		byY[y] = append(byY[y], frag)
	}

	ys := make([]int, 0, len(byY))
	for y := range byY {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	rows := make([]visualRow, 0, len(ys))
	for _, y := range ys {
		items := byY[y]
		sort.Slice(items, func(a, b int) bool { return items[a].X < items[b].X })
		rows = append(rows, visualRow{y: y, frags: items})
	}
	return rows
}

func dropImageRows(rows []visualRow) []visualRow {
	kept := rows[:0]
	for _, row := range rows {
		clean := true
		for _, frag := range row.frags {
			if imageMarkerPattern.MatchString(frag.Text) {
				clean = false
				break
			}
		}
		if clean {
			kept = append(kept, row)
		}
	}
	return kept
}

// inferColumns derives the monetary column positions for a page. Money
// token x-positions are clustered into contiguous groups; with more than
// three clusters only the rightmost three are monetary (leading numeric
// clusters are reference numbers). Leftmost retained cluster is paid out,
// rightmost is balance, the middle of three is paid in. Header labels,
// when present, override the cluster-derived position for their role.
func inferColumns(rows []visualRow) columnLayout {
	var layout columnLayout

	seen := make(map[int]bool)
	var xs []int
	for _, row := range rows {
		for _, frag := range row.frags {
			if !moneyPattern.MatchString(frag.Text) {
				continue
			}
			x := int(math.Round(frag.X))
			if !seen[x] {
				seen[x] = true
				xs = append(xs, x)
			}
		}
	}
	sort.Ints(xs)

	centers := clusterColumns(xs, columnClusterTolerance)
	if len(centers) > 3 {
		centers = centers[len(centers)-3:]
	}
	if len(centers) > 0 {
		layout.paidOutX = float64(centers[0])
		layout.hasPaidOut = true
		layout.balanceX = float64(centers[len(centers)-1])
		layout.hasBalance = true
		if len(centers) >= 3 {
			layout.paidInX = float64(centers[len(centers)-2])
			layout.hasPaidIn = true
		}
	}

	applyHeaderLabels(rows, &layout)
	return layout
}

// clusterColumns groups sorted x-positions into clusters by adjacent
// distance and returns the rounded center of each cluster.
func clusterColumns(xs []int, tolerance int) []int {
	if len(xs) == 0 {
		return nil
	}
	var centers []int
	sum, count, prev := xs[0], 1, xs[0]
	for _, x := range xs[1:] {
		if abs(x-prev) <= tolerance {
			sum += x
			count++
		} else {
			centers = append(centers, roundedMean(sum, count))
			sum, count = x, 1
		}
		prev = x
	}
	centers = append(centers, roundedMean(sum, count))
	return centers
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func roundedMean(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}

// applyHeaderLabels scans for "Paid out" / "Paid in" / "Balance" column
// headers and pins the matching role to the label's x-position. A label
// split across two adjacent fragments ("PAID" + "OUT") is recognized by
// joining neighbours. Only fragments that are exactly the label count;
// phrases like "Opening Balance" must not move the balance column.
func applyHeaderLabels(rows []visualRow, layout *columnLayout) {
	for _, row := range rows {
		for i, frag := range row.frags {
			label := strings.ToLower(strings.TrimSpace(frag.Text))
			if i+1 < len(row.frags) {
				next := strings.ToLower(strings.TrimSpace(row.frags[i+1].Text))
				joined := label + " " + next
				if joined == "paid out" || joined == "paid in" {
					label = joined
				}
			}
			switch label {
			case "paid out":
				layout.paidOutX = frag.X
				layout.hasPaidOut = true
			case "paid in":
				layout.paidInX = frag.X
				layout.hasPaidIn = true
			case "balance":
				layout.balanceX = frag.X
				layout.hasBalance = true
			}
		}
	}
}

// findDateColumnX returns the x-position of the first dated fragment, or
// the leftmost fragment position when no date appears on the page.
func findDateColumnX(rows []visualRow) float64 {
	minX := math.Inf(1)
	for _, row := range rows {
		for _, frag := range row.frags {
			if fragmentDatePattern.MatchString(frag.Text) {
				return frag.X
			}
			if frag.X < minX {
				minX = frag.X
			}
		}
	}
	if math.IsInf(minX, 1) {
		return 0
	}
	return minX
}

// resolveRow identifies the row's date, payment type and detail text, and
// assigns its money tokens to columns.
func resolveRow(row visualRow, layout columnLayout, dateX float64) rowData {
	var data rowData

	var dateFrag, typeFrag *models.TextFragment
	for i := range row.frags {
		if fragmentDatePattern.MatchString(row.frags[i].Text) {
			dateFrag = &row.frags[i]
			data.date = strings.TrimSpace(fragmentDatePattern.FindString(row.frags[i].Text))
			break
		}
	}

	// Payment type: exact vocabulary membership first (avoids confusing
	// merchant tokens), then a short caps token right of the date column,
	// then a word-boundary vocabulary scan inside longer fragments.
	for i := range row.frags {
		if isVocabularyType(row.frags[i].Text) {
			typeFrag = &row.frags[i]
			break
		}
	}
	if typeFrag == nil {
		for i := range row.frags {
			if shortCapsPattern.MatchString(row.frags[i].Text) && row.frags[i].X > dateX {
				typeFrag = &row.frags[i]
				break
			}
		}
	}
	if typeFrag == nil {
		for i := range row.frags {
			if findVocabularyType(row.frags[i].Text) != "" {
				typeFrag = &row.frags[i]
				break
			}
		}
	}
	if typeFrag != nil {
		data.paymentType = typeFrag.Text
	}

	var detailParts []string
	var tokens []moneyToken
	for i := range row.frags {
		frag := &row.frags[i]
		if moneyPattern.MatchString(frag.Text) {
			tokens = append(tokens, moneyToken{
				x:     math.Round(frag.X),
				value: strings.ReplaceAll(frag.Text, ",", ""),
			})
			continue
		}
		if frag == dateFrag || frag == typeFrag {
			continue
		}
		detailParts = append(detailParts, frag.Text)
	}
	sort.Slice(tokens, func(a, b int) bool { return tokens[a].x < tokens[b].x })

	data.details = strings.TrimSpace(strings.Join(detailParts, " "))

	if len(tokens) > 0 {
		data.paidOut, data.paidIn, data.balance = assignMoneyByColumns(tokens, layout, data.paymentType)
	}
	return data
}

// assignMoneyByColumns maps the row's money tokens onto roles by nearest-x
// greedy bipartite matching against the inferred column positions: all
// (token, slot) pairs are ranked by absolute x-distance and claimed in
// order. Tokens left over once every slot is taken spill into the first
// empty role, paid out first. A sole amount landing on paid out moves to
// paid in when the payment type indicates a credit.
func assignMoneyByColumns(tokens []moneyToken, layout columnLayout, paymentType string) (paidOut, paidIn, balance string) {
	const (
		rolePaidOut = iota
		rolePaidIn
		roleBalance
	)

	type slot struct {
		role int
		x    float64
	}
	var slots []slot
	if layout.hasPaidOut {
		slots = append(slots, slot{rolePaidOut, layout.paidOutX})
	}
	if layout.hasPaidIn {
		slots = append(slots, slot{rolePaidIn, layout.paidInX})
	}
	if layout.hasBalance {
		slots = append(slots, slot{roleBalance, layout.balanceX})
	}

	if len(slots) == 0 {
		// No column information on this page at all.
		values := make([]string, len(tokens))
		for i, tok := range tokens {
			values[i] = tok.value
		}
		return MapMoneyArray(values, paymentType)
	}

	type pair struct {
		token, slot int
		dist        float64
	}
	var pairs []pair
	for t := range tokens {
		for s := range slots {
			pairs = append(pairs, pair{t, s, math.Abs(tokens[t].x - slots[s].x)})
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].dist != pairs[b].dist {
			return pairs[a].dist < pairs[b].dist
		}
		if pairs[a].slot != pairs[b].slot {
			return slots[pairs[a].slot].role < slots[pairs[b].slot].role
		}
		return pairs[a].token < pairs[b].token
	})

	roleValues := [3]string{}
	tokenUsed := make([]bool, len(tokens))
	slotUsed := make([]bool, len(slots))
	for _, p := range pairs {
		if tokenUsed[p.token] || slotUsed[p.slot] {
			continue
		}
		tokenUsed[p.token] = true
		slotUsed[p.slot] = true
		roleValues[slots[p.slot].role] = tokens[p.token].value
	}

	// More tokens than slots: spill into the first empty role in output
	// order.
	for t := range tokens {
		if tokenUsed[t] {
			continue
		}
		for role := rolePaidOut; role <= roleBalance; role++ {
			if roleValues[role] == "" {
				roleValues[role] = tokens[t].value
				tokenUsed[t] = true
				break
			}
		}
	}

	paidOut, paidIn, balance = roleValues[rolePaidOut], roleValues[rolePaidIn], roleValues[roleBalance]
	if IsCreditType(paymentType) && paidIn == "" && paidOut != "" {
		paidIn = paidOut
		paidOut = ""
	}
	return paidOut, paidIn, balance
}

// docFold is the accumulator threaded through the row fold: the date
// carried forward across rows (and page breaks) and the most recent record
// open for continuation or amount back-fill.
type docFold struct {
	records     []models.TransactionRecord
	currentDate string
}

func (f *docFold) last() *models.TransactionRecord {
	if len(f.records) == 0 {
		return nil
	}
	return &f.records[len(f.records)-1]
}

// foldRows turns the resolved row sequence into transaction records. A
// dated row always opens a record. An undated row with amounts either
// back-fills the preceding record (when that record has details but no
// amounts yet — statements often print amounts one visual line below the
// description) or opens a new record on the carried date. An undated row
// with only text is a detail continuation.
func foldRows(rows []rowData) []models.TransactionRecord {
	fold := docFold{}

	for _, row := range rows {
		switch {
		case row.date != "":
			fold.currentDate = row.date
			record := models.TransactionRecord{
				Date:        row.date,
				PaymentType: row.paymentType,
				Details1:    row.details,
				PaidOut:     row.paidOut,
				PaidIn:      row.paidIn,
				Balance:     row.balance,
			}
			normalizeRecord(&record, record.PaymentType, true)
			fold.records = append(fold.records, record)

		case row.hasAmounts():
			last := fold.last()
			if last != nil && !last.HasAmounts() && last.Details1 != "" {
				fold.backfill(last, row)
				continue
			}
			record := models.TransactionRecord{
				Date:        fold.currentDate,
				PaymentType: row.paymentType,
				Details1:    row.details,
				PaidOut:     row.paidOut,
				PaidIn:      row.paidIn,
				Balance:     row.balance,
			}
			normalizeRecord(&record, record.PaymentType, true)
			if !IsHeaderText(record.Details1) && !record.IsEmpty() {
				fold.records = append(fold.records, record)
			}

		case row.paymentType != "":
			record := models.TransactionRecord{
				Date:        fold.currentDate,
				PaymentType: row.paymentType,
				Details1:    row.details,
			}
			if !IsHeaderText(record.Details1) && !record.IsEmpty() {
				fold.records = append(fold.records, record)
			}

		case row.details != "":
			if last := fold.last(); last != nil {
				last.AppendDetail(row.details)
			}
		}
	}

	return fold.records
}

// backfill attaches an undated amounts row to the preceding record.
func (f *docFold) backfill(last *models.TransactionRecord, row rowData) {
	if row.paidIn != "" {
		last.PaidIn = row.paidIn
	}
	if row.paidOut != "" {
		last.PaidOut = row.paidOut
	}
	if row.balance != "" {
		last.Balance = row.balance
	}
	if row.paymentType != "" && last.PaymentType == "" {
		last.PaymentType = row.paymentType
	}
	last.AppendDetail(row.details)

	polarity := last.PaymentType
	if polarity == "" {
		polarity = row.paymentType
	}
	normalizeRecord(last, polarity, true)
}
