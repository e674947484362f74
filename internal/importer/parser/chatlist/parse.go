// Package chatlist parses pasted chat messages with numbered lists of
// contributors and amounts into pledge candidates.
//
// The input is human-typed and loosely structured, e.g.
//
//  1. Jane Doe 500,000✅
//  2. John K 200k 🅿️ paid 50k balance 150k
//  3. Uncle Moses 1,000,000
//
// Only lines starting with an ordinal ("1.") are considered, everything
// else is treated as headers or noise. Lines that carry no usable
// amount are skipped, never reported as errors.
package chatlist

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pledgebook/backend/internal/finance"
	"github.com/shopspring/decimal"
)

// Candidate is one parsed pledge from a chat message line.
//
// Balance is the balance as stated in the line when one is given
// explicitly. It can legitimately differ from pledged minus paid since
// the source text is often rounded by hand.
type Candidate struct {
	Name          string          `json:"name" example:"Jane Doe"`
	AmountPledged decimal.Decimal `json:"amountPledged" example:"500000"`
	AmountPaid    decimal.Decimal `json:"amountPaid" example:"50000"`
	Balance       decimal.Decimal `json:"balance" example:"450000"`
	Status        finance.Status  `json:"status" example:"partial"`
	LineNumber    int             `json:"lineNumber" example:"4"`
	RawText       string          `json:"rawText" example:"1. Jane Doe 500,000✅"`
}

// The "done" and "partial" markers people put behind amounts.
const (
	markerDone    = "✅"
	markerPartial = "🅿️"
)

var (
	reOrdinal = regexp.MustCompile(`^\d+\.\s*`)

	// Name, then an amount with optional thousands separators, an
	// optional k suffix and an optional marker glued to it or after a
	// space.
	reNameAmount = regexp.MustCompile(`^(.+?)\s+(-?[\d,]+(?:k|K)?)\s*(` + markerDone + `|` + markerPartial + `)?`)

	rePaid    = regexp.MustCompile(`(?i)paid\s+(-?[\d,]+(?:k|K)?)`)
	reBalance = regexp.MustCompile(`(?i)balance\s+(-?[\d,]+(?:k|K)?)`)
)

// Parse reads the message line by line and returns the pledge
// candidates plus the number of numbered lines that were skipped
// because they did not yield a usable amount.
//
// Parsing is idempotent, running it twice over the same text returns
// the same candidates. The returned error only reports reader
// failures, malformed lines never produce one.
func Parse(r io.Reader) ([]Candidate, int, error) {
	var candidates []Candidate
	skipped := 0

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		// Headers and noise, not errors
		if !reOrdinal.MatchString(text) {
			continue
		}

		candidate, ok := parseLine(text)
		if !ok {
			skipped++
			continue
		}

		candidate.LineNumber = line
		candidate.RawText = text
		candidates = append(candidates, candidate)
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("could not read message: %w", err)
	}

	return candidates, skipped, nil
}

// parseLine parses one numbered line. The second return value is false
// when the line has no usable name and amount.
func parseLine(text string) (Candidate, bool) {
	content := strings.TrimSpace(reOrdinal.ReplaceAllString(text, ""))

	match := reNameAmount.FindStringSubmatch(content)
	if match == nil {
		return Candidate{}, false
	}

	pledged, err := parseAmount(match[2])
	if err != nil || !pledged.IsPositive() {
		return Candidate{}, false
	}

	candidate := Candidate{
		Name:          strings.TrimSpace(match[1]),
		AmountPledged: pledged,
	}

	// A done marker anywhere in the line means fully paid
	if strings.Contains(content, markerDone) {
		candidate.AmountPaid = pledged
		candidate.Balance = decimal.Zero
		candidate.Status = finance.StatusFulfilled
		return candidate, true
	}

	candidate.AmountPaid = decimal.Zero
	candidate.Balance = pledged

	rest := content[len(match[0]):]

	if m := rePaid.FindStringSubmatch(rest); m != nil {
		if paid, err := parseAmount(m[1]); err == nil {
			candidate.AmountPaid = paid
		}
	}

	if m := reBalance.FindStringSubmatch(rest); m != nil {
		// A stated balance is authoritative, it is not recomputed
		// from pledged minus paid. Hand-typed lists round.
		if balance, err := parseAmount(m[1]); err == nil {
			candidate.Balance = balance
		}
	} else if candidate.AmountPaid.IsPositive() {
		candidate.Balance = pledged.Sub(candidate.AmountPaid)
	}

	// The status always follows from the amounts, regardless of a
	// stated balance
	_, candidate.Status = finance.Derive(pledged, candidate.AmountPaid)
	if candidate.Status == finance.StatusFulfilled {
		candidate.Balance = decimal.Zero
	}

	return candidate, true
}

// parseAmount normalizes an amount token: thousands separators are
// stripped, a trailing k multiplies by 1000 and a leading minus is
// dropped since pledge amounts are always positive.
func parseAmount(token string) (decimal.Decimal, error) {
	s := strings.ToLower(strings.ReplaceAll(token, ",", ""))

	factor := decimal.NewFromInt(1)
	if strings.HasSuffix(s, "k") {
		s = strings.TrimSuffix(s, "k")
		factor = decimal.NewFromInt(1000)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Abs().Mul(factor), nil
}
