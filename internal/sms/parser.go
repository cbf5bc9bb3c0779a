// Package sms turns mobile-money notification SMS into ledger records.
package sms

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-boutique-ws/internal/model"

	"github.com/shopspring/decimal"
)

// SkipReason says why a message produced no record.
type SkipReason string

const (
	SkipNone      SkipReason = ""
	SkipEmptyBody SkipReason = "empty_body"
	SkipNoPattern SkipReason = "no_pattern"
	SkipBadAmount SkipReason = "bad_amount"
)

// Message is one SMS: its text and its receive time in epoch milliseconds.
type Message struct {
	Body string
	Date int64
}

// Result holds either a parsed record or the reason the message was skipped.
type Result struct {
	Record  *model.NaCashTransaction
	Skipped SkipReason
}

var (
	// "... resevwa 500.00 HTG de <sender> a 14:32 11/03/2025 ..."
	receivedPattern = regexp.MustCompile(`(?i)re\S*\s+([\d,.]+)\s+HTG\s+de\s+(.+?)\s+a\s+(\d[\d:/ ]*)`)
	// "... encaisse 500.00 HTG a 14:32 11/03/2025 de <sender>"
	collectedPattern = regexp.MustCompile(`(?i)encaiss\S*\s+([\d,.]+)\s+HTG\s+a\s+(\d[\d:/ ]*?)\s+de\s+(.+)`)

	transCodePattern = regexp.MustCompile(`(?i)TransCode\s*[:\-]?\s*(\w+)`)
	timePattern      = regexp.MustCompile(`(\d{2}):(\d{2}) (\d{2})/(\d{2})/(\d{4})`)
	phonePattern     = regexp.MustCompile(`\d{5,}`)
	codeWordPattern  = regexp.MustCompile(`(?i)\bcode\b`)
	separatorPattern = regexp.MustCompile(`[, ]+`)
)

// Parser extracts transactions. Location is used to render the SMS receive
// time when the body carries no readable timestamp.
type Parser struct {
	Location *time.Location
}

func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{Location: loc}
}

// Parse reads one message body. It never fails: unreadable messages are
// reported through Result.Skipped.
func (p *Parser) Parse(body string, ts int64) Result {
	if strings.TrimSpace(body) == "" {
		return Result{Skipped: SkipEmptyBody}
	}

	var amount, sender, at string
	if m := receivedPattern.FindStringSubmatch(body); m != nil {
		amount, sender, at = m[1], m[2], m[3]
	} else if m := collectedPattern.FindStringSubmatch(body); m != nil {
		amount, at, sender = m[1], m[2], m[3]
	} else {
		return Result{Skipped: SkipNoPattern}
	}

	montant, err := decimal.NewFromString(strings.ReplaceAll(amount, ",", ""))
	if err != nil {
		return Result{Skipped: SkipBadAmount}
	}

	de, numero := splitSender(strings.TrimSpace(sender))

	rec := &model.NaCashTransaction{
		ID:      strconv.FormatInt(ts, 10),
		De:      de,
		Numero:  numero,
		A:       p.timestamp(strings.TrimSpace(at), ts),
		Montant: montant,
		Used:    false,
	}
	if m := transCodePattern.FindStringSubmatch(body); m != nil {
		rec.ID = m[1]
	}
	return Result{Record: rec}
}

// splitSender cuts the sender at the first '.', pulls the last run of five or
// more digits out as the phone number and drops the word "code".
func splitSender(de string) (string, *string) {
	if i := strings.Index(de, "."); i >= 0 {
		de = strings.TrimSpace(de[:i])
	}

	var numero *string
	if runs := phonePattern.FindAllString(de, -1); len(runs) > 0 {
		n := runs[len(runs)-1]
		numero = &n
		de = strings.TrimSpace(strings.Replace(de, n, "", 1))
	}

	de = strings.TrimSpace(codeWordPattern.ReplaceAllString(de, ""))
	de = strings.TrimSpace(separatorPattern.ReplaceAllString(de, " "))
	return de, numero
}

// timestamp renders "HH:MM DD/MM/YYYY" as "YYYY-MM-DD HH:MM", falling back to
// the receive time.
func (p *Parser) timestamp(text string, ts int64) string {
	if m := timePattern.FindStringSubmatch(text); m != nil {
		return m[5] + "-" + m[4] + "-" + m[3] + " " + m[1] + ":" + m[2]
	}
	return time.UnixMilli(ts).In(p.Location).Format("2006-01-02 15:04")
}
