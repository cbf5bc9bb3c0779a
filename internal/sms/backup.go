package sms

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadBackup decodes an "SMS Backup & Restore" export:
//
//	<smses><sms body="..." date="1741703520123" /></smses>
//
// A missing or unreadable date becomes 0.
func ReadBackup(r io.Reader) ([]Message, error) {
	var doc struct {
		SMS []struct {
			Body string `xml:"body,attr"`
			Date string `xml:"date,attr"`
		} `xml:"sms"`
	}
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("sms: decode backup: %w", err)
	}

	out := make([]Message, 0, len(doc.SMS))
	for _, s := range doc.SMS {
		date, _ := strconv.ParseInt(strings.TrimSpace(s.Date), 10, 64)
		out = append(out, Message{Body: s.Body, Date: date})
	}
	return out, nil
}
