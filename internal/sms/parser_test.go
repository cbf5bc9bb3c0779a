package sms

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const receivedAt = int64(1741703520123) // 2025-03-11 14:32:00.123 UTC

func TestParser_Parse(t *testing.T) {
	p := NewParser(time.UTC)

	tests := []struct {
		name    string
		body    string
		id      string
		de      string
		numero  string
		a       string
		montant string
	}{
		{
			name:    "received pattern",
			body:    "Ou resevwa 500.00 HTG de Jean Pierre 50912345678 a 14:32 11/03/2025 TransCode: ABC123",
			id:      "ABC123",
			de:      "Jean Pierre",
			numero:  "50912345678",
			a:       "2025-03-11 14:32",
			montant: "500",
		},
		{
			name:    "received pattern with thousands separator and code word",
			body:    "Vous avez reçu 1,250.50 HTG de MARIE code 3712 34567890. Solde: 20 HTG a 09:05 01/02/2025",
			id:      "1741703520123",
			de:      "MARIE 3712",
			numero:  "34567890",
			a:       "2025-02-01 09:05",
			montant: "1250.5",
		},
		{
			name:    "collected pattern",
			body:    "Vous avez encaissé 750 HTG a 08:10 05/04/2025 de Paul, 50938765432. TransCode: XY9",
			id:      "XY9",
			de:      "Paul",
			numero:  "50938765432",
			a:       "2025-04-05 08:10",
			montant: "750",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Parse(tt.body, receivedAt)
			require.Equal(t, SkipNone, res.Skipped)
			require.NotNil(t, res.Record)

			rec := res.Record
			assert.Equal(t, tt.id, rec.ID)
			assert.Equal(t, tt.de, rec.De)
			require.NotNil(t, rec.Numero)
			assert.Equal(t, tt.numero, *rec.Numero)
			assert.Equal(t, tt.a, rec.A)
			assert.True(t, rec.Montant.Equal(decimal.RequireFromString(tt.montant)), "montant = %s", rec.Montant)
			assert.False(t, rec.Used)
		})
	}
}

func TestParser_FallbackTimeAndNoNumber(t *testing.T) {
	p := NewParser(time.FixedZone("HT", -4*60*60))

	res := p.Parse("Ou resevwa 100 HTG de Boutik Lakay a 9 TransCode: Q1", receivedAt)
	require.NotNil(t, res.Record)
	assert.Equal(t, "2025-03-11 10:32", res.Record.A)
	assert.Nil(t, res.Record.Numero)
	assert.Equal(t, "Boutik Lakay", res.Record.De)
}

func TestParser_Skips(t *testing.T) {
	p := NewParser(time.UTC)

	tests := []struct {
		name string
		body string
		want SkipReason
	}{
		{"empty", "   ", SkipEmptyBody},
		{"unrelated", "Bonjou, ou gen yon nouvo mesaj", SkipNoPattern},
		{"amount is only punctuation", "Ou resevwa ., HTG de Jean 50912345678 a 14:32 11/03/2025", SkipBadAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Parse(tt.body, receivedAt)
			assert.Nil(t, res.Record)
			assert.Equal(t, tt.want, res.Skipped)
		})
	}
}
