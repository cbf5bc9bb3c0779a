// Package ident derives the primary keys of every collection from the
// record's own content. The store has no auto-increment, so keys are computed
// deterministically: same attributes inside the same minute bucket always give
// the same key.
//
// Two records of the same kind created for the same owner inside one minute
// bucket (two stock intakes of one product, two paiements on one panier)
// collide on purpose. Keys persisted by earlier versions depend on this exact
// scheme, so it must not change.
package ident

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

var (
	// ErrUnknownKind is returned for a collection name outside the closed set.
	ErrUnknownKind = errors.New("unknown collection")
	// ErrNoRule is returned for a known collection that has no derivation rule.
	ErrNoRule = errors.New("no identifier rule for collection")
)

type Kind string

const (
	KindClient    Kind = "client"
	KindProduit   Kind = "produit"
	KindStock     Kind = "stock"
	KindPanier    Kind = "panier"
	KindPaiements Kind = "paiements"
	KindNaCash    Kind = "natcash"
)

// Kinds lists every collection in creation order.
var Kinds = []Kind{KindClient, KindProduit, KindStock, KindPanier, KindPaiements, KindNaCash}

func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Attrs carries the semantic fields a rule may read. Unused fields are ignored.
type Attrs struct {
	Designation string
	PU          string // unit price rendered without trailing zeros ("250", "12.5")
	Client      string
	Produit     string
	Telephone   string
	Panier      string
}

// Derive computes the key of a new record of the given kind.
func Derive(kind Kind, attrs Attrs, now time.Time) (string, error) {
	switch kind {
	case KindProduit:
		return Hash(attrs.Designation + attrs.PU), nil
	case KindPanier:
		return Hash(attrs.Client + "_" + Bucket(now)), nil
	case KindStock:
		return Hash(attrs.Produit + "_" + Bucket(now)), nil
	case KindClient:
		return attrs.Telephone, nil
	case KindPaiements:
		return attrs.Panier + "_" + Bucket(now), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrNoRule, string(kind))
	}
}

// Bucket returns the minute-resolution bucket MMDDHHmm of t in its own location.
func Bucket(t time.Time) string {
	return t.Format("01021504")
}

// NaCashPaiementID is the key of a paiement created by a NaCash redemption.
func NaCashPaiementID(panier string, now time.Time) string {
	return panier + "_" + strconv.FormatInt(now.UnixMilli(), 10)
}

// Hash is the 32-bit rolling hash h = h*31 + c over UTF-16 code units,
// absolute value, left-padded with '1' to 10 digits.
func Hash(s string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	out := strconv.FormatInt(v, 10)
	if len(out) < 10 {
		out = strings.Repeat("1", 10-len(out)) + out
	}
	return out
}
