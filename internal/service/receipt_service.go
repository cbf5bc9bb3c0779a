package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go-boutique-ws/internal/repository"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReceiptService interface {
	Render(ctx context.Context, panierID string, w io.Writer) error
}

type receiptService struct {
	stores repository.Stores
	profil repository.ProfilRepository
	title  string
	now    Clock
}

func NewReceiptService(db *gorm.DB, title string, now Clock) ReceiptService {
	b := newBase(db, nil, now)
	return &receiptService{stores: b.stores, profil: repository.NewProfilRepo(db), title: title, now: b.now}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + " HTG"
}

// Render writes an 80mm receipt of the panier: shop header, client, items,
// totals and the paiements made so far.
func (s *receiptService) Render(ctx context.Context, panierID string, w io.Writer) error {
	p, err := s.stores.Paniers.Get(ctx, panierID)
	if err != nil {
		return notFound(err, ErrPanierNotFound)
	}
	pays, err := s.stores.Paiements.ByPanier(ctx, panierID)
	if err != nil {
		return err
	}
	client, err := s.stores.Clients.Get(ctx, p.ClientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	shop, err := s.profil.Get(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 80, Ht: 200},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(true, 4)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// Header
	title := s.title
	if shop != nil && shop.Nom != "" {
		title = shop.Nom
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 6, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	if shop != nil {
		for _, line := range []string{shop.Adresse, shop.Telephone, shop.NIF} {
			if line != "" {
				pdf.CellFormat(contentW, 4, tr(line), "", 1, "C", false, 0, "")
			}
		}
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, tr("Panier #"+p.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, s.now().Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if client != nil {
		pdf.CellFormat(contentW, 4, tr(fmt.Sprintf("Client : %s %s (%s)", client.Prenom, client.Nom, client.Telephone)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// Items
	col1 := contentW * 0.50
	col2 := contentW * 0.15
	col3 := contentW * 0.35

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, tr("Désignation"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qte", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Sous-total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for i := range p.Items {
		it := &p.Items[i]
		name := it.Designation
		if r := []rune(name); len(r) > 24 {
			name = string(r[:23]) + "."
		}
		pdf.CellFormat(col1, 5, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", it.Quantite), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, money(it.Subtotal()), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// Totals
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, money(p.Total), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(col1+col2, 5, tr("Payé"), "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, money(p.Paye), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 5, "Reste", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, money(p.Reste), "", 1, "R", false, 0, "")

	if len(pays) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 7)
		for _, pay := range pays {
			label := pay.CreatedAt.In(s.now().Location()).Format("02/01/2006 15:04")
			if pay.Par != "" {
				label += " (" + pay.Par + ")"
			}
			pdf.CellFormat(col1+col2, 4, tr(label), "", 0, "L", false, 0, "")
			pdf.CellFormat(col3, 4, money(pay.Montant), "", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("Merci pour votre achat !"), "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("receipt: write pdf: %w", err)
	}
	return nil
}
