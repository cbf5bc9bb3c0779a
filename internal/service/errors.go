package service

import (
	"errors"
	"fmt"

	"go-boutique-ws/internal/repository"
	"go-boutique-ws/pkg/ident"
	"go-boutique-ws/pkg/validator"
)

// Category tells the transport layer how to report an error.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryNotFound   Category = "not_found"
	CategoryConflict   Category = "conflict"
	CategoryConfig     Category = "config"
	CategoryAuth       Category = "auth"
)

// Error is a user-visible rejection. Nothing has been written when one is returned.
type Error struct {
	Category Category
	Msg      string
}

func (e *Error) Error() string { return e.Msg }

func newError(c Category, msg string) *Error {
	return &Error{Category: c, Msg: msg}
}

var (
	ErrInvalidQuantity    = newError(CategoryValidation, "quantity must be greater than zero")
	ErrInsufficientStock  = newError(CategoryValidation, "insufficient stock")
	ErrInvalidAmount      = newError(CategoryValidation, "amount must be greater than zero")
	ErrAmountExceedsReste = newError(CategoryValidation, "amount exceeds the remaining balance")
	ErrItemDelivered      = newError(CategoryValidation, "item already delivered")
	ErrPaymentNotToday    = newError(CategoryValidation, "only payments made today can be cancelled")
	ErrPanierNotEmpty     = newError(CategoryValidation, "basket still has items")
	ErrProduitInStock     = newError(CategoryValidation, "product still has stock")
	ErrClientHasPanier    = newError(CategoryValidation, "client still has a basket with items")
	ErrStockCommitted     = newError(CategoryValidation, "product of this stock is in a basket")
	ErrInvalidCode        = newError(CategoryValidation, "invalid transaction code")
	ErrCodeAlreadyUsed    = newError(CategoryValidation, "transaction code already used")
	ErrInsufficientAmount = newError(CategoryValidation, "transaction amount is less than the remaining balance")
	ErrPanierAlreadyPaid  = newError(CategoryValidation, "basket is already paid")
	ErrInvalidPayload     = newError(CategoryValidation, "invalid payload")

	ErrPanierNotFound   = newError(CategoryNotFound, "basket not found")
	ErrItemNotFound     = newError(CategoryNotFound, "item not found")
	ErrPaiementNotFound = newError(CategoryNotFound, "payment not found")
	ErrProduitNotFound  = newError(CategoryNotFound, "product not found")
	ErrClientNotFound   = newError(CategoryNotFound, "client not found")
	ErrStockNotFound    = newError(CategoryNotFound, "stock not found")

	ErrPanierAlreadyOpen = newError(CategoryConflict, "client already has an open basket")
	ErrDuplicate         = newError(CategoryConflict, "a record with this identifier already exists")

	ErrInvalidCredentials = newError(CategoryAuth, "invalid email or password")
	ErrWrongPassword      = newError(CategoryAuth, "current password is incorrect")
	ErrSessionExpired     = newError(CategoryAuth, "session expired (logged in on another device)")
	ErrWeakPassword       = newError(CategoryValidation, "password must be at least 6 characters")
)

// CategoryOf returns the category of err, CategoryConfig for identifier rule
// errors, and "" for anything unexpected.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	if errors.Is(err, ident.ErrNoRule) || errors.Is(err, ident.ErrUnknownKind) {
		return CategoryConfig
	}
	return ""
}

// notFound maps repository.ErrNotFound to the service sentinel.
func notFound(err error, sentinel *Error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}

// validate runs the struct tags of v and reports the first failure.
func validate(v interface{}) error {
	if errs := validator.ValidateStruct(v); len(errs) > 0 {
		first := errs[0]
		return &Error{
			Category: CategoryValidation,
			Msg:      fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag),
		}
	}
	return nil
}
