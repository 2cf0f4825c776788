// backend/src/services/interfaces.go
package services

import (
	"errors"

	"github.com/username/benefitpass/backend/src/models"
)

// Define common service errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrVoucherNotFound = errors.New("voucher not found")
)

// VoucherService exposes the derived read models the API serves: per-fund
// eligibility for a product, the composed voucher ledger, and the voucher
// presentation model.
type VoucherService interface {
	GetProductEligibility(userID, productID int64) (*models.EligibilityOutcome, error)
	GetVoucherPresentation(userID, voucherID int64) (*models.VoucherPresentation, error)
	GetVoucherLedger(userID, voucherID int64) ([]models.LedgerEntry, error)

	// PreviewEligibility evaluates a caller-supplied product and voucher set
	// without touching the store.
	PreviewEligibility(product models.Product, vouchers []models.Voucher) models.EligibilityOutcome

	InvalidateUserCache(userID int64)
}
