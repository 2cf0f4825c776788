// backend/src/processors/eligibility_processor.go
package processors

import (
	"time"

	"github.com/username/benefitpass/backend/src/models"
)

// EligibilityProcessor derives, for every fund a product belongs to,
// whether the holder can currently redeem the product through that fund,
// under which mode, and which expiration date to show.
type EligibilityProcessor struct {
	now func() time.Time
}

func NewEligibilityProcessor() *EligibilityProcessor {
	return &EligibilityProcessor{now: time.Now}
}

// Process evaluates a product against the holder's vouchers. Inputs are
// never mutated and the outcome is rebuilt from scratch on every call, so
// identical inputs yield identical outcomes.
func (p *EligibilityProcessor) Process(product models.Product, vouchers []models.Voucher) models.EligibilityOutcome {
	fundIDs := make(map[int64]bool, len(product.Funds))
	for _, fund := range product.Funds {
		fundIDs[fund.ID] = true
	}

	// Only active regular vouchers against one of the product's funds count.
	// A voucher whose fund is not on the product is silently excluded.
	regularActive := make([]models.Voucher, 0, len(vouchers))
	for _, v := range vouchers {
		if v.Type == models.VoucherTypeRegular && !v.Expired && fundIDs[v.FundID] {
			regularActive = append(regularActive, v)
		}
	}

	productCandidate := NormalizeExpireDate(product.ExpireAt, product.ExpireAtLocale)
	productAvailable := !product.SoldOut && !product.Deleted && !p.productExpired(productCandidate)

	results := make([]models.EligibilityResult, 0, len(product.Funds))
	hasReservableFunds := false

	for _, fund := range product.Funds {
		applicable := make([]models.Voucher, 0, len(regularActive))
		reservable := make([]models.Voucher, 0, len(regularActive))
		var candidates []*models.DateCandidate

		for _, v := range regularActive {
			if v.FundID != fund.ID {
				continue
			}
			applicable = append(applicable, v)
			if v.QueryProduct != nil {
				if v.QueryProduct.Reservable {
					reservable = append(reservable, v)
				}
				candidates = append(candidates, NormalizeExpireDate(
					v.QueryProduct.ReservableExpireAt,
					v.QueryProduct.ReservableExpireAtLocale,
				))
			}
		}

		candidates = append(candidates, NormalizeExpireDate(fund.EndAt, fund.EndAtLocale))
		candidates = append(candidates, productCandidate)

		reservationAvailable := len(reservable) > 0 && productAvailable && fund.ReservationsEnabled
		if reservationAvailable {
			hasReservableFunds = true
		}

		results = append(results, models.EligibilityResult{
			Fund: fund,
			Meta: models.FundMeta{
				ShownExpireDate:                    ResolveExpireDate(candidates, Ascending),
				ApplicableVouchers:                 applicable,
				ReservableVouchers:                 reservable,
				IsReservationAvailable:             reservationAvailable,
				IsReservationExtraPaymentAvailable: reservationAvailable && fund.ReservationExtraPaymentsEnabled,
			},
		})
	}

	return models.EligibilityOutcome{
		RegularActiveVouchers: regularActive,
		Funds:                 results,
		HasReservableFunds:    hasReservableFunds,
	}
}

// productExpired reports whether the product's own expiration date has
// passed. A product without one never expires.
func (p *EligibilityProcessor) productExpired(c *models.DateCandidate) bool {
	if c == nil {
		return false
	}
	return c.Unix < p.now().Unix()
}
