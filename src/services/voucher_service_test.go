// backend/src/services/voucher_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/username/benefitpass/backend/src/models"
	"github.com/username/benefitpass/backend/src/processors"
)

func newTestService() VoucherService {
	ledgerProcessor := processors.NewLedgerProcessor()
	return NewVoucherService(
		processors.NewEligibilityProcessor(),
		ledgerProcessor,
		processors.NewPresentationProcessor(ledgerProcessor, "/placeholder.jpg"),
		cache.New(time.Minute, time.Minute),
	)
}

func TestVoucherSetRevision_Deterministic(t *testing.T) {
	vouchers := []models.Voucher{
		{ID: 1, Type: models.VoucherTypeRegular},
		{ID: 2, Type: models.VoucherTypeRegular, QueryProduct: &models.QueryProduct{Reservable: true}},
	}
	assert.Equal(t, voucherSetRevision(vouchers), voucherSetRevision(vouchers))
}

func TestVoucherSetRevision_ChangesWithVoucherState(t *testing.T) {
	base := []models.Voucher{{ID: 1, Type: models.VoucherTypeRegular}}

	expired := []models.Voucher{{ID: 1, Type: models.VoucherTypeRegular, Expired: true}}
	assert.NotEqual(t, voucherSetRevision(base), voucherSetRevision(expired))

	reservable := []models.Voucher{{
		ID: 1, Type: models.VoucherTypeRegular,
		QueryProduct: &models.QueryProduct{Reservable: true},
	}}
	assert.NotEqual(t, voucherSetRevision(base), voucherSetRevision(reservable))

	extra := append(base, models.Voucher{ID: 2, Type: models.VoucherTypeRegular})
	assert.NotEqual(t, voucherSetRevision(base), voucherSetRevision(extra))
}

func TestPreviewEligibility_DoesNotRequireStore(t *testing.T) {
	service := newTestService()

	product := models.Product{
		ID: 1,
		Funds: []models.Fund{{
			ID:                  1,
			Type:                models.FundTypeBudget,
			ReservationsEnabled: true,
		}},
	}
	vouchers := []models.Voucher{{
		ID:           10,
		FundID:       1,
		Type:         models.VoucherTypeRegular,
		QueryProduct: &models.QueryProduct{Reservable: true},
	}}

	outcome := service.PreviewEligibility(product, vouchers)
	assert.True(t, outcome.HasReservableFunds)
	assert.Len(t, outcome.RegularActiveVouchers, 1)

	again := service.PreviewEligibility(product, vouchers)
	assert.Equal(t, outcome, again)
}
