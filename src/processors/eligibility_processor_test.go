package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/benefitpass/backend/src/models"
)

// evaluationDay pins "now" so date-dependent availability is deterministic.
var evaluationDay = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEligibilityProcessor() *EligibilityProcessor {
	p := NewEligibilityProcessor()
	p.now = func() time.Time { return evaluationDay }
	return p
}

func testFund(id int64, endAt string) models.Fund {
	return models.Fund{
		ID:                  id,
		Type:                models.FundTypeBudget,
		Name:                "Child benefits",
		EndAt:               endAt,
		EndAtLocale:         endAt,
		ReservationsEnabled: true,
		Organization:        models.Organization{ID: 1, Name: "City of Westdorp"},
	}
}

func reservableVoucher(fundID int64, expireAt string) models.Voucher {
	return models.Voucher{
		ID:     fundID * 100,
		FundID: fundID,
		Type:   models.VoucherTypeRegular,
		QueryProduct: &models.QueryProduct{
			Reservable:               true,
			ReservableExpireAt:       expireAt,
			ReservableExpireAtLocale: expireAt,
		},
	}
}

func TestProcess_ShownExpireDateIsSoonestSource(t *testing.T) {
	p := newTestEligibilityProcessor()

	// Fund ends 2024-12-31, product expires 2024-11-30, the voucher's
	// reservation window closes 2024-10-15: the voucher deadline wins.
	product := models.Product{
		ID:             1,
		ExpireAt:       "2024-11-30",
		ExpireAtLocale: "30 november 2024",
		Funds:          []models.Fund{testFund(1, "2024-12-31")},
	}
	vouchers := []models.Voucher{reservableVoucher(1, "2024-10-15")}

	outcome := p.Process(product, vouchers)
	require.Len(t, outcome.Funds, 1)
	shown := outcome.Funds[0].Meta.ShownExpireDate
	require.NotNil(t, shown)
	assert.Equal(t, midnightUTC("2024-10-15"), shown.Unix)
	assert.Equal(t, "2024-10-15", shown.Locale)
}

func TestProcess_SoldOutOverridesReservability(t *testing.T) {
	p := newTestEligibilityProcessor()

	product := models.Product{
		ID:      1,
		SoldOut: true,
		Funds:   []models.Fund{testFund(1, "")},
	}
	vouchers := []models.Voucher{reservableVoucher(1, "")}

	outcome := p.Process(product, vouchers)
	require.Len(t, outcome.Funds, 1)
	meta := outcome.Funds[0].Meta
	assert.False(t, meta.IsReservationAvailable, "sold-out product can never be reserved")
	assert.False(t, meta.IsReservationExtraPaymentAvailable)
	assert.Len(t, meta.ReservableVouchers, 1, "the voucher itself is still reservable for this product")
	assert.False(t, outcome.HasReservableFunds)
}

func TestProcess_DeletedAndExpiredProductsUnavailable(t *testing.T) {
	p := newTestEligibilityProcessor()
	vouchers := []models.Voucher{reservableVoucher(1, "")}

	deleted := models.Product{ID: 1, Deleted: true, Funds: []models.Fund{testFund(1, "")}}
	assert.False(t, p.Process(deleted, vouchers).Funds[0].Meta.IsReservationAvailable)

	expired := models.Product{ID: 1, ExpireAt: "2024-01-01", Funds: []models.Fund{testFund(1, "")}}
	assert.False(t, p.Process(expired, vouchers).Funds[0].Meta.IsReservationAvailable)

	available := models.Product{ID: 1, ExpireAt: "2024-12-31", Funds: []models.Fund{testFund(1, "")}}
	assert.True(t, p.Process(available, vouchers).Funds[0].Meta.IsReservationAvailable)
}

func TestProcess_ReservationMonotonicity(t *testing.T) {
	p := newTestEligibilityProcessor()

	product := models.Product{ID: 1, Funds: []models.Fund{testFund(1, "")}}
	outcome := p.Process(product, []models.Voucher{reservableVoucher(1, "")})

	require.Len(t, outcome.Funds, 1)
	meta := outcome.Funds[0].Meta
	if meta.IsReservationAvailable {
		assert.NotEmpty(t, meta.ReservableVouchers)
		assert.True(t, outcome.Funds[0].ReservationsEnabled)
	}
	assert.True(t, meta.IsReservationAvailable)
	assert.True(t, outcome.HasReservableFunds)
}

func TestProcess_ExtraPaymentImpliesReservation(t *testing.T) {
	p := newTestEligibilityProcessor()

	fund := testFund(1, "")
	fund.ReservationExtraPaymentsEnabled = true
	product := models.Product{ID: 1, Funds: []models.Fund{fund}}

	outcome := p.Process(product, []models.Voucher{reservableVoucher(1, "")})
	meta := outcome.Funds[0].Meta
	assert.True(t, meta.IsReservationAvailable)
	assert.True(t, meta.IsReservationExtraPaymentAvailable)

	// With reservations disabled, extra payments must be off as well.
	fund.ReservationsEnabled = false
	product.Funds = []models.Fund{fund}
	meta = p.Process(product, []models.Voucher{reservableVoucher(1, "")}).Funds[0].Meta
	assert.False(t, meta.IsReservationAvailable)
	assert.False(t, meta.IsReservationExtraPaymentAvailable)
}

func TestProcess_VoucherFiltering(t *testing.T) {
	p := newTestEligibilityProcessor()

	product := models.Product{ID: 1, Funds: []models.Fund{testFund(1, "")}}
	vouchers := []models.Voucher{
		reservableVoucher(1, ""),
		{ID: 2, FundID: 1, Type: models.VoucherTypeRegular, Expired: true},
		{ID: 3, FundID: 1, Type: models.VoucherTypeProduct},
		{ID: 4, FundID: 99, Type: models.VoucherTypeRegular}, // fund not on product
	}

	outcome := p.Process(product, vouchers)
	require.Len(t, outcome.RegularActiveVouchers, 1)
	assert.Equal(t, int64(100), outcome.RegularActiveVouchers[0].ID)
	require.Len(t, outcome.Funds, 1)
	assert.Len(t, outcome.Funds[0].Meta.ApplicableVouchers, 1)
}

func TestProcess_MultipleFundsKeepProductOrder(t *testing.T) {
	p := newTestEligibilityProcessor()

	fundB := testFund(2, "")
	fundB.ReservationsEnabled = false
	product := models.Product{ID: 1, Funds: []models.Fund{testFund(1, ""), fundB}}

	outcome := p.Process(product, []models.Voucher{reservableVoucher(1, ""), reservableVoucher(2, "")})
	require.Len(t, outcome.Funds, 2)
	assert.Equal(t, int64(1), outcome.Funds[0].ID)
	assert.Equal(t, int64(2), outcome.Funds[1].ID)
	assert.True(t, outcome.Funds[0].Meta.IsReservationAvailable)
	assert.False(t, outcome.Funds[1].Meta.IsReservationAvailable)
	assert.True(t, outcome.HasReservableFunds)
}

func TestProcess_ProductWithoutFunds(t *testing.T) {
	p := newTestEligibilityProcessor()

	outcome := p.Process(models.Product{ID: 1}, []models.Voucher{reservableVoucher(1, "")})
	assert.Empty(t, outcome.Funds)
	assert.Empty(t, outcome.RegularActiveVouchers)
	assert.False(t, outcome.HasReservableFunds)
}

func TestProcess_Idempotent(t *testing.T) {
	p := newTestEligibilityProcessor()

	product := models.Product{
		ID:       1,
		ExpireAt: "2024-11-30",
		Funds:    []models.Fund{testFund(1, "2024-12-31"), testFund(2, "")},
	}
	vouchers := []models.Voucher{reservableVoucher(1, "2024-10-15"), reservableVoucher(2, "")}

	first := p.Process(product, vouchers)
	second := p.Process(product, vouchers)
	assert.Equal(t, first, second)
}
