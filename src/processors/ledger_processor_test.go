package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/benefitpass/backend/src/models"
)

func TestLedger_MergesAndSortsMostRecentFirst(t *testing.T) {
	p := NewLedgerProcessor()

	voucher := models.Voucher{
		Transactions: []models.Transaction{
			{ID: 1, UniqueID: "tx-1", Timestamp: 100, AmountLocale: "€ 10,00"},
			{ID: 2, UniqueID: "tx-2", Timestamp: 200, AmountLocale: "€ 5,00"},
		},
		ProductVouchers: []models.ProductVoucherIssuance{
			{ID: 3, UniqueID: "pv-3", Timestamp: 150, AmountLocale: "€ 7,50"},
		},
	}

	ledger := p.Process(voucher)
	require.Len(t, ledger, 3)
	assert.Equal(t, []int64{200, 150, 100}, []int64{ledger[0].Timestamp, ledger[1].Timestamp, ledger[2].Timestamp})
	assert.Equal(t, models.LedgerKindTransaction, ledger[0].Kind)
	assert.Equal(t, models.LedgerKindProductVoucher, ledger[1].Kind)
	assert.Equal(t, models.LedgerKindTransaction, ledger[2].Kind)
}

func TestLedger_OrderingIsNonIncreasing(t *testing.T) {
	p := NewLedgerProcessor()

	voucher := models.Voucher{
		Transactions: []models.Transaction{
			{ID: 1, Timestamp: 40}, {ID: 2, Timestamp: 90}, {ID: 3, Timestamp: 10}, {ID: 4, Timestamp: 90},
		},
		ProductVouchers: []models.ProductVoucherIssuance{
			{ID: 5, Timestamp: 60}, {ID: 6, Timestamp: 5}, {ID: 7, Timestamp: 90},
		},
	}

	ledger := p.Process(voucher)
	require.Len(t, ledger, 7)
	for i := 1; i < len(ledger); i++ {
		assert.GreaterOrEqual(t, ledger[i-1].Timestamp, ledger[i].Timestamp)
	}
}

func TestLedger_TiesKeepTransactionsBeforeIssuances(t *testing.T) {
	p := NewLedgerProcessor()

	voucher := models.Voucher{
		Transactions: []models.Transaction{
			{ID: 1, UniqueID: "tx-1", Timestamp: 100},
			{ID: 2, UniqueID: "tx-2", Timestamp: 100},
		},
		ProductVouchers: []models.ProductVoucherIssuance{
			{ID: 3, UniqueID: "pv-3", Timestamp: 100},
		},
	}

	ledger := p.Process(voucher)
	require.Len(t, ledger, 3)
	assert.Equal(t, "tx-1", ledger[0].UniqueID)
	assert.Equal(t, "tx-2", ledger[1].UniqueID)
	assert.Equal(t, "pv-3", ledger[2].UniqueID)
}

func TestLedger_IncomingFlag(t *testing.T) {
	p := NewLedgerProcessor()

	voucher := models.Voucher{
		Transactions: []models.Transaction{
			{ID: 1, Timestamp: 300, Target: models.TransactionTargetTopUp},
			{ID: 2, Timestamp: 200, Target: "provider"},
		},
		ProductVouchers: []models.ProductVoucherIssuance{
			{ID: 3, Timestamp: 100},
		},
	}

	ledger := p.Process(voucher)
	require.Len(t, ledger, 3)
	assert.True(t, ledger[0].Incoming, "top-up transactions add budget")
	assert.False(t, ledger[1].Incoming)
	assert.False(t, ledger[2].Incoming, "issuances are never incoming")
	assert.Empty(t, ledger[2].Target)
}

func TestLedger_SourceRecordsNotMutated(t *testing.T) {
	p := NewLedgerProcessor()

	voucher := models.Voucher{
		Transactions: []models.Transaction{
			{ID: 1, Timestamp: 100, Target: "provider"},
			{ID: 2, Timestamp: 50, Target: models.TransactionTargetTopUp},
		},
		ProductVouchers: []models.ProductVoucherIssuance{
			{ID: 3, Timestamp: 75},
		},
	}
	original := voucher

	first := p.Process(voucher)
	second := p.Process(voucher)

	assert.Equal(t, original, voucher)
	assert.Equal(t, first, second)
}
