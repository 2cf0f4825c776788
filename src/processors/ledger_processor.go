// backend/src/processors/ledger_processor.go
package processors

import (
	"sort"

	"github.com/username/benefitpass/backend/src/models"
)

// LedgerProcessor flattens a voucher's history, spend/top-up transactions
// and product-voucher issuances, into one display sequence.
type LedgerProcessor struct{}

func NewLedgerProcessor() *LedgerProcessor { return &LedgerProcessor{} }

// Process projects both record categories into ledger entries and orders
// them most recent first. The comparator is independent of the expiration
// resolver's: latest event and soonest deadline are different policies.
// Equal timestamps keep concatenation order, transactions before issuances.
func (p *LedgerProcessor) Process(voucher models.Voucher) []models.LedgerEntry {
	entries := make([]models.LedgerEntry, 0, len(voucher.Transactions)+len(voucher.ProductVouchers))

	for _, tx := range voucher.Transactions {
		entries = append(entries, models.LedgerEntry{
			ID:              tx.ID,
			UniqueID:        tx.UniqueID,
			Timestamp:       tx.Timestamp,
			AmountLocale:    tx.AmountLocale,
			Kind:            models.LedgerKindTransaction,
			Product:         tx.Product,
			Target:          tx.Target,
			Reservation:     tx.Reservation,
			Organization:    tx.Organization,
			CreatedAtLocale: tx.CreatedAtLocale,
			Incoming:        tx.Target == models.TransactionTargetTopUp,
		})
	}

	for _, pv := range voucher.ProductVouchers {
		entries = append(entries, models.LedgerEntry{
			ID:              pv.ID,
			UniqueID:        pv.UniqueID,
			Timestamp:       pv.Timestamp,
			AmountLocale:    pv.AmountLocale,
			Kind:            models.LedgerKindProductVoucher,
			Product:         pv.Product,
			CreatedAtLocale: pv.CreatedAtLocale,
			Incoming:        false,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries
}
