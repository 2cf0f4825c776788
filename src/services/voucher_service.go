// backend/src/services/voucher_service.go
package services

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/benefitpass/backend/src/database"
	"github.com/username/benefitpass/backend/src/logger"
	"github.com/username/benefitpass/backend/src/models"
	"github.com/username/benefitpass/backend/src/processors"
)

const (
	ckEligibility          = "agg_eligibility_user_%d_product_%d_rev_%s"
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type voucherServiceImpl struct {
	eligibilityProcessor  *processors.EligibilityProcessor
	ledgerProcessor       *processors.LedgerProcessor
	presentationProcessor *processors.PresentationProcessor
	resultCache           *cache.Cache
}

func NewVoucherService(
	eligibilityProcessor *processors.EligibilityProcessor,
	ledgerProcessor *processors.LedgerProcessor,
	presentationProcessor *processors.PresentationProcessor,
	resultCache *cache.Cache,
) VoucherService {
	return &voucherServiceImpl{
		eligibilityProcessor:  eligibilityProcessor,
		ledgerProcessor:       ledgerProcessor,
		presentationProcessor: presentationProcessor,
		resultCache:           resultCache,
	}
}

func (s *voucherServiceImpl) GetProductEligibility(userID, productID int64) (*models.EligibilityOutcome, error) {
	product, err := models.GetProductWithFunds(database.DB, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("loading product %d: %w", productID, err)
	}

	vouchers, err := models.GetUserVouchersForProduct(database.DB, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("loading vouchers for user %d: %w", userID, err)
	}

	// Evaluation is deterministic for a given voucher set, so the revision
	// marker makes stale cache entries unreachable instead of invalid.
	cacheKey := fmt.Sprintf(ckEligibility, userID, productID, voucherSetRevision(vouchers))
	if cached, found := s.resultCache.Get(cacheKey); found {
		return cached.(*models.EligibilityOutcome), nil
	}

	outcome := s.eligibilityProcessor.Process(*product, vouchers)
	s.resultCache.Set(cacheKey, &outcome, cache.DefaultExpiration)

	logger.L.Debug("Computed product eligibility",
		"userID", userID, "productID", productID,
		"funds", len(outcome.Funds), "hasReservableFunds", outcome.HasReservableFunds)
	return &outcome, nil
}

func (s *voucherServiceImpl) GetVoucherPresentation(userID, voucherID int64) (*models.VoucherPresentation, error) {
	voucher, err := s.loadVoucher(userID, voucherID)
	if err != nil {
		return nil, err
	}
	presentation := s.presentationProcessor.Process(*voucher)
	return &presentation, nil
}

func (s *voucherServiceImpl) GetVoucherLedger(userID, voucherID int64) ([]models.LedgerEntry, error) {
	voucher, err := s.loadVoucher(userID, voucherID)
	if err != nil {
		return nil, err
	}
	return s.ledgerProcessor.Process(*voucher), nil
}

func (s *voucherServiceImpl) PreviewEligibility(product models.Product, vouchers []models.Voucher) models.EligibilityOutcome {
	return s.eligibilityProcessor.Process(product, vouchers)
}

// InvalidateUserCache drops every cached outcome for one holder.
func (s *voucherServiceImpl) InvalidateUserCache(userID int64) {
	prefix := fmt.Sprintf("agg_eligibility_user_%d_", userID)
	for key := range s.resultCache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.resultCache.Delete(key)
		}
	}
}

func (s *voucherServiceImpl) loadVoucher(userID, voucherID int64) (*models.Voucher, error) {
	voucher, err := models.GetUserVoucher(database.DB, userID, voucherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVoucherNotFound
		}
		return nil, fmt.Errorf("loading voucher %d: %w", voucherID, err)
	}
	return voucher, nil
}

// voucherSetRevision derives a marker that changes whenever the evaluated
// voucher set changes in any way that can affect the outcome.
func voucherSetRevision(vouchers []models.Voucher) string {
	h := sha256.New()
	for _, v := range vouchers {
		fmt.Fprintf(h, "%d:%s:%t", v.ID, v.Type, v.Expired)
		if v.QueryProduct != nil {
			fmt.Fprintf(h, ":%t:%s", v.QueryProduct.Reservable, v.QueryProduct.ReservableExpireAt)
		}
		h.Write([]byte{'|'})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
