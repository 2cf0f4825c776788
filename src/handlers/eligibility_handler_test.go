// backend/src/handlers/eligibility_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/benefitpass/backend/src/logger"
	"github.com/username/benefitpass/backend/src/models"
	"github.com/username/benefitpass/backend/src/processors"
	"github.com/username/benefitpass/backend/src/services"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func newPreviewHandler() *EligibilityHandler {
	ledgerProcessor := processors.NewLedgerProcessor()
	service := services.NewVoucherService(
		processors.NewEligibilityProcessor(),
		ledgerProcessor,
		processors.NewPresentationProcessor(ledgerProcessor, "/placeholder.jpg"),
		cache.New(time.Minute, time.Minute),
	)
	return NewEligibilityHandler(service)
}

func postPreview(t *testing.T, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/eligibility/preview", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	newPreviewHandler().HandlePreviewEligibility(w, r)
	return w
}

func TestHandlePreviewEligibility(t *testing.T) {
	req := PreviewEligibilityRequest{
		Product: models.Product{
			ID: 1,
			Funds: []models.Fund{{
				ID:                  1,
				Type:                models.FundTypeBudget,
				ReservationsEnabled: true,
			}},
		},
		Vouchers: []models.Voucher{{
			ID:           10,
			FundID:       1,
			Type:         models.VoucherTypeRegular,
			QueryProduct: &models.QueryProduct{Reservable: true},
		}},
	}

	w := postPreview(t, req)
	require.Equal(t, http.StatusOK, w.Code)

	var outcome models.EligibilityOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.True(t, outcome.HasReservableFunds)
	require.Len(t, outcome.Funds, 1)
	assert.True(t, outcome.Funds[0].Meta.IsReservationAvailable)
}

func TestHandlePreviewEligibility_RejectsBadVoucherType(t *testing.T) {
	req := PreviewEligibilityRequest{
		Product:  models.Product{ID: 1},
		Vouchers: []models.Voucher{{ID: 10, FundID: 1, Type: "gift_card"}},
	}

	w := postPreview(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePreviewEligibility_RejectsBadDatePattern(t *testing.T) {
	req := PreviewEligibilityRequest{
		Product: models.Product{ID: 1, ExpireAt: "30-11-2024"},
	}

	w := postPreview(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePreviewEligibility_RejectsMalformedBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/eligibility/preview", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	newPreviewHandler().HandlePreviewEligibility(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
