// backend/src/handlers/eligibility_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/username/benefitpass/backend/src/logger"
	"github.com/username/benefitpass/backend/src/models"
	"github.com/username/benefitpass/backend/src/security/validation"
	"github.com/username/benefitpass/backend/src/services"
	"github.com/username/benefitpass/backend/src/utils"
)

type EligibilityHandler struct {
	voucherService services.VoucherService
}

func NewEligibilityHandler(voucherService services.VoucherService) *EligibilityHandler {
	return &EligibilityHandler{voucherService: voucherService}
}

// HandleGetProductEligibility answers which of a product's funds the
// authenticated holder can currently use, and how.
func (h *EligibilityHandler) HandleGetProductEligibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	logger.FromContext(r.Context()).Info("Handling product eligibility request", "productID", productID)

	outcome, err := h.voucherService.GetProductEligibility(userID, productID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.SendJSONError(w, "Product not found", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Error computing eligibility", "productID", productID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error computing eligibility: %v", err), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, outcome)
}

// PreviewEligibilityRequest is a caller-supplied product plus voucher set,
// evaluated without touching the store.
type PreviewEligibilityRequest struct {
	Product  models.Product   `json:"product" validate:"required"`
	Vouchers []models.Voucher `json:"vouchers" validate:"dive"`
}

// HandlePreviewEligibility evaluates a hypothetical pairing. Useful for
// admin tooling and for funds previewing how a product would surface.
func (h *EligibilityHandler) HandlePreviewEligibility(w http.ResponseWriter, r *http.Request) {
	var req PreviewEligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.Request.Struct(req); err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Validation failed: %v", err), http.StatusBadRequest)
		return
	}

	outcome := h.voucherService.PreviewEligibility(req.Product, req.Vouchers)
	utils.WriteJSON(w, outcome)
}
