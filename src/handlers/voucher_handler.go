// backend/src/handlers/voucher_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/username/benefitpass/backend/src/logger"
	"github.com/username/benefitpass/backend/src/services"
	"github.com/username/benefitpass/backend/src/utils"
)

type VoucherHandler struct {
	voucherService services.VoucherService
}

func NewVoucherHandler(voucherService services.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// HandleGetVoucher returns the presentation model for one of the holder's
// vouchers.
func (h *VoucherHandler) HandleGetVoucher(w http.ResponseWriter, r *http.Request) {
	userID, voucherID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	presentation, err := h.voucherService.GetVoucherPresentation(userID, voucherID)
	if err != nil {
		h.writeServiceError(w, r, voucherID, err)
		return
	}

	utils.WriteJSON(w, presentation)
}

// HandleGetVoucherLedger returns the merged transaction / issuance history
// for one of the holder's vouchers, most recent first.
func (h *VoucherHandler) HandleGetVoucherLedger(w http.ResponseWriter, r *http.Request) {
	userID, voucherID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	ledger, err := h.voucherService.GetVoucherLedger(userID, voucherID)
	if err != nil {
		h.writeServiceError(w, r, voucherID, err)
		return
	}

	utils.WriteJSON(w, ledger)
}

func (h *VoucherHandler) requestScope(w http.ResponseWriter, r *http.Request) (userID, voucherID int64, ok bool) {
	userID, authed := GetUserIDFromContext(r.Context())
	if !authed {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return 0, 0, false
	}

	voucherID, err := strconv.ParseInt(chi.URLParam(r, "voucherID"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Invalid voucher ID", http.StatusBadRequest)
		return 0, 0, false
	}
	return userID, voucherID, true
}

func (h *VoucherHandler) writeServiceError(w http.ResponseWriter, r *http.Request, voucherID int64, err error) {
	if errors.Is(err, services.ErrVoucherNotFound) {
		utils.SendJSONError(w, "Voucher not found", http.StatusNotFound)
		return
	}
	logger.FromContext(r.Context()).Error("Error loading voucher", "voucherID", voucherID, "error", err)
	utils.SendJSONError(w, fmt.Sprintf("Error loading voucher: %v", err), http.StatusInternalServerError)
}
