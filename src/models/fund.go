package models

// Fund types as issued by the platform.
const (
	FundTypeBudget    = "budget"
	FundTypeSubsidies = "subsidies"
	FundTypeOther     = "other"
)

// Organization owns funds and acts as the counterparty on spend
// transactions. Its logo is a fallback source for voucher thumbnails.
type Organization struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Logo  string `json:"logo,omitempty"`
}

// Fund is a funding program issuing vouchers, optionally time-bounded.
// EndAt follows the YYYY-MM-DD calendar pattern; EndAtLocale is the
// pre-formatted display string that travels with it and is never recomputed.
type Fund struct {
	ID                              int64        `json:"id"`
	Type                            string       `json:"type" validate:"omitempty,oneof=budget subsidies other"`
	Name                            string       `json:"name,omitempty"`
	EndAt                           string       `json:"end_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndAtLocale                     string       `json:"end_at_locale,omitempty"`
	Logo                            string       `json:"logo,omitempty"`
	ReservationsEnabled             bool         `json:"reservations_enabled"`
	ReservationExtraPaymentsEnabled bool         `json:"reservation_extra_payments_enabled"`
	Organization                    Organization `json:"organization"`
}
