package models

// DateCandidate is one normalized expiration source: the Unix timestamp of
// midnight UTC for the calendar date, plus the display string the source
// arrived with. The display string is passed through untouched.
type DateCandidate struct {
	Unix   int64  `json:"unix"`
	Locale string `json:"locale"`
}

// LedgerEntryKind discriminates the two record categories merged into one
// ledger.
type LedgerEntryKind string

const (
	LedgerKindTransaction    LedgerEntryKind = "transaction"
	LedgerKindProductVoucher LedgerEntryKind = "product_voucher"
)

// LedgerEntry is a display-oriented projection of either a spend/top-up
// transaction or a product-voucher issuance. Source records are never
// mutated while building these.
type LedgerEntry struct {
	ID              int64           `json:"id"`
	UniqueID        string          `json:"unique_id"`
	Timestamp       int64           `json:"timestamp"`
	AmountLocale    string          `json:"amount_locale"`
	Kind            LedgerEntryKind `json:"kind"`
	Product         *Product        `json:"product,omitempty"`
	Target          string          `json:"target,omitempty"`
	Reservation     *Reservation    `json:"reservation,omitempty"`
	Organization    *Organization   `json:"organization,omitempty"`
	CreatedAtLocale string          `json:"created_at_locale,omitempty"`
	Incoming        bool            `json:"incoming"`
}

// FundMeta is the derived availability block computed per fund when a
// product is evaluated against a holder's vouchers.
type FundMeta struct {
	ShownExpireDate                    *DateCandidate `json:"shown_expire_date,omitempty"`
	ApplicableVouchers                 []Voucher      `json:"applicable_vouchers"`
	ReservableVouchers                 []Voucher      `json:"reservable_vouchers"`
	IsReservationAvailable             bool           `json:"is_reservation_available"`
	IsReservationExtraPaymentAvailable bool           `json:"is_reservation_extra_payment_available"`
}

// EligibilityResult carries every original fund field plus the derived meta
// block.
type EligibilityResult struct {
	Fund
	Meta FundMeta `json:"meta"`
}

// EligibilityOutcome is the aggregate answer for one product / voucher-set
// pairing.
type EligibilityOutcome struct {
	RegularActiveVouchers []Voucher           `json:"regular_active_vouchers"`
	Funds                 []EligibilityResult `json:"funds"`
	HasReservableFunds    bool                `json:"has_reservable_funds"`
}

// VoucherPresentation is the display model built around a voucher.
type VoucherPresentation struct {
	Voucher
	Thumbnail    string            `json:"thumbnail"`
	Title        string            `json:"title"`
	Subtitle     string            `json:"subtitle"`
	Description  string            `json:"description,omitempty"`
	Ledger       []LedgerEntry     `json:"ledger"`
	RecordsByKey map[string]string `json:"records_by_key"`
}
