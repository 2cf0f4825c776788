package models

// Voucher types.
const (
	VoucherTypeRegular = "regular"
	VoucherTypeProduct = "product"
)

// TransactionTargetTopUp marks a transaction that adds budget to the
// voucher instead of spending it.
const TransactionTargetTopUp = "top_up"

// QueryProduct carries the reservation context a voucher was fetched with.
// It is present only when the voucher set was loaded for a specific product.
type QueryProduct struct {
	Reservable               bool   `json:"reservable"`
	ReservableExpireAt       string `json:"reservable_expire_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReservableExpireAtLocale string `json:"reservable_expire_at_locale,omitempty"`
}

// Reservation is the deferred-redemption record a spend transaction may be
// tied to.
type Reservation struct {
	ID    int64  `json:"id"`
	Code  string `json:"code,omitempty"`
	State string `json:"state,omitempty"`
}

// Transaction is a direct spend or top-up on a voucher.
type Transaction struct {
	ID              int64         `json:"id"`
	UniqueID        string        `json:"unique_id"`
	Timestamp       int64         `json:"timestamp"`
	AmountLocale    string        `json:"amount_locale"`
	Target          string        `json:"target,omitempty"`
	Product         *Product      `json:"product,omitempty"`
	Reservation     *Reservation  `json:"reservation,omitempty"`
	Organization    *Organization `json:"organization,omitempty"`
	CreatedAtLocale string        `json:"created_at_locale,omitempty"`
}

// ProductVoucherIssuance is a product voucher issued out of a budget
// voucher. It shares no supertype with Transaction beyond timestamp and
// amount; the ledger processor reconciles the two.
type ProductVoucherIssuance struct {
	ID              int64    `json:"id"`
	UniqueID        string   `json:"unique_id"`
	Timestamp       int64    `json:"timestamp"`
	AmountLocale    string   `json:"amount_locale"`
	Product         *Product `json:"product,omitempty"`
	CreatedAtLocale string   `json:"created_at_locale,omitempty"`
}

// Record is a key/value attribute attached to a voucher by its fund
// (holder name, address, entitlement class and so on).
type Record struct {
	ID    int64  `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
	Name  string `json:"name,omitempty"`
}

// Voucher is a holder's claim against a fund, or against one specific
// product when Type is "product".
type Voucher struct {
	ID              int64                    `json:"id"`
	FundID          int64                    `json:"fund_id"`
	Type            string                   `json:"type" validate:"omitempty,oneof=regular product"`
	Expired         bool                     `json:"expired"`
	AmountLocale    string                   `json:"amount_locale,omitempty"`
	QueryProduct    *QueryProduct            `json:"query_product,omitempty"`
	Fund            *Fund                    `json:"fund,omitempty"`
	Product         *Product                 `json:"product,omitempty"`
	Transactions    []Transaction            `json:"transactions"`
	ProductVouchers []ProductVoucherIssuance `json:"product_vouchers,omitempty"`
	Records         []Record                 `json:"records,omitempty"`
}
