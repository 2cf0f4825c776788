package models

// Product is a marketplace listing. It may be redeemable through several
// funds at once; the order of Funds is the order the platform lists them in
// and is preserved through eligibility evaluation.
type Product struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name,omitempty"`
	Description    string        `json:"description,omitempty"`
	Photo          string        `json:"photo,omitempty"`
	SoldOut        bool          `json:"sold_out"`
	Deleted        bool          `json:"deleted"`
	ExpireAt       string        `json:"expire_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ExpireAtLocale string        `json:"expire_at_locale,omitempty"`
	Organization   *Organization `json:"organization,omitempty"`
	Funds          []Fund        `json:"funds" validate:"omitempty,dive"`
}
