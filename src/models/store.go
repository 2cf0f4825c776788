package models

import (
	"database/sql"
	"fmt"
)

// Store queries. These assemble the already-deserialized domain records the
// processors consume; the processors themselves never touch the database.

// GetProductWithFunds loads a product together with its funds in listing
// order, each fund carrying its owning organization.
func GetProductWithFunds(db *sql.DB, productID int64) (*Product, error) {
	row := db.QueryRow(`
	SELECT p.id, p.name, p.description, p.photo, p.sold_out, p.deleted,
	       p.expire_at, p.expire_at_locale,
	       o.id, o.name, o.email, o.phone, o.logo
	FROM products p
	LEFT JOIN organizations o ON o.id = p.organization_id
	WHERE p.id = ?`, productID)

	var product Product
	var photo, expireAt, expireAtLocale, description sql.NullString
	var orgID sql.NullInt64
	var orgName, orgEmail, orgPhone, orgLogo sql.NullString

	err := row.Scan(
		&product.ID, &product.Name, &description, &photo, &product.SoldOut, &product.Deleted,
		&expireAt, &expireAtLocale,
		&orgID, &orgName, &orgEmail, &orgPhone, &orgLogo,
	)
	if err != nil {
		return nil, err
	}
	product.Description = description.String
	product.Photo = photo.String
	product.ExpireAt = expireAt.String
	product.ExpireAtLocale = expireAtLocale.String
	if orgID.Valid {
		product.Organization = &Organization{
			ID:    orgID.Int64,
			Name:  orgName.String,
			Email: orgEmail.String,
			Phone: orgPhone.String,
			Logo:  orgLogo.String,
		}
	}

	funds, err := getProductFunds(db, productID)
	if err != nil {
		return nil, fmt.Errorf("loading funds for product %d: %w", productID, err)
	}
	product.Funds = funds
	return &product, nil
}

// getProductFunds returns a product's funds ordered by their listing
// position. The order matters: eligibility results preserve it.
func getProductFunds(db *sql.DB, productID int64) ([]Fund, error) {
	rows, err := db.Query(`
	SELECT f.id, f.type, f.name, f.end_at, f.end_at_locale, f.logo,
	       f.reservations_enabled, f.reservation_extra_payments_enabled,
	       o.id, o.name, o.email, o.phone, o.logo
	FROM product_funds pf
	JOIN funds f ON f.id = pf.fund_id
	JOIN organizations o ON o.id = f.organization_id
	WHERE pf.product_id = ?
	ORDER BY pf.position`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	funds := make([]Fund, 0)
	for rows.Next() {
		var fund Fund
		var endAt, endAtLocale, logo sql.NullString
		var orgEmail, orgPhone, orgLogo sql.NullString
		err := rows.Scan(
			&fund.ID, &fund.Type, &fund.Name, &endAt, &endAtLocale, &logo,
			&fund.ReservationsEnabled, &fund.ReservationExtraPaymentsEnabled,
			&fund.Organization.ID, &fund.Organization.Name, &orgEmail, &orgPhone, &orgLogo,
		)
		if err != nil {
			return nil, err
		}
		fund.EndAt = endAt.String
		fund.EndAtLocale = endAtLocale.String
		fund.Logo = logo.String
		fund.Organization.Email = orgEmail.String
		fund.Organization.Phone = orgPhone.String
		fund.Organization.Logo = orgLogo.String
		funds = append(funds, fund)
	}
	return funds, rows.Err()
}

// GetUserVouchersForProduct loads all of a holder's vouchers, each joined
// with the reservation context recorded for the given product (if any).
func GetUserVouchersForProduct(db *sql.DB, userID, productID int64) ([]Voucher, error) {
	rows, err := db.Query(`
	SELECT v.id, v.fund_id, v.type, v.expired, v.amount_locale,
	       q.reservable, q.reservable_expire_at, q.reservable_expire_at_locale
	FROM vouchers v
	LEFT JOIN voucher_product_queries q ON q.voucher_id = v.id AND q.product_id = ?
	WHERE v.user_id = ?
	ORDER BY v.id`, productID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vouchers := make([]Voucher, 0)
	for rows.Next() {
		var v Voucher
		var amountLocale sql.NullString
		var reservable sql.NullBool
		var reservableExpireAt, reservableExpireAtLocale sql.NullString
		err := rows.Scan(
			&v.ID, &v.FundID, &v.Type, &v.Expired, &amountLocale,
			&reservable, &reservableExpireAt, &reservableExpireAtLocale,
		)
		if err != nil {
			return nil, err
		}
		v.AmountLocale = amountLocale.String
		if reservable.Valid {
			v.QueryProduct = &QueryProduct{
				Reservable:               reservable.Bool,
				ReservableExpireAt:       reservableExpireAt.String,
				ReservableExpireAtLocale: reservableExpireAtLocale.String,
			}
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

// GetUserVoucher loads one voucher with everything the presentation and
// ledger processors need: its fund and product, the transaction history,
// product-voucher issuances and attached records. Returns sql.ErrNoRows
// when the voucher does not exist or belongs to another user.
func GetUserVoucher(db *sql.DB, userID, voucherID int64) (*Voucher, error) {
	row := db.QueryRow(`
	SELECT v.id, v.fund_id, v.type, v.expired, v.amount_locale, v.product_id
	FROM vouchers v
	WHERE v.id = ? AND v.user_id = ?`, voucherID, userID)

	var v Voucher
	var amountLocale sql.NullString
	var productID sql.NullInt64
	if err := row.Scan(&v.ID, &v.FundID, &v.Type, &v.Expired, &amountLocale, &productID); err != nil {
		return nil, err
	}
	v.AmountLocale = amountLocale.String

	fund, err := getFund(db, v.FundID)
	if err != nil {
		return nil, fmt.Errorf("loading fund %d for voucher %d: %w", v.FundID, voucherID, err)
	}
	v.Fund = fund

	if productID.Valid {
		product, err := GetProductWithFunds(db, productID.Int64)
		if err != nil {
			return nil, fmt.Errorf("loading product %d for voucher %d: %w", productID.Int64, voucherID, err)
		}
		v.Product = product
	}

	if v.Transactions, err = getVoucherTransactions(db, voucherID); err != nil {
		return nil, fmt.Errorf("loading transactions for voucher %d: %w", voucherID, err)
	}
	if v.ProductVouchers, err = getVoucherIssuances(db, voucherID); err != nil {
		return nil, fmt.Errorf("loading issuances for voucher %d: %w", voucherID, err)
	}
	if v.Records, err = getVoucherRecords(db, voucherID); err != nil {
		return nil, fmt.Errorf("loading records for voucher %d: %w", voucherID, err)
	}
	return &v, nil
}

func getFund(db *sql.DB, fundID int64) (*Fund, error) {
	row := db.QueryRow(`
	SELECT f.id, f.type, f.name, f.end_at, f.end_at_locale, f.logo,
	       f.reservations_enabled, f.reservation_extra_payments_enabled,
	       o.id, o.name, o.email, o.phone, o.logo
	FROM funds f
	JOIN organizations o ON o.id = f.organization_id
	WHERE f.id = ?`, fundID)

	var fund Fund
	var endAt, endAtLocale, logo sql.NullString
	var orgEmail, orgPhone, orgLogo sql.NullString
	err := row.Scan(
		&fund.ID, &fund.Type, &fund.Name, &endAt, &endAtLocale, &logo,
		&fund.ReservationsEnabled, &fund.ReservationExtraPaymentsEnabled,
		&fund.Organization.ID, &fund.Organization.Name, &orgEmail, &orgPhone, &orgLogo,
	)
	if err != nil {
		return nil, err
	}
	fund.EndAt = endAt.String
	fund.EndAtLocale = endAtLocale.String
	fund.Logo = logo.String
	fund.Organization.Email = orgEmail.String
	fund.Organization.Phone = orgPhone.String
	fund.Organization.Logo = orgLogo.String
	return &fund, nil
}

func getVoucherTransactions(db *sql.DB, voucherID int64) ([]Transaction, error) {
	rows, err := db.Query(`
	SELECT t.id, t.unique_id, t.timestamp, t.amount_locale, t.target, t.created_at_locale,
	       t.reservation_id, t.reservation_code, t.reservation_state,
	       p.id, p.name, p.photo,
	       o.id, o.name, o.logo
	FROM voucher_transactions t
	LEFT JOIN products p ON p.id = t.product_id
	LEFT JOIN organizations o ON o.id = t.organization_id
	WHERE t.voucher_id = ?
	ORDER BY t.timestamp, t.id`, voucherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		var tx Transaction
		var target, createdAtLocale sql.NullString
		var reservationID sql.NullInt64
		var reservationCode, reservationState sql.NullString
		var productID sql.NullInt64
		var productName, productPhoto sql.NullString
		var orgID sql.NullInt64
		var orgName, orgLogo sql.NullString

		err := rows.Scan(
			&tx.ID, &tx.UniqueID, &tx.Timestamp, &tx.AmountLocale, &target, &createdAtLocale,
			&reservationID, &reservationCode, &reservationState,
			&productID, &productName, &productPhoto,
			&orgID, &orgName, &orgLogo,
		)
		if err != nil {
			return nil, err
		}
		tx.Target = target.String
		tx.CreatedAtLocale = createdAtLocale.String
		if reservationID.Valid {
			tx.Reservation = &Reservation{
				ID:    reservationID.Int64,
				Code:  reservationCode.String,
				State: reservationState.String,
			}
		}
		if productID.Valid {
			tx.Product = &Product{ID: productID.Int64, Name: productName.String, Photo: productPhoto.String}
		}
		if orgID.Valid {
			tx.Organization = &Organization{ID: orgID.Int64, Name: orgName.String, Logo: orgLogo.String}
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func getVoucherIssuances(db *sql.DB, voucherID int64) ([]ProductVoucherIssuance, error) {
	rows, err := db.Query(`
	SELECT i.id, i.unique_id, i.timestamp, i.amount_locale, i.created_at_locale,
	       p.id, p.name, p.photo
	FROM product_voucher_issuances i
	LEFT JOIN products p ON p.id = i.product_id
	WHERE i.voucher_id = ?
	ORDER BY i.timestamp, i.id`, voucherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issuances := make([]ProductVoucherIssuance, 0)
	for rows.Next() {
		var issuance ProductVoucherIssuance
		var createdAtLocale sql.NullString
		var productID sql.NullInt64
		var productName, productPhoto sql.NullString

		err := rows.Scan(
			&issuance.ID, &issuance.UniqueID, &issuance.Timestamp, &issuance.AmountLocale, &createdAtLocale,
			&productID, &productName, &productPhoto,
		)
		if err != nil {
			return nil, err
		}
		issuance.CreatedAtLocale = createdAtLocale.String
		if productID.Valid {
			issuance.Product = &Product{ID: productID.Int64, Name: productName.String, Photo: productPhoto.String}
		}
		issuances = append(issuances, issuance)
	}
	return issuances, rows.Err()
}

func getVoucherRecords(db *sql.DB, voucherID int64) ([]Record, error) {
	rows, err := db.Query(`
	SELECT id, record_key, record_name, value
	FROM voucher_records
	WHERE voucher_id = ?
	ORDER BY id`, voucherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var record Record
		var name sql.NullString
		if err := rows.Scan(&record.ID, &record.Key, &name, &record.Value); err != nil {
			return nil, err
		}
		record.Name = name.String
		records = append(records, record)
	}
	return records, rows.Err()
}
