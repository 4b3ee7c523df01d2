package model

import (
	"lalazar/shared/model"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID          = "id"
	FieldBookingID   = "booking_id"
	FieldAmount      = "amount"
	FieldPaymentType = "payment_type"
	FieldPaymentDate = "payment_date"
	FieldStatus      = "status"
	FieldReceiptPath = "receipt_path"
	FieldAdvance     = "advance"
)

const (
	StatusPending  = "Pending"
	StatusVerified = "Verified"
	StatusRejected = "Rejected"
	StatusFailed   = "Failed"
)

// Payment amounts and advance markers are free text in the legacy store
// ("$100", "PKR 20", "0"); normalization happens at aggregation time.
type Payment struct {
	ID          string         `db:"id"`
	BookingID   string         `db:"booking_id"`
	Amount      string         `db:"amount"`
	PaymentType string         `db:"payment_type"`
	PaymentDate model.FlexTime `db:"payment_date"`
	Status      string         `db:"status"`
	ReceiptPath string         `db:"receipt_path"`
	Advance     string         `db:"advance"`
	model.Metadata
}

// IsAdvance reports whether the row marks an advance payment. Blank and the
// literal "0" both mean no.
func (p Payment) IsAdvance() bool {
	return p.Advance != "" && p.Advance != "0"
}
