package dto

import (
	"mime/multipart"

	"lalazar/internal/aggregate"
	"lalazar/internal/domains/payment/model"
)

type UpdatePaymentStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required"`
}

// Allowed reports whether the requested status, once capitalized, is a
// transition staff may apply from the dashboard. Only Verified and Rejected
// are staff decisions; everything else is written by the payment importer.
func (r *UpdatePaymentStatusRequest) Allowed() (string, bool) {
	status := aggregate.Capitalize(r.Status)

	return status, status == model.StatusVerified || status == model.StatusRejected
}

type GetAdvancePaymentsResponse struct {
	Payments  []aggregate.AdvancePaymentView `json:"payments"`
	TotalData int                            `json:"total_data"`
}

func (r *GetAdvancePaymentsResponse) FromViews(views []aggregate.AdvancePaymentView) {
	r.Payments = views
	r.TotalData = len(views)
}

type UploadReceiptRequest struct {
	Receipt     *multipart.FileHeader `json:"receipt"              swaggerignore:"true"                 validate:"required,mimetypes=image/png image/jpg image/jpeg application/pdf"`
	ReceiptFile multipart.File        `json:"-"`
}

type UploadReceiptResponse struct {
	ReceiptPath string `json:"receipt_path"`
}

func (r *UploadReceiptResponse) FromURL(url string) {
	r.ReceiptPath = url
}
