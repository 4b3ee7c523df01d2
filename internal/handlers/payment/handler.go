package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lalazar/infras/otel"
	"lalazar/internal/domains/payment/model/dto"
	"lalazar/internal/domains/payment/service"
	"lalazar/shared/constant"
	gDto "lalazar/shared/dto"
	"lalazar/shared/validator"
	"lalazar/transport/http/response"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Get("/advance", handler.GetAdvancePayments)
		routerGroup.Patch("/{id}/status", handler.UpdatePaymentStatus)
		routerGroup.Post("/{id}/receipt", handler.UploadReceipt)
		routerGroup.Delete("/{id}/receipt", handler.DeleteReceipt)
	})
}

// GetAdvancePayments retrieves the advance-payments table.
// @Summary Get advance payments
// @Description Retrieve payments flagged as advances, joined with booking, guest and room data.
// @Tags Payment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param q query string false "Search across guest, room and booking columns"
// @Param status query string false "Filter by payment status"
// @Success 200 {object} response.Data[dto.GetAdvancePaymentsResponse] "List of advance payments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/advance [get]
// @Security BearerAuth
func (handler *Handler) GetAdvancePayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdvancePayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	viewQuery := gDto.ViewQuery{}
	viewQuery.FromRequest(r)

	payments, err := handler.service.GetAdvanceViews(ctx, queryParams, viewQuery)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get advance payments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Advance payments retrieved successfully")

	response.WithJSON(w, http.StatusOK, payments)
}

// UpdatePaymentStatus applies a staff decision to a payment.
// @Summary Update a payment's status
// @Description Verify or reject a payment. A verified payment cannot be reopened.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body dto.UpdatePaymentStatusRequest true "Update Payment Status Request"
// @Success 200 {object} response.Message "Payment status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePaymentStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePaymentStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update payment status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment status updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Payment status updated successfully")
}

// UploadReceipt stores a receipt file for a payment.
// @Summary Upload a payment receipt
// @Description Upload a receipt image or PDF and attach it to the payment.
// @Tags Payment
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Payment ID"
// @Param file formData file true "Receipt file to upload"
// @Success 200 {object} dto.UploadReceiptResponse "Receipt uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id}/receipt [post]
// @Security BearerAuth
func (handler *Handler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadReceipt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadReceiptRequest{
		Receipt:     fileHeader,
		ReceiptFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate receipt file")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadReceipt(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload receipt")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Receipt uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteReceipt removes the receipt attached to a payment.
// @Summary Delete a payment receipt
// @Description Delete the stored receipt file and clear the payment's receipt path.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Message "Receipt deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id}/receipt [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReceipt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteReceipt(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete receipt")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Receipt deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Receipt deleted successfully")
}
