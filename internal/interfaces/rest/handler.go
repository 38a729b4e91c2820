package rest

import (
	"context"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/application/services"
	"github.com/thunderndwind/payment-service/internal/domain"
)

type ProcessService interface {
	Process(ctx context.Context, cmd services.ProcessCommand) (*domain.Payment, error)
}

type RefundService interface {
	Refund(ctx context.Context, paymentID string) (*domain.Payment, error)
}

type QueryService interface {
	GetStatus(ctx context.Context, paymentID string) (*domain.Payment, error)
	Validate(ctx context.Context, paymentID string) (*services.ValidationResult, error)
	History(ctx context.Context, userID string) ([]*domain.Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
}

type PaymentHandler struct {
	processService ProcessService
	refundService  RefundService
	queryService   QueryService
	validate       *validator.Validate
}

func NewPaymentHandler(
	processService ProcessService,
	refundService RefundService,
	queryService QueryService,
) *PaymentHandler {
	return &PaymentHandler{
		processService: processService,
		refundService:  refundService,
		queryService:   queryService,
		validate:       validator.New(),
	}
}

func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/payments/process", h.HandleProcess)
	mux.HandleFunc("GET /api/payments/{paymentID}", h.HandleGetStatus)
	mux.HandleFunc("GET /api/payments/{paymentID}/validate", h.HandleValidate)
	mux.HandleFunc("POST /api/payments/{paymentID}/refund", h.HandleRefund)

	// History and transaction lookup live on their own prefixes; putting them
	// under /api/payments would conflict with the {paymentID} wildcards.
	mux.HandleFunc("GET /api/users/{userID}/payments", h.HandleHistory)
	mux.HandleFunc("GET /api/transactions/{transactionID}", h.HandleGetByTransaction)
}

// HandleProcess submits a new payment. A declined payment is still a 200: the
// body carries success=false with the decline reason.
func (h *PaymentHandler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	var req ProcessPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, application.NewInvalidInputError(err.Error()))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		WriteError(w, application.NewInvalidInputError(err.Error()))
		return
	}

	cmd := services.ProcessCommand{
		UserID:        req.UserID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		OrderID:       req.OrderID,
		Details:       toDomainDetails(req.Details),
	}

	payment, err := h.processService.Process(r.Context(), cmd)
	if err != nil {
		WriteError(w, err)
		return
	}

	if payment.Status == domain.StatusSuccess {
		respondWithJSON(w, http.StatusOK, toPaymentResponse(true, "Payment processed successfully", payment))
		return
	}

	message := "Payment processing failed"
	if payment.FailureReason != nil {
		message = *payment.FailureReason
	}
	respondWithJSON(w, http.StatusOK, toPaymentResponse(false, message, payment))
}

func (h *PaymentHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	paymentID := r.PathValue("paymentID")

	payment, err := h.queryService.GetStatus(r.Context(), paymentID)
	if err != nil {
		WriteError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toPaymentResponse(true, "Payment found", payment))
}

func (h *PaymentHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	paymentID := r.PathValue("paymentID")

	result, err := h.queryService.Validate(r.Context(), paymentID)
	if err != nil {
		WriteError(w, err)
		return
	}

	message := "Payment is valid"
	if !result.Valid {
		message = "Payment is not valid"
	}
	respondWithJSON(w, http.StatusOK, toPaymentResponse(result.Valid, message, result.Payment))
}

func (h *PaymentHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	payments, err := h.queryService.History(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, toPaymentResponse(true, "", p))
	}

	respondWithJSON(w, http.StatusOK, HistoryResponse{
		Success:  true,
		Count:    len(responses),
		Payments: responses,
	})
}

func (h *PaymentHandler) HandleGetByTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := r.PathValue("transactionID")

	payment, err := h.queryService.GetByTransactionID(r.Context(), transactionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toPaymentResponse(true, "Payment found", payment))
}

func (h *PaymentHandler) HandleRefund(w http.ResponseWriter, r *http.Request) {
	paymentID := r.PathValue("paymentID")

	payment, err := h.refundService.Refund(r.Context(), paymentID)
	if err != nil {
		WriteError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toPaymentResponse(true, "Payment refunded successfully", payment))
}
