package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"prizedraw-api/internal/api/handler/v1/request"
	"prizedraw-api/internal/api/handler/v1/response"
	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/service"
)

type PaymentService interface {
	StartCheckout(ctx context.Context, params service.CheckoutParams) (service.CheckoutResult, error)
	ConfirmCheckout(ctx context.Context, userID uint, attemptID string) (service.CheckoutResult, error)
	GetAttempt(ctx context.Context, userID uint, attemptID string) (domain.Payment, error)
}

type PaymentHandler struct {
	svc PaymentService
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{
		svc: svc,
	}
}

// HandleCreatePaymentIntent godoc
// @Summary      Submit a tokenized payment method for a purchase
// @Description  Purchase context (purpose, competition_id, attempt_id) is read from the metadata map.
// @Tags         payments
// @Produce      json
// @Param        request   body      request.CreatePaymentIntentRequest true "request body"
// @Success      200      {object}   service.CheckoutResult
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/create-payment-intent [post]
func (h *PaymentHandler) HandleCreatePaymentIntent(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	req := request.CreatePaymentIntentRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	params := service.CheckoutParams{
		UserID:          userID,
		Purpose:         domain.PaymentForWallet,
		PaymentMethodID: req.PaymentMethodID,
		AttemptID:       req.Metadata["attempt_id"],
		Amount:          req.Amount,
	}
	if purpose, found := req.Metadata["purpose"]; found {
		params.Purpose = domain.PaymentPurpose(purpose)
	}
	if raw, found := req.Metadata["competition_id"]; found {
		competitionID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("competition_id: %w", err)))

			return
		}
		params.CompetitionID = uint(competitionID)
	}

	h.startCheckout(ctx, "HandleCreatePaymentIntent", params)
}

// HandleProcess godoc
// @Summary      Confirm a checkout after step-up authentication
// @Tags         payments
// @Produce      json
// @Param        request   body      request.ProcessPaymentRequest true "request body"
// @Success      200      {object}   service.CheckoutResult
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/process [post]
func (h *PaymentHandler) HandleProcess(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	req := request.ProcessPaymentRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	result, err := h.svc.ConfirmCheckout(ctx.Request.Context(), userID, req.AttemptID)
	if err != nil {
		h.renderPaymentErr(ctx, "HandleProcess", req.AttemptID, err)

		return
	}

	h.renderResult(ctx, result)
}

// HandlePayForEntry godoc
// @Summary      Buy a ticket and enter a competition
// @Tags         payments
// @Produce      json
// @Param        request   body      request.PayForEntryRequest true "request body"
// @Success      200      {object}   service.CheckoutResult
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/pay-for-entry [post]
func (h *PaymentHandler) HandlePayForEntry(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	req := request.PayForEntryRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	h.startCheckout(ctx, "HandlePayForEntry", service.CheckoutParams{
		UserID:          userID,
		Purpose:         domain.PaymentForEntry,
		CompetitionID:   req.CompetitionID,
		PaymentMethodID: req.PaymentMethodID,
		AttemptID:       req.AttemptID,
	})
}

// HandleUpgradeToPremium godoc
// @Summary      Buy the premium upgrade
// @Tags         payments
// @Produce      json
// @Param        request   body      request.UpgradeToPremiumRequest true "request body"
// @Success      200      {object}   service.CheckoutResult
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/upgrade-to-premium [post]
func (h *PaymentHandler) HandleUpgradeToPremium(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	req := request.UpgradeToPremiumRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	h.startCheckout(ctx, "HandleUpgradeToPremium", service.CheckoutParams{
		UserID:          userID,
		Purpose:         domain.PaymentForPremium,
		PaymentMethodID: req.PaymentMethodID,
		AttemptID:       req.AttemptID,
	})
}

// HandleFundWallet godoc
// @Summary      Top up the wallet balance
// @Tags         payments
// @Produce      json
// @Param        request   body      request.FundWalletRequest true "request body"
// @Success      200      {object}   service.CheckoutResult
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/fund-wallet [post]
func (h *PaymentHandler) HandleFundWallet(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	req := request.FundWalletRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	h.startCheckout(ctx, "HandleFundWallet", service.CheckoutParams{
		UserID:          userID,
		Purpose:         domain.PaymentForWallet,
		PaymentMethodID: req.PaymentMethodID,
		AttemptID:       req.AttemptID,
		Amount:          req.Amount,
	})
}

// HandleGetAttempt godoc
// @Summary      Get one payment attempt's state
// @Tags         payments
// @Produce      json
// @Param        attemptID   path      string  true  "attempt ID"
// @Success      200        {object}   domain.Payment
// @Failure      403        {object}   response.Err
// @Failure      404        {object}   response.Err
// @Failure      500        {object}   response.Err
// @Router       /payments/{attemptID} [get]
func (h *PaymentHandler) HandleGetAttempt(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized())

		return
	}

	attemptID := ctx.Param("attemptID")

	attempt, err := h.svc.GetAttempt(ctx.Request.Context(), userID, attemptID)
	if err != nil {
		h.renderPaymentErr(ctx, "HandleGetAttempt", attemptID, err)

		return
	}

	ctx.JSON(http.StatusOK, attempt)
}

func (h *PaymentHandler) startCheckout(ctx *gin.Context, op string, params service.CheckoutParams) {
	result, err := h.svc.StartCheckout(ctx.Request.Context(), params)
	if err != nil {
		h.renderPaymentErr(ctx, op, params.AttemptID, err)

		return
	}

	h.renderResult(ctx, result)
}

// renderResult maps a terminal failure to 402 so clients can distinguish
// a declined card from a transport error; everything else is a 200 with
// the explicit status inside.
func (h *PaymentHandler) renderResult(ctx *gin.Context, result service.CheckoutResult) {
	if result.Status == domain.PaymentFailed {
		response.RenderErr(ctx, response.ErrPaymentRequired(result.Message))

		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) renderPaymentErr(ctx *gin.Context, op, attemptID string, err error) {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound):
		response.RenderErr(ctx, response.ErrNotFound("payment attempt", "ID", attemptID))
	case errors.Is(err, service.ErrNotPaymentOwner):
		response.RenderErr(ctx, response.ErrPermissionDenied())
	case errors.Is(err, service.ErrAttemptInFlight),
		errors.Is(err, service.ErrAttemptFinished),
		errors.Is(err, service.ErrCompetitionSoldOut),
		errors.Is(err, service.ErrCompetitionClosed):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrCompetitionNotFound),
		errors.Is(err, service.ErrNoStepUpPending),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrUnknownPurpose):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
