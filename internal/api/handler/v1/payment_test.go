package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"prizedraw-api/internal/api/middleware"
	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/service"
)

type stubPaymentService struct {
	result service.CheckoutResult
	err    error

	lastParams service.CheckoutParams
}

func (s *stubPaymentService) StartCheckout(_ context.Context, params service.CheckoutParams) (service.CheckoutResult, error) {
	s.lastParams = params

	return s.result, s.err
}

func (s *stubPaymentService) ConfirmCheckout(_ context.Context, _ uint, _ string) (service.CheckoutResult, error) {
	return s.result, s.err
}

func (s *stubPaymentService) GetAttempt(_ context.Context, _ uint, _ string) (domain.Payment, error) {
	return domain.Payment{}, s.err
}

func newPaymentTestRouter(svc PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Stand-in for the authenticator.
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextUserID, uint(1))
	})

	handler := NewPaymentHandler(svc)
	router.POST("/api/payments/create-payment-intent", handler.HandleCreatePaymentIntent)
	router.POST("/api/payments/process", handler.HandleProcess)
	router.POST("/api/payments/pay-for-entry", handler.HandlePayForEntry)
	router.POST("/api/payments/upgrade-to-premium", handler.HandleUpgradeToPremium)
	router.POST("/api/payments/fund-wallet", handler.HandleFundWallet)

	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	return w
}

const validEntryBody = `{"competition_id":1,"payment_method_id":"pm_123","attempt_id":"attempt-1"}`

func TestHandlePayForEntry_DeclinedCardRenders402(t *testing.T) {
	svc := &stubPaymentService{result: service.CheckoutResult{
		AttemptID: "attempt-1",
		Status:    domain.PaymentFailed,
		Message:   "Your card was declined.",
	}}

	w := postJSON(newPaymentTestRouter(svc), "/api/payments/pay-for-entry", validEntryBody)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.JSONEq(t, `{"code":402,"message":"Your card was declined."}`, w.Body.String())
}

func TestHandlePayForEntry_SuccessRenders200(t *testing.T) {
	svc := &stubPaymentService{result: service.CheckoutResult{
		AttemptID: "attempt-1",
		Status:    domain.PaymentSucceeded,
	}}

	w := postJSON(newPaymentTestRouter(svc), "/api/payments/pay-for-entry", validEntryBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"succeeded"`)
	assert.Equal(t, domain.PaymentForEntry, svc.lastParams.Purpose)
	assert.Equal(t, uint(1), svc.lastParams.CompetitionID)
}

func TestHandlePayForEntry_InFlightRenders409(t *testing.T) {
	svc := &stubPaymentService{err: service.ErrAttemptInFlight}

	w := postJSON(newPaymentTestRouter(svc), "/api/payments/pay-for-entry", validEntryBody)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandlePayForEntry_SoldOutRenders409(t *testing.T) {
	svc := &stubPaymentService{err: service.ErrCompetitionSoldOut}

	w := postJSON(newPaymentTestRouter(svc), "/api/payments/pay-for-entry", validEntryBody)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandlePayForEntry_InvalidBodyRenders400(t *testing.T) {
	svc := &stubPaymentService{}

	w := postJSON(newPaymentTestRouter(svc), "/api/payments/pay-for-entry", `{"competition_id":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreatePaymentIntent_MetadataCarriesContext(t *testing.T) {
	svc := &stubPaymentService{result: service.CheckoutResult{
		AttemptID: "attempt-1",
		Status:    domain.PaymentSucceeded,
	}}

	body := `{"amount":500,"payment_method_id":"pm_123",` +
		`"metadata":{"purpose":"entry","competition_id":"7","attempt_id":"attempt-1"}}`
	w := postJSON(newPaymentTestRouter(svc), "/api/payments/create-payment-intent", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PaymentForEntry, svc.lastParams.Purpose)
	assert.Equal(t, uint(7), svc.lastParams.CompetitionID)
	assert.Equal(t, "attempt-1", svc.lastParams.AttemptID)
}

func TestHandleFundWallet_RequiresMinimumAmount(t *testing.T) {
	svc := &stubPaymentService{}

	w := postJSON(newPaymentTestRouter(svc), "/api/payments/fund-wallet",
		`{"amount":50,"payment_method_id":"pm_123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleProcess_StepUpRenders200(t *testing.T) {
	svc := &stubPaymentService{result: service.CheckoutResult{
		AttemptID:    "attempt-1",
		Status:       domain.PaymentRequiresStepUp,
		ClientSecret: "pi_1_secret",
	}}

	w := postJSON(newPaymentTestRouter(svc), "/api/payments/process", `{"attempt_id":"attempt-1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pi_1_secret")
}
