package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mio254/spacer/internal/service"
)

type PaymentHandler struct {
	svc *service.PaymentSvc
}

func NewPaymentHandler(svc *service.PaymentSvc) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// POST /v1/payments/create-intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var in struct {
		BookingID string `json:"booking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "invalid_input", "message": err.Error()}})
		return
	}
	res, err := h.svc.CreateIntent(c.Request.Context(), actorFrom(c), in.BookingID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment_intent_id": res.IntentID,
		"client_secret":     res.ClientSecret,
		"amount":            res.Amount,
		"currency":          res.Currency,
	})
}

// POST /v1/payments/confirm/:intent_id
func (h *PaymentHandler) Confirm(c *gin.Context) {
	inv, err := h.svc.Confirm(c.Request.Context(), actorFrom(c), c.Param("intent_id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": inv})
}

// GET /v1/invoices/:id
func (h *PaymentHandler) GetInvoice(c *gin.Context) {
	inv, err := h.svc.GetInvoice(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": inv})
}

// POST /v1/payments/webhook is unauthenticated; the event is verified against
// the processor, so the body is only a pointer, never trusted content.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var in struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.ID == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := h.svc.ConfirmFromEvent(c.Request.Context(), in.ID); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusOK)
}
