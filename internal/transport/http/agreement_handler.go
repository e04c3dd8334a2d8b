package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mio254/spacer/internal/service"
)

type AgreementHandler struct {
	svc *service.AgreementSvc
}

func NewAgreementHandler(svc *service.AgreementSvc) *AgreementHandler {
	return &AgreementHandler{svc: svc}
}

// POST /v1/agreements/accept
func (h *AgreementHandler) Accept(c *gin.Context) {
	var in struct {
		BookingID string `json:"booking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "invalid_input", "message": err.Error()}})
		return
	}
	a, err := h.svc.Accept(c.Request.Context(), actorFrom(c), in.BookingID, c.ClientIP())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"accepted_at": a.AcceptedAt})
}

// GET /v1/agreements/:booking_id
func (h *AgreementHandler) Accepted(c *gin.Context) {
	ok, err := h.svc.Accepted(c.Request.Context(), actorFrom(c), c.Param("booking_id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accepted": ok})
}
