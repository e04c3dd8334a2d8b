package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mio254/spacer/internal/domain"
	"github.com/Mio254/spacer/internal/repository"
	"github.com/Mio254/spacer/internal/service"
)

type BookingHandler struct {
	svc *service.BookingSvc
}

func NewBookingHandler(svc *service.BookingSvc) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// GET /v1/spaces/:id/availability?start=RFC3339&end=RFC3339
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	start, err1 := time.Parse(time.RFC3339, c.Query("start"))
	end, err2 := time.Parse(time.RFC3339, c.Query("end"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "invalid_input", "message": "start and end must be RFC3339"}})
		return
	}
	ok, err := h.svc.CheckAvailability(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": ok})
}

// POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		SpaceID string `json:"space_id" binding:"required"`
		Start   string `json:"start_time" binding:"required"` // RFC3339
		End     string `json:"end_time" binding:"required"`   // RFC3339
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "invalid_input", "message": err.Error()}})
		return
	}
	start, err1 := time.Parse(time.RFC3339, in.Start)
	end, err2 := time.Parse(time.RFC3339, in.End)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "invalid_input", "message": "start_time and end_time must be RFC3339"}})
		return
	}
	b, err := h.svc.Create(c.Request.Context(), actorFrom(c), in.SpaceID, start, end)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": viewBooking(b)})
}

// POST /v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.svc.Cancel(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": viewBooking(b)})
}

// GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": viewBooking(b)})
}

// GET /v1/bookings/me
func (h *BookingHandler) ListMine(c *gin.Context) {
	page, size := pageSize(c)
	bs, total, err := h.svc.ListMine(c.Request.Context(), actorFrom(c), page, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": viewBookings(bs), "total": total})
}

// GET /v1/admin/bookings?user_id=&space_id=&status=&day=RFC3339
func (h *BookingHandler) List(c *gin.Context) {
	page, size := pageSize(c)
	f := repository.ListFilter{
		UserID:  c.Query("user_id"),
		SpaceID: c.Query("space_id"),
		Status:  domain.BookingStatus(c.Query("status")),
	}
	if day := c.Query("day"); day != "" {
		if d, err := time.Parse(time.RFC3339, day); err == nil {
			f.Day = d.UTC()
		}
	}
	bs, total, err := h.svc.List(c.Request.Context(), actorFrom(c), f, page, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": viewBookings(bs), "total": total})
}

// PUT /v1/admin/bookings/:id/status
func (h *BookingHandler) SetStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "invalid_input", "message": err.Error()}})
		return
	}
	b, err := h.svc.SetStatus(c.Request.Context(), actorFrom(c), c.Param("id"), domain.BookingStatus(in.Status))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": viewBooking(b)})
}

const maxPageSize = 100

func pageSize(c *gin.Context) (int32, int32) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return int32(page - 1), int32(size)
}
