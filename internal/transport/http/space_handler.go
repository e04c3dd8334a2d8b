package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mio254/spacer/internal/service"
)

type SpaceHandler struct {
	svc *service.SpaceSvc
}

func NewSpaceHandler(svc *service.SpaceSvc) *SpaceHandler {
	return &SpaceHandler{svc: svc}
}

// GET /v1/spaces returns active spaces only, unless an admin asks for ?all=true
func (h *SpaceHandler) List(c *gin.Context) {
	page, size := pageSize(c)
	all := c.Query("all") == "true"
	spaces, err := h.svc.List(c.Request.Context(), actorFrom(c), all, page, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spaces": spaces})
}

// GET /v1/spaces/:id
func (h *SpaceHandler) Get(c *gin.Context) {
	sp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"space": sp})
}

// POST /v1/admin/spaces
func (h *SpaceHandler) Create(c *gin.Context) {
	var in service.SpaceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "invalid_input", "message": err.Error()}})
		return
	}
	sp, err := h.svc.Create(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"space": sp})
}

// PATCH /v1/admin/spaces/:id
func (h *SpaceHandler) Patch(c *gin.Context) {
	var in service.SpacePatch
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "invalid_input", "message": err.Error()}})
		return
	}
	sp, err := h.svc.Patch(c.Request.Context(), actorFrom(c), c.Param("id"), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"space": sp})
}

// POST /v1/admin/spaces/:id/activate and .../deactivate
func (h *SpaceHandler) SetActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sp, err := h.svc.SetActive(c.Request.Context(), actorFrom(c), c.Param("id"), active)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"space": sp})
	}
}
