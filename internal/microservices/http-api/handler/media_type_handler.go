package handler

import (
	"net/http"
	"time"

	"mediatracker/internal/microservices/http-api/dto"
	"mediatracker/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MediaTypeHandler struct {
	svc     service.MediaTypeService
	log     *zap.Logger
	timeout time.Duration
}

func NewMediaTypeHandler(svc service.MediaTypeService, log *zap.Logger, timeout time.Duration) *MediaTypeHandler {
	return &MediaTypeHandler{svc: svc, log: log, timeout: timeout}
}

func (h *MediaTypeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:name", h.Get)
	rg.PUT("/:name", h.Rename)
	rg.DELETE("/:name", h.Delete)
}

// List returns every type the caller can see, global ones included.
func (h *MediaTypeHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	types, err := h.svc.List(ctx, userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMediaTypeModels(types))
}

func (h *MediaTypeHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	mt, err := h.svc.Get(ctx, userID, c.Param("name"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMediaTypeModel(mt))
}

func (h *MediaTypeHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CreateMediaTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	mt, err := h.svc.Create(ctx, userID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromMediaTypeModel(mt))
}

func (h *MediaTypeHandler) Rename(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.RenameMediaTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	mt, err := h.svc.Rename(ctx, userID, c.Param("name"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMediaTypeModel(mt))
}

// Delete answers 428 while the type still has media and the caller has not
// confirmed.
func (h *MediaTypeHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	confirm, ok := deleteConfirmed(c)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	result, err := h.svc.Delete(ctx, userID, c.Param("name"), confirm)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondDeleted(c, "Media type", result)
}
