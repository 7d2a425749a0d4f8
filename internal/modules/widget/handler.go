package widget

import (
	"errors"
	"net/http"
	"strconv"

	"homewidget/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	widgets := protected.Group("/widgets")
	{
		widgets.GET("", h.List)
		widgets.POST("", h.Create)
		widgets.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	widgets, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list widgets")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"widgets": widgets})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	w, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create widget")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"widget": w})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid widget id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		if errors.Is(err, ErrWidgetNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Widget not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete widget")
		return
	}

	c.Status(http.StatusNoContent)
}
