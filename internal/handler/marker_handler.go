package handler

import (
	"net/http"
	"strconv"

	"social-service/internal/models"
	"social-service/internal/service"

	"github.com/gin-gonic/gin"
)

type MarkerHandler struct {
	markerService service.MarkerService
}

func NewMarkerHandler(markerService service.MarkerService) *MarkerHandler {
	return &MarkerHandler{markerService: markerService}
}

func (h *MarkerHandler) AddMarker(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	var req models.MarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker, err := h.markerService.AddMarker(c.Request.Context(), params[0], &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, marker)
}

func (h *MarkerHandler) GetMarkers(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	markers, err := h.markerService.GetMarkersOf(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, markers)
}

func (h *MarkerHandler) RemoveMarker(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a number"})
		return
	}

	payload, err := h.markerService.RemoveMarker(c.Request.Context(), params[0], uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *MarkerHandler) RegisterRoutes(r *gin.RouterGroup) {
	markers := r.Group("/marker")
	{
		markers.POST("/add", h.AddMarker)
		markers.GET("/getAll", h.GetMarkers)
		markers.DELETE("/:id", h.RemoveMarker)
	}
}
