package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"hotel_booking/internal/model"
	"hotel_booking/internal/service"

	"github.com/gin-gonic/gin"
)

// RoomHandler handles room browsing and admin room management
type RoomHandler struct {
	service service.RoomService
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(s service.RoomService) *RoomHandler {
	return &RoomHandler{service: s}
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context())
	if err != nil {
		log.Printf("Error listing rooms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rooms"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve room"})
		return
	}
	c.JSON(http.StatusOK, room)
}

// --- Admin Routes ---

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req model.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error creating room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	var req model.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), roomID, req)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error updating room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), roomID); err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error deleting room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}

// RegisterRoomRoutes registers room routes
func (h *RoomHandler) RegisterRoomRoutes(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	// Public browsing routes
	roomRoutes := rg.Group("/rooms")
	{
		roomRoutes.GET("", h.ListRooms)
		roomRoutes.GET("/:id", h.GetRoom)
	}

	// Admin-specific room routes
	adminRoutes := rg.Group("/admin")
	adminRoutes.Use(requireAdmin)
	{
		adminRoutes.POST("/rooms", h.CreateRoom)
		adminRoutes.PUT("/rooms/:id", h.UpdateRoom)
		adminRoutes.DELETE("/rooms/:id", h.DeleteRoom)
	}
}
