package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"hotel_booking/internal/middleware"
	"hotel_booking/internal/model"
	"hotel_booking/internal/service"

	"github.com/gin-gonic/gin"
)

// ReservationHandler handles reservation checkout and management
type ReservationHandler struct {
	service service.ReservationService
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(s service.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: s}
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req model.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reservation, err := h.service.CreateReservation(c.Request.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrInvalidStay) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error creating reservation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (h *ReservationHandler) GetMyReservations(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	reservations, err := h.service.GetUserReservations(c.Request.Context(), claims.UserID)
	if err != nil {
		log.Printf("Error getting user reservations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservations"})
		return
	}
	c.JSON(http.StatusOK, reservations)
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	reservationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	err = h.service.CancelReservation(c.Request.Context(), reservationID, claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			log.Printf("Error cancelling reservation: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reservation"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled successfully"})
}

// --- Admin Routes ---

func (h *ReservationHandler) GetAllReservationsAdmin(c *gin.Context) {
	var filters model.AdminReservationFilters
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		uid, err := strconv.Atoi(userIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id format"})
			return
		}
		filters.UserID = &uid
	}
	if roomIDStr := c.Query("room_id"); roomIDStr != "" {
		rid, err := strconv.ParseInt(roomIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room_id format"})
			return
		}
		filters.RoomID = &rid
	}

	reservations, err := h.service.GetAllReservationsAdmin(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error getting all reservations for admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservations"})
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// RegisterReservationRoutes registers reservation routes
func (h *ReservationHandler) RegisterReservationRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc, requireAdmin gin.HandlerFunc) {
	// Guest reservation routes (requires auth, any authenticated user)
	resRoutes := rg.Group("/reservations")
	resRoutes.Use(requireAuth)
	{
		resRoutes.POST("", h.CreateReservation)
		resRoutes.GET("", h.GetMyReservations)
		resRoutes.DELETE("/:id", h.CancelReservation) // Service layer handles ownership for non-admins
	}

	// Admin-specific reservation routes
	adminRoutes := rg.Group("/admin")
	adminRoutes.Use(requireAdmin)
	{
		adminRoutes.GET("/reservations", h.GetAllReservationsAdmin)
	}
}
