package handler

import (
	"hospital-backoffice/internal/middleware"
	"hospital-backoffice/internal/service"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// GetAllRooms lists every room with its occupants
func (h *RoomHandler) GetAllRooms(c *gin.Context) {
	rooms, err := h.roomService.GetAllRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"rooms": rooms,
		"count": len(rooms),
	})
}

// GetRoom retrieves a specific room by ID
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.roomService.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, room)
}

// GetAvailability reports whether a room can take one more patient
func (h *RoomHandler) GetAvailability(c *gin.Context) {
	availability, err := h.roomService.Availability(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, availability)
}

// CreateRoom creates a new room (admin only)
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input service.RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, room)
}

// UpdateRoom updates an existing room (admin only)
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var input service.RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), c.Param("id"), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, room)
}

// DeleteRoom deletes an empty room (admin only)
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	if err := h.roomService.DeleteRoom(c.Request.Context(), c.Param("id"), middleware.StaffID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Room deleted successfully")
}

// DeleteAllRooms deletes every room without occupants (admin only)
func (h *RoomHandler) DeleteAllRooms(c *gin.Context) {
	deleted, err := h.roomService.DeleteEmptyRooms(c.Request.Context(), middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": deleted})
}
