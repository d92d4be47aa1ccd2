package service

import (
	"context"
	"errors"
	"fmt"

	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/repository"
)

type RoomService struct {
	roomRepo  *repository.RoomRepository
	auditRepo *repository.AuditRepository
}

func NewRoomService(roomRepo *repository.RoomRepository, auditRepo *repository.AuditRepository) *RoomService {
	return &RoomService{
		roomRepo:  roomRepo,
		auditRepo: auditRepo,
	}
}

// RoomInput is the body of room create and update requests
type RoomInput struct {
	Type     string `json:"type" binding:"required,oneof=Cabinet Normal"`
	Number   string `json:"number" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=3"`
}

// GetAllRooms retrieves every room with its occupants
func (s *RoomService) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	return s.roomRepo.GetAllRooms(ctx)
}

// GetRoom retrieves a room with its occupants
func (s *RoomService) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.roomRepo.GetRoomWithOccupants(ctx, id)
	if err != nil {
		return nil, lookup(err, "room")
	}
	return room, nil
}

// Availability reports whether a room can take one more patient
func (s *RoomService) Availability(ctx context.Context, id string) (*models.RoomAvailability, error) {
	room, err := s.roomRepo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "room")
	}

	return &models.RoomAvailability{
		RoomID:    room.ID,
		Number:    room.Number,
		Capacity:  room.Capacity,
		Occupants: room.OccupantCount,
		Available: room.IsAvailable(),
	}, nil
}

// CreateRoom creates a new, empty room (admin only)
func (s *RoomService) CreateRoom(ctx context.Context, input RoomInput, actorID string) (*models.Room, error) {
	room := &models.Room{
		Type:     input.Type,
		Number:   input.Number,
		Capacity: input.Capacity,
	}
	if err := room.ValidateCapacity(); err != nil {
		return nil, capacityError(room, err)
	}

	if err := s.roomRepo.CreateRoom(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("room number %s already exists", room.Number)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	room.Occupants = []models.RoomOccupant{}

	details := fmt.Sprintf("Created room %s (type: %s, capacity: %d)", room.Number, room.Type, room.Capacity)
	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "room_create", details)

	return room, nil
}

// UpdateRoom changes type, number and capacity of a room (admin only).
// The capacity may not drop below the number of current occupants.
func (s *RoomService) UpdateRoom(ctx context.Context, id string, input RoomInput, actorID string) (*models.Room, error) {
	room, err := s.roomRepo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "room")
	}

	room.Type = input.Type
	room.Number = input.Number
	room.Capacity = input.Capacity
	if err := room.ValidateCapacity(); err != nil {
		return nil, capacityError(room, err)
	}
	if room.Capacity < room.OccupantCount {
		return nil, invalid("capacity %d is lower than the %d current occupants", room.Capacity, room.OccupantCount)
	}

	if err := s.roomRepo.UpdateRoom(ctx, room); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomFull):
			return nil, invalid("capacity %d is lower than the current occupants", room.Capacity)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, conflict("room number %s already exists", room.Number)
		default:
			return nil, lookup(err, "room")
		}
	}

	details := fmt.Sprintf("Updated room %s (ID: %s, capacity: %d)", room.Number, room.ID, room.Capacity)
	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "room_update", details)

	return s.GetRoom(ctx, id)
}

// DeleteRoom deletes a room without occupants (admin only)
func (s *RoomService) DeleteRoom(ctx context.Context, id string, actorID string) error {
	if err := s.roomRepo.DeleteRoom(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRoomOccupied) {
			return conflict("room still has occupants")
		}
		return lookup(err, "room")
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "room_delete", fmt.Sprintf("Deleted room ID: %s", id))
	return nil
}

// DeleteEmptyRooms deletes every room without occupants (admin only)
func (s *RoomService) DeleteEmptyRooms(ctx context.Context, actorID string) (int64, error) {
	deleted, err := s.roomRepo.DeleteEmptyRooms(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete rooms: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "room_delete_all", fmt.Sprintf("Deleted %d empty rooms", deleted))
	return deleted, nil
}

func capacityError(room *models.Room, err error) error {
	if !errors.Is(err, models.ErrInvalidCapacity) {
		return invalid("%s", err.Error())
	}
	if room.Type == models.RoomTypeCabinet {
		return invalid("a Cabinet room holds exactly 1 patient")
	}
	return invalid("a Normal room holds 1 to 3 patients")
}

// actorRef returns the audit log reference of the acting staff member
func actorRef(staffID string) *string {
	if staffID == "" {
		return nil
	}
	return &staffID
}
