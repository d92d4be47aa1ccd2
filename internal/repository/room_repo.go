package repository

import (
	"context"
	"errors"

	"hospital-backoffice/internal/models"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// GetAllRooms retrieves every room with its occupants' stays
func (r *RoomRepository) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Preload("Occupants.Hospitalization").
		Order("number ASC").
		Find(&rooms).Error
	return rooms, err
}

// GetRoomByID retrieves a room by ID without its occupants
func (r *RoomRepository) GetRoomByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

// GetRoomWithOccupants retrieves a room with its occupants' stays preloaded
func (r *RoomRepository) GetRoomWithOccupants(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Occupants.Hospitalization").
		First(&room).Error
	if err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

// GetRoomByNumber retrieves a room by its unique number
func (r *RoomRepository) GetRoomByNumber(ctx context.Context, number string) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&room).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

// CreateRoom creates a new, empty room
func (r *RoomRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	room.OccupantCount = 0
	return translate(r.db.WithContext(ctx).Omit("Occupants").Create(room).Error)
}

// UpdateRoom updates type, number and capacity of a room.
// The update only applies while the room holds no more occupants than the new capacity,
// otherwise ErrRoomFull is returned. The occupant counter is never written here.
func (r *RoomRepository) UpdateRoom(ctx context.Context, room *models.Room) error {
	result := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ? AND occupant_count <= ?", room.ID, room.Capacity).
		Updates(map[string]interface{}{
			"type":     room.Type,
			"number":   room.Number,
			"capacity": room.Capacity,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetRoomByID(ctx, room.ID); err != nil {
			return err
		}
		return ErrRoomFull
	}
	return nil
}

// DeleteRoom deletes a room that has no occupants
func (r *RoomRepository) DeleteRoom(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND occupant_count = 0", id).
		Delete(&models.Room{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetRoomByID(ctx, id); err != nil {
			return err
		}
		return ErrRoomOccupied
	}
	return nil
}

// DeleteEmptyRooms deletes every room without occupants and returns how many were removed
func (r *RoomRepository) DeleteEmptyRooms(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("occupant_count = 0").
		Delete(&models.Room{})
	return result.RowsAffected, result.Error
}

// AssignOccupant appends a stay to the room's occupant list.
// The capacity check and the counter increment are one conditional UPDATE,
// so two concurrent assignments can never both take the last bed.
func (r *RoomRepository) AssignOccupant(ctx context.Context, roomID, stayID string) error {
	result := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ? AND occupant_count < capacity", roomID).
		UpdateColumn("occupant_count", gorm.Expr("occupant_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetRoomByID(ctx, roomID); err != nil {
			return err
		}
		return ErrRoomFull
	}

	occupant := &models.RoomOccupant{RoomID: roomID, HospitalizationID: stayID}
	return translate(r.db.WithContext(ctx).Create(occupant).Error)
}

// ReleaseOccupant removes a stay from the room's occupant list.
// Returns false when the stay was not an occupant of the room.
func (r *RoomRepository) ReleaseOccupant(ctx context.Context, roomID, stayID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("room_id = ? AND hospitalization_id = ?", roomID, stayID).
		Delete(&models.RoomOccupant{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ? AND occupant_count > 0", roomID).
		UpdateColumn("occupant_count", gorm.Expr("occupant_count - ?", 1)).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsOccupant reports whether the stay is in the room's occupant list
func (r *RoomRepository) IsOccupant(ctx context.Context, roomID, stayID string) (bool, error) {
	var occupant models.RoomOccupant
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND hospitalization_id = ?", roomID, stayID).
		First(&occupant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}
