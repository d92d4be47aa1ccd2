package models

import "errors"

const (
	RoomTypeCabinet = "Cabinet"
	RoomTypeNormal  = "Normal"
)

var ErrInvalidCapacity = errors.New("invalid capacity for room type")

// Room represents a hospital room whose beds are occupied by hospitalizations
type Room struct {
	Base
	Type          string `gorm:"size:20;not null" json:"type"`
	Number        string `gorm:"size:50;not null;uniqueIndex" json:"number"`
	Capacity      int    `gorm:"not null" json:"capacity"`
	OccupantCount int    `gorm:"not null;default:0" json:"occupant_count"`

	// Relationships
	Occupants []RoomOccupant `gorm:"foreignKey:RoomID" json:"occupants"`
}

// TableName specifies the table name for Room model
func (Room) TableName() string {
	return "rooms"
}

// ValidateCapacity checks the capacity against the room type:
// a Cabinet holds exactly one patient, a Normal room between one and three.
func (r *Room) ValidateCapacity() error {
	switch r.Type {
	case RoomTypeCabinet:
		if r.Capacity != 1 {
			return ErrInvalidCapacity
		}
	case RoomTypeNormal:
		if r.Capacity < 1 || r.Capacity > 3 {
			return ErrInvalidCapacity
		}
	default:
		return errors.New("room type must be Cabinet or Normal")
	}
	return nil
}

// IsAvailable reports whether the room can take one more occupant
func (r *Room) IsAvailable() bool {
	return r.OccupantCount < r.Capacity
}

// RoomOccupant is one entry of a room's occupant list
type RoomOccupant struct {
	RoomID            string `gorm:"type:varchar(36);primaryKey" json:"room_id"`
	HospitalizationID string `gorm:"type:varchar(36);primaryKey;uniqueIndex" json:"hospitalization_id"`

	Hospitalization *Hospitalization `gorm:"foreignKey:HospitalizationID" json:"hospitalization,omitempty"`
}

// TableName specifies the table name for RoomOccupant model
func (RoomOccupant) TableName() string {
	return "room_occupants"
}

// RoomAvailability is the response of the availability check
type RoomAvailability struct {
	RoomID    string `json:"room_id"`
	Number    string `json:"number"`
	Capacity  int    `json:"capacity"`
	Occupants int    `json:"occupants"`
	Available bool   `json:"available"`
}
