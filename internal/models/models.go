package models

// All lists every model managed by migrations.
func All() []interface{} {
	return []interface{}{
		&Patient{},
		&Staff{},
		&Room{},
		&RoomOccupant{},
		&Hospitalization{},
		&Appointment{},
		&Prescription{},
		&MedicalRecord{},
		&AuditLog{},
	}
}
