package gorm

import "time"

// Vessel represents a vessel registered by a mariner. At most one vessel per
// owner has IsActive=true; activation is enforced transactionally by the
// repository, not in process memory.
type Vessel struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	MMSI           string    `gorm:"column:mmsi;type:varchar(15);not null" json:"mmsi"`
	Name           string    `gorm:"column:name;type:varchar(120);not null" json:"name"`
	PropulsionType string    `gorm:"column:propulsion_type;type:varchar(10);default:engine" json:"propulsion_type"`
	IsActive       bool      `gorm:"column:is_active;default:false" json:"is_active"`
	OwnerID        string    `gorm:"column:owner_id;type:uuid;not null" json:"owner_id"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Vessel) TableName() string {
	return "vessels"
}
