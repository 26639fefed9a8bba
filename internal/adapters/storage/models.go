package storage

import "time"

// SessionEventModel is the GORM model for the session_events table.
// Seq orders events that share a timestamp.
type SessionEventModel struct {
	Detail         string    `gorm:"not null;default:''"`
	ID             string    `gorm:"uniqueIndex;not null"`
	InstanceID     string    `gorm:"not null;default:'';index:idx_instance"`
	LayoutTemplate string    `gorm:"not null;default:''"`
	OccurredAt     time.Time `gorm:"not null;index:idx_occurred_at"`
	Seq            uint      `gorm:"primaryKey;autoIncrement"`
	SessionName    string    `gorm:"not null;index:idx_session_name"`
	Status         string    `gorm:"not null;default:''"`
	Type           string    `gorm:"not null;index:idx_type;check:type IN ('attached','create_failed','created','destroyed','detached','orphan_detected')"`
	WorkingDir     string    `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (SessionEventModel) TableName() string { return "session_events" }
