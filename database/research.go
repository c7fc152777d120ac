package database

import (
	"fmt"
	"time"
)

// ResearchEvent is one interaction record mirrored from the research log
type ResearchEvent struct {
	ID            uint      `gorm:"primaryKey"`
	Timestamp     int64     `gorm:"index;not null"`
	Event         string    `gorm:"size:64;index;not null"`
	Payload       string    `gorm:"type:jsonb"`
	ViewMode      string    `gorm:"size:16"`
	InterfaceMode string    `gorm:"size:16"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

// TableName pins the table name regardless of gorm pluralization settings
func (ResearchEvent) TableName() string {
	return "research_events"
}

// ResearchRepository handles database operations for research events
type ResearchRepository struct {
	db *Database
}

// NewResearchRepository creates a repository over the connection
func NewResearchRepository(db *Database) *ResearchRepository {
	return &ResearchRepository{db: db}
}

// InitSchema performs auto-migration for the research_events table
func (r *ResearchRepository) InitSchema() error {
	if err := r.db.db.AutoMigrate(&ResearchEvent{}); err != nil {
		return fmt.Errorf("failed to migrate research_events: %w", err)
	}
	return nil
}

// Insert appends one event record. Events are append-only; there is no
// update or delete path.
func (r *ResearchRepository) Insert(ev *ResearchEvent) error {
	if err := r.db.db.Create(ev).Error; err != nil {
		return fmt.Errorf("failed to insert research event: %w", err)
	}
	return nil
}

// CountSince returns the number of events recorded at or after ts
func (r *ResearchRepository) CountSince(ts int64) (int64, error) {
	var count int64
	err := r.db.db.Model(&ResearchEvent{}).Where("timestamp >= ?", ts).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count research events: %w", err)
	}
	return count, nil
}
