package types

import (
	"time"
)

// Prompt is a stored text snippet. Timestamps are set by the store rather
// than by gorm's auto-tracking so that created_at and updated_at are exactly
// equal on a fresh row. Deletion is a hard delete: no DeletedAt column.
type Prompt struct {
	ID         uint   `gorm:"primaryKey"`
	Title      string `gorm:"not null"`
	Content    string `gorm:"column:prompt;not null"`
	IsFavorite bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Prompt) TableName() string {
	return "prompts"
}
