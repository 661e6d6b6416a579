package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"size:150;uniqueIndex:idx_tags_name;not null" json:"name"`
	Color string    `gorm:"size:7;uniqueIndex:idx_tags_color;not null" json:"color"`
	Slug  string    `gorm:"size:50;uniqueIndex:idx_tags_slug;not null" json:"slug"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
