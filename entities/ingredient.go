package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is unique on (name, measurement unit); the same name may exist
// under another unit.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"size:150;uniqueIndex:idx_ingredients_name_unit;not null" json:"name"`
	MeasurementUnit string    `gorm:"size:50;uniqueIndex:idx_ingredients_name_unit;not null" json:"measurement_unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
