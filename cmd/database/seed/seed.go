package seed

import (
	"encoding/json"
	"fmt"
	"foodgram/entities"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ingredientRow struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	tagRow struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}
)

// Seed loads ingredients.json and tags.json from dir. Rows that already exist
// are skipped, so it is safe to run on every start.
func Seed(db *gorm.DB, dir string) error {
	var ingredients []ingredientRow
	if err := readJSON(filepath.Join(dir, "ingredients.json"), &ingredients); err != nil {
		return err
	}
	var tags []tagRow
	if err := readJSON(filepath.Join(dir, "tags.json"), &tags); err != nil {
		return err
	}

	rows := make([]*entities.Ingredient, 0, len(ingredients))
	for _, i := range ingredients {
		rows = append(rows, &entities.Ingredient{Name: i.Name, MeasurementUnit: i.MeasurementUnit})
	}
	if len(rows) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("seed ingredients: %w", err)
		}
	}
	log.Infof("Database update: %d ingredients", len(rows))

	tagRows := make([]*entities.Tag, 0, len(tags))
	for _, t := range tags {
		tagRows = append(tagRows, &entities.Tag{Name: t.Name, Color: t.Color, Slug: t.Slug})
	}
	if len(tagRows) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(tagRows).Error; err != nil {
			return fmt.Errorf("seed tags: %w", err)
		}
	}
	log.Infof("Database update: %d tags", len(tagRows))
	return nil
}

func readJSON(path string, out any) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(file, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
