// Package testutil provides a migrated SQLite database for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	migration "foodgram/cmd/database/migrate"
	"foodgram/entities"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a file backed SQLite database in t.TempDir(), runs the
// migrations and enables translated constraint errors like production does.
// A single connection serialises writers so concurrent tests hit the unique
// indexes instead of SQLITE_BUSY.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "foodgram.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	u := &entities.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  "x",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateTag(t *testing.T, db *gorm.DB, name, color, slug string) *entities.Tag {
	t.Helper()
	tag := &entities.Tag{Name: name, Color: color, Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()
	i := &entities.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(i).Error)
	return i
}

// IngredientAmount is a (ingredient, amount) pair for CreateRecipe.
type IngredientAmount struct {
	Ingredient *entities.Ingredient
	Amount     int
}

// CreateRecipe inserts a recipe with its tag links and ingredient lines in
// the given order.
func CreateRecipe(t *testing.T, db *gorm.DB, author *entities.User, name string, tags []*entities.Tag, lines ...IngredientAmount) *entities.Recipe {
	t.Helper()
	r := &entities.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       "recipes/images/" + name + ".png",
		Text:        name + " text",
		CookingTime: 10,
	}
	require.NoError(t, db.Omit("Tags", "Ingredients", "Author").Create(r).Error)
	for _, tag := range tags {
		require.NoError(t, db.Create(&entities.RecipeTag{RecipeID: r.ID, TagID: tag.ID}).Error)
	}
	for _, l := range lines {
		require.NoError(t, db.Create(&entities.RecipeIngredient{
			RecipeID:     r.ID,
			IngredientID: l.Ingredient.ID,
			Amount:       l.Amount,
		}).Error)
	}
	return r
}
