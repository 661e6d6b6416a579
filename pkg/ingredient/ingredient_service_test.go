package ingredient_test

import (
	"context"
	"testing"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testutil"
	"foodgram/pkg/ingredient"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetIngredients(t *testing.T) {
	db := testutil.NewDB(t)
	service := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db))
	ctx := context.Background()

	testutil.CreateIngredient(t, db, "Sugar", "g")
	testutil.CreateIngredient(t, db, "salt", "g")
	testutil.CreateIngredient(t, db, "Salt", "pinch")
	testutil.CreateIngredient(t, db, "Semolina", "g")
	testutil.CreateIngredient(t, db, "100% juice", "ml")
	testutil.CreateIngredient(t, db, "1000 island", "ml")

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"no filter", "", []string{"100% juice", "1000 island", "Salt", "Semolina", "Sugar", "salt"}},
		{"case insensitive prefix", "SA", []string{"Salt", "salt"}},
		{"prefix not substring", "alt", []string{}},
		{"wildcards are literal", "100%", []string{"100% juice"}},
		{"underscore is literal", "s_lt", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := service.GetIngredients(ctx, tt.prefix)
			require.NoError(t, err)
			names := make([]string, 0, len(res))
			for _, i := range res {
				names = append(names, i.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestGetIngredient(t *testing.T) {
	db := testutil.NewDB(t)
	service := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db))
	ctx := context.Background()

	salt := testutil.CreateIngredient(t, db, "Salt", "g")

	res, err := service.GetIngredient(ctx, salt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Ingredient{ID: salt.ID, Name: "Salt", MeasurementUnit: "g"}, res)

	_, err = service.GetIngredient(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngredientNameUnitIsUnique(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateIngredient(t, db, "Salt", "g")

	err := db.Create(&entities.Ingredient{Name: "Salt", MeasurementUnit: "g"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Same name in another unit is a different ingredient.
	require.NoError(t, db.Create(&entities.Ingredient{Name: "Salt", MeasurementUnit: "pinch"}).Error)
}
