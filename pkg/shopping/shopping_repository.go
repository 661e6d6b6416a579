package shopping

import (
	"context"
	"foodgram/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// CartLine is one ingredient line of one recipe in a user's cart.
	CartLine struct {
		Name            string
		MeasurementUnit string
		Amount          int
	}

	ShoppingRepository interface {
		GetCartLines(ctx context.Context, userID uuid.UUID) ([]CartLine, error)
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

// GetCartLines walks the cart in the order recipes were added and each
// recipe's lines in the order they were written.
func (r *shoppingRepository) GetCartLines(ctx context.Context, userID uuid.UUID) ([]CartLine, error) {
	var lines []CartLine
	err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, recipe_ingredients.amount AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_carts.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Order("shopping_carts.id asc").
		Order("recipe_ingredients.id asc").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
