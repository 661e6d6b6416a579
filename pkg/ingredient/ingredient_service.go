package ingredient

import (
	"context"
	"errors"
	"foodgram/domain"
	"foodgram/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
		GetIngredient(ctx context.Context, id uuid.UUID) (domain.Ingredient, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

// GetIngredients lists ingredients whose name starts with namePrefix
// (case-insensitive); an empty prefix lists everything.
func (s *ingredientService) GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, namePrefix)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Ingredient, 0, len(ingredients))
	for _, i := range ingredients {
		result = append(result, toIngredient(i))
	}
	return result, nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id uuid.UUID) (domain.Ingredient, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.ErrIngredientNotFound
		}
		return domain.Ingredient{}, err
	}
	return toIngredient(ingredient), nil
}

func toIngredient(i *entities.Ingredient) domain.Ingredient {
	return domain.Ingredient{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}
