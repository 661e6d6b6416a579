package utils

import (
	"testing"

	"foodgram/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"anna", true},
		{"anna.smith+cook@home-1", true},
		{"anna_s", true},
		{"", false},
		{"anna smith", false},
		{"anna/smith", false},
		{"me", false},
		{"token", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidUsername(tt.username))
		})
	}
}

func TestValidationError(t *testing.T) {
	InitValidator()

	err := Validate.Struct(domain.RegisterRequest{
		Email:     "not-an-email",
		Username:  "me",
		FirstName: "Anna",
		LastName:  "Smith",
		Password:  "pass",
	})
	require.Error(t, err)

	verr := ValidationError(err)
	assert.ErrorIs(t, verr, domain.ErrValidation)

	var derr *domain.Error
	require.ErrorAs(t, verr, &derr)
	assert.Equal(t, map[string]string{
		"email":    "email",
		"username": "username",
	}, derr.Fields)
}

func TestRecipeRequestValidation(t *testing.T) {
	InitValidator()

	zero := 0
	err := Validate.Struct(domain.RecipeRequest{
		Ingredients: []domain.IngredientAmountRequest{{Amount: 0}},
		CookingTime: &zero,
	})
	require.Error(t, err)

	var derr *domain.Error
	require.ErrorAs(t, ValidationError(err), &derr)
	assert.Contains(t, derr.Fields, "tags")
	assert.Contains(t, derr.Fields, "cooking_time")
	assert.Contains(t, derr.Fields, "id")
	assert.Contains(t, derr.Fields, "amount")
}
