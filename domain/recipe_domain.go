package domain

import (
	"github.com/google/uuid"
	"time"
)

var (
	MessageSuccessGetRecipes       = "success get recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageSuccessCreateRecipe     = "recipe created successfully"
	MessageSuccessUpdateRecipe     = "recipe updated successfully"
	MessageSuccessDeleteRecipe     = "recipe deleted successfully"
	MessageSuccessAddFavorite      = "recipe added to favorites"
	MessageSuccessRemoveFavorite   = "recipe removed from favorites"
	MessageSuccessAddShoppingCart  = "recipe added to shopping cart"
	MessageSuccessRemoveShopCart   = "recipe removed from shopping cart"
	MessageSuccessGetTags          = "success get tags"
	MessageSuccessGetIngredients   = "success get ingredients"
	MessageFailedGetRecipes        = "failed to get recipes"
	MessageFailedGetRecipeDetail   = "failed to get recipe detail"
	MessageFailedCreateRecipe      = "failed to create recipe"
	MessageFailedUpdateRecipe      = "failed to update recipe"
	MessageFailedDeleteRecipe      = "failed to delete recipe"
	MessageFailedAddFavorite       = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite    = "failed to remove recipe from favorites"
	MessageFailedAddShoppingCart   = "failed to add recipe to shopping cart"
	MessageFailedRemoveShopCart    = "failed to remove recipe from shopping cart"
	MessageFailedDownloadShopList  = "failed to build shopping list"
	MessageFailedGetTags           = "failed to get tags"
	MessageFailedGetIngredients    = "failed to get ingredients"
	MessageFailedUploadRecipeImage = "failed to upload recipe image"

	ErrRecipeNotFound           = NewError(KindNotFound, "recipe does not exist")
	ErrTagNotFound              = NewError(KindNotFound, "tag does not exist")
	ErrIngredientNotFound       = NewError(KindNotFound, "ingredient does not exist")
	ErrUnauthorizedRecipeAccess = NewError(KindForbidden, "only the author can change this recipe")
)

type (
	Tag struct {
		ID    uuid.UUID `json:"id"`
		Name  string    `json:"name"`
		Color string    `json:"color"`
		Slug  string    `json:"slug"`
	}

	Ingredient struct {
		ID              uuid.UUID `json:"id"`
		Name            string    `json:"name"`
		MeasurementUnit string    `json:"measurement_unit"`
	}

	// IngredientLine is an ingredient as it appears inside a recipe.
	IngredientLine struct {
		ID              uuid.UUID `json:"id"`
		Name            string    `json:"name"`
		MeasurementUnit string    `json:"measurement_unit"`
		Amount          int       `json:"amount"`
	}

	IngredientAmountRequest struct {
		ID     uuid.UUID `json:"id" validate:"required"`
		Amount int       `json:"amount" validate:"required,min=1"`
	}

	// RecipeRequest is the write payload for create and replace. On replace
	// the scalar fields are optional; tags and ingredients are always
	// required and always replace the stored sets.
	RecipeRequest struct {
		Tags        []uuid.UUID               `json:"tags" validate:"required,min=1"`
		Ingredients []IngredientAmountRequest `json:"ingredients" validate:"required,min=1,dive"`
		Name        *string                   `json:"name" validate:"omitempty,max=200"`
		Image       *string                   `json:"image"`
		Text        *string                   `json:"text"`
		CookingTime *int                      `json:"cooking_time" validate:"omitempty,min=1"`
	}

	// RecipeShort is the minimal projection returned by the membership
	// endpoints and inside subscription listings.
	RecipeShort struct {
		ID          uuid.UUID `json:"id"`
		Name        string    `json:"name"`
		Image       string    `json:"image"`
		CookingTime int       `json:"cooking_time"`
	}

	Recipe struct {
		ID               uuid.UUID        `json:"id"`
		Tags             []Tag            `json:"tags"`
		Author           User             `json:"author"`
		Ingredients      []IngredientLine `json:"ingredients"`
		Name             string           `json:"name"`
		Image            string           `json:"image"`
		Text             string           `json:"text"`
		CookingTime      int              `json:"cooking_time"`
		PubDate          time.Time        `json:"pub_date"`
		IsFavorited      bool             `json:"is_favorited"`
		IsInShoppingCart bool             `json:"is_in_shopping_cart"`
	}

	RecipeFilter struct {
		Pagination
		TagSlugs         []string
		AuthorID         *uuid.UUID
		IsFavorited      bool
		IsInShoppingCart bool
	}
)
