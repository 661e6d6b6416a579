package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/middleware"
	"foodgram/internal/utils"
	"foodgram/pkg/membership"
	"foodgram/pkg/recipe"
	"foodgram/pkg/shopping"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddShoppingCart(c *fiber.Ctx) error
		RemoveShoppingCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService     recipe.RecipeService
		membershipService membership.MembershipService
		shoppingService   shopping.ShoppingService
		validator         *validator.Validate
	}
)

func NewRecipeHandler(
	recipeService recipe.RecipeService,
	membershipService membership.MembershipService,
	shoppingService shopping.ShoppingService,
	validator *validator.Validate,
) RecipeHandler {
	return &recipeHandler{
		recipeService:     recipeService,
		membershipService: membershipService,
		shoppingService:   shoppingService,
		validator:         validator,
	}
}

// GetRecipes accepts ?tags=<slug> (repeatable), ?author=<id>,
// ?is_favorited=1, ?is_in_shopping_cart=1, ?limit and ?offset.
func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	filter := domain.RecipeFilter{
		Pagination:       pagination(c),
		IsFavorited:      c.QueryBool("is_favorited", false),
		IsInShoppingCart: c.QueryBool("is_in_shopping_cart", false),
	}
	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		filter.TagSlugs = append(filter.TagSlugs, string(slug))
	}
	if author := c.Query("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes,
				domain.NewValidationError(map[string]string{"author": "invalid author id"}))
		}
		filter.AuthorID = &id
	}

	res, err := h.recipeService.GetRecipes(c.Context(), middleware.Viewer(c), filter)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipeDetail, err)
	}

	res, err := h.recipeService.GetRecipe(c.Context(), middleware.Viewer(c), id)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.RecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, utils.ValidationError(err))
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateRecipe, err)
	}

	req := new(domain.RecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, utils.ValidationError(err))
	}

	res, err := h.recipeService.ReplaceRecipe(c.Context(), id, *req, currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.DeleteRecipe(c.Context(), id, currentUserID(c)); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) addMembership(c *fiber.Ctx, kind domain.MembershipKind, failed, success string) error {
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, failed, err)
	}

	res, err := h.membershipService.AddMembership(c.Context(), kind, currentUserID(c), id)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, failed, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, success)
}

func (h *recipeHandler) removeMembership(c *fiber.Ctx, kind domain.MembershipKind, failed, success string) error {
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, failed, err)
	}

	if err := h.membershipService.RemoveMembership(c.Context(), kind, currentUserID(c), id); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, failed, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, success)
}

func (h *recipeHandler) AddFavorite(c *fiber.Ctx) error {
	return h.addMembership(c, domain.MembershipFavorite, domain.MessageFailedAddFavorite, domain.MessageSuccessAddFavorite)
}

func (h *recipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.removeMembership(c, domain.MembershipFavorite, domain.MessageFailedRemoveFavorite, domain.MessageSuccessRemoveFavorite)
}

func (h *recipeHandler) AddShoppingCart(c *fiber.Ctx) error {
	return h.addMembership(c, domain.MembershipShoppingCart, domain.MessageFailedAddShoppingCart, domain.MessageSuccessAddShoppingCart)
}

func (h *recipeHandler) RemoveShoppingCart(c *fiber.Ctx) error {
	return h.removeMembership(c, domain.MembershipShoppingCart, domain.MessageFailedRemoveShopCart, domain.MessageSuccessRemoveShopCart)
}

func (h *recipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	report, err := h.shoppingService.ShoppingListReport(c.Context(), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDownloadShopList, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+domain.ShoppingListFilename)
	return c.Status(fiber.StatusOK).SendString(report)
}
