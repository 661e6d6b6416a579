package recipe

import (
	"context"
	"errors"
	"fmt"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/tag"
	"foodgram/pkg/user"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const recipeImageFolder = "recipes/images"

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.RecipeRequest, authorID uuid.UUID) (domain.Recipe, error)
		ReplaceRecipe(ctx context.Context, id uuid.UUID, req domain.RecipeRequest, actorID uuid.UUID) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
		GetRecipe(ctx context.Context, viewer domain.Viewer, id uuid.UUID) (domain.Recipe, error)
		GetRecipes(ctx context.Context, viewer domain.Viewer, filter domain.RecipeFilter) (domain.Page[domain.Recipe], error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
		userRepository       user.UserRepository
		s3                   storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		userRepository:       userRepository,
		s3:                   s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest, authorID uuid.UUID) (domain.Recipe, error) {
	if err := s.validateRequest(ctx, req, true); err != nil {
		return domain.Recipe{}, err
	}

	image, err := s.uploadImage(ctx, *req.Image)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        strings.TrimSpace(*req.Name),
		Image:       image,
		Text:        *req.Text,
		CookingTime: *req.CookingTime,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, req.Tags, toLines(req.Ingredients)); err != nil {
		s.deleteImage(ctx, image)
		return domain.Recipe{}, mapWriteError(err)
	}

	return s.GetRecipe(ctx, domain.UserViewer(authorID), recipe.ID)
}

// ReplaceRecipe updates only the scalar fields present in req, while tags and
// ingredient lines are always replaced by the submitted sets.
func (s *recipeService) ReplaceRecipe(ctx context.Context, id uuid.UUID, req domain.RecipeRequest, actorID uuid.UUID) (domain.Recipe, error) {
	existing, err := s.getRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}
	if existing.AuthorID != actorID {
		return domain.Recipe{}, domain.ErrUnauthorizedRecipeAccess
	}

	if err := s.validateRequest(ctx, req, false); err != nil {
		return domain.Recipe{}, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Text != nil {
		fields["text"] = *req.Text
	}
	if req.CookingTime != nil {
		fields["cooking_time"] = *req.CookingTime
	}
	var image string
	if req.Image != nil {
		image, err = s.uploadImage(ctx, *req.Image)
		if err != nil {
			return domain.Recipe{}, err
		}
		fields["image"] = image
	}

	if err := s.recipeRepository.ReplaceRecipe(ctx, id, fields, req.Tags, toLines(req.Ingredients)); err != nil {
		if image != "" {
			s.deleteImage(ctx, image)
		}
		return domain.Recipe{}, mapWriteError(err)
	}
	if image != "" {
		s.deleteImage(ctx, existing.Image)
	}

	return s.GetRecipe(ctx, domain.UserViewer(actorID), id)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	existing, err := s.getRecipe(ctx, id)
	if err != nil {
		return err
	}
	if existing.AuthorID != actorID {
		return domain.ErrUnauthorizedRecipeAccess
	}
	if err := s.recipeRepository.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	s.deleteImage(ctx, existing.Image)
	return nil
}

func (s *recipeService) GetRecipe(ctx context.Context, viewer domain.Viewer, id uuid.UUID) (domain.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}

	result, err := s.project(ctx, viewer, []*entities.Recipe{recipe})
	if err != nil {
		return domain.Recipe{}, err
	}
	return result[0], nil
}

func (s *recipeService) GetRecipes(ctx context.Context, viewer domain.Viewer, filter domain.RecipeFilter) (domain.Page[domain.Recipe], error) {
	filter.Pagination = filter.Pagination.Normalize(6)

	var userID *uuid.UUID
	if !viewer.IsAnonymous() {
		userID = &viewer.UserID
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, userID)
	if err != nil {
		return domain.Page[domain.Recipe]{}, err
	}

	result, err := s.project(ctx, viewer, recipes)
	if err != nil {
		return domain.Page[domain.Recipe]{}, err
	}
	return domain.Page[domain.Recipe]{Count: count, Results: result}, nil
}

// project builds the full read shape, resolving the viewer-relative flags
// in one query per flag for the whole batch.
func (s *recipeService) project(ctx context.Context, viewer domain.Viewer, recipes []*entities.Recipe) ([]domain.Recipe, error) {
	favorited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}
	subscribed := map[uuid.UUID]bool{}

	if !viewer.IsAnonymous() && len(recipes) > 0 {
		recipeIDs := make([]uuid.UUID, 0, len(recipes))
		authorIDs := make([]uuid.UUID, 0, len(recipes))
		for _, r := range recipes {
			recipeIDs = append(recipeIDs, r.ID)
			authorIDs = append(authorIDs, r.AuthorID)
		}

		var err error
		favorited, inCart, err = s.recipeRepository.GetMembershipFlags(ctx, viewer.UserID, recipeIDs)
		if err != nil {
			return nil, err
		}
		subscribed, err = s.userRepository.FollowedAuthorIDs(ctx, viewer.UserID, authorIDs)
		if err != nil {
			return nil, err
		}
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		item := domain.Recipe{
			ID:               r.ID,
			Tags:             make([]domain.Tag, 0, len(r.Tags)),
			Ingredients:      make([]domain.IngredientLine, 0, len(r.Ingredients)),
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			PubDate:          r.CreatedAt,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
		}
		if r.Author != nil {
			item.Author = user.ToUser(r.Author, subscribed[r.AuthorID])
		}
		for _, t := range r.Tags {
			item.Tags = append(item.Tags, tag.ToTag(t))
		}
		for _, line := range r.Ingredients {
			if line.Ingredient == nil {
				continue
			}
			item.Ingredients = append(item.Ingredients, domain.IngredientLine{
				ID:              line.Ingredient.ID,
				Name:            line.Ingredient.Name,
				MeasurementUnit: line.Ingredient.MeasurementUnit,
				Amount:          line.Amount,
			})
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *recipeService) getRecipe(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) uploadImage(ctx context.Context, image string) (string, error) {
	url, err := s.s3.UploadBase64Image(ctx, recipeImageFolder, image)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return "", domain.NewValidationError(map[string]string{"image": err.Error()})
		}
		log.Errorf("failed to upload recipe image: %v", err)
		return "", err
	}
	return url, nil
}

// deleteImage drops a stored image on a best-effort basis; the recipe row is
// already gone or points elsewhere.
func (s *recipeService) deleteImage(ctx context.Context, link string) {
	key := s.s3.GetObjectKeyFromLink(link)
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Warnf("failed to delete recipe image %s: %v", key, err)
	}
}

// validateRequest checks the rules the store cannot: non-empty and
// duplicate-free lists, positive numbers, and that every referenced tag and
// ingredient exists. On create every scalar is required.
func (s *recipeService) validateRequest(ctx context.Context, req domain.RecipeRequest, create bool) error {
	fields := map[string]string{}

	if create {
		if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
			fields["name"] = "this field is required"
		}
		if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
			fields["text"] = "this field is required"
		}
		if req.Image == nil || *req.Image == "" {
			fields["image"] = "this field is required"
		}
		if req.CookingTime == nil {
			fields["cooking_time"] = "this field is required"
		}
	}
	if req.Name != nil && len([]rune(*req.Name)) > 200 {
		fields["name"] = "ensure this field has no more than 200 characters"
	}
	if req.CookingTime != nil && *req.CookingTime < 1 {
		fields["cooking_time"] = "ensure this value is greater than or equal to 1"
	}

	if len(req.Tags) == 0 {
		fields["tags"] = "no tag selected"
	} else if hasDuplicates(req.Tags) {
		fields["tags"] = "tags must be unique"
	} else if count, err := s.tagRepository.CountTagsByIDs(ctx, req.Tags); err != nil {
		return err
	} else if count != int64(len(req.Tags)) {
		fields["tags"] = "unknown tag id"
	}

	if msg, err := s.validateIngredients(ctx, req.Ingredients); err != nil {
		return err
	} else if msg != "" {
		fields["ingredients"] = msg
	}

	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

func (s *recipeService) validateIngredients(ctx context.Context, lines []domain.IngredientAmountRequest) (string, error) {
	if len(lines) == 0 {
		return "no ingredient selected", nil
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if l.Amount < 1 {
			return fmt.Sprintf("amount of ingredient %s must be greater than or equal to 1", l.ID), nil
		}
		ids = append(ids, l.ID)
	}
	if hasDuplicates(ids) {
		return "ingredients must be unique", nil
	}

	found, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return "", err
	}
	if len(found) != len(ids) {
		known := make(map[uuid.UUID]bool, len(found))
		for _, i := range found {
			known[i.ID] = true
		}
		for _, id := range ids {
			if !known[id] {
				return fmt.Sprintf("ingredient %s does not exist", id), nil
			}
		}
	}
	return "", nil
}

func hasDuplicates(ids []uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

func toLines(req []domain.IngredientAmountRequest) []*entities.RecipeIngredient {
	lines := make([]*entities.RecipeIngredient, 0, len(req))
	for _, l := range req {
		lines = append(lines, &entities.RecipeIngredient{IngredientID: l.ID, Amount: l.Amount})
	}
	return lines
}

// mapWriteError turns constraint violations that slipped past validation
// (concurrent tag/ingredient deletion, duplicate lines) and a recipe deleted
// mid-write into client errors.
func mapWriteError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrRecipeNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.NewValidationError(map[string]string{"ingredients": "ingredients must be unique"})
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.NewValidationError(map[string]string{"ingredients": "referenced tag or ingredient does not exist"})
	default:
		return err
	}
}

// ToRecipeShort is the projection returned by favorite, cart and
// subscription endpoints.
func ToRecipeShort(r *entities.Recipe) domain.RecipeShort {
	return domain.RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
