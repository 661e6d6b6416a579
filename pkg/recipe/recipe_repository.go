package recipe

import (
	"context"
	"foodgram/domain"
	"foodgram/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID, lines []*entities.RecipeIngredient) error
		ReplaceRecipe(ctx context.Context, id uuid.UUID, fields map[string]any, tagIDs []uuid.UUID, lines []*entities.RecipeIngredient) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipeDetail(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID *uuid.UUID) ([]*entities.Recipe, int64, error)
		GetAuthorRecipes(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error)
		CountAuthorRecipes(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
		GetMembershipFlags(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (favorited, inCart map[uuid.UUID]bool, err error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe stores the recipe row, its tag links and its ingredient lines
// in one transaction.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID, lines []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := insertTags(tx, recipe.ID, tagIDs); err != nil {
			return err
		}
		return insertLines(tx, recipe.ID, lines)
	})
}

// ReplaceRecipe updates the given scalar columns and fully replaces the tag
// links and ingredient lines. Readers never see a recipe without lines.
// A recipe deleted in the meantime yields gorm.ErrRecordNotFound.
func (r *recipeRepository) ReplaceRecipe(ctx context.Context, id uuid.UUID, fields map[string]any, tagIDs []uuid.UUID, lines []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"updated_at": time.Now()}
		for k, v := range fields {
			updates[k] = v
		}
		res := tx.Model(&entities.Recipe{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := insertTags(tx, id, tagIDs); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return insertLines(tx, id, lines)
	})
}

func insertTags(tx *gorm.DB, recipeID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]*entities.RecipeTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, &entities.RecipeTag{RecipeID: recipeID, TagID: tagID})
	}
	return tx.Create(&rows).Error
}

func insertLines(tx *gorm.DB, recipeID uuid.UUID, lines []*entities.RecipeIngredient) error {
	if len(lines) == 0 {
		return nil
	}
	for _, l := range lines {
		l.ID = 0
		l.RecipeID = recipeID
	}
	return tx.Omit(clause.Associations).Create(&lines).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&entities.RecipeIngredient{},
			&entities.RecipeTag{},
			&entities.Favorite{},
			&entities.ShoppingCart{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func preloadRecipe(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name asc")
		}).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.id asc")
		}).
		Preload("Ingredients.Ingredient")
}

func (r *recipeRepository) GetRecipeDetail(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Scopes(preloadRecipe).
		Where("recipes.id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) filterScope(filter domain.RecipeFilter, userID *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(filter.TagSlugs) > 0 {
			db = db.Where("recipes.id IN (?)", r.db.
				Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs))
		}
		if filter.AuthorID != nil {
			db = db.Where("recipes.author_id = ?", *filter.AuthorID)
		}
		if userID != nil && filter.IsFavorited {
			db = db.Where("recipes.id IN (?)", r.db.
				Model(&entities.Favorite{}).
				Select("recipe_id").
				Where("user_id = ?", *userID))
		}
		if userID != nil && filter.IsInShoppingCart {
			db = db.Where("recipes.id IN (?)", r.db.
				Model(&entities.ShoppingCart{}).
				Select("recipe_id").
				Where("user_id = ?", *userID))
		}
		return db
	}
}

// GetRecipes lists recipes newest first. Membership filters apply only when
// userID is set.
func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID *uuid.UUID) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Scopes(r.filterScope(filter, userID)).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(r.filterScope(filter, userID), preloadRecipe).
		Order("recipes.created_at desc").
		Order("recipes.id asc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// GetAuthorRecipes returns the author's recipes in default order; limit <= 0
// returns all of them.
func (r *recipeRepository) GetAuthorRecipes(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Order("id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountAuthorRecipes(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	result := make(map[uuid.UUID]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.AuthorID] = row.Total
	}
	return result, nil
}

func (r *recipeRepository) GetMembershipFlags(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, map[uuid.UUID]bool, error) {
	favorited := make(map[uuid.UUID]bool)
	inCart := make(map[uuid.UUID]bool)
	if len(recipeIDs) == 0 {
		return favorited, inCart, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, nil, err
	}
	for _, id := range ids {
		favorited[id] = true
	}

	ids = nil
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, nil, err
	}
	for _, id := range ids {
		inCart[id] = true
	}

	return favorited, inCart, nil
}
