package membership

import (
	"context"
	"fmt"
	"foodgram/domain"
	"foodgram/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// MembershipRepository stores favorites and shopping cart entries. Both
	// are the same (user, recipe) pair relation over different tables.
	MembershipRepository interface {
		AddMembership(ctx context.Context, kind domain.MembershipKind, userID, recipeID uuid.UUID) error
		RemoveMembership(ctx context.Context, kind domain.MembershipKind, userID, recipeID uuid.UUID) (bool, error)
	}

	membershipRepository struct {
		db *gorm.DB
	}
)

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func model(kind domain.MembershipKind, userID, recipeID uuid.UUID) (any, error) {
	switch kind {
	case domain.MembershipFavorite:
		return &entities.Favorite{UserID: userID, RecipeID: recipeID}, nil
	case domain.MembershipShoppingCart:
		return &entities.ShoppingCart{UserID: userID, RecipeID: recipeID}, nil
	default:
		return nil, fmt.Errorf("unknown membership kind %d", kind)
	}
}

// AddMembership is a single insert; a second add of the same pair fails on
// the unique index with gorm.ErrDuplicatedKey.
func (r *membershipRepository) AddMembership(ctx context.Context, kind domain.MembershipKind, userID, recipeID uuid.UUID) error {
	row, err := model(kind, userID, recipeID)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Omit("User", "Recipe").Create(row).Error
}

// RemoveMembership reports whether a row was deleted.
func (r *membershipRepository) RemoveMembership(ctx context.Context, kind domain.MembershipKind, userID, recipeID uuid.UUID) (bool, error) {
	row, err := model(kind, userID, recipeID)
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
