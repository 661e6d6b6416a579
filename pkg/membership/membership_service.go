package membership

import (
	"context"
	"errors"
	"foodgram/domain"
	"foodgram/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MembershipService interface {
		AddMembership(ctx context.Context, kind domain.MembershipKind, userID, recipeID uuid.UUID) (domain.RecipeShort, error)
		RemoveMembership(ctx context.Context, kind domain.MembershipKind, userID, recipeID uuid.UUID) error
	}

	membershipService struct {
		membershipRepository MembershipRepository
		recipeRepository     recipe.RecipeRepository
	}
)

func NewMembershipService(membershipRepository MembershipRepository, recipeRepository recipe.RecipeRepository) MembershipService {
	return &membershipService{
		membershipRepository: membershipRepository,
		recipeRepository:     recipeRepository,
	}
}

func (s *membershipService) AddMembership(ctx context.Context, kind domain.MembershipKind, userID, recipeID uuid.UUID) (domain.RecipeShort, error) {
	r, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeShort{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeShort{}, err
	}

	if err := s.membershipRepository.AddMembership(ctx, kind, userID, recipeID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return domain.RecipeShort{}, domain.NewError(domain.KindConflict, "recipe is already in %s", kind)
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			// The recipe was deleted between the lookup and the insert.
			return domain.RecipeShort{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeShort{}, err
	}

	return recipe.ToRecipeShort(r), nil
}

func (s *membershipService) RemoveMembership(ctx context.Context, kind domain.MembershipKind, userID, recipeID uuid.UUID) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	removed, err := s.membershipRepository.RemoveMembership(ctx, kind, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.NewError(domain.KindNotPresent, "recipe is not in %s", kind)
	}
	return nil
}
