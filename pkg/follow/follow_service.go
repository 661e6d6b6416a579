package follow

import (
	"context"
	"errors"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/pkg/recipe"
	"foodgram/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FollowService interface {
		Follow(ctx context.Context, userID, authorID uuid.UUID, recipesLimit int) (domain.FollowedAuthor, error)
		Unfollow(ctx context.Context, userID, authorID uuid.UUID) error
		Subscriptions(ctx context.Context, userID uuid.UUID, req domain.SubscriptionsRequest) (domain.Page[domain.FollowedAuthor], error)
	}

	followService struct {
		followRepository FollowRepository
		userRepository   user.UserRepository
		recipeRepository recipe.RecipeRepository
	}
)

func NewFollowService(followRepository FollowRepository, userRepository user.UserRepository, recipeRepository recipe.RecipeRepository) FollowService {
	return &followService{
		followRepository: followRepository,
		userRepository:   userRepository,
		recipeRepository: recipeRepository,
	}
}

func (s *followService) Follow(ctx context.Context, userID, authorID uuid.UUID, recipesLimit int) (domain.FollowedAuthor, error) {
	if userID == authorID {
		return domain.FollowedAuthor{}, domain.ErrCannotFollowSelf
	}

	author, err := s.getAuthor(ctx, authorID)
	if err != nil {
		return domain.FollowedAuthor{}, err
	}

	if err := s.followRepository.CreateFollow(ctx, userID, authorID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return domain.FollowedAuthor{}, domain.ErrAlreadyFollowing
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return domain.FollowedAuthor{}, domain.ErrUserNotFound
		}
		return domain.FollowedAuthor{}, err
	}

	result, err := s.project(ctx, []*entities.User{author}, recipesLimit)
	if err != nil {
		return domain.FollowedAuthor{}, err
	}
	return result[0], nil
}

func (s *followService) Unfollow(ctx context.Context, userID, authorID uuid.UUID) error {
	if userID == authorID {
		return domain.ErrCannotUnfollowSelf
	}

	if _, err := s.getAuthor(ctx, authorID); err != nil {
		return err
	}

	removed, err := s.followRepository.DeleteFollow(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFollowing
	}
	return nil
}

func (s *followService) Subscriptions(ctx context.Context, userID uuid.UUID, req domain.SubscriptionsRequest) (domain.Page[domain.FollowedAuthor], error) {
	req.Pagination = req.Pagination.Normalize(6)

	authors, count, err := s.followRepository.GetFollowedAuthors(ctx, userID, req.Limit, req.Offset)
	if err != nil {
		return domain.Page[domain.FollowedAuthor]{}, err
	}

	result, err := s.project(ctx, authors, req.RecipesLimit)
	if err != nil {
		return domain.Page[domain.FollowedAuthor]{}, err
	}
	return domain.Page[domain.FollowedAuthor]{Count: count, Results: result}, nil
}

// project renders followed authors with their newest recipes, at most
// recipesLimit of them when it is positive.
func (s *followService) project(ctx context.Context, authors []*entities.User, recipesLimit int) ([]domain.FollowedAuthor, error) {
	ids := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}
	counts, err := s.recipeRepository.CountAuthorRecipes(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]domain.FollowedAuthor, 0, len(authors))
	for _, a := range authors {
		recipes, err := s.recipeRepository.GetAuthorRecipes(ctx, a.ID, recipesLimit)
		if err != nil {
			return nil, err
		}
		shorts := make([]domain.RecipeShort, 0, len(recipes))
		for _, r := range recipes {
			shorts = append(shorts, recipe.ToRecipeShort(r))
		}
		result = append(result, domain.FollowedAuthor{
			User:         user.ToUser(a, true),
			Recipes:      shorts,
			RecipesCount: counts[a.ID],
		})
	}
	return result, nil
}

func (s *followService) getAuthor(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	author, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return author, nil
}
