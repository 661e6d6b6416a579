package follow_test

import (
	"context"
	"testing"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testutil"
	"foodgram/pkg/follow"
	"foodgram/pkg/recipe"
	"foodgram/pkg/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(db *gorm.DB) follow.FollowService {
	return follow.NewFollowService(
		follow.NewFollowRepository(db),
		user.NewUserRepository(db),
		recipe.NewRecipeRepository(db),
	)
}

func TestFollow(t *testing.T) {
	db := testutil.NewDB(t)
	service := newService(db)
	ctx := context.Background()

	reader := testutil.CreateUser(t, db, "reader")
	author := testutil.CreateUser(t, db, "author")
	tag := testutil.CreateTag(t, db, "Lunch", "#49B64E", "lunch")
	salt := testutil.CreateIngredient(t, db, "Salt", "g")
	for _, name := range []string{"Soup", "Stew", "Pie"} {
		testutil.CreateRecipe(t, db, author, name, []*entities.Tag{tag},
			testutil.IngredientAmount{Ingredient: salt, Amount: 1})
	}

	tests := []struct {
		name     string
		userID   uuid.UUID
		authorID uuid.UUID
		wantErr  error
	}{
		{"self follow", reader.ID, reader.ID, domain.ErrSelfFollow},
		{"self follow of unknown user is still self follow", uuid.Nil, uuid.Nil, domain.ErrSelfFollow},
		{"unknown author", reader.ID, uuid.New(), domain.ErrNotFound},
		{"success", reader.ID, author.ID, nil},
		{"already following", reader.ID, author.ID, domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := service.Follow(ctx, tt.userID, tt.authorID, 2)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, author.ID, res.ID)
			assert.True(t, res.IsSubscribed)
			assert.Len(t, res.Recipes, 2)
			assert.EqualValues(t, 3, res.RecipesCount)
		})
	}
}

func TestUnfollow(t *testing.T) {
	db := testutil.NewDB(t)
	service := newService(db)
	ctx := context.Background()

	reader := testutil.CreateUser(t, db, "reader")
	author := testutil.CreateUser(t, db, "author")

	assert.ErrorIs(t, service.Unfollow(ctx, reader.ID, reader.ID), domain.ErrSelfFollow)
	assert.ErrorIs(t, service.Unfollow(ctx, reader.ID, uuid.New()), domain.ErrNotFound)
	assert.ErrorIs(t, service.Unfollow(ctx, reader.ID, author.ID), domain.ErrNotPresent)

	_, err := service.Follow(ctx, reader.ID, author.ID, 0)
	require.NoError(t, err)
	require.NoError(t, service.Unfollow(ctx, reader.ID, author.ID))
	assert.ErrorIs(t, service.Unfollow(ctx, reader.ID, author.ID), domain.ErrNotPresent)
}

func TestSubscriptions(t *testing.T) {
	db := testutil.NewDB(t)
	service := newService(db)
	ctx := context.Background()

	reader := testutil.CreateUser(t, db, "reader")
	first := testutil.CreateUser(t, db, "zed")
	second := testutil.CreateUser(t, db, "amy")
	third := testutil.CreateUser(t, db, "bob")
	tag := testutil.CreateTag(t, db, "Lunch", "#49B64E", "lunch")
	salt := testutil.CreateIngredient(t, db, "Salt", "g")
	for i := 0; i < 4; i++ {
		testutil.CreateRecipe(t, db, second, "Dish", []*entities.Tag{tag},
			testutil.IngredientAmount{Ingredient: salt, Amount: 1})
	}

	// Follow order differs from username order.
	for _, a := range []*entities.User{first, second, third} {
		_, err := service.Follow(ctx, reader.ID, a.ID, 0)
		require.NoError(t, err)
	}

	t.Run("ordered by follow time", func(t *testing.T) {
		page, err := service.Subscriptions(ctx, reader.ID, domain.SubscriptionsRequest{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Count)
		require.Len(t, page.Results, 3)
		assert.Equal(t, first.ID, page.Results[0].ID)
		assert.Equal(t, second.ID, page.Results[1].ID)
		assert.Equal(t, third.ID, page.Results[2].ID)

		assert.Len(t, page.Results[1].Recipes, 4)
		assert.EqualValues(t, 4, page.Results[1].RecipesCount)
		assert.Empty(t, page.Results[0].Recipes)
		for _, r := range page.Results {
			assert.True(t, r.IsSubscribed)
		}
	})

	t.Run("recipes limit and paging", func(t *testing.T) {
		page, err := service.Subscriptions(ctx, reader.ID, domain.SubscriptionsRequest{
			Pagination:   domain.Pagination{Limit: 1, Offset: 1},
			RecipesLimit: 2,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Count)
		require.Len(t, page.Results, 1)
		assert.Equal(t, second.ID, page.Results[0].ID)
		assert.Len(t, page.Results[0].Recipes, 2)
		assert.EqualValues(t, 4, page.Results[0].RecipesCount)
	})

	t.Run("no subscriptions", func(t *testing.T) {
		page, err := service.Subscriptions(ctx, first.ID, domain.SubscriptionsRequest{})
		require.NoError(t, err)
		assert.Zero(t, page.Count)
		assert.Empty(t, page.Results)
	})
}
