package follow

import (
	"context"
	"foodgram/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FollowRepository interface {
		CreateFollow(ctx context.Context, userID, authorID uuid.UUID) error
		DeleteFollow(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
		GetFollowedAuthors(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.User, int64, error)
	}

	followRepository struct {
		db *gorm.DB
	}
)

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) CreateFollow(ctx context.Context, userID, authorID uuid.UUID) error {
	follow := &entities.Follow{UserID: userID, AuthorID: authorID}
	return r.db.WithContext(ctx).Omit("User", "Author").Create(follow).Error
}

func (r *followRepository) DeleteFollow(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&entities.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetFollowedAuthors lists the authors userID follows in the order the
// follows were created.
func (r *followRepository) GetFollowedAuthors(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.User, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var authors []*entities.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.id asc").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, count, nil
}
