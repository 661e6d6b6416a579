package tag

import (
	"context"
	"errors"
	"foodgram/domain"
	"foodgram/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.Tag, error)
		GetTag(ctx context.Context, id uuid.UUID) (domain.Tag, error)
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		result = append(result, ToTag(t))
	}
	return result, nil
}

func (s *tagService) GetTag(ctx context.Context, id uuid.UUID) (domain.Tag, error) {
	tag, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Tag{}, domain.ErrTagNotFound
		}
		return domain.Tag{}, err
	}
	return ToTag(tag), nil
}

func ToTag(t *entities.Tag) domain.Tag {
	return domain.Tag{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}
