package shopping

import (
	"context"
	"fmt"
	"foodgram/domain"
	"strings"

	"github.com/google/uuid"
)

type (
	ShoppingService interface {
		BuildShoppingList(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error)
		ShoppingListReport(ctx context.Context, userID uuid.UUID) (string, error)
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository) ShoppingService {
	return &shoppingService{shoppingRepository: shoppingRepository}
}

func (s *shoppingService) BuildShoppingList(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error) {
	lines, err := s.shoppingRepository.GetCartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Aggregate(lines), nil
}

func (s *shoppingService) ShoppingListReport(ctx context.Context, userID uuid.UUID) (string, error) {
	items, err := s.BuildShoppingList(ctx, userID)
	if err != nil {
		return "", err
	}
	return Render(items), nil
}

type groupKey struct {
	name string
	unit string
}

// Aggregate sums amounts per (name, unit) text pair. Groups keep the order in
// which they were first seen.
func Aggregate(lines []CartLine) []domain.ShoppingListItem {
	items := make([]domain.ShoppingListItem, 0, len(lines))
	index := make(map[groupKey]int, len(lines))

	for _, l := range lines {
		key := groupKey{name: l.Name, unit: l.MeasurementUnit}
		if i, ok := index[key]; ok {
			items[i].Total += int64(l.Amount)
			continue
		}
		index[key] = len(items)
		items = append(items, domain.ShoppingListItem{
			Name:            l.Name,
			MeasurementUnit: l.MeasurementUnit,
			Total:           int64(l.Amount),
		})
	}
	return items
}

// Render produces the downloadable report. An empty list renders the header
// line alone.
func Render(items []domain.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString(domain.ShoppingListHeader)
	b.WriteString("\n")
	if len(items) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(&b, "   %s, %s -- %d\n", item.Name, item.MeasurementUnit, item.Total)
	}
	return b.String()
}
