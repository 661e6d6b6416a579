package domain

const (
	ShoppingListHeader   = "Ваш список покупок:"
	ShoppingListFilename = "shopping_list.txt"
)

// ShoppingListItem is one aggregated (name, unit) group of the cart.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int64  `json:"total"`
}

type MembershipKind int

const (
	MembershipFavorite MembershipKind = iota
	MembershipShoppingCart
)

func (k MembershipKind) String() string {
	switch k {
	case MembershipFavorite:
		return "favorites"
	case MembershipShoppingCart:
		return "shopping cart"
	default:
		return "unknown"
	}
}
