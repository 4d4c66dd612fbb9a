package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
)

// FoodPayload captures inbound food attributes while preserving field presence.
type FoodPayload struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Size     *string          `json:"size"`
}

// FoodRequest is the body of food create and update calls.
type FoodRequest struct {
	Food *FoodPayload `json:"food"`
}

// Food is the HTTP representation of a menu food.
type Food struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Size     *string         `json:"size"`
}

// AddonPayload captures inbound addon attributes while preserving field presence.
type AddonPayload struct {
	Name  *string          `json:"name"`
	Type  *string          `json:"type"`
	Price *decimal.Decimal `json:"price"`
	Size  *string          `json:"size"`
}

// AddonRequest is the body of addon create and update calls.
type AddonRequest struct {
	Addon *AddonPayload `json:"addon"`
}

// Addon is the HTTP representation of an addon.
type Addon struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Price decimal.Decimal `json:"price"`
	Size  *string         `json:"size"`
}

// ToCreateFoodInput requires name, category and price.
func ToCreateFoodInput(p FoodPayload) (types.CreateFoodInput, error) {
	if p.Name == nil || p.Category == nil || p.Price == nil {
		return types.CreateFoodInput{}, ErrMissingFields
	}
	return types.CreateFoodInput{Name: *p.Name, Category: *p.Category, Price: *p.Price, Size: p.Size}, nil
}

func ToFoodPatch(p FoodPayload) domain.FoodPatch {
	return domain.FoodPatch{Name: p.Name, Category: p.Category, Price: p.Price, Size: p.Size}
}

func FromFood(f *domain.Food) Food {
	if f == nil {
		return Food{}
	}
	return Food{ID: f.ID, Name: f.Name, Category: f.Category, Price: f.Price, Size: f.Size}
}

// ToCreateAddonInput requires name, type and price.
func ToCreateAddonInput(p AddonPayload) (types.CreateAddonInput, error) {
	if p.Name == nil || p.Type == nil || p.Price == nil {
		return types.CreateAddonInput{}, ErrMissingFields
	}
	return types.CreateAddonInput{Name: *p.Name, Type: *p.Type, Price: *p.Price, Size: p.Size}, nil
}

func ToAddonPatch(p AddonPayload) domain.AddonPatch {
	return domain.AddonPatch{Name: p.Name, Type: p.Type, Price: p.Price, Size: p.Size}
}

func FromAddon(a *domain.Addon) Addon {
	if a == nil {
		return Addon{}
	}
	return Addon{ID: a.ID, Name: a.Name, Type: a.Type, Price: a.Price, Size: a.Size}
}
