package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrEmptyCategory = errors.New("category is required")
	ErrEmptyType     = errors.New("addon type is required")
	ErrNegativePrice = errors.New("price must be greater or equal to zero")
	ErrSizeRequired  = errors.New("a size is required for this category")
)

// SizePolicy lists the food categories and addon types that must carry a size.
type SizePolicy struct {
	categories map[string]struct{}
}

// DefaultSizeRequiredCategories is used when no policy is configured.
var DefaultSizeRequiredCategories = []string{"pizza"}

// NewSizePolicy builds a policy from category names. Matching ignores case and surrounding space.
func NewSizePolicy(categories ...string) SizePolicy {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c = normalizeCategory(c); c != "" {
			set[c] = struct{}{}
		}
	}
	return SizePolicy{categories: set}
}

// DefaultSizePolicy requires a size for pizza only.
func DefaultSizePolicy() SizePolicy {
	return NewSizePolicy(DefaultSizeRequiredCategories...)
}

// Requires reports whether category must carry a size.
func (p SizePolicy) Requires(category string) bool {
	_, ok := p.categories[normalizeCategory(category)]
	return ok
}

// Check fails with ErrSizeRequired when category needs a size and none is set.
func (p SizePolicy) Check(category string, size *string) error {
	if p.Requires(category) && (size == nil || strings.TrimSpace(*size) == "") {
		return ErrSizeRequired
	}
	return nil
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

// Food is a menu item.
type Food struct {
	ID       int64
	Name     string
	Category string
	Price    decimal.Decimal
	Size     *string
}

// FoodPatch carries the fields a caller wants to change. Nil means "leave untouched";
// a pointer to "" clears Size.
type FoodPatch struct {
	Name     *string
	Category *string
	Price    *decimal.Decimal
	Size     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p FoodPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Size == nil
}

// Apply merges the patch into f.
func (f *Food) Apply(p FoodPatch) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Price != nil {
		f.Price = *p.Price
	}
	if p.Size != nil {
		f.Size = normalizeOptional(*p.Size)
	}
}

// Validate enforces the menu invariants including the size rule.
func (f Food) Validate(policy SizePolicy) error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(f.Category) == "" {
		return ErrEmptyCategory
	}
	if f.Price.IsNegative() {
		return ErrNegativePrice
	}
	return policy.Check(f.Category, f.Size)
}

// Addon is an extra that can be applied to an order item.
type Addon struct {
	ID    int64
	Name  string
	Type  string
	Price decimal.Decimal
	Size  *string
}

// AddonPatch mirrors FoodPatch for addons.
type AddonPatch struct {
	Name  *string
	Type  *string
	Price *decimal.Decimal
	Size  *string
}

func (p AddonPatch) IsEmpty() bool {
	return p.Name == nil && p.Type == nil && p.Price == nil && p.Size == nil
}

func (a *Addon) Apply(p AddonPatch) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Price != nil {
		a.Price = *p.Price
	}
	if p.Size != nil {
		a.Size = normalizeOptional(*p.Size)
	}
}

func (a Addon) Validate(policy SizePolicy) error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(a.Type) == "" {
		return ErrEmptyType
	}
	if a.Price.IsNegative() {
		return ErrNegativePrice
	}
	return policy.Check(a.Type, a.Size)
}

func normalizeOptional(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
