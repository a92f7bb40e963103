package entity

import "time"

// Template is one entry of the default catalog.
type Template struct {
	Name  string
	Icon  string
	Color string
	Kind  Kind
}

var defaultCatalog = []Template{
	{Name: "Food", Icon: "utensils", Color: "#F97316", Kind: KindExpense},
	{Name: "Transport", Icon: "car", Color: "#3B82F6", Kind: KindExpense},
	{Name: "Housing", Icon: "home", Color: "#8B5CF6", Kind: KindExpense},
	{Name: "Entertainment", Icon: "film", Color: "#EC4899", Kind: KindExpense},
	{Name: "Health", Icon: "heart-pulse", Color: "#EF4444", Kind: KindExpense},
	{Name: "Clothing", Icon: "shirt", Color: "#14B8A6", Kind: KindExpense},
	{Name: "Education", Icon: "graduation-cap", Color: "#6366F1", Kind: KindExpense},
	{Name: "Other", Icon: "ellipsis", Color: "#6B7280", Kind: KindExpense},
	{Name: "Salary", Icon: "briefcase", Color: "#22C55E", Kind: KindIncome},
	{Name: "Freelance", Icon: "laptop", Color: "#10B981", Kind: KindIncome},
	{Name: "Investments", Icon: "trending-up", Color: "#84CC16", Kind: KindIncome},
	{Name: "Other", Icon: "ellipsis", Color: "#6B7280", Kind: KindIncome},
}

// DefaultCatalog returns a copy of the categories every new account starts with.
func DefaultCatalog() []Template {
	out := make([]Template, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// NewDefaultCategories materializes the catalog for accountID under scope.
func NewDefaultCategories(accountID string, scope Scope, newID func() string, now time.Time) []*Category {
	out := make([]*Category, 0, len(defaultCatalog))
	for _, t := range defaultCatalog {
		out = append(out, &Category{
			ID:        newID(),
			AccountID: accountID,
			ScopeKind: scope.Kind,
			ScopeID:   scope.ID,
			Name:      t.Name,
			Icon:      t.Icon,
			Color:     t.Color,
			Kind:      t.Kind,
			IsDefault: true,
			CreatedAt: now,
		})
	}
	return out
}
