package budget

import (
	"fmt"
	"time"

	appErrors "github.com/mindmoney/mindmoney/customErrors"
)

// Category is one of the fixed spending buckets. The zero-ish value
// CategoryNotSelected is a placeholder the UI submits before a real
// choice is made; it is never accepted into a ledger.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTravel        Category = "Travel"
	CategoryEMI           Category = "EMI"
	CategoryShopping      Category = "Shopping"
	CategoryHome          Category = "Home"
	CategoryHealthcare    Category = "Healthcare"
	CategoryEntertainment Category = "Entertainment"
	CategoryNotSelected   Category = "Not Selected"
)

var Categories = []Category{
	CategoryFood,
	CategoryTravel,
	CategoryEMI,
	CategoryShopping,
	CategoryHome,
	CategoryHealthcare,
	CategoryEntertainment,
}

func ParseCategory(s string) (Category, error) {
	if s == "" || s == string(CategoryNotSelected) {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Please select a category!",
		}
	}
	for _, c := range Categories {
		if s == string(c) {
			return c, nil
		}
	}
	return "", appErrors.ErrorResponse{
		Code:    appErrors.ErrInvalidInput,
		Message: fmt.Sprintf("Unknown category: '%s'", s),
	}
}

// REQUESTS START:

type ExpenseRequest struct {
	Category string
	Amount   float64
	Date     string
}

// REQUESTS END:

// MODELS:

type ExpenseEntry struct {
	ID       string
	Category Category
	Amount   float64
	Date     string
	AddedAt  time.Time
}

// Ledger is the session-scoped state: one salary scalar plus the ordered
// expense entries. It lives in memory only and dies with the session.
type Ledger struct {
	Salary  float64
	Entries []ExpenseEntry
}

// RESPONSES:

type CategoryTotal struct {
	Category Category
	Amount   float64
	Percent  float64
}

type Summary struct {
	Salary     float64
	TotalSpent float64
	Savings    float64
	Net        float64
	Categories []CategoryTotal
}

type PlanSlice struct {
	Label  string
	Share  float64
	Amount float64
}

type Plan struct {
	Title     string
	Breakdown []PlanSlice
}

type Recommendation struct {
	Plans       []Plan
	Recommended int
	Note        string
}
