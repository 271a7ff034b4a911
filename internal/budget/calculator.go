package budget

import (
	appErrors "github.com/mindmoney/mindmoney/customErrors"
)

// Pure ledger arithmetic. Everything in this file is deterministic and
// side-effect free; callers hand in a Ledger snapshot and get values back.

const (
	Epsilon = 1e-9 // For IsFloatZero() func.

	// A ledger saving at least this share of salary gets the 50-30-20
	// rule recommended, anything below it the 70-20-10 plan. The
	// boundary itself selects 50-30-20.
	planRatioThreshold = 0.20
)

func IsFloatZero(f float64) bool {
	return f >= 0 && f < Epsilon
}

func TotalSpent(entries []ExpenseEntry) float64 {
	var total float64
	for _, entry := range entries {
		total += entry.Amount
	}
	return total
}

// Savings clamps at zero; an overspent ledger reports zero savings.
func Savings(salary float64, totalSpent float64) float64 {
	if savings := salary - totalSpent; savings > 0 {
		return savings
	}
	return 0
}

// Net is the unclamped balance and goes negative on overspend. The two
// original screens disagreed on which of these to show; both values are
// computed here once and named so callers pick deliberately.
func Net(salary float64, totalSpent float64) float64 {
	return salary - totalSpent
}

func CategoryTotals(entries []ExpenseEntry) map[Category]float64 {
	totals := make(map[Category]float64, len(entries))
	for _, entry := range entries {
		totals[entry.Category] += entry.Amount
	}
	return totals
}

func BuildPlans(salary float64) []Plan {
	return []Plan{
		{
			Title: "50-30-20 Rule",
			Breakdown: []PlanSlice{
				{Label: "Needs (50%)", Share: 0.5, Amount: salary * 0.5},
				{Label: "Wants (30%)", Share: 0.3, Amount: salary * 0.3},
				{Label: "Savings (20%)", Share: 0.2, Amount: salary * 0.2},
			},
		},
		{
			Title: "70-20-10 Plan",
			Breakdown: []PlanSlice{
				{Label: "Needs (70%)", Share: 0.7, Amount: salary * 0.7},
				{Label: "Savings (20%)", Share: 0.2, Amount: salary * 0.2},
				{Label: "Wants (10%)", Share: 0.1, Amount: salary * 0.1},
			},
		},
	}
}

// RecommendPlan picks between the two allocation templates. The ratio is
// undefined for a zero salary, so that case is rejected before dividing.
func RecommendPlan(salary float64, savings float64) (Recommendation, error) {
	if salary <= 0 {
		return Recommendation{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Please enter your total salary!",
		}
	}

	plans := BuildPlans(salary)

	if savings/salary >= planRatioThreshold {
		return Recommendation{
			Plans:       plans,
			Recommended: 0,
			Note:        "You're saving at least 20% of your income. The 50-30-20 Rule helps maintain this balance while giving you flexibility.",
		}, nil
	}
	return Recommendation{
		Plans:       plans,
		Recommended: 1,
		Note:        "Your savings are below 20%. The 70-20-10 Plan emphasizes essentials and savings for stability.",
	}, nil
}
