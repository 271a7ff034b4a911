package api

import (
	"errors"

	appErrors "github.com/mindmoney/mindmoney/customErrors"
	"github.com/mindmoney/mindmoney/internal/budget"
	"github.com/mindmoney/mindmoney/internal/quiz"
)

// REQUESTS START:

type SignupRequest struct {
	Email    string `json:"email"`
	UserName string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SalaryRequest struct {
	Salary float64 `json:"salary"`
}

type ExpenseRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}

type QuizSubmitRequest struct {
	Answers []int `json:"answers"`
}

// REQUESTS END:

// RESPONSES:

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	UserName string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type ExpenseItem struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}

type ExpenseCreatedResponse struct {
	Message string      `json:"message"`
	Expense ExpenseItem `json:"expense"`
}

type ListExpensesResponse struct {
	Expenses []ExpenseItem `json:"expenses"`
}

type CategoryTotalItem struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

type SummaryResponse struct {
	Salary     float64             `json:"salary"`
	TotalSpent float64             `json:"total_spent"`
	Savings    float64             `json:"savings"`
	Net        float64             `json:"net"`
	Categories []CategoryTotalItem `json:"categories"`
}

type PlanSliceItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type PlanItem struct {
	Title     string          `json:"title"`
	Breakdown []PlanSliceItem `json:"breakdown"`
}

type PlanResponse struct {
	Plans       []PlanItem `json:"plans"`
	Recommended int        `json:"recommended"`
	Note        string     `json:"note"`
}

type QuestionItem struct {
	Category string   `json:"category"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
}

type ListQuestionsResponse struct {
	Questions []QuestionItem `json:"questions"`
}

type QuizResultResponse struct {
	Level        string   `json:"level"`
	Tone         string   `json:"tone"`
	Message      string   `json:"message"`
	Tips         []string `json:"tips"`
	Scores       []int    `json:"scores"`
	Total        int      `json:"total"`
	Average      float64  `json:"average"`
	NeedsSupport bool     `json:"needs_support"`
}

// The original server answered 400 for every domain failure (even
// unknown email) and 500 for the rest; that contract is kept, with 401
// reserved for the session check.
func httpStatusFromError(err error) int {
	var appErr appErrors.ErrorResponse
	if !errors.As(err, &appErr) {
		return 500
	}
	switch appErr.Code {
	case appErrors.ErrAuth:
		return 401 // unauthorized
	case appErrors.ErrNotFound, appErrors.ErrInvalidInput, appErrors.ErrConflict:
		return 400 // bad request
	default:
		return 500 // internal error
	}
}

func ExpenseToHttp(entry budget.ExpenseEntry) ExpenseItem {
	return ExpenseItem{
		ID:       entry.ID,
		Category: string(entry.Category),
		Amount:   entry.Amount,
		Date:     entry.Date,
	}
}

func SummaryToHttp(summary budget.Summary) SummaryResponse {
	categories := make([]CategoryTotalItem, 0, len(summary.Categories))
	for _, total := range summary.Categories {
		categories = append(categories, CategoryTotalItem{
			Category: string(total.Category),
			Amount:   total.Amount,
			Percent:  total.Percent,
		})
	}
	return SummaryResponse{
		Salary:     summary.Salary,
		TotalSpent: summary.TotalSpent,
		Savings:    summary.Savings,
		Net:        summary.Net,
		Categories: categories,
	}
}

func RecommendationToHttp(recommendation budget.Recommendation) PlanResponse {
	plans := make([]PlanItem, 0, len(recommendation.Plans))
	for _, plan := range recommendation.Plans {
		breakdown := make([]PlanSliceItem, 0, len(plan.Breakdown))
		for _, slice := range plan.Breakdown {
			breakdown = append(breakdown, PlanSliceItem{
				Label:  slice.Label,
				Amount: slice.Amount,
			})
		}
		plans = append(plans, PlanItem{Title: plan.Title, Breakdown: breakdown})
	}
	return PlanResponse{
		Plans:       plans,
		Recommended: recommendation.Recommended,
		Note:        recommendation.Note,
	}
}

func QuizResultToHttp(result quiz.Result) QuizResultResponse {
	return QuizResultResponse{
		Level:        result.Level.Name,
		Tone:         result.Level.Tone,
		Message:      result.Level.Message,
		Tips:         result.Level.Tips,
		Scores:       result.Scores,
		Total:        result.Total,
		Average:      result.Average,
		NeedsSupport: result.NeedsSupport,
	}
}
