package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/0xcafe-io/iz"
	"github.com/google/uuid"
	appErrors "github.com/mindmoney/mindmoney/customErrors"
	"github.com/mindmoney/mindmoney/internal/auth"
	"github.com/mindmoney/mindmoney/internal/budget"
	"github.com/mindmoney/mindmoney/internal/contextutil"
	"github.com/mindmoney/mindmoney/internal/quiz"
	"github.com/mindmoney/mindmoney/logging"
)

type Api struct {
	Service *budget.MindMoney
}

func NewApi(service *budget.MindMoney) *Api {
	return &Api{
		Service: service,
	}
}

func requestContext(r *iz.Request) context.Context {
	return contextutil.WithTraceID(r.Context(), uuid.New().String())
}

func respondError(err error) iz.Responder {
	var appErr appErrors.ErrorResponse
	if errors.As(err, &appErr) {
		return iz.Respond().Status(httpStatusFromError(err)).JSON(MessageResponse{Message: appErr.Message})
	}
	return iz.Respond().Status(500).JSON(MessageResponse{Message: "Server error"})
}

// authorize resolves the Authorization token to a user id. Ledger and
// quiz endpoints refuse to run without it.
func (api *Api) authorize(ctx context.Context, r *iz.Request) (string, error) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Authorization header is required.",
		}
	}

	userId, err := api.Service.CheckSession(ctx, token)
	if err != nil {
		return "", err
	}
	return userId, nil
}

func (api *Api) SignupHandler(r *iz.Request) iz.Responder {
	ctx := requestContext(r)

	var signupReq SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&signupReq); err != nil {
		msg := fmt.Sprintf("invalid request body: %s", err.Error())
		return iz.Respond().Status(400).JSON(MessageResponse{Message: msg})
	}

	newUser := auth.NewUser{
		Email:         signupReq.Email,
		UserName:      signupReq.UserName,
		PasswordPlain: signupReq.Password,
	}

	if err := api.Service.SaveUser(ctx, newUser); err != nil {
		return respondError(err)
	}

	return iz.Respond().Status(201).JSON(MessageResponse{Message: "User registered successfully!"})
}

func (api *Api) LoginHandler(r *iz.Request) iz.Responder {
	ctx := requestContext(r)

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		return iz.Respond().Status(400).JSON(MessageResponse{Message: "invalid request body"})
	}

	credentials := auth.UserCredentialsPure{
		Email:         loginReq.Email,
		PasswordPlain: loginReq.Password,
	}

	user, token, err := api.Service.Login(ctx, credentials)
	if err != nil {
		return respondError(err)
	}

	return iz.Respond().Status(200).JSON(LoginResponse{
		Message:  "Login successful",
		UserName: user.UserName,
		Email:    user.Email,
		Token:    token,
	})
}

func (api *Api) ForgotPasswordHandler(r *iz.Request) iz.Responder {
	ctx := requestContext(r)

	var forgotReq ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&forgotReq); err != nil {
		return iz.Respond().Status(400).JSON(MessageResponse{Message: "invalid request body"})
	}

	if err := api.Service.VerifyEmail(ctx, forgotReq.Email); err != nil {
		return respondError(err)
	}

	return iz.Respond().Status(200).JSON(MessageResponse{Message: "Email verified. Proceed to reset."})
}

func (api *Api) ResetPasswordHandler(r *iz.Request) iz.Responder {
	ctx := requestContext(r)

	var resetReq ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&resetReq); err != nil {
		return iz.Respond().Status(400).JSON(MessageResponse{Message: "invalid request body"})
	}

	if err := api.Service.ResetPassword(ctx, resetReq.Email, resetReq.Password); err != nil {
		return respondError(err)
	}

	return iz.Respond().Status(200).JSON(MessageResponse{Message: "Password reset successful!"})
}

func (api *Api) SetSalaryHandler(r *iz.Request) iz.Responder {
	ctx := requestContext(r)

	userId, err := api.authorize(ctx, r)
	if err != nil {
		return respondError(err)
	}

	var salaryReq SalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&salaryReq); err != nil {
		return iz.Respond().Status(400).JSON(MessageResponse{Message: "invalid request body"})
	}

	if err := api.Service.SetSalary(userId, salaryReq.Salary); err != nil {
		return respondError(err)
	}

	return iz.Respond().Status(200).JSON(MessageResponse{Message: "Salary updated."})
}

func (api *Api) AddExpenseHandler(r *iz.Request) iz.Responder {
	ctx := requestContext(r)

	userId, err := api.authorize(ctx, r)
	if err != nil {
		return respondError(err)
	}

	var expenseReq ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&expenseReq); err != nil {
		logging.Logger.Errorf("Failed to parse add expense request: %v", err)
		return iz.Respond().Status(400).JSON(MessageResponse{Message: "invalid request body"})
	}

	entry, err := api.Service.AddExpense(userId, budget.ExpenseRequest{
		Category: expenseReq.Category,
		Amount:   expenseReq.Amount,
		Date:     expenseReq.Date,
	})
	if err != nil {
		return respondError(err)
	}

	return iz.Respond().Status(201).JSON(ExpenseCreatedResponse{
		Message: "Expense added successfully!",
		Expense: ExpenseToHttp(entry),
	})
}

func (api *Api) ListExpensesHandler(r *iz.Request) iz.Responder {
	ctx := requestContext(r)

	userId, err := api.authorize(ctx, r)
	if err != nil {
		return respondError(err)
	}

	entries := api.Service.Expenses(userId)
	expenses := make([]ExpenseItem, 0, len(entries))
	for _, entry := range entries {
		expenses = append(expenses, ExpenseToHttp(entry))
	}

	return iz.Respond().Status(200).JSON(ListExpensesResponse{Expenses: expenses})
}

func (api *Api) DeleteExpenseHandler(r *iz.Request) iz.Responder {
	ctx := requestContext(r)

	userId, err := api.authorize(ctx, r)
	if err != nil {
		return respondError(err)
	}

	entryId := r.PathValue("id")
	if err := api.Service.DeleteExpense(userId, entryId); err != nil {
		return respondError(err)
	}

	return iz.Respond().Status(200).JSON(MessageResponse{Message: "Expense deleted."})
}

func (api *Api) GetSummaryHandler(r *iz.Request) iz.Responder {
	ctx := requestContext(r)

	userId, err := api.authorize(ctx, r)
	if err != nil {
		return respondError(err)
	}

	return iz.Respond().Status(200).JSON(SummaryToHttp(api.Service.Summary(userId)))
}

func (api *Api) GetPlanHandler(r *iz.Request) iz.Responder {
	ctx := requestContext(r)

	userId, err := api.authorize(ctx, r)
	if err != nil {
		return respondError(err)
	}

	recommendation, err := api.Service.RecommendPlan(userId)
	if err != nil {
		return respondError(err)
	}

	return iz.Respond().Status(200).JSON(RecommendationToHttp(recommendation))
}

func (api *Api) GetQuizQuestionsHandler(r *iz.Request) iz.Responder {
	items := make([]QuestionItem, 0, quiz.QuestionCount)
	for _, question := range quiz.Questions() {
		items = append(items, QuestionItem{
			Category: question.Category,
			Text:     question.Text,
			Options:  question.Options,
		})
	}
	return iz.Respond().Status(200).JSON(ListQuestionsResponse{Questions: items})
}

func (api *Api) SubmitQuizHandler(r *iz.Request) iz.Responder {
	ctx := requestContext(r)

	if _, err := api.authorize(ctx, r); err != nil {
		return respondError(err)
	}

	var submitReq QuizSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		return iz.Respond().Status(400).JSON(MessageResponse{Message: "invalid request body"})
	}

	result, err := quiz.Score(submitReq.Answers)
	if err != nil {
		return respondError(err)
	}

	return iz.Respond().Status(200).JSON(QuizResultToHttp(result))
}
