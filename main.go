package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/0xcafe-io/iz"
	"github.com/mindmoney/mindmoney/api"
	"github.com/mindmoney/mindmoney/internal/budget"
	"github.com/mindmoney/mindmoney/internal/storage"
	"github.com/mindmoney/mindmoney/logging"
	"github.com/rs/cors"
)

var mm budget.MindMoney // Global

var corsConf = cors.New(cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	AllowedHeaders:   []string{"Authorization", "Content-Type"},
	AllowCredentials: true,
})

func main() {
	if err := logging.Init("debug"); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return
	}

	logging.Logger.Info("application starting...")

	db, err := storage.Init()
	if err != nil {
		logging.Logger.Errorf("failed to initialize database: %v", err)
		return
	}

	storageInstance := storage.NewMySQLStorage(db)

	mm = budget.NewMindMoney(storageInstance)

	server := http.NewServeMux()
	api := api.NewApi(&mm)

	// AUTH ENDPOINTS.
	server.HandleFunc("POST /api/signup", iz.Bind(api.SignupHandler))                  // Register User
	server.HandleFunc("POST /api/login", iz.Bind(api.LoginHandler))                    // Login User
	server.HandleFunc("POST /api/forgot-password", iz.Bind(api.ForgotPasswordHandler)) // Verify email before reset
	server.HandleFunc("POST /api/reset-password", iz.Bind(api.ResetPasswordHandler))   // Replace password hash

	// LEDGER ENDPOINTS.
	server.HandleFunc("PUT /api/ledger/salary", iz.Bind(api.SetSalaryHandler))              // Set session salary
	server.HandleFunc("POST /api/ledger/expense", iz.Bind(api.AddExpenseHandler))           // Add expense entry
	server.HandleFunc("GET /api/ledger/expenses", iz.Bind(api.ListExpensesHandler))         // List expense entries
	server.HandleFunc("DELETE /api/ledger/expense/{id}", iz.Bind(api.DeleteExpenseHandler)) // Delete expense entry
	server.HandleFunc("GET /api/ledger/summary", iz.Bind(api.GetSummaryHandler))            // Totals, savings, breakdown
	server.HandleFunc("GET /api/ledger/plan", iz.Bind(api.GetPlanHandler))                  // Recommended budget plans

	// QUIZ ENDPOINTS.
	server.HandleFunc("GET /api/quiz/questions", iz.Bind(api.GetQuizQuestionsHandler)) // Stress questionnaire
	server.HandleFunc("POST /api/quiz/submit", iz.Bind(api.SubmitQuizHandler))         // Score answers

	port := os.Getenv("APP_PORT")
	if port == "" {
		logging.Logger.Info("APP_PORT environment variable not set, using default port 5000")
		port = "5000"
	}
	fmt.Println("Starting server on port: ", port)
	handlerWithCors := corsConf.Handler(server)
	if err := http.ListenAndServe(":"+port, handlerWithCors); err != nil {
		logging.Logger.Errorf("failed to start server: %v", err)
		return
	}
}
