package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ledgerline/books-backend-go/internal/config"
	appHTTP "github.com/ledgerline/books-backend-go/internal/handler/http"
	"github.com/ledgerline/books-backend-go/internal/pkg/database"
	"github.com/ledgerline/books-backend-go/internal/pkg/jwt"
	"github.com/ledgerline/books-backend-go/internal/repository/postgresql"
	advanceService "github.com/ledgerline/books-backend-go/internal/service/advance"
	employeeService "github.com/ledgerline/books-backend-go/internal/service/employee"
	salaryService "github.com/ledgerline/books-backend-go/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	advanceRepo := postgresql.NewAdvanceRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	advanceSvc := advanceService.NewAdvanceService(advanceRepo, employeeRepo)
	salarySvc := salaryService.NewSalaryService(txManager, salaryRepo, advanceRepo, employeeRepo, logger)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	advanceHandler := appHTTP.NewAdvanceHandler(advanceSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(cfg, jwtService, advanceHandler, salaryHandler, employeeHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("starting server", slog.String("addr", addr), slog.String("env", cfg.App.Env))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
	}
}
