package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/expense-backend/internal/bootstrap"
	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/config"
	"github.com/GregMSThompson/expense-backend/internal/handlers"
	"github.com/GregMSThompson/expense-backend/internal/response"
	"github.com/GregMSThompson/expense-backend/internal/router"
	"github.com/GregMSThompson/expense-backend/internal/services"
	"github.com/GregMSThompson/expense-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	loc := cfg.Location()
	registry := categories.NewRegistry()

	// stores
	tstore := store.NewTransactionStore(bs.Firestore)
	cstore := store.NewCategoryStore(bs.Firestore)

	// services
	txserv := services.NewTransactionService(tstore, cstore, registry, loc)
	caserv := services.NewCategoryService(cstore, registry)
	suserv := services.NewSummaryService(tstore, cstore, registry, cfg.SCurveYears, loc)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.TransactionSvc = txserv
	deps.CategorySvc = caserv
	deps.SummarySvc = suserv

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("listening", "port", cfg.Port, "timezone", loc.String())
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
