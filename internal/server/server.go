// Package server wires the feature packages into one HTTP handler.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fkhayef/splitledger/docs"
	"github.com/fkhayef/splitledger/internal/auth"
	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/internal/grouplock"
	"github.com/fkhayef/splitledger/internal/notification"
	"github.com/fkhayef/splitledger/internal/settlement"
	"github.com/fkhayef/splitledger/internal/user"
	"github.com/fkhayef/splitledger/pkg/metrics"
	mw "github.com/fkhayef/splitledger/pkg/middleware"
	"github.com/fkhayef/splitledger/pkg/response"
)

// Options tunes the HTTP layer
type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// New builds the API router backed by db. Balances are cached in cache;
// pass cache.Nop{} to always recompute them.
func New(db *database.DB, tokens *auth.TokenManager, cache settlement.BalanceCache, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	locks := grouplock.New()

	// Split Strategy Factory (Factory Pattern)
	splitFactory := split.NewSplitStrategyFactory()

	// Notification feature
	notificationService := notification.NewService(notification.NewRepository(db))
	notificationHandler := notification.NewHandler(notificationService)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, tokens)
	userHandler := user.NewHandler(userService)

	// Expense and settlement stores are shared with the group feature
	groupRepo := group.NewRepository(db)
	expenseRepo := expense.NewRepository(db)

	// Settlement feature
	settlementService := settlement.NewService(settlement.NewRepository(db), groupRepo, expenseRepo, cache, notificationService, locks)
	settlementHandler := settlement.NewHandler(settlementService)

	// Group feature
	groupService := group.NewService(groupRepo, userRepo, settlementService, notificationService, locks)
	groupHandler := group.NewHandler(groupService)

	// Expense feature (with split factory injected)
	expenseService := expense.NewService(expenseRepo, groupRepo, splitFactory, notificationService, locks)
	expenseHandler := expense.NewHandler(expenseService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(opts.Logger))
	r.Use(metrics.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", "error", err)
			response.Error(w, http.StatusServiceUnavailable, "UNAVAILABLE", "Database unavailable")
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Timeout(opts.RequestTimeout))

		r.Route("/auth", userHandler.AuthRoutes)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate(tokens))

			r.Route("/users", userHandler.Routes)
			r.Route("/groups", func(r chi.Router) {
				groupHandler.Routes(r)
				expenseHandler.GroupRoutes(r)
				settlementHandler.GroupRoutes(r)
			})
			r.Route("/notifications", notificationHandler.Routes)
		})
	})

	return r
}
