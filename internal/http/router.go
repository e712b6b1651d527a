package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nkhandelwal/hisab/internal/auth"
	accountHandler "github.com/nkhandelwal/hisab/internal/http/account"
	"github.com/nkhandelwal/hisab/internal/http/export"
	"github.com/nkhandelwal/hisab/internal/http/importcsv"
	"github.com/nkhandelwal/hisab/internal/http/transaction"
)

func New(
	jwtSecret string,
	accountsV1 *accountHandler.Handler,
	transactionsV1 *transaction.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/accounts", func(r chi.Router) {
			accountsV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionsV1.Routes(r)
		})

		r.Route("/import", func(r chi.Router) {
			importV1.Routes(r)
		})

		r.Route("/export", func(r chi.Router) {
			exportV1.Routes(r)
		})
	})

	return router
}
