package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/amsaid/makhzan/internal/http/backup"
	"github.com/amsaid/makhzan/internal/http/importcsv"
	"github.com/amsaid/makhzan/internal/http/items"
	"github.com/amsaid/makhzan/internal/http/permissions"
	"github.com/amsaid/makhzan/internal/http/reports"
	"github.com/amsaid/makhzan/internal/http/warehouses"
)

func New(
	itemsV1 *items.Handler,
	warehousesV1 *warehouses.Handler,
	permissionsV1 *permissions.Handler,
	reportsV1 *reports.Handler,
	importV1 *importcsv.Handler,
	backupV1 *backup.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			itemsV1.Routes(r)
		})

		r.Route("/warehouses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			warehousesV1.Routes(r)
		})

		r.Route("/permissions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			permissionsV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/backup", backupV1.Routes)
	})

	return router
}
