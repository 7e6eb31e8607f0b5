package router

import (
	"database/sql"

	"adv-service/internal/delivery/handler"
	"adv-service/internal/infrastructure/metrics"
	"adv-service/internal/scope"
	"adv-service/internal/service"
	"adv-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// SetupAdvRoutes mounts the advertisement endpoints. Every request under
// /adv holds one storage scope for its full duration; the middleware opens
// it before routing and releases it on every exit path.
func SetupAdvRoutes(advRouter *chi.Mux, db *sql.DB, advService service.AdvService, loggers *logger.Loggers, metrics *metrics.HandlerMetrics) {
	advHandler := handler.NewAdvHandler(advService, loggers, metrics)

	advRouter.Group(func(r chi.Router) {
		r.Use(scope.Middleware(db, loggers))

		r.Post("/adv/", advHandler.CreateAdv)
		r.Get("/adv/{id}/", advHandler.GetAdvByID)
		r.Patch("/adv/{id}/", advHandler.UpdateAdv)
		r.Delete("/adv/{id}/", advHandler.DeleteAdv)
	})
}
