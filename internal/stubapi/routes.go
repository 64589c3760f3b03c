package stubapi

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all backend routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/portfolios", func(r chi.Router) {
			r.Get("/", h.HandleGetPortfolios)
			r.Post("/", h.HandleCreatePortfolio)

			r.Route("/{portfolioID}", func(r chi.Router) {
				r.Get("/positions", h.HandleGetPositions)

				// Risk calculations
				r.Get("/risk", h.HandleGetRiskHistory)
				r.Get("/risk/latest", h.HandleGetLatestRisk)
				r.Post("/risk/calculate", h.HandleCalculateRisk)

				// Stress scenarios
				r.Get("/scenario-results", h.HandleGetScenarioResults)
				r.Post("/scenarios/{scenarioID}/run", h.HandleRunScenario)

				// Monitoring
				r.Get("/risk-limits", h.HandleGetRiskLimits)
				r.Post("/risk-limits", h.HandleCreateRiskLimit)
				r.Get("/alerts", h.HandleGetAlerts)
			})
		})

		r.Get("/scenarios", h.HandleGetScenarios)
		r.Post("/scenarios", h.HandleCreateScenario)
		r.Patch("/risk-limits/{limitID}", h.HandleUpdateRiskLimit)
		r.Patch("/alerts/{alertID}", h.HandleUpdateAlert)
	})
}
