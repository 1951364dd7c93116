package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires all routes and request middleware.
func NewRouter(emiHandler *EmiHandler, healthHandler *HealthHandler, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware(logger))

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1/emi").Subrouter()

	api.HandleFunc("/validate/{loanAccountNo}", emiHandler.ValidateAccount).Methods(http.MethodGet)
	api.HandleFunc("/calculate/{loanAccountNo}", emiHandler.CalculateEmi).Methods(http.MethodGet)
	api.HandleFunc("/payment", emiHandler.ProcessPayment).Methods(http.MethodPost)
	api.HandleFunc("/obligations", emiHandler.CreateObligation).Methods(http.MethodPost)
	api.HandleFunc("/allocations/{loanAccountNo}", emiHandler.GetAllocations).Methods(http.MethodGet)
	api.HandleFunc("/history/{loanAccountNo}", emiHandler.GetPaymentHistory).Methods(http.MethodGet)

	return router
}

// loggingMiddleware logs every request with its status and duration.
func loggingMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", recorder.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}
