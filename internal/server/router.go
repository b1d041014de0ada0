package server

import (
	"net/http"
	"time"

	"orderdesk/internal/server/handlers"
	"orderdesk/internal/server/ratelimit"
	"orderdesk/internal/storage"
)

// Config carries the router's configuration.
type Config struct {
	// WriteRatePerMin limits mutating requests per client IP per minute.
	// 0 disables limiting.
	WriteRatePerMin int
	// MaxUploadBytes limits the size of an uploaded spreadsheet.
	MaxUploadBytes int64
	// Version is the reported build version.
	Version string
}

// NewRouter creates and configures the HTTP router.
func NewRouter(svc *storage.OrderService, cfg *Config) http.Handler {
	mux := http.NewServeMux()

	orderHandler := handlers.NewOrderHandler(svc)
	uploadHandler := handlers.NewUploadHandler(cfg.MaxUploadBytes)
	healthHandler := handlers.NewHealthHandler(cfg.Version)

	mux.Handle("GET /api/health", Wrap(healthHandler.Health))

	mux.Handle("GET /api/orders", Wrap(orderHandler.List))
	mux.Handle("POST /api/orders", Wrap(orderHandler.Create))
	mux.Handle("PUT /api/orders/{index}", Wrap(orderHandler.Update))
	mux.Handle("DELETE /api/orders/{index}", Wrap(orderHandler.Delete))
	mux.Handle("DELETE /api/orders/number/{number}", Wrap(orderHandler.DeleteByNumber))
	mux.Handle("POST /api/orders/delete-batch", Wrap(orderHandler.DeleteBatch))

	mux.HandleFunc("GET /api/orders/export", orderHandler.Export)
	mux.Handle("POST /api/orders/import", Wrap(orderHandler.Import))
	mux.HandleFunc("POST /api/orders/upload", uploadHandler.Upload)

	var limiter *ratelimit.Limiter
	if cfg.WriteRatePerMin > 0 {
		limiter = ratelimit.NewLimiter(cfg.WriteRatePerMin, time.Minute, cfg.WriteRatePerMin)
	}
	return withCORS(withWriteRateLimit(limiter, mux))
}
