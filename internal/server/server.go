package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/isleforge/isleforge/internal/database"
	"github.com/isleforge/isleforge/internal/handler"
	"github.com/isleforge/isleforge/internal/logger"
	"github.com/isleforge/isleforge/internal/metrics"
)

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer wires the middleware stack and the game API routes.
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, h *handler.Handler) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewAbuseDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/game/{gameID}", func(r chi.Router) {
			// Lifecycle
			r.Get("/", h.HandleGetGame)
			r.Post("/save", h.HandleSaveGame)
			r.Post("/reset", h.HandleResetGame)
			r.Delete("/", h.HandleDeleteGame)

			// Item movement and storage
			r.Route("/items", func(r chi.Router) {
				r.Post("/add", h.HandleAddItem)
				r.Post("/remove", h.HandleRemoveItem)
				r.Post("/move", h.HandleMoveItem)
				r.Post("/sell", h.HandleSellItem)
				r.Post("/sell-all", h.HandleSellAll)
			})
			r.Route("/storage", func(r chi.Router) {
				r.Post("/select-unit", h.HandleSelectStorageUnit)
				r.Post("/buy-unit", h.HandleBuyStorageUnit)
				r.Post("/upgrade", h.HandleUpgradeStorage)
			})

			// Crafting
			r.Route("/craft", func(r chi.Router) {
				r.Post("/evaluate", h.HandleEvaluateCraft)
				r.Post("/", h.HandleCraftItem)
			})

			// Equipment
			r.Route("/equipment", func(r chi.Router) {
				r.Post("/equip", h.HandleEquipItem)
				r.Post("/unequip", h.HandleUnequipItem)
			})

			// Mining
			r.Post("/mine", h.HandleMineBlock)

			// Generators and blueprints
			r.Route("/generators", func(r chi.Router) {
				r.Post("/unlock", h.HandleUnlockGenerator)
				r.Post("/upgrade", h.HandleUpgradeGenerator)
				r.Post("/set-active", h.HandleSetGeneratorActive)
			})
			r.Route("/blueprints", func(r chi.Router) {
				r.Post("/buy", h.HandleBuyBlueprint)
				r.Post("/build", h.HandleBuildBlueprint)
			})

			// Bank and vault
			r.Route("/bank", func(r chi.Router) {
				r.Post("/deposit", h.HandleBankDeposit)
				r.Post("/withdraw", h.HandleBankWithdraw)
				r.Post("/upgrade", h.HandleUpgradeBank)
			})
			r.Route("/vault", func(r chi.Router) {
				r.Post("/deposit", h.HandleVaultDeposit)
				r.Post("/withdraw", h.HandleVaultWithdraw)
				r.Post("/upgrade", h.HandleUpgradeVault)
			})

			// Farming
			r.Route("/farm", func(r chi.Router) {
				r.Post("/plant", h.HandlePlantCrop)
				r.Post("/water", h.HandleWaterCrop)
				r.Post("/harvest", h.HandleHarvestCrop)
				r.Post("/upgrade", h.HandleUpgradeFarm)
				r.Get("/slots/{slot}/progress", h.HandleGetCropProgress)
			})

			// Vendors and boosters
			r.Get("/vendors/{vendorID}/stock", h.HandleGetVendorStock)
			r.Post("/vendors/buy", h.HandleBuyFromVendor)
			r.Route("/boosters", func(r chi.Router) {
				r.Get("/", h.HandleGetBoosters)
				r.Post("/buy", h.HandleBuyBooster)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
