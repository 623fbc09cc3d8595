package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/auth"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/config"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/donations"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/emergency"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/httputil"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/jobs"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/logging"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/medical"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/migrate"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func healthHandler(d *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := d.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			logging.FromContext(r.Context()).WithError(err).Warn("health check failed")
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	logging.Setup(cfg.LogLevel)

	d, err := db.Connect(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	migrate.All(d)

	profiles := &medical.ProfileHandler{Store: medical.NewGormProfileStore(d)}
	authStore := auth.NewGormStore(d, medical.CreateDefaultProfile)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	sessions := auth.SessionInfo{Store: authStore}

	requireAuth := middleware.AuthMiddleware(tokens, sessions)
	requireAdmin := middleware.AdminMiddleware(sessions)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	metrics := middleware.NewMetrics()

	medicalHandlers := medical.NewHandlers(profiles.Store,
		medical.NewAllergyStore(d), medical.NewMedicationStore(d), medical.NewConditionStore(d))
	centers := donations.NewGormCenterStore(d)
	donationHandlers := donations.NewHandlers(centers, donations.NewDonationStore(d), donations.NewAppointmentStore(d))
	requests := emergency.NewGormRequestStore(d)
	emergencyHandlers := emergency.NewHandlers(requests, emergency.NewResponseStore(d), time.Now)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)
	r.Use(metrics.Instrument)
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))

	r.Get("/", RootHandler)
	r.Get("/health", healthHandler(d))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler(d))
		r.Mount("/auth", auth.SetupRoutes(auth.NewHandler(authStore, tokens, profiles.Load), requireAuth, limiter))
		medical.SetupRoutes(r, medicalHandlers, requireAuth)
		donations.SetupRoutes(r, donationHandlers, requireAuth, requireAdmin)
		emergency.SetupRoutes(r, emergencyHandlers, requireAuth, requireAdmin)
	})

	scheduler, err := jobs.Start(&jobs.Jobs{Requests: requests, Sessions: authStore, Limiter: limiter}, cfg.ExpirySweepSchedule)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to start scheduler")
	}

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithField("port", cfg.Port).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")

	<-scheduler.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
}
