package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"buddyremind/internal/config"
	"buddyremind/internal/handler"
	"buddyremind/internal/logger"
	"buddyremind/internal/metrics"
	"buddyremind/internal/middleware"
	"buddyremind/internal/model"
	"buddyremind/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	godotenv.Load()

	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	middleware.JWTSecret = []byte(cfg.JWT.Secret)
	if cfg.JWT.ExpiryDays > 0 {
		middleware.TokenTTL = time.Duration(cfg.JWT.ExpiryDays) * 24 * time.Hour
	}

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := migrate(db); err != nil {
		slog.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	mailer := service.NewMailer(cfg.SMTP)
	if !cfg.MailEnabled() {
		slog.Warn("smtp not configured, outbound mail disabled")
	}

	statsSvc := service.NewStatsService(db)
	authSvc := service.NewAuthService(db, statsSvc, mailer, cfg.SMTP)
	reminderSvc := service.NewReminderService(db, statsSvc)
	buddySvc := service.NewBuddyService(db)

	authH := handler.NewAuthHandler(authSvc)
	reminderH := handler.NewReminderHandler(reminderSvc)
	buddyH := handler.NewBuddyHandler(buddySvc)
	userH := handler.NewUserHandler(statsSvc)

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-New-Token", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := r.Group("/api/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.GET("/verify-email/:token", authH.VerifyEmail)
	auth.POST("/forgot-password", authH.ForgotPassword)
	auth.PUT("/reset-password/:token", authH.ResetPassword)
	auth.GET("/logout", middleware.JWTAuth(), authH.Logout)
	auth.GET("/me", middleware.JWTAuth(), authH.Me)
	auth.PUT("/update-details", middleware.JWTAuth(), authH.UpdateDetails)
	auth.PUT("/update-password", middleware.JWTAuth(), authH.UpdatePassword)

	api := r.Group("/api", middleware.JWTAuth())
	api.GET("/reminders", reminderH.List)
	api.POST("/reminders", reminderH.Create)
	api.GET("/reminders/analytics", reminderH.Analytics)
	api.GET("/reminders/:id", reminderH.Get)
	api.PUT("/reminders/:id", reminderH.Update)
	api.DELETE("/reminders/:id", reminderH.Delete)
	api.PUT("/reminders/:id/complete", reminderH.ToggleComplete)
	api.PUT("/reminders/:id/snooze", reminderH.Snooze)

	api.GET("/buddies", buddyH.List)
	api.GET("/buddies/default", buddyH.Default)
	api.GET("/buddies/:id", buddyH.Get)
	api.GET("/buddies/:id/message", buddyH.Message)
	api.POST("/buddies", buddyH.Create)

	api.GET("/users/stats", userH.Stats)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Buddy{},
		&model.Reminder{},
		&model.UserStats{},
	)
}
