package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"railmate/config"
	"railmate/database"
	"railmate/handlers"
	"railmate/middleware"
	"railmate/services"
)

var cli struct {
	Config string `help:"Path to the YAML configuration file." default:"config.yaml"`
	Port   string `help:"Override the listen port."`
	Seed   bool   `help:"Load demo stations, trains and an administrator account."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("railmate"),
		kong.Description("Train ticket booking service."))

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	if cli.Port != "" {
		cfg.ServerPort = cli.Port
	}

	logrus.Info("starting railmate")

	// A dead database at boot is not fatal: the pool reconnects lazily and
	// requests fail individually until it comes back.
	if err := database.Connect(cfg, logrus.StandardLogger()); err != nil {
		logrus.WithError(err).Warn("database unreachable, continuing in degraded mode")
	} else {
		if err := database.RunMigrations(database.GetDB()); err != nil {
			logrus.WithError(err).Warn("migration check failed")
		}
		if cli.Seed {
			if err := database.Seed(database.GetDB(), logrus.StandardLogger()); err != nil {
				logrus.WithError(err).Warn("seeding failed")
			}
		}
	}
	defer database.Close()

	services.Init(cfg)

	router := setupRouter(cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logrus.WithField("port", cfg.ServerPort).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("forced shutdown")
	}

	logrus.Info("server exited")
}

func setupRouter(cfg *config.Config) *gin.Engine {
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "railmate",
			"status":  "running",
		})
	})

	api := router.Group("/api")
	{
		api.GET("/stations", handlers.GetStations)
		api.GET("/stations/:id", handlers.GetStation)

		api.GET("/trains/search", handlers.SearchTrains)
		api.GET("/trains/:id", handlers.GetTrain)

		api.POST("/auth/register", handlers.Register)
		api.POST("/auth/login", handlers.Login)
	}

	authorized := api.Group("")
	authorized.Use(middleware.Auth(cfg.JWTSecret))
	{
		authorized.GET("/auth/me", handlers.GetProfile)
		authorized.PUT("/auth/me", handlers.UpdateProfile)
		authorized.DELETE("/auth/me", handlers.DeleteAccount)

		authorized.POST("/bookings", handlers.CreateBooking)
		authorized.GET("/bookings/user", handlers.GetUserBookings)
		authorized.GET("/bookings/:id", handlers.GetBooking)
		authorized.PUT("/bookings/:id/cancel", handlers.CancelBooking)

		authorized.POST("/payments", handlers.CreatePayment)
		authorized.GET("/payments/booking/:bookingId", handlers.GetPaymentByBooking)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.Auth(cfg.JWTSecret), middleware.AdminRequired())
	{
		admin.GET("/dashboard/stats", handlers.GetDashboardStats)
		admin.GET("/bookings", handlers.AdminGetBookings)
		admin.GET("/users", handlers.AdminGetUsers)
		admin.GET("/trains", handlers.AdminGetTrains)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "route not found"})
	})

	return router
}
