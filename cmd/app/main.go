package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"takeout/cmd"
	httpin "takeout/internal/adapters/in/http"
	"takeout/internal/adapters/out/postgres/addressrepo"
	"takeout/internal/adapters/out/postgres/cartrepo"
	"takeout/internal/adapters/out/postgres/orderrepo"
	"takeout/internal/adapters/out/postgres/profilerepo"
	"takeout/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultPaymentTimeout = 15 * time.Minute

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(
		app.CreateCancelTimedOutOrdersCommandHandler(),
		paymentTimeout(configs),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		PaymentPrepayURL:      goDotEnvVariable("PAYMENT_PREPAY_URL"),
		PaymentRefundURL:      goDotEnvVariable("PAYMENT_REFUND_URL"),
		PaymentTimeoutMinutes: goDotEnvVariable("PAYMENT_TIMEOUT_MINUTES"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func paymentTimeout(configs cmd.Config) time.Duration {
	minutes, err := strconv.Atoi(configs.PaymentTimeoutMinutes)
	if err != nil || minutes <= 0 {
		return defaultPaymentTimeout
	}
	return time.Duration(minutes) * time.Minute
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&cartrepo.CartEntryDTO{},
		&addressrepo.AddressDTO{},
		&profilerepo.ProfileDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateSubmitOrderCommandHandler(),
		app.CreatePayOrderCommandHandler(),
		app.CreateConfirmPaymentCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateConfirmOrderCommandHandler(),
		app.CreateRejectOrderCommandHandler(),
		app.CreateDispatchOrderCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetUserOrdersQueryHandler(),
		app.CreateGetOrderStatisticsQueryHandler(),
		app.NotificationHub().HandleConnection,
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
