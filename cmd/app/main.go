package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"ordersapi/cmd"
	httpin "ordersapi/internal/adapters/in/http"
	"ordersapi/internal/adapters/in/http/middleware"
	"ordersapi/internal/adapters/out/postgres"
	"ordersapi/internal/adapters/out/shipping"
	"ordersapi/internal/platform/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "orders api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine: the environment may already carry the settings.
	_ = godotenv.Load(".env")

	configs, err := getConfigs()
	if err != nil {
		return err
	}

	logger, err := logging.New(configs.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return startWebServer(ctx, &app, configs, logger)
}

func getConfigs() (cmd.Config, error) {
	var problems []error

	config := cmd.Config{
		HTTPPort:   envString("HTTP_PORT", "8080"),
		DBHost:     envString("DB_HOST", "localhost"),
		DBPort:     envString("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envString("DB_SSLMODE", "disable"),
		LogLevel:   envString("LOG_LEVEL", "info"),

		ShippingProviderSystemName: envString("SHIPPING_PROVIDER", shipping.FixedRateSystemName),
		ShippingRates:              envString("SHIPPING_RATES", "Ground:5.00,Next Day Air:20.00"),
		PaymentMethods:             envList("PAYMENT_METHODS", "Payments.CheckMoneyOrder"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: os.Getenv("JWT_ISSUER"),

		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		MailFromAddress: os.Getenv("MAIL_FROM_ADDRESS"),
		MailFromName:    envString("MAIL_FROM_NAME", "Orders"),

		CartCleanupSchedule: envString("CART_CLEANUP_SCHEDULE", "0 3 * * *"),
	}

	var err error
	if config.DefaultStoreID, err = envInt("DEFAULT_STORE_ID", 1); err != nil {
		problems = append(problems, err)
	}
	if config.RejectUnmatchedShippingOption, err = envBool("REJECT_UNMATCHED_SHIPPING_OPTION", false); err != nil {
		problems = append(problems, err)
	}
	if config.CartTTL, err = envDuration("CART_TTL", 30*24*time.Hour); err != nil {
		problems = append(problems, err)
	}

	return config, errors.Join(problems...)
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func envList(key, fallback string) []string {
	var values []string
	for _, value := range strings.Split(envString(key, fallback), ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values
}

func envInt(key string, fallback int) (int, error) {
	raw := envString(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := envString(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := envString(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *zap.Logger) error {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpin.HTTPErrorHandler(logger)
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger.Named("access")))

	doc, err := httpin.LoadOpenAPI()
	if err != nil {
		return err
	}
	validator, err := httpin.RequestValidator(doc, logger.Named("openapi"))
	if err != nil {
		return err
	}

	app.CreateServer().Register(e,
		middleware.JWTAuth(middleware.JWTConfig{
			Secret: configs.JWTSecret,
			Issuer: configs.JWTIssuer,
		}),
		validator,
	)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("port", configs.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
