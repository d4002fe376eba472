package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string

	DefaultStoreID                int
	RejectUnmatchedShippingOption bool
	ShippingProviderSystemName    string
	ShippingRates                 string
	PaymentMethods                []string

	JWTSecret string
	JWTIssuer string

	SendGridAPIKey  string
	MailFromAddress string
	MailFromName    string

	CartTTL             time.Duration
	CartCleanupSchedule string
}

// DSN is the PostgreSQL connection string in key=value form.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
