package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	SMTP     SMTPConfig
	Company  CompanyConfig
	Signer   SignerConfig
	Invoice  InvoiceConfig
	Features FeatureFlags
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	InvoicesTopic string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// CompanyConfig is the letterhead identity rendered on every invoice.
// Missing values render as blanks; they are not validated at startup.
type CompanyConfig struct {
	Name       string
	Address    string
	Email      string
	WhatsApp   string
	OwnerEmail string
}

// SignerConfig is the static digital-signature block on the invoice.
type SignerConfig struct {
	Name   string
	Mobile string
}

type InvoiceConfig struct {
	// Prefix is the business code in front of generated invoice numbers.
	Prefix string
	// TaxRate is a decimal string applied to the subtotal, e.g. "0.18".
	TaxRate string
	// ServiceLabel is the fixed service column value in persisted rows.
	ServiceLabel string
	// LogoPath points at an optional letterhead image; a missing file is
	// tolerated and simply not drawn.
	LogoPath string
}

type FeatureFlags struct {
	EnableInvoiceCaching bool
	EnableInvoiceEvents  bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "invoices"),
			Password:     getEnvString("DB_PASSWORD", "invoices"),
			Name:         getEnvString("DB_NAME", "invoices"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvStringSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			InvoicesTopic: getEnvString("KAFKA_INVOICES_TOPIC", "invoices"),
		},
		SMTP: SMTPConfig{
			Host:     getEnvString("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnvString("SMTP_EMAIL", ""),
			Password: getEnvString("SMTP_PASSWORD", ""),
		},
		Company: CompanyConfig{
			Name:       getEnvString("COMPANY_NAME", ""),
			Address:    getEnvString("COMPANY_ADDRESS", ""),
			Email:      getEnvString("COMPANY_EMAIL", ""),
			WhatsApp:   getEnvString("COMPANY_WHATSAPP", ""),
			OwnerEmail: getEnvString("OWNER_EMAIL", ""),
		},
		Signer: SignerConfig{
			Name:   getEnvString("SIGN_NAME", ""),
			Mobile: getEnvString("SIGN_MOBILE", ""),
		},
		Invoice: InvoiceConfig{
			Prefix:       getEnvString("INVOICE_PREFIX", "COG"),
			TaxRate:      getEnvString("TAX_RATE", "0.18"),
			ServiceLabel: getEnvString("INVOICE_SERVICE_LABEL", "Multiple Items"),
			LogoPath:     getEnvString("INVOICE_LOGO_PATH", "static/logo.png"),
		},
		Features: FeatureFlags{
			EnableInvoiceCaching: getEnvBool("ENABLE_INVOICE_CACHING", false),
			EnableInvoiceEvents:  getEnvBool("ENABLE_INVOICE_EVENTS", false),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
