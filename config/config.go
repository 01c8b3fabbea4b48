package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backends de armazenamento suportados por STORAGE_BACKEND.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config armazena todas as configurações do GoEstoque.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Armazenamento dos blobs (redis | postgres | memory)
	StorageBackend string
	StoreTimeout   time.Duration

	// Banco de Dados (PostgreSQL), usado só com STORAGE_BACKEND=postgres
	DatabaseURL string
	DBTimeout   time.Duration
	AutoMigrate bool

	// Cache (Redis)
	RedisAddr string

	// Domínio
	DefaultIDRToSGD float64
	SeedCatalog     bool

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Armazenamento
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendRedis)),
		StoreTimeout:   getDurationEnv("STORE_TIMEOUT_SEC", 5) * time.Second,

		// 3. Cache (Redis)
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		// 4. Domínio
		DefaultIDRToSGD: getFloatEnv("DEFAULT_IDR_TO_SGD", 0.000085),
		SeedCatalog:     getBoolEnv("SEED_CATALOG", true),

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	switch cfg.StorageBackend {
	case BackendPostgres:
		// mustGetEnv garante que a aplicação não inicie sem credenciais de DB
		cfg.DatabaseURL = mustGetEnv("DATABASE_URL")
	case BackendRedis, BackendMemory:
		cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	default:
		log.Fatalf("❌ Erro de Configuração: STORAGE_BACKEND %q inválido (use redis, postgres ou memory).", cfg.StorageBackend)
	}
	cfg.DBTimeout = getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second
	cfg.AutoMigrate = getBoolEnv("AUTO_MIGRATE", true)

	return cfg
}

// IsDevelopment indica se o ambiente é de desenvolvimento.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getFloatEnv lê uma variável de ambiente decimal.
func getFloatEnv(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número válido. Usando padrão (%v).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getBoolEnv lê uma variável de ambiente booleana (true/false, 1/0).
func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é booleano. Usando padrão (%t).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
