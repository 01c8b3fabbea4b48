package main

import (
	"context"
	"database/sql"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"goestoque/config"
	"goestoque/internal/domain"
	"goestoque/internal/pkg/cache"
	"goestoque/internal/pkg/database"
	"goestoque/internal/pkg/idgen"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/pkg/metrics"

	// Camadas para Injeção de Dependências
	"goestoque/internal/api/currency"
	"goestoque/internal/api/item"
	"goestoque/internal/api/router"
	"goestoque/internal/api/sale"
	"goestoque/internal/api/stats"
	"goestoque/internal/app"
	"goestoque/internal/persistence"
	"goestoque/internal/storage"
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoEstoque...")
	if err := godotenv.Load(); err != nil {
		// Sem .env seguimos com o ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	var appLog logger.Logger
	if cfg.IsDevelopment() {
		appLog = logger.NewConsoleLogger(cfg.LogLevel)
	} else {
		appLog = logger.NewLogger(cfg.LogLevel)
	}
	appLog.Info("Configurações carregadas.", map[string]interface{}{
		"env":     cfg.Environment,
		"storage": cfg.StorageBackend,
	})

	m := metrics.New()

	// 2. Conexão com Recursos de Infraestrutura
	store, rateClient, closer := openStore(cfg, appLog)
	defer closer.Close()

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Armazenamento -> Adaptador -> Sessão -> Handlers
	adapter := persistence.NewAdapter(store,
		persistence.WithTimeout(cfg.StoreTimeout),
		persistence.WithSeedCatalog(cfg.SeedCatalog),
		persistence.WithDefaultRate(domain.CurrencyRate{IDRToSGD: cfg.DefaultIDRToSGD}),
	)

	session := app.NewSession(adapter, appLog,
		app.WithIDGenerator(idgen.UUID{}),
		app.WithMetrics(m),
	)
	if err := session.Load(context.Background()); err != nil {
		appLog.Fatal("Falha ao carregar o estado do estoque.", err)
	}

	handlers := router.Handlers{
		Items:    item.NewHandler(session, appLog),
		Sales:    sale.NewHandler(session, appLog),
		Currency: currency.NewHandler(session, appLog),
		Stats:    stats.NewHandler(session, appLog),
	}
	appLog.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(handlers, appLog, m, router.RateLimit{
		Client:      rateClient,
		MaxRequests: cfg.RateLimitMaxRequests,
		Period:      cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor GoEstoque ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore escolhe o armazenamento dos blobs conforme STORAGE_BACKEND.
// Devolve também o cliente usado pelo rate limiter.
func openStore(cfg *config.Config, appLog logger.Logger) (storage.KeyValueStore, cache.Client, io.Closer) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := database.NewPostgresDB(cfg.DatabaseURL, cfg.DBTimeout)
		if err != nil {
			appLog.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		appLog.Info("Conexão PostgreSQL estabelecida.", nil)
		if cfg.AutoMigrate {
			migrate(db, appLog)
		}
		return storage.NewPostgresStore(db), cache.NewMemoryClient(), db

	case config.BackendMemory:
		appLog.Warn("Armazenamento em memória: os dados somem ao reiniciar.", nil)
		client := cache.NewMemoryClient()
		return storage.NewCacheStore(client), client, nopCloser{}

	default:
		client, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			appLog.Fatal("Falha ao conectar ao Redis.", err)
		}
		appLog.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
		return storage.NewCacheStore(client), client, client
	}
}

func migrate(db *sql.DB, appLog logger.Logger) {
	if err := database.Migrate(db, "up"); err != nil {
		appLog.Fatal("Falha ao aplicar as migrações.", err)
	}
	appLog.Info("Migrações aplicadas.", nil)
}
