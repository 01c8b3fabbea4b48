package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"goestoque/internal/api/currency"
	"goestoque/internal/api/docs"
	"goestoque/internal/api/item"
	"goestoque/internal/api/sale"
	"goestoque/internal/api/stats"
	"goestoque/internal/pkg/cache"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/pkg/metrics"
	"goestoque/internal/pkg/middleware"
)

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Items    *item.Handler
	Sales    *sale.Handler
	Currency *currency.Handler
	Stats    *stats.Handler
}

// RateLimit configura o limitador por IP. MaxRequests <= 0 desativa.
type RateLimit struct {
	Client      cache.Client
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// m pode ser nil; nesse caso /metrics não é registrado.
func NewRouter(h Handlers, log logger.Logger, m *metrics.Metrics, rl RateLimit) http.Handler {
	mux := http.NewServeMux()

	// --- 1. Infraestrutura ---
	mux.HandleFunc("GET /ping", PingHandler)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}
	mux.HandleFunc("GET /swagger/doc.json", DocHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Itens (v1) ---
	mux.HandleFunc("GET /v1/items", h.Items.ListItemsHandler)
	mux.HandleFunc("POST /v1/items", h.Items.CreateItemHandler)
	mux.HandleFunc("POST /v1/items/bulk", h.Items.BulkCreateHandler)
	mux.HandleFunc("POST /v1/items/import", h.Items.ImportSpreadsheetHandler)
	mux.HandleFunc("GET /v1/items/import/template", h.Items.TemplateHandler)
	mux.HandleFunc("GET /v1/items/{id}", h.Items.GetItemHandler)
	mux.HandleFunc("PUT /v1/items/{id}", h.Items.UpdateItemHandler)
	mux.HandleFunc("DELETE /v1/items/{id}", h.Items.DeleteItemHandler)
	mux.HandleFunc("POST /v1/items/{id}/variations", h.Items.AddVariationHandler)
	mux.HandleFunc("DELETE /v1/items/{id}/variations/{variationId}", h.Items.RemoveVariationHandler)

	// --- 3. Vendas (v1) ---
	mux.HandleFunc("GET /v1/sales", h.Sales.ListSalesHandler)
	mux.HandleFunc("POST /v1/sales", h.Sales.RecordSalesHandler)
	mux.HandleFunc("GET /v1/sales/daily", h.Sales.DailySalesHandler)
	mux.HandleFunc("GET /v1/sales/export", h.Sales.ExportHandler)

	// --- 4. Câmbio, estatísticas e dados ---
	mux.HandleFunc("GET /v1/currency", h.Currency.GetRateHandler)
	mux.HandleFunc("PUT /v1/currency", h.Currency.SetRateHandler)
	mux.HandleFunc("GET /v1/currency/convert", h.Currency.ConvertHandler)
	mux.HandleFunc("GET /v1/stats", h.Stats.StatsHandler)
	mux.HandleFunc("DELETE /v1/data", h.Stats.ClearDataHandler)

	// --- 5. Middlewares globais ---
	var handler http.Handler = mux
	if rl.Client != nil {
		handler = middleware.RateLimiter(rl.Client, rl.MaxRequests, rl.Period, log)(handler)
	}
	return middleware.RequestLogger(log, m)(handler)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// DocHandler serve o documento OpenAPI embutido.
func DocHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(docs.OpenAPI)
}
