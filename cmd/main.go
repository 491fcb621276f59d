package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	cache "github.com/krisalay/storefront-cache"
	"github.com/krisalay/storefront-cache/catalog"
	"github.com/krisalay/storefront-cache/config"
	"github.com/krisalay/storefront-cache/engine"
	"github.com/krisalay/storefront-cache/expiration"
	"github.com/krisalay/storefront-cache/invalidate"
	"github.com/krisalay/storefront-cache/keys"
	"github.com/krisalay/storefront-cache/metrics"
	"github.com/krisalay/storefront-cache/storage"
	"github.com/krisalay/storefront-cache/storage/sqlite"
	"github.com/krisalay/storefront-cache/sweeper"
)

// ================= STORAGE MEDIUM =================

// openBackend picks the medium from config. A medium that cannot be opened
// degrades to storage.Disabled: the storefront keeps working uncached.
func openBackend(cfg config.Config, logger *log.Logger) (storage.Backend, func()) {
	if cfg.StoragePath == "" {
		fmt.Println("STORAGE         : memory")
		return storage.NewMemory(cfg.QuotaBytes), func() {}
	}

	db, err := sqlite.Open(cfg.StoragePath, cfg.QuotaBytes)
	if err != nil {
		logger.Printf("open cache storage %s: %v; caching disabled", cfg.StoragePath, err)
		fmt.Println("STORAGE         : disabled")
		return storage.Disabled{}, func() {}
	}

	fmt.Println("STORAGE         : sqlite", cfg.StoragePath)
	return db, func() {
		if err := db.Close(); err != nil {
			logger.Printf("close cache storage: %v", err)
		}
	}
}

// ================= MAIN =================

func main() {
	ctx := context.Background()
	logger := log.New(os.Stderr, "storefront-cache ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	fmt.Println("\n==================== SYSTEM BOOT ====================")

	// ---------------- System Config ----------------
	fmt.Println("KEY PREFIX      :", cfg.Prefix)
	fmt.Println("DEFAULT TTL     :", cfg.DefaultTTL)
	fmt.Println("CATEGORY TTL    :", cfg.CategoryTTL)
	fmt.Println("PRODUCT TTL     :", cfg.ProductTTL)
	fmt.Println("SWEEP INTERVAL  :", cfg.SweepInterval)
	fmt.Println("QUOTA           :", cfg.QuotaBytes, "bytes")

	// ---------------- Storage ----------------
	backend, closeBackend := openBackend(cfg, logger)
	defer closeBackend()

	// ---------------- Metrics ----------------
	m := metrics.NewPrometheus()
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("metrics server: %v", err)
			}
		}()
		defer srv.Shutdown(ctx)
		fmt.Println("METRICS         : http://" + cfg.MetricsAddr + "/metrics")
	}

	// ---------------- Cache Engine ----------------
	eng := engine.NewCacheEngine(
		&expiration.FixedWindow{TTL: cfg.DefaultTTL},
		m,
		logger,
	)

	store := cache.NewStore(backend, keys.NewBuilder(cfg.Prefix), eng)

	// ---------------- Sweeper ----------------
	sw := sweeper.New(store, cfg.SweepInterval, logger)
	fmt.Println("SWEEPER → startup pass removed", sw.Start(), "entries")

	// ---------------- Catalog API ----------------
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		srv := httptest.NewServer(newDemoAPI())
		defer srv.Close()
		baseURL = srv.URL
		fmt.Println("API             : in-process demo at", baseURL)
	}

	client, err := catalog.NewClient(catalog.Options{
		BaseURL: baseURL,
		Token:   cfg.APIToken,
		Timeout: cfg.APITimeout,
		TTLs:    catalog.TTLs{Categories: cfg.CategoryTTL, Products: cfg.ProductTTL},
	}, store, invalidate.New(store, invalidate.DefaultRules(), logger))
	if err != nil {
		logger.Fatalf("build catalog client: %v", err)
	}

	// ====================================================
	fmt.Println("\n==================== 1) CACHE MISS ====================")
	cats, err := client.Categories(ctx)
	fmt.Printf("CACHE  → categories = %d (err=%v)\n", len(cats), err)

	// ====================================================
	fmt.Println("\n==================== 2) CACHE HIT ====================")
	cats, err = client.Categories(ctx)
	fmt.Printf("CACHE  → categories = %d (err=%v)\n", len(cats), err)

	// ====================================================
	fmt.Println("\n==================== 3) CANONICAL KEYS ====================")
	q := catalog.ProductQuery{Page: 1, Limit: 12, Search: "oil seal"}
	fmt.Println("CACHE  → key =", store.Key("/api/products", map[string]any{"search": "oil seal", "limit": 12, "page": 1}))

	page, err := client.SearchProducts(ctx, q)
	fmt.Printf("CACHE  → search = %d products (err=%v)\n", page.Total, err)
	page, err = client.SearchProducts(ctx, q)
	fmt.Printf("CACHE  → search again = %d products (err=%v)\n", page.Total, err)

	// ====================================================
	fmt.Println("\n==================== 4) TTL EXPIRATION ====================")
	store.Set("/demo/flash-sale", map[string]string{"banner": "20% off seals"}, 1*time.Second)
	fmt.Println("CACHE  → SET /demo/flash-sale (TTL = 1s)")

	time.Sleep(2 * time.Second)

	_, ok := store.Get("/demo/flash-sale")
	fmt.Println("CACHE  → GET /demo/flash-sale after TTL, found =", ok)

	// ====================================================
	fmt.Println("\n==================== 5) SINGLEFLIGHT ====================")

	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			featured, err := client.FeaturedProducts(ctx)
			fmt.Printf("GOROUTINE-%d → featured = %d (err=%v)\n", id, len(featured), err)
		}(i)
	}
	wg.Wait()

	// ====================================================
	fmt.Println("\n==================== 6) ADMIN INVALIDATION ====================")

	created, err := client.CreateProduct(ctx, catalog.Product{Name: "Oil Seal 70x90", Price: 7.8, Stock: 30, CategoryID: 1})
	fmt.Printf("ADMIN  → created product %d (err=%v)\n", created.ID, err)

	page, err = client.SearchProducts(ctx, q)
	fmt.Printf("CACHE  → search after create = %d products (err=%v)\n", page.Total, err)

	// ====================================================
	fmt.Println("\n==================== 7) STATS ====================")
	stats, _ := json.MarshalIndent(store.Stats(), "", "  ")
	fmt.Println(string(stats))

	// ====================================================
	fmt.Println("\n==================== 8) CLEAR ====================")
	fmt.Println("CACHE  → cleared", store.ClearAll(), "entries")

	// ====================================================
	fmt.Println("\n==================== SHUTDOWN ====================")
	sw.Stop()
	fmt.Println("SYSTEM → sweeper stopped cleanly")
}
