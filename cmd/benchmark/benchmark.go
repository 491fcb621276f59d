package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	cache "github.com/krisalay/storefront-cache"
	"github.com/krisalay/storefront-cache/engine"
	"github.com/krisalay/storefront-cache/keys"
	"github.com/krisalay/storefront-cache/storage"
	"github.com/krisalay/storefront-cache/storage/sqlite"
)

// ================= LOADER =================

// staticLoader plays the REST API: every miss returns the same small page.
type staticLoader struct {
	mu    sync.Mutex
	loads int
}

func (l *staticLoader) Load(ctx context.Context, resource string) ([]byte, error) {
	l.mu.Lock()
	l.loads++
	l.mu.Unlock()
	return []byte(`{"products":[{"id":1,"name":"Oil Seal"}],"total":1,"page":1,"totalPages":1}`), nil
}

// ================= BENCHMARK =================

func run(name string, backend storage.Backend) {
	ctx := context.Background()

	const (
		preloadKeys = 2000
		goroutines  = 200
		opsPerG     = 5000
	)

	eng := engine.NewCacheEngine(nil, nil, log.New(io.Discard, "", 0))
	s := cache.NewStore(backend, keys.NewBuilder(""), eng)
	loader := &staticLoader{}

	fmt.Println("\n================", name, "=================")
	fmt.Println("Preload Keys :", preloadKeys)
	fmt.Println("Goroutines   :", goroutines)
	fmt.Println("Ops/Goroutine:", opsPerG)

	// ---------------- Preload Cache ----------------
	paths := make([]string, preloadKeys)
	for i := range paths {
		paths[i] = s.Key("/api/products", map[string]any{"page": i + 1, "limit": 12})
	}
	preloadStart := time.Now()
	for _, p := range paths[:preloadKeys/2] {
		s.GetOrLoad(ctx, p, time.Hour, loader)
	}
	fmt.Println("Preload      :", time.Since(preloadStart))

	// ---------------- Load Test ----------------
	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerG; j++ {
				s.GetOrLoad(ctx, paths[(id*31+j)%preloadKeys], time.Hour, loader)
			}
		}(i)
	}

	wg.Wait()

	duration := time.Since(start)
	totalOps := goroutines * opsPerG

	fmt.Println("\n---------------- RESULTS ----------------")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Remote Loads     : %d\n", loader.loads)
	fmt.Printf("Entries          : %d\n", s.Stats().TotalEntries)
	if items, err := backend.Len(); err == nil {
		fmt.Printf("Medium Items     : %d\n", items)
	}
}

func main() {
	fmt.Println("\n================ CACHE LOAD BENCHMARK =================")

	run("MEMORY", storage.NewMemory(0))

	dir, err := os.MkdirTemp("", "storefront-cache-bench")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	db, err := sqlite.Open(filepath.Join(dir, "cache.db"), 0)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	run("SQLITE", db)
	fmt.Println("=========================================")
}
