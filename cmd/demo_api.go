package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/krisalay/storefront-cache/catalog"
)

// ================= DEMO CATALOG API =================

// demoAPI is a tiny in-process storefront backend. Every request it
// serves is printed, so the demo shows which reads reached the network.
type demoAPI struct {
	mu         sync.Mutex
	categories []catalog.Category
	products   []catalog.Product
	nextID     int64
}

func newDemoAPI() http.Handler {
	api := &demoAPI{
		categories: []catalog.Category{
			{ID: 1, Name: "Seals"},
			{ID: 2, Name: "Pumps"},
			{ID: 3, Name: "Generator Parts"},
		},
		products: []catalog.Product{
			{ID: 1, Name: "Oil Seal 40x62", Price: 4.5, Stock: 120, CategoryID: 1, Featured: true, Images: catalog.ImageList{"/img/seal-40.jpg"}},
			{ID: 2, Name: "Oil Seal 55x80", Price: 6.2, Stock: 40, CategoryID: 1},
			{ID: 3, Name: "Centrifugal Pump 1HP", Price: 189, Stock: 7, CategoryID: 2, Featured: true},
			{ID: 4, Name: "AVR Regulator", Price: 58, Stock: 15, CategoryID: 3},
		},
		nextID: 5,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", api.listCategories)
	mux.HandleFunc("GET /api/products", api.searchProducts)
	mux.HandleFunc("GET /api/products/featured", api.featuredProducts)
	mux.HandleFunc("GET /api/products/{id}", api.product)
	mux.HandleFunc("POST /api/admin/products", api.createProduct)
	mux.HandleFunc("GET /api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Printf("API    → %s %s\n", r.Method, r.URL.RequestURI())
		// pretend to be a remote server
		time.Sleep(50 * time.Millisecond)
		mux.ServeHTTP(w, r)
	})
}

func (a *demoAPI) listCategories(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	writeJSON(w, http.StatusOK, a.categories)
}

func (a *demoAPI) searchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := atoiDefault(q.Get("page"), 1)
	limit := atoiDefault(q.Get("limit"), 12)
	search := strings.ToLower(q.Get("search"))
	category := int64(atoiDefault(q.Get("category"), 0))

	a.mu.Lock()
	defer a.mu.Unlock()

	var matched []catalog.Product
	for _, p := range a.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if category > 0 && p.CategoryID != category {
			continue
		}
		matched = append(matched, p)
	}

	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))
	writeJSON(w, http.StatusOK, catalog.ProductPage{
		Products:   matched[start:end],
		Total:      len(matched),
		Page:       page,
		TotalPages: (len(matched) + limit - 1) / limit,
	})
}

func (a *demoAPI) featuredProducts(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	featured := []catalog.Product{}
	for _, p := range a.products {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	writeJSON(w, http.StatusOK, featured)
}

func (a *demoAPI) product(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.products {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
}

func (a *demoAPI) createProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	p.ID = a.nextID
	a.nextID++
	a.products = append(a.products, p)
	writeJSON(w, http.StatusCreated, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
