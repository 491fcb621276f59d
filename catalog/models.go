package catalog

// Category is one node of the storefront category list.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Product is a catalog item: seals, pumps, generator parts.
type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Featured     bool      `json:"featured"`
	Images       ImageList `json:"images"`
}

// ProductPage is one page of a product search.
type ProductPage struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

// ProductQuery selects a page of products. Zero fields are left out of the request.
type ProductQuery struct {
	Page       int
	Limit      int
	Search     string
	CategoryID int64
}

func (q ProductQuery) params() map[string]any {
	params := map[string]any{}
	if q.Page > 0 {
		params["page"] = q.Page
	}
	if q.Limit > 0 {
		params["limit"] = q.Limit
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.CategoryID > 0 {
		params["category"] = q.CategoryID
	}
	return params
}
