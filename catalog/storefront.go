package catalog

import (
	"context"
	"fmt"

	cache "github.com/krisalay/storefront-cache"
)

// Categories returns the category list.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	key := c.cache.Key("/api/categories", nil)
	return cache.LoadAs[[]Category](ctx, c.cache, key, c.ttls.Categories, c)
}

// SearchProducts returns one page of products matching q.
func (c *Client) SearchProducts(ctx context.Context, q ProductQuery) (ProductPage, error) {
	key := c.cache.Key("/api/products", q.params())
	return cache.LoadAs[ProductPage](ctx, c.cache, key, c.ttls.Products, c)
}

// FeaturedProducts returns the products highlighted on the home page.
func (c *Client) FeaturedProducts(ctx context.Context) ([]Product, error) {
	key := c.cache.Key("/api/products/featured", nil)
	return cache.LoadAs[[]Product](ctx, c.cache, key, c.ttls.Products, c)
}

// Product returns one product.
func (c *Client) Product(ctx context.Context, id int64) (Product, error) {
	key := c.cache.Key(fmt.Sprintf("/api/products/%d", id), nil)
	return cache.LoadAs[Product](ctx, c.cache, key, c.ttls.Products, c)
}
