package catalog

import (
	"context"
	"fmt"
	"net/http"
)

// CreateProduct adds a product and returns it as stored.
func (c *Client) CreateProduct(ctx context.Context, p Product) (Product, error) {
	var out Product
	err := c.mutate(ctx, http.MethodPost, "/api/admin/products", p, &out)
	return out, err
}

// UpdateProduct replaces product id.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p Product) (Product, error) {
	var out Product
	err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", id), p, &out)
	return out, err
}

// DeleteProduct removes product id.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", id), nil, nil)
}

// CreateCategory adds a category and returns it as stored.
func (c *Client) CreateCategory(ctx context.Context, cat Category) (Category, error) {
	var out Category
	err := c.mutate(ctx, http.MethodPost, "/api/admin/categories", cat, &out)
	return out, err
}

// UpdateCategory replaces category id.
func (c *Client) UpdateCategory(ctx context.Context, id int64, cat Category) (Category, error) {
	var out Category
	err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/api/admin/categories/%d", id), cat, &out)
	return out, err
}

// DeleteCategory removes category id.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", id), nil, nil)
}

// UpdateOrderStatus moves order id to status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	body := map[string]string{"status": status}
	return c.mutate(ctx, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/status", id), body, nil)
}

// mutate sends a write and, once it succeeded, invalidates what it made stale.
func (c *Client) mutate(ctx context.Context, method, resource string, body, out any) error {
	if err := c.doJSON(ctx, method, resource, body, out); err != nil {
		return err
	}
	if c.invalidator != nil {
		c.invalidator.OnWrite(ctx, resource)
	}
	return nil
}
