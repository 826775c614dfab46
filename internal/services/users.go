package services

import (
	"context"
	"strings"

	"ghl/internal/api"
)

// ListUsers lists users in the location.
func ListUsers(ctx context.Context, client *api.Client) ([]map[string]any, error) {
	resp, err := client.Get(ctx, "/users/", nil)
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "users"), nil
}

// SearchUsers searches users by name or email. The filter runs client side
// so it works with location-scoped auth; the dedicated search endpoint
// requires a companyId and rejects some auth types.
func SearchUsers(ctx context.Context, client *api.Client, query string) ([]map[string]any, error) {
	users, err := ListUsers(ctx, client)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users, nil
	}

	var out []map[string]any
	for _, u := range users {
		if strings.Contains(strings.ToLower(stringField(u, "name")), q) ||
			strings.Contains(strings.ToLower(stringField(u, "email")), q) ||
			strings.Contains(strings.ToLower(stringField(u, "firstName")), q) ||
			strings.Contains(strings.ToLower(stringField(u, "lastName")), q) {
			out = append(out, u)
		}
	}
	return out, nil
}
