package services

import (
	"context"
	"strconv"

	"ghl/internal/api"
)

// ListLocations lists the locations (sub-accounts) visible to the token.
func ListLocations(ctx context.Context, client *api.Client, limit int) ([]map[string]any, error) {
	params := map[string]string{}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	resp, err := client.Get(ctx, "/locations/search", &api.RequestOptions{
		Params:       params,
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "locations"), nil
}

// GetLocation gets a location by ID.
func GetLocation(ctx context.Context, client *api.Client, locationID string) (map[string]any, error) {
	resp, err := client.Get(ctx, "/locations/"+locationID, &api.RequestOptions{OmitLocation: true})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "location"), nil
}
