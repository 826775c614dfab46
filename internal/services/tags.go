package services

import (
	"context"

	"ghl/internal/api"
)

// ListTags lists the location's tags.
func ListTags(ctx context.Context, client *api.Client, locationID string) ([]map[string]any, error) {
	resp, err := client.Get(ctx, "/locations/"+locationID+"/tags", &api.RequestOptions{OmitLocation: true})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "tags"), nil
}

// CreateTag creates a tag in the location.
func CreateTag(ctx context.Context, client *api.Client, locationID, name string) (map[string]any, error) {
	resp, err := client.Post(ctx, "/locations/"+locationID+"/tags", &api.RequestOptions{
		Body:         map[string]any{"name": name},
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "tag"), nil
}

// DeleteTag deletes a tag from the location.
func DeleteTag(ctx context.Context, client *api.Client, locationID, tagID string) error {
	_, err := client.Delete(ctx, "/locations/"+locationID+"/tags/"+tagID, &api.RequestOptions{OmitLocation: true})
	return err
}
