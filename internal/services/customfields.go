package services

import (
	"context"

	"ghl/internal/api"
)

// ListCustomFields lists custom field definitions for the location.
// These endpoints do not return rate limit headers.
func ListCustomFields(ctx context.Context, client *api.Client, locationID string) ([]map[string]any, error) {
	resp, err := client.Get(ctx, "/locations/"+locationID+"/customFields", &api.RequestOptions{OmitLocation: true})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "customFields", "fields"), nil
}

// GetCustomField fetches a single custom field definition.
func GetCustomField(ctx context.Context, client *api.Client, locationID, fieldID string) (map[string]any, error) {
	resp, err := client.Get(ctx, "/locations/"+locationID+"/customFields/"+fieldID, &api.RequestOptions{OmitLocation: true})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "customField", "field"), nil
}

// ListCustomValues lists custom values for the location.
func ListCustomValues(ctx context.Context, client *api.Client, locationID string) ([]map[string]any, error) {
	resp, err := client.Get(ctx, "/locations/"+locationID+"/customValues", &api.RequestOptions{OmitLocation: true})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "customValues", "values"), nil
}

// CreateCustomValue creates a named custom value in the location.
func CreateCustomValue(ctx context.Context, client *api.Client, locationID, name, value string) (map[string]any, error) {
	resp, err := client.Post(ctx, "/locations/"+locationID+"/customValues", &api.RequestOptions{
		Body:         map[string]any{"name": name, "value": value},
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "customValue"), nil
}

// UpdateCustomValue rewrites a custom value.
func UpdateCustomValue(ctx context.Context, client *api.Client, locationID, valueID, value string) (map[string]any, error) {
	resp, err := client.Put(ctx, "/locations/"+locationID+"/customValues/"+valueID, &api.RequestOptions{
		Body:         map[string]any{"value": value},
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "customValue"), nil
}

// DeleteCustomValue deletes a custom value.
func DeleteCustomValue(ctx context.Context, client *api.Client, locationID, valueID string) error {
	_, err := client.Delete(ctx, "/locations/"+locationID+"/customValues/"+valueID, &api.RequestOptions{OmitLocation: true})
	return err
}
