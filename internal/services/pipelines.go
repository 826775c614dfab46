package services

import (
	"context"

	"ghl/internal/api"
)

// ListPipelines lists all pipelines for the location.
func ListPipelines(ctx context.Context, client *api.Client) ([]map[string]any, error) {
	resp, err := client.Get(ctx, "/opportunities/pipelines", nil)
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "pipelines"), nil
}

// GetPipeline gets a pipeline by ID, including its stages.
func GetPipeline(ctx context.Context, client *api.Client, pipelineID string) (map[string]any, error) {
	resp, err := client.Get(ctx, "/opportunities/pipelines/"+pipelineID, nil)
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "pipeline"), nil
}

// ListStages lists the stages in a pipeline.
func ListStages(ctx context.Context, client *api.Client, pipelineID string) ([]map[string]any, error) {
	pipeline, err := GetPipeline(ctx, client, pipelineID)
	if err != nil {
		return nil, err
	}
	return unwrapList(pipeline, "stages"), nil
}
