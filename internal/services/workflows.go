package services

import (
	"context"

	"ghl/internal/api"
)

// ListWorkflows lists workflows in the location.
func ListWorkflows(ctx context.Context, client *api.Client) ([]map[string]any, error) {
	resp, err := client.Get(ctx, "/workflows/", nil)
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "workflows"), nil
}

// AddContactToWorkflow enrolls a contact in a workflow.
func AddContactToWorkflow(ctx context.Context, client *api.Client, contactID, workflowID string) error {
	_, err := client.Post(ctx, "/contacts/"+contactID+"/workflow/"+workflowID, &api.RequestOptions{OmitLocation: true})
	return err
}

// RemoveContactFromWorkflow removes a contact from a workflow.
func RemoveContactFromWorkflow(ctx context.Context, client *api.Client, contactID, workflowID string) error {
	_, err := client.Delete(ctx, "/contacts/"+contactID+"/workflow/"+workflowID, &api.RequestOptions{OmitLocation: true})
	return err
}
