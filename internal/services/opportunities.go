package services

import (
	"context"
	"strings"

	"ghl/internal/api"
)

// OpportunityFilter narrows an opportunity listing. The search endpoint
// only accepts a location, so the remaining filters are applied client
// side.
type OpportunityFilter struct {
	Limit      int
	Skip       int
	PipelineID string
	StageID    string
	Status     string
	ContactID  string
}

// ListOpportunities lists opportunities with optional filters.
func ListOpportunities(ctx context.Context, client *api.Client, f OpportunityFilter) ([]map[string]any, error) {
	params := map[string]string{}
	if loc := client.LocationID(); loc != "" {
		params["location_id"] = loc
	}
	resp, err := client.Get(ctx, "/opportunities/search", &api.RequestOptions{
		Params:       params,
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	var out []map[string]any
	for _, opp := range unwrapList(resp, "opportunities") {
		if f.ContactID != "" && stringField(opp, "contactId") != f.ContactID {
			continue
		}
		if f.PipelineID != "" && stringField(opp, "pipelineId") != f.PipelineID {
			continue
		}
		if f.StageID != "" && stringField(opp, "pipelineStageId") != f.StageID {
			continue
		}
		if f.Status != "" && !strings.EqualFold(stringField(opp, "status"), f.Status) {
			continue
		}
		out = append(out, opp)
	}

	skip := f.Skip
	if skip < 0 {
		skip = 0
	}
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetOpportunity gets an opportunity by ID.
func GetOpportunity(ctx context.Context, client *api.Client, opportunityID string) (map[string]any, error) {
	resp, err := client.Get(ctx, "/opportunities/"+opportunityID, nil)
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "opportunity"), nil
}

// OpportunityInput carries the writable opportunity fields.
type OpportunityInput struct {
	ContactID     string
	PipelineID    string
	StageID       string
	Name          string
	Status        string
	MonetaryValue *float64
	Source        string
}

// CreateOpportunity creates a new opportunity.
func CreateOpportunity(ctx context.Context, client *api.Client, locationID string, in OpportunityInput) (map[string]any, error) {
	status := in.Status
	if status == "" {
		status = "open"
	}
	body := map[string]any{
		"locationId":      locationID,
		"contactId":       in.ContactID,
		"pipelineId":      in.PipelineID,
		"pipelineStageId": in.StageID,
		"name":            in.Name,
		"status":          status,
	}
	if in.MonetaryValue != nil {
		body["monetaryValue"] = *in.MonetaryValue
	}
	if in.Source != "" {
		body["source"] = in.Source
	}
	resp, err := client.Post(ctx, "/opportunities/", &api.RequestOptions{Body: body})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "opportunity"), nil
}

// UpdateOpportunity updates an opportunity. Only set fields are sent.
func UpdateOpportunity(ctx context.Context, client *api.Client, opportunityID string, in OpportunityInput) (map[string]any, error) {
	body := map[string]any{}
	if in.Name != "" {
		body["name"] = in.Name
	}
	if in.MonetaryValue != nil {
		body["monetaryValue"] = *in.MonetaryValue
	}
	if in.Status != "" {
		body["status"] = in.Status
	}
	if in.Source != "" {
		body["source"] = in.Source
	}
	resp, err := client.Put(ctx, "/opportunities/"+opportunityID, &api.RequestOptions{Body: body})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "opportunity"), nil
}

// MoveOpportunity moves an opportunity to a different stage.
func MoveOpportunity(ctx context.Context, client *api.Client, opportunityID, stageID string) (map[string]any, error) {
	resp, err := client.Put(ctx, "/opportunities/"+opportunityID, &api.RequestOptions{
		Body: map[string]any{"pipelineStageId": stageID},
	})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "opportunity"), nil
}

// DeleteOpportunity deletes an opportunity.
func DeleteOpportunity(ctx context.Context, client *api.Client, opportunityID string) error {
	_, err := client.Delete(ctx, "/opportunities/"+opportunityID, nil)
	return err
}

// MarkOpportunityWon marks an opportunity as won.
func MarkOpportunityWon(ctx context.Context, client *api.Client, opportunityID string) error {
	return setOpportunityStatus(ctx, client, opportunityID, "won")
}

// MarkOpportunityLost marks an opportunity as lost.
func MarkOpportunityLost(ctx context.Context, client *api.Client, opportunityID string) error {
	return setOpportunityStatus(ctx, client, opportunityID, "lost")
}

func setOpportunityStatus(ctx context.Context, client *api.Client, opportunityID, status string) error {
	_, err := client.Put(ctx, "/opportunities/"+opportunityID+"/status", &api.RequestOptions{
		Body: map[string]any{"status": status},
	})
	return err
}
