package services

import (
	"context"
	"strings"

	"ghl/internal/api"
)

// TaskSearch narrows a location-level task search.
type TaskSearch struct {
	AssigneeID string
	// Status is "pending", "completed", or "" for all.
	Status     string
	Query      string
	ContactIDs []string
	Limit      int
	Skip       int
}

// SearchTasks searches tasks at location level via
// POST /locations/{locationId}/tasks/search. A body is required.
func SearchTasks(ctx context.Context, client *api.Client, locationID string, s TaskSearch) ([]map[string]any, error) {
	body := map[string]any{}
	if s.AssigneeID != "" {
		body["assignedTo"] = []string{s.AssigneeID}
	}
	switch s.Status {
	case "pending":
		body["completed"] = false
	case "completed":
		body["completed"] = true
	}
	if q := strings.TrimSpace(s.Query); q != "" {
		body["query"] = q
	}
	if len(s.ContactIDs) > 0 {
		body["contactId"] = s.ContactIDs
	}
	if s.Limit > 0 {
		body["limit"] = s.Limit
	}
	if s.Skip > 0 {
		body["skip"] = s.Skip
	}

	resp, err := client.Post(ctx, "/locations/"+locationID+"/tasks/search", &api.RequestOptions{
		Body:         body,
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}

	tasks := unwrapList(resp, "tasks", "task")
	out := make([]map[string]any, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, normalizeTask(t))
	}
	return out, nil
}

// normalizeTask flattens the search response shape: the endpoint returns
// _id instead of id, and nests contact and assignee details.
func normalizeTask(t map[string]any) map[string]any {
	task := make(map[string]any, len(t))
	for k, v := range t {
		task[k] = v
	}

	if _, ok := task["id"]; !ok {
		if id, ok := task["_id"]; ok {
			task["id"] = id
		}
	}

	if cd, ok := task["contactDetails"].(map[string]any); ok {
		name := joinName(stringField(cd, "firstName"), stringField(cd, "lastName"))
		if name != "" {
			task["contactName"] = name
		}
	}

	if ad, ok := task["assignedToUserDetails"].(map[string]any); ok {
		name := joinName(stringField(ad, "firstName"), stringField(ad, "lastName"))
		if name == "" {
			name = stringField(ad, "id")
		}
		if name != "" {
			task["assigneeName"] = name
		}
	}

	return task
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
