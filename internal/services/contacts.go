package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"ghl/internal/api"
)

// ContactInput carries the writable contact fields. Empty fields are
// omitted from the request.
type ContactInput struct {
	Email       string
	Phone       string
	FirstName   string
	LastName    string
	Name        string
	CompanyName string
	Source      string
	Tags        []string
	// CustomFields holds { id, key, field_value } entries sent with
	// contact updates.
	CustomFields []map[string]any
}

func (in ContactInput) body() map[string]any {
	data := map[string]any{}
	if in.Email != "" {
		data["email"] = in.Email
	}
	if in.Phone != "" {
		data["phone"] = in.Phone
	}
	if in.FirstName != "" {
		data["firstName"] = in.FirstName
	}
	if in.LastName != "" {
		data["lastName"] = in.LastName
	}
	if in.Name != "" {
		data["name"] = in.Name
	}
	if in.CompanyName != "" {
		data["companyName"] = in.CompanyName
	}
	if in.Source != "" {
		data["source"] = in.Source
	}
	if len(in.Tags) > 0 {
		data["tags"] = in.Tags
	}
	if len(in.CustomFields) > 0 {
		data["customFields"] = in.CustomFields
	}
	return data
}

// ListContacts lists contacts in the location.
func ListContacts(ctx context.Context, client *api.Client, limit int, query string) ([]map[string]any, error) {
	params := map[string]string{"limit": strconv.Itoa(limit)}
	if query != "" {
		params["query"] = query
	}
	resp, err := client.Get(ctx, "/contacts/", &api.RequestOptions{Params: params})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "contacts"), nil
}

// GetContact gets a contact by ID.
func GetContact(ctx context.Context, client *api.Client, contactID string) (map[string]any, error) {
	resp, err := client.Get(ctx, "/contacts/"+contactID, nil)
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "contact"), nil
}

// CreateContact creates a new contact. The API requires at least an email
// or a phone number.
func CreateContact(ctx context.Context, client *api.Client, locationID string, in ContactInput) (map[string]any, error) {
	body := in.body()
	body["locationId"] = locationID
	resp, err := client.Post(ctx, "/contacts/", &api.RequestOptions{Body: body})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "contact"), nil
}

// UpdateContact updates an existing contact. Only set fields are sent.
func UpdateContact(ctx context.Context, client *api.Client, contactID string, in ContactInput) (map[string]any, error) {
	resp, err := client.Put(ctx, "/contacts/"+contactID, &api.RequestOptions{Body: in.body()})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "contact"), nil
}

// DeleteContact deletes a contact.
func DeleteContact(ctx context.Context, client *api.Client, contactID string) error {
	_, err := client.Delete(ctx, "/contacts/"+contactID, nil)
	return err
}

// SearchContacts searches contacts by name, email, or phone.
func SearchContacts(ctx context.Context, client *api.Client, query string, limit int) ([]map[string]any, error) {
	resp, err := client.Get(ctx, "/contacts/", &api.RequestOptions{
		Params: map[string]string{"query": query, "limit": strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "contacts"), nil
}

// ContactFilter narrows a filtered contact search.
type ContactFilter struct {
	Page       int
	PageLimit  int
	Query      string
	Tags       []string
	AssignedTo string
}

// FilterContacts searches contacts via POST /contacts/search with tag
// (contains, AND across multiple) and assignedTo (eq) filters.
func FilterContacts(ctx context.Context, client *api.Client, locationID string, f ContactFilter) ([]map[string]any, error) {
	var filters []map[string]any
	if f.AssignedTo != "" {
		filters = append(filters, map[string]any{
			"field": "assignedTo", "operator": "eq", "value": f.AssignedTo,
		})
	}
	for _, tag := range f.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			filters = append(filters, map[string]any{
				"field": "tags", "operator": "contains", "value": tag,
			})
		}
	}

	page := f.Page
	if page <= 0 {
		page = 1
	}
	pageLimit := f.PageLimit
	if pageLimit <= 0 {
		pageLimit = 50
	}

	body := map[string]any{
		"locationId": locationID,
		"page":       page,
		"pageLimit":  pageLimit,
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		body["query"] = q
	}
	if len(filters) > 0 {
		body["filters"] = []map[string]any{{"group": "AND", "filters": filters}}
	}

	resp, err := client.Post(ctx, "/contacts/search", &api.RequestOptions{
		Body:         body,
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "contacts"), nil
}

// AddContactTags adds tags to a contact, merging with existing ones.
func AddContactTags(ctx context.Context, client *api.Client, contactID string, tags []string) error {
	contact, err := GetContact(ctx, client, contactID)
	if err != nil {
		return err
	}
	existing := stringList(contact["tags"])
	merged := make([]string, 0, len(existing)+len(tags))
	seen := map[string]bool{}
	for _, t := range append(existing, tags...) {
		if !seen[t] {
			seen[t] = true
			merged = append(merged, t)
		}
	}
	_, err = client.Put(ctx, "/contacts/"+contactID, &api.RequestOptions{
		Body: map[string]any{"tags": merged},
	})
	return err
}

// RemoveContactTags removes tags from a contact.
func RemoveContactTags(ctx context.Context, client *api.Client, contactID string, tags []string) error {
	contact, err := GetContact(ctx, client, contactID)
	if err != nil {
		return err
	}
	drop := map[string]bool{}
	for _, t := range tags {
		drop[t] = true
	}
	var kept []string
	for _, t := range stringList(contact["tags"]) {
		if !drop[t] {
			kept = append(kept, t)
		}
	}
	if kept == nil {
		kept = []string{}
	}
	_, err = client.Put(ctx, "/contacts/"+contactID, &api.RequestOptions{
		Body: map[string]any{"tags": kept},
	})
	return err
}

// ListContactNotes lists notes for a contact.
func ListContactNotes(ctx context.Context, client *api.Client, contactID string) ([]map[string]any, error) {
	resp, err := client.Get(ctx, "/contacts/"+contactID+"/notes", &api.RequestOptions{OmitLocation: true})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "notes"), nil
}

// AddContactNote adds a note to a contact.
func AddContactNote(ctx context.Context, client *api.Client, contactID, body string) (map[string]any, error) {
	resp, err := client.Post(ctx, "/contacts/"+contactID+"/notes", &api.RequestOptions{
		Body:         map[string]any{"body": body},
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "note"), nil
}

// ListContactTasks lists tasks attached to a contact.
func ListContactTasks(ctx context.Context, client *api.Client, contactID string) ([]map[string]any, error) {
	resp, err := client.Get(ctx, "/contacts/"+contactID+"/tasks", &api.RequestOptions{OmitLocation: true})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "tasks"), nil
}

// TaskInput carries the writable contact-task fields.
type TaskInput struct {
	Title      string
	Body       string
	DueDate    string
	Completed  bool
	AssignedTo string
}

// CreateContactTask creates a task for a contact. The API requires title,
// dueDate (ISO 8601) and completed; a missing due date defaults to seven
// days out at noon UTC.
func CreateContactTask(ctx context.Context, client *api.Client, contactID string, in TaskInput) (map[string]any, error) {
	dueDate := in.DueDate
	if dueDate == "" {
		dueDate = time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02") + "T12:00:00Z"
	}
	body := map[string]any{
		"title":     in.Title,
		"dueDate":   dueDate,
		"completed": in.Completed,
	}
	if in.Body != "" {
		body["body"] = in.Body
	}
	if in.AssignedTo != "" {
		body["assignedTo"] = in.AssignedTo
	}
	resp, err := client.Post(ctx, "/contacts/"+contactID+"/tasks", &api.RequestOptions{
		Body:         body,
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "task"), nil
}

// GetContactTask gets a single contact task by ID.
func GetContactTask(ctx context.Context, client *api.Client, contactID, taskID string) (map[string]any, error) {
	resp, err := client.Get(ctx, "/contacts/"+contactID+"/tasks/"+taskID, &api.RequestOptions{OmitLocation: true})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "task"), nil
}

// UpdateContactTask updates a task's title and/or due date.
func UpdateContactTask(ctx context.Context, client *api.Client, contactID, taskID, title, dueDate string) (map[string]any, error) {
	body := map[string]any{}
	if title != "" {
		body["title"] = title
	}
	if dueDate != "" {
		body["dueDate"] = dueDate
	}
	if len(body) == 0 {
		return GetContactTask(ctx, client, contactID, taskID)
	}
	resp, err := client.Put(ctx, "/contacts/"+contactID+"/tasks/"+taskID, &api.RequestOptions{
		Body:         body,
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "task"), nil
}

// DeleteContactTask deletes a contact task.
func DeleteContactTask(ctx context.Context, client *api.Client, contactID, taskID string) error {
	_, err := client.Delete(ctx, "/contacts/"+contactID+"/tasks/"+taskID, &api.RequestOptions{OmitLocation: true})
	return err
}

// CompleteContactTask marks a task completed or pending.
func CompleteContactTask(ctx context.Context, client *api.Client, contactID, taskID string, completed bool) (map[string]any, error) {
	resp, err := client.Put(ctx, "/contacts/"+contactID+"/tasks/"+taskID+"/completed", &api.RequestOptions{
		Body:         map[string]any{"completed": completed},
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "task"), nil
}
