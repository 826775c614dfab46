package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"ghl/internal/api"
)

func newTestServer(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	noSleep := func(ctx context.Context, d time.Duration) error { return nil }
	client := api.New("token", "loc-123", api.WithBaseURL(server.URL), api.WithSleep(noSleep))
	t.Cleanup(client.Close)
	return client
}

func TestUnwrapList(t *testing.T) {
	tests := []struct {
		name string
		resp map[string]any
		keys []string
		want int
	}{
		{
			name: "wrapped list",
			resp: map[string]any{"contacts": []any{map[string]any{"id": "1"}, map[string]any{"id": "2"}}},
			keys: []string{"contacts"},
			want: 2,
		},
		{
			name: "second key matches",
			resp: map[string]any{"fields": []any{map[string]any{"id": "1"}}},
			keys: []string{"customFields", "fields"},
			want: 1,
		},
		{
			name: "single object as list",
			resp: map[string]any{"pipelines": map[string]any{"id": "1"}},
			keys: []string{"pipelines"},
			want: 1,
		},
		{
			name: "no match",
			resp: map[string]any{"other": []any{}},
			keys: []string{"contacts"},
			want: 0,
		},
		{
			name: "non-object entries skipped",
			resp: map[string]any{"contacts": []any{"junk", map[string]any{"id": "1"}}},
			keys: []string{"contacts"},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unwrapList(tt.resp, tt.keys...); len(got) != tt.want {
				t.Errorf("unwrapList() returned %d items, want %d", len(got), tt.want)
			}
		})
	}
}

func TestUnwrapObject(t *testing.T) {
	wrapped := map[string]any{"contact": map[string]any{"id": "1"}}
	if got := unwrapObject(wrapped, "contact"); got["id"] != "1" {
		t.Errorf("unwrapObject() = %v", got)
	}

	// Unwrapped responses come back as-is.
	flat := map[string]any{"id": "2"}
	if got := unwrapObject(flat, "contact"); got["id"] != "2" {
		t.Errorf("unwrapObject() fallback = %v", got)
	}
}

func TestFilterContactsBody(t *testing.T) {
	var gotBody map[string]any
	client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/contacts/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contacts": [{"id": "c1"}]}`))
	}))

	contacts, err := FilterContacts(context.Background(), client, "loc-123", ContactFilter{
		Tags:       []string{"lead", " vip ", ""},
		AssignedTo: "user-1",
	})
	if err != nil {
		t.Fatalf("FilterContacts() error = %v", err)
	}
	if len(contacts) != 1 || contacts[0]["id"] != "c1" {
		t.Errorf("FilterContacts() = %v", contacts)
	}

	if gotBody["locationId"] != "loc-123" {
		t.Errorf("body locationId = %v", gotBody["locationId"])
	}
	if gotBody["page"] != float64(1) || gotBody["pageLimit"] != float64(50) {
		t.Errorf("body paging = %v/%v, want defaults", gotBody["page"], gotBody["pageLimit"])
	}

	groups, ok := gotBody["filters"].([]any)
	if !ok || len(groups) != 1 {
		t.Fatalf("body filters = %v, want one AND group", gotBody["filters"])
	}
	group := groups[0].(map[string]any)
	if group["group"] != "AND" {
		t.Errorf("filter group = %v", group["group"])
	}
	inner := group["filters"].([]any)
	// assignedTo plus the two non-empty tags.
	if len(inner) != 3 {
		t.Errorf("filter count = %d, want 3", len(inner))
	}
	first := inner[0].(map[string]any)
	if first["field"] != "assignedTo" || first["operator"] != "eq" || first["value"] != "user-1" {
		t.Errorf("assignedTo filter = %v", first)
	}
	second := inner[1].(map[string]any)
	if second["field"] != "tags" || second["operator"] != "contains" || second["value"] != "lead" {
		t.Errorf("tag filter = %v", second)
	}
	third := inner[2].(map[string]any)
	if third["value"] != "vip" {
		t.Errorf("tag filter value = %v, want trimmed", third["value"])
	}
}

func TestAddContactTagsMerges(t *testing.T) {
	var putBody map[string]any
	client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"contact": {"id": "c1", "tags": ["lead", "vip"]}}`))
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&putBody)
			_, _ = w.Write([]byte(`{"contact": {"id": "c1"}}`))
		}
	}))

	err := AddContactTags(context.Background(), client, "c1", []string{"vip", "newsletter"})
	if err != nil {
		t.Fatalf("AddContactTags() error = %v", err)
	}

	tags := putBody["tags"].([]any)
	got := make([]string, len(tags))
	for i, tag := range tags {
		got[i] = tag.(string)
	}
	want := []string{"lead", "vip", "newsletter"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("merged tags = %v, want %v", got, want)
	}
}

func TestRemoveContactTags(t *testing.T) {
	var putBody map[string]any
	client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"contact": {"id": "c1", "tags": ["lead", "vip"]}}`))
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&putBody)
			_, _ = w.Write([]byte(`{"contact": {"id": "c1"}}`))
		}
	}))

	err := RemoveContactTags(context.Background(), client, "c1", []string{"vip", "missing"})
	if err != nil {
		t.Fatalf("RemoveContactTags() error = %v", err)
	}

	tags := putBody["tags"].([]any)
	if len(tags) != 1 || tags[0] != "lead" {
		t.Errorf("kept tags = %v, want [lead]", tags)
	}
}

func TestSearchTasksBodyAndNormalization(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tasks": [{
			"_id": "t1",
			"title": "Call back",
			"contactDetails": {"firstName": "Jane", "lastName": "Doe"},
			"assignedToUserDetails": {"firstName": "Sam", "lastName": ""}
		}]}`))
	}))

	tasks, err := SearchTasks(context.Background(), client, "loc-123", TaskSearch{
		AssigneeID: "user-1",
		Status:     "pending",
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("SearchTasks() error = %v", err)
	}

	if gotPath != "/locations/loc-123/tasks/search" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["completed"] != false {
		t.Errorf("body completed = %v, want false for pending", gotBody["completed"])
	}
	assigned := gotBody["assignedTo"].([]any)
	if len(assigned) != 1 || assigned[0] != "user-1" {
		t.Errorf("body assignedTo = %v", assigned)
	}

	if len(tasks) != 1 {
		t.Fatalf("SearchTasks() returned %d tasks, want 1", len(tasks))
	}
	task := tasks[0]
	if task["id"] != "t1" {
		t.Errorf("task id = %v, want lifted from _id", task["id"])
	}
	if task["contactName"] != "Jane Doe" {
		t.Errorf("contactName = %v", task["contactName"])
	}
	if task["assigneeName"] != "Sam" {
		t.Errorf("assigneeName = %v", task["assigneeName"])
	}
}

func TestNormalizeTaskKeepsExistingID(t *testing.T) {
	task := normalizeTask(map[string]any{"id": "real", "_id": "other"})
	if task["id"] != "real" {
		t.Errorf("id = %v, want existing id preserved", task["id"])
	}
}

func TestJoinName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Jane", "Doe", "Jane Doe"},
		{"Jane", "", "Jane"},
		{"", "Doe", "Doe"},
		{"", "", ""},
		{" Jane ", " Doe ", "Jane Doe"},
	}
	for _, tt := range tests {
		if got := joinName(tt.first, tt.last); got != tt.want {
			t.Errorf("joinName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestListOpportunitiesSkipAndLimit(t *testing.T) {
	client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/opportunities/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"opportunities": [{"id": "o1"}, {"id": "o2"}, {"id": "o3"}]}`))
	}))

	tests := []struct {
		name    string
		filter  OpportunityFilter
		wantIDs []string
	}{
		{"no paging", OpportunityFilter{}, []string{"o1", "o2", "o3"}},
		{"skip one", OpportunityFilter{Skip: 1}, []string{"o2", "o3"}},
		{"skip past end", OpportunityFilter{Skip: 5}, nil},
		{"negative skip treated as zero", OpportunityFilter{Skip: -1}, []string{"o1", "o2", "o3"}},
		{"limit", OpportunityFilter{Limit: 2}, []string{"o1", "o2"}},
		{"skip then limit", OpportunityFilter{Skip: 1, Limit: 1}, []string{"o2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opps, err := ListOpportunities(context.Background(), client, tt.filter)
			if err != nil {
				t.Fatalf("ListOpportunities() error = %v", err)
			}
			var ids []string
			for _, opp := range opps {
				ids = append(ids, opp["id"].(string))
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestStringList(t *testing.T) {
	if got := stringList([]any{"a", 1, "b"}); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("stringList() = %v", got)
	}
	if got := stringList("not a list"); got != nil {
		t.Errorf("stringList(non-list) = %v, want nil", got)
	}
}
