package services

import (
	"context"

	"ghl/internal/api"
)

// ListCalendars lists calendars in the location.
func ListCalendars(ctx context.Context, client *api.Client) ([]map[string]any, error) {
	resp, err := client.Get(ctx, "/calendars/", nil)
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "calendars"), nil
}

// GetCalendar gets a calendar by ID.
func GetCalendar(ctx context.Context, client *api.Client, calendarID string) (map[string]any, error) {
	resp, err := client.Get(ctx, "/calendars/"+calendarID, &api.RequestOptions{OmitLocation: true})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "calendar"), nil
}

// ListCalendarEvents lists events for a calendar between two times
// (epoch milliseconds, as the API expects).
func ListCalendarEvents(ctx context.Context, client *api.Client, calendarID, startMillis, endMillis string) ([]map[string]any, error) {
	resp, err := client.Get(ctx, "/calendars/events", &api.RequestOptions{
		Params: map[string]string{
			"calendarId": calendarID,
			"startTime":  startMillis,
			"endTime":    endMillis,
		},
	})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "events"), nil
}
