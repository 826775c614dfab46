package services

import (
	"context"
	"strconv"

	"ghl/internal/api"
)

// SearchConversations searches conversations in the location.
func SearchConversations(ctx context.Context, client *api.Client, query string, limit int) ([]map[string]any, error) {
	params := map[string]string{}
	if query != "" {
		params["query"] = query
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	resp, err := client.Get(ctx, "/conversations/search", &api.RequestOptions{Params: params})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, "conversations"), nil
}

// GetConversation gets a conversation by ID.
func GetConversation(ctx context.Context, client *api.Client, conversationID string) (map[string]any, error) {
	resp, err := client.Get(ctx, "/conversations/"+conversationID, &api.RequestOptions{OmitLocation: true})
	if err != nil {
		return nil, err
	}
	return unwrapObject(resp, "conversation"), nil
}

// ListMessages lists the messages in a conversation. The payload nests the
// list under messages.messages on this endpoint.
func ListMessages(ctx context.Context, client *api.Client, conversationID string, limit int) ([]map[string]any, error) {
	params := map[string]string{}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	resp, err := client.Get(ctx, "/conversations/"+conversationID+"/messages", &api.RequestOptions{
		Params:       params,
		OmitLocation: true,
	})
	if err != nil {
		return nil, err
	}
	if nested, ok := resp["messages"].(map[string]any); ok {
		return unwrapList(nested, "messages"), nil
	}
	return unwrapList(resp, "messages"), nil
}
