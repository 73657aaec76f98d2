package gmail

import (
	"context"
	"fmt"
	"net/http"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client wraps the Gmail Users service for the authenticated account.
type Client struct {
	svc *gmail.UsersService
}

// NewClient creates a Gmail client on top of an OAuth2-authenticated HTTP
// client.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &Client{svc: svc.Users}, nil
}

// ForeachMessage iterates over all messages matching the query, following
// pagination to exhaustion. fn receives each message ID in the provider's
// result order; a non-nil error from fn stops the iteration.
func (c *Client) ForeachMessage(ctx context.Context, query string, fn func(messageID string) error) error {
	pageToken := ""
	for {
		req := c.svc.Messages.List("me").Q(query).Context(ctx)
		if pageToken != "" {
			req.PageToken(pageToken)
		}
		res, err := req.Do()
		if err != nil {
			return fmt.Errorf("failed to list messages for query %q: %w", query, err)
		}
		for _, m := range res.Messages {
			if err := fn(m.Id); err != nil {
				return err
			}
		}
		if res.NextPageToken == "" {
			return nil
		}
		pageToken = res.NextPageToken
	}
}

// GetMessage retrieves a full Gmail message.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}
