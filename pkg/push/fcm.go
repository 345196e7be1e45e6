package push

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

type fcmClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMTransport sends through Firebase Cloud Messaging.
type FCMTransport struct {
	client fcmClient
}

func NewFCMTransport(ctx context.Context, app *firebase.App) (*FCMTransport, error) {
	if app == nil {
		return nil, errors.New("firebase app is not configured")
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging client: %w", err)
	}
	return &FCMTransport{client: client}, nil
}

func (t *FCMTransport) Send(ctx context.Context, token, title, body string) error {
	msg := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Token: token,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}
	if _, err := t.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryRejected, err)
	}
	return nil
}
