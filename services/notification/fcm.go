package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMMessenger delivers pushes through Firebase Cloud Messaging. The `to`
// address is a device registration token.
type FCMMessenger struct {
	Client *messaging.Client
	Logger *zap.Logger
}

func NewFCMMessenger(client *messaging.Client, logger *zap.Logger) *FCMMessenger {
	return &FCMMessenger{Client: client, Logger: logger}
}

func (m *FCMMessenger) Send(ctx context.Context, to, message string) error {
	if to == "" {
		return fmt.Errorf("fcm: empty device token")
	}
	msg := &messaging.Message{
		Token: to,
		Notification: &messaging.Notification{
			Title: "Trimly",
			Body:  message,
		},
	}
	id, err := m.Client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("fcm: failed to send message: %w", err)
	}
	m.Logger.Debug("fcm message sent", zap.String("message_id", id))
	return nil
}
