package resilience

import (
	"context"
	"net/http"

	"github.com/collabhub/platform/shared/logger"
	"github.com/collabhub/platform/shared/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const notificationsPath = "/notifications"

// Notification is the body posted to the notification service.
type Notification struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// NotificationDispatcher sends best-effort notifications. Failures are
// logged and counted, never returned.
type NotificationDispatcher struct {
	client Caller
}

func NewNotificationDispatcher(client Caller) *NotificationDispatcher {
	return &NotificationDispatcher{client: client}
}

// Notify posts a notification for userID. It is a no-op for an empty user.
func (d *NotificationDispatcher) Notify(ctx context.Context, userID, message, link string) {
	if userID == "" {
		return
	}

	// The caller's response may already be on its way; the call keeps its own
	// timeout but must not be cancelled with the request.
	ctx = context.WithoutCancel(ctx)

	_, err := d.client.Call(ctx, Request{
		Method: http.MethodPost,
		Path:   notificationsPath,
		Body: Notification{
			UserID:  userID,
			Message: message,
			Link:    link,
		},
	})
	if err == nil {
		return
	}

	outcome := OutcomeOf(err)
	telemetry.RecordCounter(ctx, "notifications_dropped_total", "Notifications that could not be delivered", 1,
		attribute.String("reason", string(outcome)),
	)
	logger.Warn("notification dropped",
		zap.String("user_id", userID),
		zap.String("reason", string(outcome)),
		zap.Error(err),
	)
}
