package service

import (
	"context"
	"fmt"

	"github.com/wibisana/marketing-tracker/internal/application/dispatcher"
	"github.com/wibisana/marketing-tracker/internal/domain/event"
)

// Notifier delivers a message to a user. Delivery channels (WhatsApp, email)
// live outside this system; implementations adapt to whatever transport the
// deployment uses.
type Notifier interface {
	Notify(ctx context.Context, userID, message string) error
}

// LogNotifier is the built-in Notifier: it only records that a notification
// would have been sent. Deployments plug a real channel in its place.
type LogNotifier struct {
	Logger Logger
}

// Notify logs the outgoing message
func (n *LogNotifier) Notify(_ context.Context, userID, message string) error {
	n.Logger.Info("Notification", "user_id", userID, "message", message)
	return nil
}

// RegisterNotificationHandlers subscribes the notifier to the task events
// that warrant telling someone: status changes and PIC membership changes.
func RegisterNotificationHandlers(disp dispatcher.Dispatcher, notifier Notifier, logger Logger) {
	disp.SubscribeNamed(event.TypeStatusChanged, "notify-status-changed", func(ctx context.Context, evt *event.Event) error {
		actorID := evt.GetPayloadString("actor_id")
		msg := fmt.Sprintf("Task %s moved from %q to %q",
			evt.TaskID, evt.GetPayloadString("previous_status"), evt.GetPayloadString("new_status"))
		if err := notifier.Notify(ctx, actorID, msg); err != nil {
			logger.Error("Failed to notify status change", "error", err, "task_id", evt.TaskID)
			return err
		}
		return nil
	})

	disp.SubscribeNamed(event.TypePicsChanged, "notify-pics-changed", func(ctx context.Context, evt *event.Event) error {
		affected := evt.GetPayloadString("affected_user_id")
		msg := fmt.Sprintf("Your assignment on task %s changed: %s", evt.TaskID, evt.GetPayloadString("action"))
		if err := notifier.Notify(ctx, affected, msg); err != nil {
			logger.Error("Failed to notify assignment change", "error", err, "task_id", evt.TaskID)
			return err
		}
		return nil
	})
}
