package worker

// notification_worker.go
// Processes order status notification jobs from QueueNotification.
// Emails the customer when staff change the status of their order.

import (
	"context"
	"encoding/json"
	"fmt"

	"clothingshop/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// StatusNotificationPayload is the job envelope sent to QueueNotification.
type StatusNotificationPayload struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	NewStatus     string `json:"new_status"`
	Notes         string `json:"notes"`
}

// NotificationWorker sends order status change emails via SMTP.
type NotificationWorker struct {
	mailer   *infra.Mailer
	shopName string
}

func NewNotificationWorker(mailer *infra.Mailer, shopName string) *NotificationWorker {
	return &NotificationWorker{mailer: mailer, shopName: shopName}
}

// Process sends the status change email, moving the job to the DLQ on failure.
func (w *NotificationWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload StatusNotificationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return
	}
	if payload.CustomerEmail == "" {
		log.Warn().Str("order_id", payload.OrderID).Msg("notification_worker: no customer email — skipping")
		return
	}

	subject := fmt.Sprintf("%s — order %s is now %s", w.shopName, payload.OrderID, payload.NewStatus)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your order <strong>%s</strong> has been updated to <strong>%s</strong>.</p>",
		payload.CustomerName, payload.OrderID, payload.NewStatus,
	)
	if payload.Notes != "" {
		body += fmt.Sprintf("<p>Note from our team: %s</p>", payload.Notes)
	}
	body += fmt.Sprintf("<p>Thank you for shopping with %s.</p>", w.shopName)

	if err := w.mailer.Send(payload.CustomerEmail, subject, body); err != nil {
		log.Error().Err(err).Str("to", payload.CustomerEmail).Msg("notification_worker: failed to send email")
		SendToDLQ(ctx, rdb, QueueNotification, "status_notification", raw, err.Error(), 1)
		return
	}
	log.Info().
		Str("to", payload.CustomerEmail).
		Str("order_id", payload.OrderID).
		Str("status", payload.NewStatus).
		Msg("notification_worker: status email sent")
}
