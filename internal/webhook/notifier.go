package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/zurichjs/rewards/internal/config"
	"github.com/zurichjs/rewards/internal/httpclient"
	"github.com/zurichjs/rewards/internal/logger"
)

// Notifier posts operational alerts to a configured webhook. Delivery is
// fire-and-forget: failures are logged and swallowed, never surfaced to
// the request that triggered them.
type Notifier interface {
	Notify(ctx context.Context, event string, payload map[string]any)
}

type webhookNotifier struct {
	client httpclient.Client
	url    string
	logger *logger.Logger
}

// NewNotifier creates a webhook notifier. With no URL configured it
// degrades to a no-op.
func NewNotifier(cfg *config.Configuration, client httpclient.Client, logger *logger.Logger) Notifier {
	return &webhookNotifier{
		client: client,
		url:    cfg.Notification.WebhookURL,
		logger: logger,
	}
}

func (n *webhookNotifier) Notify(ctx context.Context, event string, payload map[string]any) {
	if n.url == "" {
		return
	}

	body, err := json.Marshal(map[string]any{
		"event":     event,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"payload":   payload,
	})
	if err != nil {
		n.logger.Errorw("failed to encode notification", "event", event, "error", err)
		return
	}

	// Detach from the request context so an already-answered request
	// does not cancel the delivery.
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		_, err := n.client.Send(sendCtx, &httpclient.Request{
			Method: http.MethodPost,
			URL:    n.url,
			Body:   body,
		})
		if err != nil {
			n.logger.Warnw("notification delivery failed", "event", event, "error", err)
		}
	}()
}
