package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"matchrelay/internal/core"
	"matchrelay/internal/metrics"
	"matchrelay/internal/render"
	"matchrelay/internal/slack"
	"matchrelay/internal/types"
)

// maxBodySize is the maximum allowed size of a feed notification payload
// (64 KB). Feed payloads are small; the limit protects against abuse.
const maxBodySize = 64 * 1024

// Deliverer posts a rendered message to a webhook URL. It is the subset of
// the Slack client the handler needs, kept as an interface for testing.
type Deliverer interface {
	Post(ctx context.Context, url, message string) (slack.DeliveryResult, error)
}

// Handler receives TBA webhook notifications, verifies their authenticity,
// renders them, and relays the result to the Slack destination matching the
// notification's environment.
//
// It is unauthenticated beyond the MAC check -- the feed calls it directly.
type Handler struct {
	renderer     *render.Renderer
	destinations slack.Destinations
	deliverer    Deliverer
	secret       types.SecretString
	logger       *slog.Logger
	now          func() time.Time
}

// NewHandler creates a Handler with the provided dependencies.
func NewHandler(
	renderer *render.Renderer,
	destinations slack.Destinations,
	deliverer Deliverer,
	secret types.SecretString,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		renderer:     renderer,
		destinations: destinations,
		deliverer:    deliverer,
		secret:       secret,
		logger:       logger,
		now:          time.Now,
	}
}

// SetNow overrides the clock for testing.
func (h *Handler) SetNow(now func() time.Time) {
	h.now = now
}

// RegisterRoutes mounts the feed webhook endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/hook", h.Handle)
}

// relayResponse is the success payload returned to the feed: the rendered
// message, where it went, and Slack's verbatim response.
type relayResponse struct {
	Message     string               `json:"message"`
	Environment types.Environment    `json:"environment"`
	Delivery    slack.DeliveryResult `json:"delivery"`
}

// Handle processes one inbound feed notification.
//
//  1. Rejects non-JSON content types and oversized or unreadable bodies.
//  2. Verifies the X-TBA-HMAC header over the exact raw bytes (skipped when
//     no secret is configured).
//  3. Decodes the payload and requires message_type.
//  4. Renders, routes, and delivers via Process.
//
// Steps 1-3 reject before the renderer ever runs; once rendering starts the
// notification is delivered even if only as a degraded fallback.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := requireJSON(r); err != nil {
		core.Error(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to read feed request body",
			"error", err,
		)
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationBodyUnreadable,
			"failed to read request body",
			err,
		))
		return
	}

	if err := VerifyMAC([]byte(h.secret.Unmask()), body, r.Header.Get(MACHeader)); err != nil {
		metrics.MACRejections.Inc()
		// The expected digest is logged so the operator can diagnose a
		// misconfigured secret without replaying traffic.
		h.logger.WarnContext(ctx, "feed mac verification failed",
			"error", err,
			"expected", ComputeMAC([]byte(h.secret.Unmask()), body),
			"presented", r.Header.Get(MACHeader),
		)
		code := types.ErrCodeAuthMACInvalid
		if err == ErrMACMissing {
			code = types.ErrCodeAuthMACMissing
		}
		core.Error(w, r, types.NewAppError(code, "mac verification failed", err))
		return
	}

	var n types.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationInvalidJSON,
			"malformed JSON in request body",
			err,
		))
		return
	}
	if n.Kind == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingKind,
			"message_type is required",
			nil,
		))
		return
	}

	res, delivery, err := h.Process(ctx, n)
	if err != nil {
		metrics.DeliveryFailures.Inc()
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: relayResponse{
		Message:     res.Text,
		Environment: res.Environment,
		Delivery:    delivery,
	}})
}

// Process runs a decoded notification through the render, route, deliver
// pipeline. It is shared by the HTTP handler and the CLI ping harness.
//
// A rendering failure does not abort the pipeline: a degraded fallback
// message naming the kind is substituted and delivery continues, because a
// best-effort message beats a dropped notification for live event updates.
// The raw payload is logged for postmortem.
func (h *Handler) Process(ctx context.Context, n types.Notification) (render.Result, slack.DeliveryResult, error) {
	metrics.NotificationsReceived.WithLabelValues(n.Kind).Inc()

	res, err := h.renderer.Render(n, h.now())
	if err != nil {
		metrics.RenderFallbacks.Inc()
		raw, _ := json.Marshal(n.Data)
		h.logger.ErrorContext(ctx, "render failed, sending fallback message",
			"kind", n.Kind,
			"error", err,
			"raw_data", string(raw),
		)
		res.Text = fallbackMessage(n.Kind)
	}

	url := h.destinations.For(res.Environment)
	h.logger.InfoContext(ctx, "relaying notification",
		"kind", n.Kind,
		"environment", string(res.Environment),
	)

	delivery, err := h.deliverer.Post(ctx, url, res.Text)
	if err != nil {
		return res, slack.DeliveryResult{}, err
	}

	metrics.MessagesRelayed.WithLabelValues(string(res.Environment)).Inc()
	return res, delivery, nil
}

// fallbackMessage is the degraded text sent when a recognized kind's payload
// turned out to be malformed.
func fallbackMessage(kind string) string {
	return fmt.Sprintf("Couldn't make sense of a %s notification, check the TBA feed", kind)
}

// requireJSON rejects requests whose declared content type is not JSON.
func requireJSON(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil || mediaType != "application/json" {
		return types.NewAppError(
			types.ErrCodeValidationWrongMediaType,
			"content type must be application/json",
			err,
		)
	}
	return nil
}
