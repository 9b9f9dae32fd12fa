package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"okx-signal-bot/internal/interfaces"
	"okx-signal-bot/internal/logger"
	"okx-signal-bot/internal/store"
	"okx-signal-bot/internal/trace"
)

// update is the subset of the Telegram webhook payload we consume.
type update struct {
	Message *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

// Handler receives Telegram webhook updates. The configured trigger
// text starts a decision cycle; any other text is answered by the
// oracle directly. Telegram always gets a 200 so the webhook is never
// dropped, and the user always gets a reply for every trigger.
type Handler struct {
	cfg      *store.Config
	engine   interfaces.Engine
	oracle   interfaces.Oracle
	notifier interfaces.Notifier
}

func NewHandler(cfg *store.Config, engine interfaces.Engine, oracle interfaces.Oracle, notifier interfaces.Notifier) *Handler {
	return &Handler{cfg: cfg, engine: engine, oracle: oracle, notifier: notifier}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "telegram.webhook")
	defer span.End()

	defer w.WriteHeader(http.StatusOK)

	var u update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil || u.Message == nil {
		return
	}

	chatID := u.Message.Chat.ID
	text := strings.TrimSpace(u.Message.Text)

	if text == h.cfg.Telegram.Trigger {
		h.runCycle(ctx, chatID)
		return
	}
	h.chat(ctx, chatID, text)
}

func (h *Handler) runCycle(ctx context.Context, chatID int64) {
	if err := h.notifier.SendMessage(ctx, chatID, RenderAnalyzing(h.cfg)); err != nil {
		logger.Warn(ctx, "Failed to send progress message", "chat_id", chatID, "error", err)
	}

	outcome := h.engine.Run(ctx)

	if err := h.notifier.SendMessage(ctx, chatID, RenderOutcome(outcome, h.cfg.Gate.ConfidenceThreshold)); err != nil {
		logger.ErrorWithErr(ctx, "Failed to deliver trade report", err, "chat_id", chatID)
	}
}

// chat forwards non-trigger text to the oracle and relays its reply.
func (h *Handler) chat(ctx context.Context, chatID int64, text string) {
	if text == "" {
		return
	}

	reply, err := h.oracle.Complete(ctx, text)
	if err != nil || strings.TrimSpace(reply) == "" {
		reply = "Sorry, I could not process that right now."
	}
	if err := h.notifier.SendMessage(ctx, chatID, reply); err != nil {
		logger.Warn(ctx, "Failed to send chat reply", "chat_id", chatID, "error", err)
	}
}
