// Package command implements the chat command handlers and the router
// that dispatches incoming commands to them.
package command

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/scpsl-tools/slbind/internal/metrics"
	"github.com/scpsl-tools/slbind/internal/models"
)

// Replies shared by the router.
const (
	replyUnknownCommand = "⚠️ 未知命令"
	replySystemError    = "❌ 系统错误，请稍后再试"
)

// Handler processes one chat command and returns the reply text.
// Handlers never return errors: every failure mode maps to a fixed
// user-facing reply, and diagnostic detail goes to the log only.
type Handler interface {
	Command() string
	Description() string
	Handle(ctx context.Context, req models.CommandRequest) string
}

// Router dispatches command requests to registered handlers.
type Router struct {
	handlers map[string]Handler
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]Handler)}
}

// Register adds a handler, keyed by its command name.
func (r *Router) Register(h Handler) {
	r.handlers[h.Command()] = h
}

// Dispatch routes the request to its handler. A panicking handler is
// logged with full detail and reported to the user as a generic
// opaque failure; nothing internal is ever surfaced.
func (r *Router) Dispatch(ctx context.Context, req models.CommandRequest) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Interface("panic", rec).
				Str("command", req.Command).
				Str("group", req.GroupOpenID).
				Msg("Command handler panicked")

			reply = replySystemError
		}
	}()

	handler, ok := r.handlers[req.Command]
	if !ok {
		return replyUnknownCommand
	}

	metrics.Commands.WithLabelValues(req.Command).Inc()

	return handler.Handle(ctx, req)
}
