package command

import (
	"context"

	"github.com/scpsl-tools/slbind/internal/models"
)

// StatusQuerier aggregates the live status of a group's servers into
// reply text. Implemented by dispatch.Dispatcher.
type StatusQuerier interface {
	Query(ctx context.Context, group string) string
}

// QueryHandler serves the status query command. It takes no arguments
// and reports every server bound to the caller's group.
type QueryHandler struct {
	querier StatusQuerier
}

// NewQueryHandler builds the status query handler.
func NewQueryHandler(querier StatusQuerier) *QueryHandler {
	return &QueryHandler{querier: querier}
}

// Command implements Handler.
func (h *QueryHandler) Command() string { return "CX" }

// Description implements Handler.
func (h *QueryHandler) Description() string { return "查询SCP:SL服务器状态" }

// Handle implements Handler.
func (h *QueryHandler) Handle(ctx context.Context, req models.CommandRequest) string {
	return h.querier.Query(ctx, req.GroupOpenID)
}
