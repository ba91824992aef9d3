package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scpsl-tools/slbind/internal/models"
)

type panicHandler struct{}

func (panicHandler) Command() string     { return "炸" }
func (panicHandler) Description() string { return "always panics" }
func (panicHandler) Handle(context.Context, models.CommandRequest) string {
	panic("kaboom")
}

type fakeQuerier struct {
	group string
	reply string
}

func (f *fakeQuerier) Query(_ context.Context, group string) string {
	f.group = group
	return f.reply
}

func TestRouterUnknownCommand(t *testing.T) {
	r := NewRouter()

	out := r.Dispatch(context.Background(), models.CommandRequest{Command: "nope"})
	assert.Equal(t, replyUnknownCommand, out)
}

func TestRouterRecoversFromPanic(t *testing.T) {
	r := NewRouter()
	r.Register(panicHandler{})

	out := r.Dispatch(context.Background(), models.CommandRequest{Command: "炸"})
	assert.Equal(t, replySystemError, out)
}

func TestQueryHandlerPassesGroup(t *testing.T) {
	q := &fakeQuerier{reply: "status report"}
	h := NewQueryHandler(q)

	out := h.Handle(context.Background(), models.CommandRequest{
		Command:     "CX",
		GroupOpenID: "group-42",
	})

	assert.Equal(t, "status report", out)
	assert.Equal(t, "group-42", q.group)
}
