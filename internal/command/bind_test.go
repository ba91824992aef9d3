package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scpsl-tools/slbind/internal/models"
	"github.com/scpsl-tools/slbind/internal/storage"
)

type fakeAuth struct {
	admin bool
}

func (f fakeAuth) IsAdmin(string) bool { return f.admin }

func newBindHandler(t *testing.T) *BindHandler {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	return NewBindHandler(store, fakeAuth{admin: true})
}

func bindReq(params string) models.CommandRequest {
	return models.CommandRequest{
		Command:     "绑定服务器",
		Params:      params,
		UserID:      "admin-1",
		GroupOpenID: "group-1",
	}
}

func TestBindDeniesNonAdmin(t *testing.T) {
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	h := NewBindHandler(store, fakeAuth{admin: false})

	out := h.Handle(context.Background(), bindReq("add key1 acc1"))
	assert.Equal(t, replyNotAdmin, out)
}

func TestBindUsageHelp(t *testing.T) {
	h := newBindHandler(t)

	assert.Equal(t, usageHelp, h.Handle(context.Background(), bindReq("")))
	assert.Equal(t, usageHelp, h.Handle(context.Background(), bindReq("frobnicate key1 acc1")))
}

func TestBindArgumentErrors(t *testing.T) {
	h := newBindHandler(t)

	out := h.Handle(context.Background(), bindReq("add key1"))
	assert.Contains(t, out, "参数错误")

	out = h.Handle(context.Background(), bindReq("remove key1"))
	assert.Contains(t, out, "参数错误")

	out = h.Handle(context.Background(), bindReq("check key1 acc1 extra"))
	assert.Contains(t, out, "参数错误")
}

func TestBindAddRemoveCheckFlow(t *testing.T) {
	h := newBindHandler(t)
	ctx := context.Background()

	out := h.Handle(ctx, bindReq("add key1 acc1 7777"))
	assert.Equal(t, "✅ 已添加服务器\nKey: key1\nAccountID: acc1\nPort: 7777", out)

	// Mode token is case-insensitive, duplicate identity is a no-op.
	out = h.Handle(ctx, bindReq("Add key1 acc1 8888"))
	assert.Equal(t, replyExists, out)

	out = h.Handle(ctx, bindReq("check key1 acc1"))
	assert.Equal(t, "🟢 服务器存在\nKey: key1\nAccountID: acc1", out)

	out = h.Handle(ctx, bindReq("remove key1 acc1"))
	assert.Equal(t, "✅ 已移除服务器\nKey: key1\nAccountID: acc1", out)

	out = h.Handle(ctx, bindReq("remove key1 acc1"))
	assert.Equal(t, replyNoMatch, out)

	out = h.Handle(ctx, bindReq("check key1 acc1"))
	assert.Equal(t, "🔴 服务器不存在\nKey: key1\nAccountID: acc1", out)
}

func TestBindAddWithoutPort(t *testing.T) {
	h := newBindHandler(t)

	out := h.Handle(context.Background(), bindReq("add key1 acc1"))
	assert.Equal(t, "✅ 已添加服务器\nKey: key1\nAccountID: acc1", out)
}
