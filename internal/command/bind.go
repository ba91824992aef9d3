package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/scpsl-tools/slbind/internal/models"
	"github.com/scpsl-tools/slbind/internal/storage"
)

// Bind command replies.
const (
	replyNotAdmin      = "权限不足，此命令仅限管理员使用"
	replyOperationFail = "❌ 操作失败，请检查日志"
	replyExists        = "ℹ️ 该服务器信息已存在"
	replyNoMatch       = "ℹ️ 未找到匹配的服务器信息"

	usageHelp = "SCPSL服务器绑定命令使用指南：\n" +
		"<1>添加服务器：/绑定服务器 Add <serverKey> <accountId> [Port(可选)]\n" +
		"<2>移除服务器：/绑定服务器 Remove <serverKey> <accountId>\n" +
		"<3>检查服务器：/绑定服务器 Check <serverKey> <accountId>\n"
)

// Authorizer decides whether a user may manage group bindings.
type Authorizer interface {
	IsAdmin(userID string) bool
}

// BindHandler manages the per-group server bindings.
// Command format: /绑定服务器 [Add/Remove/Check] [serverKey] [accountId] [Port(可选)]
type BindHandler struct {
	store *storage.Store
	auth  Authorizer
}

// NewBindHandler builds the binding management handler.
func NewBindHandler(store *storage.Store, auth Authorizer) *BindHandler {
	return &BindHandler{store: store, auth: auth}
}

// Command implements Handler.
func (h *BindHandler) Command() string { return "绑定服务器" }

// Description implements Handler.
func (h *BindHandler) Description() string { return "SCP:SL服务器管理(仅限群管理)" }

// Handle parses the subcommand and applies it to the caller's group.
func (h *BindHandler) Handle(_ context.Context, req models.CommandRequest) string {
	if !h.auth.IsAdmin(req.UserID) {
		return replyNotAdmin
	}

	parts := strings.Fields(req.Params)
	if len(parts) < 1 {
		return usageHelp
	}

	switch strings.ToLower(parts[0]) {
	case "add":
		if len(parts) < 3 {
			return "⚠️ 参数错误！格式：/绑定服务器 Add serverKey accountId [Port]"
		}
		port := ""
		if len(parts) >= 4 {
			port = parts[3]
		}
		return h.add(req.GroupOpenID, parts[1], parts[2], port)

	case "remove":
		if len(parts) != 3 {
			return "⚠️ 参数错误！格式：/绑定服务器 Remove serverKey accountId"
		}
		return h.remove(req.GroupOpenID, parts[1], parts[2])

	case "check":
		if len(parts) != 3 {
			return "⚠️ 参数错误！格式：/绑定服务器 Check serverKey accountId"
		}
		return h.check(req.GroupOpenID, parts[1], parts[2])

	default:
		return usageHelp
	}
}

func (h *BindHandler) add(group, key, accountID, port string) string {
	res, err := h.store.Add(group, key, accountID, port)
	if err != nil {
		log.Error().Err(err).Str("group", group).Msg("Failed to add binding")
		return replyOperationFail
	}

	if res == storage.AlreadyExists {
		return replyExists
	}

	reply := fmt.Sprintf("✅ 已添加服务器\nKey: %s\nAccountID: %s", key, accountID)
	if port != "" {
		reply += "\nPort: " + port
	}

	return reply
}

func (h *BindHandler) remove(group, key, accountID string) string {
	res, err := h.store.Remove(group, key, accountID)
	if err != nil {
		log.Error().Err(err).Str("group", group).Msg("Failed to remove binding")
		return replyOperationFail
	}

	if res == storage.NotFound {
		return replyNoMatch
	}

	return fmt.Sprintf("✅ 已移除服务器\nKey: %s\nAccountID: %s", key, accountID)
}

func (h *BindHandler) check(group, key, accountID string) string {
	exists, err := h.store.Check(group, key, accountID)
	if err != nil {
		log.Error().Err(err).Str("group", group).Msg("Failed to check binding")
		return replyOperationFail
	}

	if exists {
		return fmt.Sprintf("🟢 服务器存在\nKey: %s\nAccountID: %s", key, accountID)
	}

	return fmt.Sprintf("🔴 服务器不存在\nKey: %s\nAccountID: %s", key, accountID)
}
