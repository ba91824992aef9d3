// Package report renders one status API response into the per-server
// text blocks sent back to the chat group.
package report

import (
	"fmt"
	"strings"

	"github.com/scpsl-tools/slbind/internal/scpsl"
)

const (
	unknownField   = "未知"
	maxListedNames = 10
)

// Render turns a decoded API response into rendered report blocks, one
// multi-line string per kept server entry. portFilter narrows the
// report to a single port; an empty filter keeps every entry.
// Special cases (request-level failure, no data, filtered-out port)
// collapse to a single one-line block.
func Render(serverKey, accountID string, resp *scpsl.Response, portFilter string) []string {
	if !resp.Success {
		return []string{fmt.Sprintf("🔴 %s 请求失败(API返回失败)", serverKey)}
	}

	if len(resp.Servers) == 0 {
		return []string{fmt.Sprintf("🟡 %s 无服务器数据", serverKey)}
	}

	var blocks []string
	for i, raw := range resp.Servers {
		srv, ok := scpsl.DecodeServer(raw)
		if !ok {
			continue
		}

		port := srv.Port.String()
		if portFilter != "" && port != portFilter {
			continue
		}

		blocks = append(blocks, renderServer(i+1, accountID, port, srv))
	}

	if portFilter != "" && len(blocks) == 0 {
		return []string{fmt.Sprintf("🟡 未找到端口 %s 的服务器数据", portFilter)}
	}

	return blocks
}

// renderServer builds the fixed-order block for one server entry.
func renderServer(index int, accountID, port string, srv scpsl.Server) string {
	lines := []string{
		fmt.Sprintf("🖥️ 服务器%d [%s]", index, accountID),
		"  🏷️ 名称: " + scpsl.DecodeInfo(srv.Info),
		"  🆔 ID: " + orUnknown(srv.ID.String()),
		"  🕒 最后在线: " + orUnknown(srv.LastOnline),
		"  🔌 端口: " + port,
		"  📦 版本: " + orUnknown(srv.Version),
		"  👥 人数: " + orDefault(srv.Players, "0/0"),
	}

	if flags := renderFlags(srv); flags != "" {
		lines = append(lines, flags)
	}

	if srv.Online {
		lines = append(lines, renderRoster(srv.PlayersList)...)
	}

	return strings.Join(lines, "\n")
}

// renderFlags lists the feature flags that are set, or returns "" when
// the line should be omitted entirely.
func renderFlags(srv scpsl.Server) string {
	var flags []string
	if srv.FF {
		flags = append(flags, "💥友伤")
	}
	if srv.WL {
		flags = append(flags, "🔒白名单")
	}
	if srv.Modded {
		flags = append(flags, "🛠️模组服")
	}

	if len(flags) == 0 {
		return ""
	}

	return "  🏷️ 特性: " + strings.Join(flags, " | ")
}

// renderRoster lists up to maxListedNames players with a trailing
// summary for the rest. Only called for online servers.
func renderRoster(players []scpsl.Player) []string {
	if len(players) == 0 {
		return []string{"  🏜️ 当前无玩家在线"}
	}

	lines := []string{"  🎮 玩家列表:"}
	for i, p := range players {
		if i == maxListedNames {
			break
		}
		lines = append(lines, fmt.Sprintf("    %2d. %s", i+1, orUnknown(p.Nickname)))
	}

	if rest := len(players) - maxListedNames; rest > 0 {
		lines = append(lines, fmt.Sprintf("    ...等%d人", rest))
	}

	return lines
}

func orUnknown(s string) string {
	return orDefault(s, unknownField)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}

	return s
}
