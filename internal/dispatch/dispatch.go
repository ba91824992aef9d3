// Package dispatch aggregates the live status of every server bound to
// a group. It fans one remote query out per distinct binding tuple and
// joins the per-target results back in enumeration order.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/scpsl-tools/slbind/internal/metrics"
	"github.com/scpsl-tools/slbind/internal/models"
	"github.com/scpsl-tools/slbind/internal/report"
	"github.com/scpsl-tools/slbind/internal/scpsl"
	"github.com/scpsl-tools/slbind/internal/storage"
)

// Group-level replies.
const (
	replyNotBound    = "⚠️ 本群未绑定服务器\n请先使用「/绑定服务器 Add」命令"
	replyNoBindings  = "⚠️ 本群绑定的服务器信息为空"
	replyAllFailed   = "❌ 所有服务器查询失败"
	replySystemError = "❌ 系统错误，请稍后再试"
)

// Dispatcher runs the query-and-render pipeline for one group at a time.
type Dispatcher struct {
	store  *storage.Store
	client *scpsl.Client
}

// New builds a Dispatcher over the binding store and the API client.
func New(store *storage.Store, client *scpsl.Client) *Dispatcher {
	return &Dispatcher{store: store, client: client}
}

// Query aggregates the status of every server bound to the group and
// returns the full reply text. Each distinct (key, accountID, port)
// tuple becomes one concurrent remote query; a failing target never
// delays or cancels its siblings, and the joined output preserves the
// stored enumeration order, not completion order.
func (d *Dispatcher) Query(ctx context.Context, group string) string {
	if !d.store.Bound(group) {
		return replyNotBound
	}

	bindings, err := d.store.List(group)
	if err != nil {
		log.Error().Err(err).Str("group", group).Msg("Failed to load bindings")
		return replySystemError
	}

	targets := dedupe(bindings)
	if len(targets) == 0 {
		return replyNoBindings
	}

	// One result slot per target; slots are joined after all targets
	// complete so output order matches enumeration order.
	results := make([][]string, len(targets))

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(slot int, b models.Binding) {
			defer wg.Done()
			results[slot] = d.queryTarget(ctx, b)
		}(i, target)
	}
	wg.Wait()

	var blocks []string
	for _, r := range results {
		blocks = append(blocks, r...)
	}

	if len(blocks) == 0 {
		return replyAllFailed
	}

	return strings.Join(blocks, "\n\n")
}

// queryTarget performs one remote query and classifies its outcome.
// Every failure collapses to a single tagged line; only diagnostics go
// to the log.
func (d *Dispatcher) queryTarget(ctx context.Context, b models.Binding) []string {
	resp, err := d.client.ServerInfo(ctx, b.ServerKey, b.AccountID)
	if err == nil {
		metrics.Queries.WithLabelValues(metrics.OutcomeOK).Inc()
		return report.Render(b.ServerKey, b.AccountID, resp, b.Port)
	}

	var (
		statusErr *scpsl.StatusError
		formatErr *scpsl.FormatError
		netErr    net.Error
	)

	switch {
	case errors.As(err, &statusErr):
		metrics.Queries.WithLabelValues(metrics.OutcomeHTTPError).Inc()
		return []string{fmt.Sprintf("🔴 %s 请求失败(HTTP %d)", b.ServerKey, statusErr.Code)}

	case errors.As(err, &formatErr):
		metrics.Queries.WithLabelValues(metrics.OutcomeBadFormat).Inc()
		return []string{fmt.Sprintf("⚠️ %s 返回数据格式异常", b.ServerKey)}

	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		metrics.Queries.WithLabelValues(metrics.OutcomeTimeout).Inc()
		return []string{fmt.Sprintf("⏳ %s 请求超时", b.ServerKey)}

	default:
		metrics.Queries.WithLabelValues(metrics.OutcomeError).Inc()
		log.Error().Err(err).Str("account_id", b.AccountID).Msg("Status query failed")
		return []string{fmt.Sprintf("⚠️ %s 查询异常: %T", b.ServerKey, err)}
	}
}

// dedupe drops exact-duplicate tuples while keeping first-seen order.
// Unlike the store's identity check this compares the full tuple: the
// same account with two different ports is two distinct targets.
func dedupe(bindings []models.Binding) []models.Binding {
	seen := make(map[models.Binding]struct{}, len(bindings))
	targets := make([]models.Binding, 0, len(bindings))
	for _, b := range bindings {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		targets = append(targets, b)
	}

	return targets
}
