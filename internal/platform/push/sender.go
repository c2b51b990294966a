package push

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tiffinly/dabba/pkg/logctx"
)

// Sender delivers best-effort push notifications. Failures are never
// propagated to business flows; callers log and move on.
type Sender interface {
	Send(ctx context.Context, tokens []string, title, body string) error
}

// logSender is the default Sender: it records the notification instead of
// dispatching it. Real gateways (FCM/APNs) plug in behind the same interface.
type logSender struct {
	log *zap.SugaredLogger
}

func NewLogSender(log *zap.SugaredLogger) Sender {
	return &logSender{log: log}
}

func (s *logSender) Send(ctx context.Context, tokens []string, title, body string) error {
	logctx.FromCtx(ctx, s.log).Infow("push_notification",
		"tokens", len(tokens),
		"title", title,
		"body", body,
	)
	return nil
}

var Module = fx.Options(
	fx.Provide(NewLogSender),
)
