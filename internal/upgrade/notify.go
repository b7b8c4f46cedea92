package upgrade

import (
	"sync/atomic"

	"github.com/chroniclelabs/chronicle/backend/internal/logger"
)

// NotificationGate sends the skip-version alert at most once per process
// lifetime. The guard is owned by the gate instance, not a package-level
// slot, and the check-and-set is atomic so concurrent callers cannot
// double-send.
type NotificationGate struct {
	sent   atomic.Bool
	sender MailSender
	logger logger.Logger
}

// NewNotificationGate creates a gate around the given sender.
func NewNotificationGate(sender MailSender, logger logger.Logger) *NotificationGate {
	return &NotificationGate{
		sender: sender,
		logger: logger,
	}
}

// NotifyOnce sends the mail unless one was already sent. A failed send
// clears the guard again so a later run may retry; the failure is logged
// and never propagated.
func (g *NotificationGate) NotifyOnce(from, to, subject, htmlBody string) {
	if !g.sent.CompareAndSwap(false, true) {
		g.logger.LogDebug("Skip-version notification already sent, not sending again", nil)
		return
	}

	if err := g.sender.Send(from, to, subject, htmlBody); err != nil {
		g.sent.Store(false)
		g.logger.LogError(err, "Failed to send skip-version notification, will retry on a later run")
		return
	}

	g.logger.LogInfo("Sent skip-version notification", map[string]interface{}{
		"to": to,
	})
}
