// Package notify delivers VIP lead alerts to the SDR team over SMTP.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
)

// SMTPNotifier emails the SDR booking summary whenever a lead crosses the
// VIP threshold. It implements core.Notifier.
type SMTPNotifier struct {
	addr     string
	username string
	password string
	from     string
	to       []string
	logger   *zap.Logger
}

// NewSMTPNotifier creates a new SMTP notifier
func NewSMTPNotifier(addr, username, password, from string, to []string, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		addr:     addr,
		username: username,
		password: password,
		from:     from,
		to:       to,
		logger:   logger,
	}
}

// NotifyVIPLead sends the booking summary for a lead above the VIP threshold
func (n *SMTPNotifier) NotifyVIPLead(_ context.Context, lead *core.Lead, summary string) error {
	if len(n.to) == 0 {
		return fmt.Errorf("no alert recipients configured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(n.to, ", "))
	fmt.Fprintf(&msg, "Subject: [VIP LEAD] %s - score %.2f\r\n", lead.Labels.Tier, lead.Scores.LeadScore)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(summary)

	var auth sasl.Client
	if n.username != "" {
		auth = sasl.NewPlainClient("", n.username, n.password)
	}

	if err := smtp.SendMail(n.addr, auth, n.from, n.to, strings.NewReader(msg.String())); err != nil {
		return fmt.Errorf("failed to send VIP alert: %w", err)
	}

	n.logger.Info("VIP alert sent",
		zap.String("lead_id", lead.ID),
		zap.Strings("recipients", n.to))
	return nil
}
