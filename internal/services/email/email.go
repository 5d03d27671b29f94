// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

// Package email sends outbound mail via SMTP.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"codeberg.org/avollmer/taskmate/internal/config"
	"codeberg.org/avollmer/taskmate/internal/i18n"
	"codeberg.org/avollmer/taskmate/internal/services/recovery"
	"github.com/wneessen/go-mail"
)

// Service handles email delivery.
type Service struct {
	cfg *config.SMTPConfig
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{cfg: cfg}, nil
}

// SendOTP delivers a one-time code for password recovery. Subject and body
// are localized from the request context.
func (s *Service) SendOTP(ctx context.Context, to, code string) error {
	subject := i18n.T(ctx, "email_otp_subject")
	body := i18n.TData(ctx, "email_otp_body", map[string]any{
		"Code":    code,
		"Minutes": int(recovery.CodeTTL.Minutes()),
	})

	return s.Send(subject, body, to)
}

// Send sends a plain-text email via SMTP using go-mail. The call blocks
// until the transport accepted or rejected the message.
func (s *Service) Send(subject, body string, to ...string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to...); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// Configure TLS based on config and port
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Use implicit TLS (SSL) for port 465, STARTTLS for others
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

// LogNotifier is a development fallback that logs codes instead of mailing
// them. Used when no SMTP host is configured.
type LogNotifier struct{}

// SendOTP logs the code at info level.
func (LogNotifier) SendOTP(_ context.Context, to, code string) error {
	slog.Info("otp_code (smtp not configured)", "to", to, "code", code)
	return nil
}
