// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/sitetrack/internal/monitoring"
	"github.com/olegiv/sitetrack/internal/service"
)

// recipientList accepts either a single address string or a JSON array
// of addresses.
type recipientList []string

func (rl *recipientList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*rl = recipientList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("to must be a string or an array of strings")
	}
	*rl = recipientList(many)
	return nil
}

// SendEmailRequest is the request body for the one-shot email endpoint.
type SendEmailRequest struct {
	To       recipientList `json:"to"`
	From     string        `json:"from"`
	Subject  string        `json:"subject"`
	HTMLBody string        `json:"htmlBody"`
}

// SendEmail handles POST /api/v1/email/send. Missing SMTP credentials are a
// configuration error, not a transport failure; transport failures are
// surfaced verbatim and never retried.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	to := make([]string, 0, len(req.To))
	for _, addr := range req.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	if len(to) == 0 {
		WriteBadRequest(w, "At least one recipient is required")
		return
	}

	err := h.mailer.Send(r.Context(), service.SendRequest{
		To:      to,
		From:    req.From,
		Subject: req.Subject,
		Body:    req.HTMLBody,
	})
	if err != nil {
		monitoring.EmailsSent.WithLabelValues("error").Inc()
		if errors.Is(err, service.ErrSMTPNotConfigured) {
			WriteError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		slog.Error("failed to send email", "error", err)
		WriteInternalError(w, err.Error())
		return
	}

	monitoring.EmailsSent.WithLabelValues("ok").Inc()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
