package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/templra/almacen-api/internal/application/auth"
)

// Verificar en tiempo de compilación que SendgridSender implementa EmailSender.
var _ auth.EmailSender = (*SendgridSender)(nil)

const sendgridSendURL = "https://api.sendgrid.com/v3/mail/send"

// SendgridSender envío de correo transaccional vía SendGrid con plantillas
// dinámicas. Usa la API REST directamente con net/http.
type SendgridSender struct {
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewSendgridSender construye el remitente con la API key y el correo origen.
func NewSendgridSender(apiKey, from string) *SendgridSender {
	return &SendgridSender{
		apiKey: apiKey,
		from:   from,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendgridAddress struct {
	Email string `json:"email"`
}

type sendgridPersonalization struct {
	To                  []sendgridAddress `json:"to"`
	DynamicTemplateData map[string]string `json:"dynamic_template_data,omitempty"`
}

type sendgridRequest struct {
	From             sendgridAddress           `json:"from"`
	Personalizations []sendgridPersonalization `json:"personalizations"`
	TemplateID       string                    `json:"template_id"`
}

// Send envía la plantilla dinámica al destinatario con los parámetros dados.
func (s *SendgridSender) Send(to, templateID string, params map[string]string) error {
	payload := sendgridRequest{
		From: sendgridAddress{Email: s.from},
		Personalizations: []sendgridPersonalization{{
			To:                  []sendgridAddress{{Email: to}},
			DynamicTemplateData: params,
		}},
		TemplateID: templateID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar correo: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, sendgridSendURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("crear petición de correo: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}
