package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/templra/almacen-api/internal/application/auth"
)

// Verificar en tiempo de compilación que OTPClient implementa OTPService.
var _ auth.OTPService = (*OTPClient)(nil)

// OTPClient adaptador del servicio externo de códigos OTP por correo. El
// proveedor expone generate y verify autenticados con x-api-key; el cuerpo de
// su respuesta se devuelve tal cual al caller.
type OTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOTPClient construye el cliente contra el servicio configurado.
func NewOTPClient(baseURL, apiKey string) *OTPClient {
	return &OTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type otpRequest struct {
	Method  string `json:"method"`
	Contact string `json:"contact"`
	OTP     string `json:"otp,omitempty"`
}

// Send solicita el envío de un OTP al correo dado.
func (c *OTPClient) Send(email string) (json.RawMessage, error) {
	return c.post("/api/otp/generate", otpRequest{Method: "EMAIL", Contact: email})
}

// Validate verifica el OTP contra el proveedor.
func (c *OTPClient) Validate(email, code string) (json.RawMessage, error) {
	return c.post("/api/otp/verify", otpRequest{Method: "EMAIL", Contact: email, OTP: code})
}

func (c *OTPClient) post(path string, payload otpRequest) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serializar petición OTP: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("crear petición OTP: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llamar servicio OTP: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("leer respuesta OTP: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("servicio OTP status %d: %s", resp.StatusCode, string(raw))
	}
	return json.RawMessage(raw), nil
}
