package captcha

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/templra/almacen-api/internal/application/auth"
)

// Verificar en tiempo de compilación que Client implementa CaptchaVerifier.
var _ auth.CaptchaVerifier = (*Client)(nil)

// Client adaptador del servicio de verificación de captcha (tipo reCAPTCHA).
// Usa net/http de la librería estándar; el protocolo es un GET con secret y
// response en la query.
type Client struct {
	verifyURL  string
	secret     string
	httpClient *http.Client
}

// NewClient construye el verificador contra el endpoint configurado.
func NewClient(verifyURL, secret string) *Client {
	return &Client{
		verifyURL: verifyURL,
		secret:    secret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type verifyResponse struct {
	Success bool `json:"success"`
}

// Verify valida el token resuelto por el cliente. Devuelve false sin error
// cuando el proveedor rechaza el token.
func (c *Client) Verify(token string) (bool, error) {
	params := url.Values{}
	params.Set("secret", c.secret)
	params.Set("response", token)

	resp, err := c.httpClient.Get(c.verifyURL + "?" + params.Encode())
	if err != nil {
		return false, fmt.Errorf("verificar captcha: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("verificar captcha: status %d", resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decodificar respuesta de captcha: %w", err)
	}
	return body.Success, nil
}
