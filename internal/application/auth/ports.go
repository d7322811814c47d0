package auth

import "encoding/json"

// Puertos hacia los servicios externos del flujo de autenticación. Las
// implementaciones viven en infrastructure; los tests usan dobles.

// CaptchaVerifier verifica el token de captcha resuelto por el cliente.
type CaptchaVerifier interface {
	Verify(token string) (bool, error)
}

// OTPService genera y verifica códigos OTP por correo contra el proveedor
// externo. El cuerpo de la respuesta del proveedor se devuelve tal cual.
type OTPService interface {
	Send(email string) (json.RawMessage, error)
	Validate(email, code string) (json.RawMessage, error)
}

// EmailSender envía correo transaccional basado en plantillas dinámicas.
type EmailSender interface {
	Send(to, templateID string, params map[string]string) error
}
