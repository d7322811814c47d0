package auth

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/templra/almacen-api/internal/application/dto"
	"github.com/templra/almacen-api/internal/domain"
	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/exceptions"
	"github.com/templra/almacen-api/internal/domain/repository"
	"github.com/templra/almacen-api/pkg/jwt"
	"github.com/templra/almacen-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// passwordMaxAgeDays vigencia de la contraseña cuando el usuario tiene
// rotación obligatoria (password_change).
const passwordMaxAgeDays = 30

// AuthUseCase casos de uso de autenticación: login, registro, recuperación de
// contraseña y códigos OTP.
type AuthUseCase struct {
	users              repository.UserRepository
	audits             repository.LoginAuditRepository
	captcha            CaptchaVerifier
	otp                OTPService
	email              EmailSender
	jwtCfg             JWTConfig
	bcryptCost         int
	recoveryTemplateID string
	log                *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	users repository.UserRepository,
	audits repository.LoginAuditRepository,
	captcha CaptchaVerifier,
	otp OTPService,
	email EmailSender,
	jwtCfg JWTConfig,
	bcryptCost int,
	recoveryTemplateID string,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:              users,
		audits:             audits,
		captcha:            captcha,
		otp:                otp,
		email:              email,
		jwtCfg:             jwtCfg,
		bcryptCost:         bcryptCost,
		recoveryTemplateID: recoveryTemplateID,
		log:                log,
	}
}

// Login valida credenciales, vigencia de contraseña y captcha; registra la
// auditoría y emite el token de sesión. Cualquier factor fallido corta el
// flujo con su excepción y no deja rastro.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByUsername(strings.TrimSpace(in.Username))
	if err != nil {
		return nil, exceptions.Auth.ErrorFind.With(err.Error())
	}
	if user == nil {
		return nil, exceptions.Auth.NotAuth
	}
	if !user.Active {
		return nil, exceptions.Auth.UserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, exceptions.Auth.NotAuth
	}
	if user.PasswordChange && user.LastPasswordChange != nil {
		days := int(time.Since(*user.LastPasswordChange).Hours() / 24)
		if days >= passwordMaxAgeDays {
			return nil, exceptions.Auth.PasswordExpired
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, exceptions.Auth.ErrorSave.With(err.Error())
	}

	if in.Captcha == "" {
		return nil, exceptions.Auth.NotCaptcha
	}
	ok, err := uc.captcha.Verify(in.Captcha)
	if err != nil || !ok {
		return nil, exceptions.Auth.NotCaptcha
	}

	// La auditoría no bloquea el login.
	if err := uc.audits.Create(&entity.LoginAudit{
		ID:        uuid.New().String(),
		Username:  strings.TrimSpace(user.Username),
		LoginDate: time.Now(),
	}); err != nil {
		uc.log.Warn().Err(err).Str("username", user.Username).Msg("no se pudo registrar la auditoría de login")
	}

	return &dto.LoginResponse{
		Token: token,
		User: dto.LoginUser{
			Username: user.Username,
			Surname:  user.Surname,
			Name:     user.Name,
			Type:     user.Type,
			ID:       user.ID,
		},
	}, nil
}

// Register crea un usuario desde el módulo de auth. El documento llega en el
// campo code; el rol queda en el valor por defecto.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*entity.User, error) {
	if in.Password != in.PasswordRetry {
		return nil, exceptions.Auth.BadRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, exceptions.Auth.ErrorSave.With(err.Error())
	}

	surname := strings.TrimSpace(in.Surname)
	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Document:  strings.TrimSpace(in.Code),
		Name:      strings.TrimSpace(in.Name),
		Surname:   &surname,
		Username:  strings.ToLower(strings.TrimSpace(in.Username)),
		Password:  string(hash),
		Type:      entity.TypeUser,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.users.Create(user); err != nil {
		if constraint, ok := domain.IsDuplicate(err); ok {
			if strings.Contains(constraint, "username") {
				return nil, exceptions.Auth.Duplicated
			}
			return nil, exceptions.Auth.DuplicatedCode
		}
		return nil, exceptions.Auth.UserInactive.With(err.Error())
	}
	return user, nil
}

// RecoveryPassword genera un código de 4 dígitos, lo envía por correo y
// devuelve un token de recuperación con el hash del código embebido.
func (uc *AuthUseCase) RecoveryPassword(in dto.RecoveryPasswordRequest) (*dto.RecoveryPasswordResponse, error) {
	user, err := uc.users.FindByUsername(strings.TrimSpace(in.Username))
	if err != nil {
		return nil, exceptions.Auth.ErrorFind.With(err.Error())
	}
	if user == nil {
		return nil, exceptions.Auth.NotAuth
	}

	code := fmt.Sprintf("%d", rand.Intn(9999-1111+1)+1111)
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), uc.bcryptCost)
	if err != nil {
		return nil, exceptions.Auth.ErrorSave.With(err.Error())
	}

	token, err := jwt.GenerateRecovery(uc.jwtCfg.Secret, user.ID, string(codeHash), user.Username, uc.jwtCfg.Issuer)
	if err != nil {
		return nil, exceptions.Auth.ErrorSave.With(err.Error())
	}

	if err := uc.email.Send(user.Username, uc.recoveryTemplateID, map[string]string{"code": code}); err != nil {
		return nil, err
	}

	return &dto.RecoveryPasswordResponse{Token: token}, nil
}

// RecoveryPasswordChange verifica el token de recuperación y el código
// recibido por correo, y guarda la contraseña nueva.
func (uc *AuthUseCase) RecoveryPasswordChange(in dto.RecoveryPasswordChangeRequest) (bool, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, in.Token)
	if err != nil {
		return false, exceptions.Auth.NotAuth
	}

	if err := bcrypt.CompareHashAndPassword([]byte(claims.Code), []byte(in.Code)); err != nil {
		return false, exceptions.Auth.NotAuth
	}
	if in.Password != in.PasswordRepeat {
		return false, exceptions.Auth.BadRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return false, exceptions.Auth.ErrorUpdate.With(err.Error())
	}

	user, err := uc.users.FindByID(claims.UserID)
	if err != nil {
		return false, exceptions.Auth.ErrorFind.With(err.Error())
	}
	if user == nil || user.Username != claims.Email {
		return false, exceptions.Auth.NotFound
	}

	if err := uc.users.UpdatePassword(user.ID, string(hash)); err != nil {
		return false, exceptions.Auth.ErrorUpdate.With(err.Error())
	}
	return true, nil
}

// User resuelve el usuario activo de un token de sesión; lo usa el
// middleware en cada petición.
func (uc *AuthUseCase) User(id string) (*entity.User, error) {
	user, err := uc.users.FindByID(id)
	if err != nil {
		return nil, exceptions.Auth.UserInactive.With(err.Error())
	}
	if user == nil || !user.Active {
		return nil, exceptions.Auth.UserInactive
	}
	return user, nil
}

// SendCode solicita al proveedor externo el envío de un OTP al correo.
// El cuerpo del proveedor se devuelve tal cual.
func (uc *AuthUseCase) SendCode(email string) (json.RawMessage, error) {
	return uc.otp.Send(email)
}

// ValidateCode verifica el OTP contra el proveedor externo.
func (uc *AuthUseCase) ValidateCode(email, code string) (json.RawMessage, error) {
	return uc.otp.Validate(email, code)
}
