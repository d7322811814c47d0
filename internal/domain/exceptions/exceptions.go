// Package exceptions define el catálogo de errores de negocio por módulo.
// Cada excepción lleva el código HTTP, un título y un mensaje estables que el
// frontend usa como claves; el manejador HTTP las serializa en el sobre
// {"message": ..., "errors": {title: [message, detalles...]}}.
package exceptions

// Exception es un error de negocio con metadatos HTTP.
type Exception struct {
	HTTPCode int
	Title    string
	Message  string
	Details  []string
}

// Error implementa la interfaz error.
func (e *Exception) Error() string {
	return e.Title + ": " + e.Message
}

// With devuelve una copia de la excepción con detalles adicionales para el
// sobre de error. La tabla original nunca se muta.
func (e *Exception) With(details ...string) *Exception {
	clone := *e
	clone.Details = append(append([]string{}, e.Details...), details...)
	return &clone
}

// Is permite comparar con errors.Is contra la entrada de tabla, ignorando los
// detalles añadidos con With.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return e.HTTPCode == t.HTTPCode && e.Title == t.Title && e.Message == t.Message
}

func ex(code int, title, message string) *Exception {
	return &Exception{HTTPCode: code, Title: title, Message: message}
}

// CrudTable claves de error comunes a los módulos CRUD.
type CrudTable struct {
	BadRequest     *Exception
	NotFound       *Exception
	Duplicated     *Exception
	DuplicatedCode *Exception
	ErrorSave      *Exception
	ErrorFind      *Exception
	ErrorUpdate    *Exception
	ErrorDelete    *Exception
}

// AuthTable claves de error del módulo de autenticación.
type AuthTable struct {
	CrudTable
	NotCaptcha      *Exception
	NotAuth         *Exception
	UserInactive    *Exception
	PasswordExpired *Exception
	RolInvalid      *Exception
}

// UserTable claves de error del módulo de usuarios.
type UserTable struct {
	CrudTable
	ErrorPassword *Exception
}

// Auth tabla del módulo de autenticación.
var Auth = AuthTable{
	CrudTable: CrudTable{
		BadRequest:     ex(400, "[AUTH] BAD_REQUEST", "The data is incorrect"),
		NotFound:       ex(404, "[AUTH] NOT_FOUND", "The data not found"),
		Duplicated:     ex(409, "[AUTH] DUPLICATED", "AUTH-NO-REGISTER-EMAIL"),
		DuplicatedCode: ex(409, "[AUTH] DUPLICATED", "AUTH-NO-REGISTER-CODE"),
		ErrorSave:      ex(500, "[AUTH] ERROR_SAVE", "Error to save"),
		ErrorFind:      ex(500, "[AUTH] ERROR _FIND", "Error to find"),
		ErrorUpdate:    ex(500, "[AUTH] ERROR _UPDATE", "Error to update"),
		ErrorDelete:    ex(500, "[AUTH] ERROR _DELETE", "Error to delete"),
	},
	NotCaptcha:      ex(404, "[AUTH] NOT_FOUND", "AUTH-NO-CAPTCHA"),
	NotAuth:         ex(401, "[AUTH] NOT_AUTH", "AUTH-NO-SIGIN"),
	UserInactive:    ex(401, "[AUTH] USER_INACTIVE", "AUTH-INACTIVE"),
	PasswordExpired: ex(401, "[AUTH] PASSWORD_EXPIRED", "AUTH-PASSWORD-EXPIRED"),
	RolInvalid:      ex(403, "[AUTH] FORBIDDEN", "USER-ROL-INVALID"),
}

// User tabla del módulo de usuarios.
var User = UserTable{
	CrudTable: CrudTable{
		BadRequest:     ex(400, "[USER] BAD_REQUEST", "The data is incorrect"),
		NotFound:       ex(404, "[USER] NOT_FOUND", "The data not found"),
		Duplicated:     ex(409, "[USER] DUPLICATED", "USER-FAIL-EMAIL"),
		DuplicatedCode: ex(409, "[AUTH] DUPLICATED", "USER-FAIL-CODE"),
		ErrorSave:      ex(500, "[USER] ERROR_SAVE", "USER-NEW-FAIL"),
		ErrorFind:      ex(500, "[USER] ERROR _FIND", "Error to find"),
		ErrorUpdate:    ex(500, "[USER] ERROR _UPDATE", "USER-EDIT-FAIL"),
		ErrorDelete:    ex(500, "[USER] ERROR _DELETE", "USER-INACTIVE-FAIL"),
	},
	ErrorPassword: ex(404, "[USER] INCORRECT PASSWORD", " USER-INCORRECT-PASSWORD"),
}

// Warehouse tabla del módulo de bodegas.
var Warehouse = CrudTable{
	BadRequest:     ex(400, "[WAREHOUSE] BAD_REQUEST", "The data is incorrect"),
	NotFound:       ex(404, "[WAREHOUSE] NOT_FOUND", "The data not found"),
	Duplicated:     ex(409, "[WAREHOUSE] DUPLICATED", "WAREHOUSE-FAIL-CODE"),
	DuplicatedCode: ex(409, "[WAREHOUSE] DUPLICATED", "WAREHOUSE-FAIL-CODE"),
	ErrorSave:      ex(500, "[WAREHOUSE] ERROR_SAVE", "WAREHOUSE-NEW-FAIL"),
	ErrorFind:      ex(500, "[WAREHOUSE] ERROR _FIND", "Error to find"),
	ErrorUpdate:    ex(500, "[WAREHOUSE] ERROR _UPDATE", "WAREHOUSE-EDIT-FAIL"),
	ErrorDelete:    ex(500, "[WAREHOUSE] ERROR _DELETE", "WAREHOUSE-INACTIVE-FAIL"),
}

// Product tabla del módulo de productos.
var Product = CrudTable{
	BadRequest:     ex(400, "[PRODUCT] BAD_REQUEST", "The data is incorrect"),
	NotFound:       ex(404, "[PRODUCT] NOT_FOUND", "The data not found"),
	Duplicated:     ex(409, "[PRODUCT] DUPLICATED", "PRODUCT-FAIL-CODE"),
	DuplicatedCode: ex(409, "[PRODUCT] DUPLICATED", "PRODUCT-FAIL-CODE"),
	ErrorSave:      ex(500, "[PRODUCT] ERROR_SAVE", "PRODUCT-NEW-FAIL"),
	ErrorFind:      ex(500, "[PRODUCT] ERROR _FIND", "Error to find"),
	ErrorUpdate:    ex(500, "[PRODUCT] ERROR _UPDATE", "PRODUCT-EDIT-FAIL"),
	ErrorDelete:    ex(500, "[PRODUCT] ERROR _DELETE", "PRODUCT-INACTIVE-FAIL"),
}

// InventoryCount tabla del módulo de conteos de inventario.
var InventoryCount = CrudTable{
	BadRequest:     ex(400, "[INVENTORY_COUNT] BAD_REQUEST", "The data is incorrect"),
	NotFound:       ex(404, "[INVENTORY_COUNT] NOT_FOUND", "The data not found"),
	Duplicated:     ex(409, "[INVENTORY_COUNT] DUPLICATED", "INVENTORY_COUNT-FAIL-CODE"),
	DuplicatedCode: ex(409, "[INVENTORY_COUNT] DUPLICATED", "INVENTORY_COUNT-FAIL-CODE"),
	ErrorSave:      ex(500, "[INVENTORY_COUNT] ERROR_SAVE", "INVENTORY_COUNT-NEW-FAIL"),
	ErrorFind:      ex(500, "[INVENTORY_COUNT] ERROR _FIND", "Error to find"),
	ErrorUpdate:    ex(500, "[INVENTORY_COUNT] ERROR _UPDATE", "INVENTORY_COUNT-EDIT-FAIL"),
	ErrorDelete:    ex(500, "[INVENTORY_COUNT] ERROR _DELETE", "INVENTORY_COUNT-INACTIVE-FAIL"),
}

// InventoryLine tabla del módulo de líneas de conteo.
var InventoryLine = CrudTable{
	BadRequest:     ex(400, "[INVENTORY_LINE] BAD_REQUEST", "The data is incorrect"),
	NotFound:       ex(404, "[INVENTORY_LINE] NOT_FOUND", "The data not found"),
	Duplicated:     ex(409, "[INVENTORY_LINE] DUPLICATED", "INVENTORY_LINE-FAIL-CODE"),
	DuplicatedCode: ex(409, "[INVENTORY_LINE] DUPLICATED", "INVENTORY_LINE-FAIL-CODE"),
	ErrorSave:      ex(500, "[INVENTORY_LINE] ERROR_SAVE", "INVENTORY_LINE-NEW-FAIL"),
	ErrorFind:      ex(500, "[INVENTORY_LINE] ERROR _FIND", "Error to find"),
	ErrorUpdate:    ex(500, "[INVENTORY_LINE] ERROR _UPDATE", "INVENTORY_LINE-EDIT-FAIL"),
	ErrorDelete:    ex(500, "[INVENTORY_LINE] ERROR _DELETE", "INVENTORY_LINE-INACTIVE-FAIL"),
}
