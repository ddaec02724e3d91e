package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida: debe ser un entero positivo")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDuplicateCode      = errors.New("el código del ítem ya existe")
	ErrPartialFailure     = errors.New("fallo parcial: stock mutado pero el registro dependiente falló")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
