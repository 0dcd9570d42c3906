package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidInviteCode  = errors.New("código de invitación inválido")
	ErrOrderCompleted     = errors.New("el pedido ya está completado")
	ErrNoCompany          = errors.New("el usuario no pertenece a ninguna firma")
	ErrInactiveWarehouse  = errors.New("la bodega está inactiva")
)
