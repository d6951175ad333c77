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

	// ErrInvalidQuantity cantidad no positiva o fuera de rango (lotes, pedidos, backorders).
	ErrInvalidQuantity = errors.New("cantidad inválida")
	// ErrProductNotEligible operación de inventario sobre un producto hecho-a-pedido.
	ErrProductNotEligible = errors.New("el producto no maneja inventario")
	// ErrCustomerRequired un pedido nuevo sin cliente resoluble.
	ErrCustomerRequired = errors.New("el pedido requiere un cliente")
	// ErrDataIntegrity la operación rompería el historial del negocio
	// (p.ej. borrar un cliente con pedidos registrados).
	ErrDataIntegrity = errors.New("violación de integridad de datos")
)
