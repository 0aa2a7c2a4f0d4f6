package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrEmptyCart            = errors.New("la venta no tiene ítems")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrServiceNotFound      = errors.New("servicio no encontrado")
	ErrServiceInactive      = errors.New("servicio inactivo")
	ErrAppointmentNotFound  = errors.New("cita no encontrada")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrNoOpAdjustment       = errors.New("el ajuste no modifica el stock")
	ErrSystemGeneratedEntry = errors.New("el movimiento de caja fue generado por un documento y no puede eliminarse")
	ErrTransactionAborted   = errors.New("transacción abortada")
)

// LineError identifica el ítem (producto, servicio o insumo) que hizo fallar una operación.
// Kind es uno de los errores de dominio; errors.Is(err, domain.ErrInsufficientStock) funciona sobre él.
type LineError struct {
	Kind     error
	Line     int // posición del ítem en el carrito (base 0); -1 si no aplica
	EntityID string
	Name     string
}

// NewLineError construye el error tipado de una línea.
func NewLineError(kind error, line int, entityID, name string) *LineError {
	return &LineError{Kind: kind, Line: line, EntityID: entityID, Name: name}
}

func (e *LineError) Error() string {
	label := e.Name
	if label == "" {
		label = e.EntityID
	}
	if e.Line >= 0 {
		return fmt.Sprintf("%s: %s (línea %d)", e.Kind.Error(), label, e.Line+1)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), label)
}

func (e *LineError) Unwrap() error {
	return e.Kind
}

// AsLineError extrae el LineError de una cadena de errores.
func AsLineError(err error) (*LineError, bool) {
	var le *LineError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

var known = []error{
	ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrUnauthorized, ErrForbidden, ErrConflict,
	ErrEmptyCart, ErrProductNotFound, ErrServiceNotFound, ErrServiceInactive, ErrAppointmentNotFound,
	ErrInsufficientStock, ErrNoOpAdjustment, ErrSystemGeneratedEntry, ErrTransactionAborted,
}

// ClassifyTxError deja pasar los errores de dominio y envuelve cualquier otro fallo de la
// transacción (BD caída, conflicto, commit fallido) en ErrTransactionAborted.
func ClassifyTxError(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range known {
		if errors.Is(err, k) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrTransactionAborted, err)
}
