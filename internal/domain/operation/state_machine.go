// Package operation contiene la lógica pura de las operaciones de inventario:
// la máquina de estados, el formato de referencias y la derivación de
// movimientos al completar. No depende de persistencia ni de transporte.
package operation

import (
	"fmt"

	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// Action acción solicitada sobre la máquina de estados.
type Action string

// Acciones válidas.
const (
	ActionMarkReady Action = "mark_ready"
	ActionMarkDone  Action = "mark_done"
	ActionCancel    Action = "cancel"
)

// ParseAction valida la acción recibida del caller.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionMarkReady, ActionMarkDone, ActionCancel:
		return Action(s), nil
	}
	return "", fmt.Errorf("%w: acción desconocida %q", domain.ErrInvalidInput, s)
}

// NextStatus aplica la tabla de transiciones y devuelve el estado resultante.
//
//	mark_ready: DRAFT + (RECEIPT|TRANSFER) -> READY; WAITING + DELIVERY -> READY
//	mark_done:  DRAFT|READY (cualquier tipo) -> DONE
//	cancel:     cualquier estado salvo DONE -> CANCELED
//
// Cualquier otra combinación (estado, acción, tipo) devuelve ErrInvalidTransition.
//
// Nota: DELIVERY solo alcanza READY desde WAITING, pero las entregas se crean
// en DRAFT, así que en la práctica solo completan directo con mark_done. La
// regla se conserva tal cual está en producción; no "corregir" sin confirmar
// la intención de producto.
func NextStatus(opType entity.OperationType, current entity.OperationStatus, action Action) (entity.OperationStatus, error) {
	switch action {
	case ActionCancel:
		if current == entity.StatusDone {
			return "", fmt.Errorf("%w: no se puede cancelar una operación completada", domain.ErrInvalidTransition)
		}
		return entity.StatusCanceled, nil

	case ActionMarkReady:
		switch {
		case opType == entity.OperationTypeReceipt && current == entity.StatusDraft:
			return entity.StatusReady, nil
		case opType == entity.OperationTypeDelivery && current == entity.StatusWaiting:
			return entity.StatusReady, nil
		case opType == entity.OperationTypeTransfer && current == entity.StatusDraft:
			return entity.StatusReady, nil
		}
		return "", fmt.Errorf("%w: no se puede pasar de %s a READY", domain.ErrInvalidTransition, current)

	case ActionMarkDone:
		if current == entity.StatusDraft || current == entity.StatusReady {
			return entity.StatusDone, nil
		}
		return "", fmt.Errorf("%w: no se puede pasar de %s a DONE", domain.ErrInvalidTransition, current)
	}
	return "", fmt.Errorf("%w: acción desconocida %q", domain.ErrInvalidInput, action)
}

// Commits indica si la transición current->next es el commit que genera
// movimientos en el ledger (solo la entrada a DONE).
func Commits(current, next entity.OperationStatus) bool {
	return next == entity.StatusDone && current != entity.StatusDone
}
