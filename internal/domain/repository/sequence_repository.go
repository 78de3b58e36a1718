package repository

import (
	"context"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// SequenceRepository asigna números de secuencia por tipo de operación de
// forma atómica (contador en DB incrementado dentro de la transacción de
// creación). Sustituye al patrón "leer la última referencia e incrementar",
// que duplicaba referencias bajo creaciones concurrentes del mismo tipo.
type SequenceRepository interface {
	// Next incrementa y devuelve el siguiente valor del contador del tipo.
	// El primer valor de cada tipo es 1.
	Next(ctx context.Context, opType entity.OperationType) (int64, error)
}
