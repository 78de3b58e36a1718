package postgres

import (
	"context"
	"fmt"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador de referencias por tipo de operación.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el siguiente valor del contador del tipo.
// El upsert con RETURNING es atómico: creaciones concurrentes del mismo tipo
// se serializan en la fila del contador y cada una recibe un valor distinto.
func (r *SequenceRepo) Next(ctx context.Context, opType entity.OperationType) (int64, error) {
	query := `
		INSERT INTO operation_sequences (operation_type, value)
		VALUES ($1, 1)
		ON CONFLICT (operation_type)
		DO UPDATE SET value = operation_sequences.value + 1
		RETURNING value`
	var value int64
	if err := r.q.QueryRow(ctx, query, opType).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return value, nil
}
