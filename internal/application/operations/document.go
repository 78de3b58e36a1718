package operations

import (
	"context"
	"fmt"

	"github.com/stockmaster/stockmaster-api/internal/domain"
)

// Document genera el PDF imprimible de la operación (albarán, comprobante de
// recepción, hoja de traslado o de ajuste), resolviendo nombres de artículos,
// ubicaciones y almacenes.
func (uc *UseCase) Document(ctx context.Context, id string) ([]byte, error) {
	if uc.docGen == nil {
		return nil, fmt.Errorf("%w: generación de documentos no configurada", domain.ErrInvalidInput)
	}
	op, err := uc.opRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, fmt.Errorf("%w: operación %s", domain.ErrNotFound, id)
	}

	data := DocumentData{Operation: op}

	if op.LocationFromID != "" {
		if loc, err := uc.locationRepo.GetByID(ctx, op.LocationFromID); err == nil && loc != nil {
			data.FromLocation = loc.Name
		}
	}
	if op.LocationToID != "" {
		if loc, err := uc.locationRepo.GetByID(ctx, op.LocationToID); err == nil && loc != nil {
			data.ToLocation = loc.Name
		}
	}

	for _, item := range op.Items {
		line := DocumentLine{Quantity: item.Quantity}
		if product, err := uc.productRepo.GetByID(ctx, item.ProductID); err == nil && product != nil {
			line.SKU = product.SKU
			line.Name = product.Name
			line.Unit = product.UnitOfMeasure
		}
		data.Lines = append(data.Lines, line)
	}

	return uc.docGen.GenerateOperationDocument(ctx, data)
}
