package operations

import (
	"context"
	"fmt"

	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// GetByID devuelve la operación con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OperationResponse, error) {
	op, err := uc.opRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, fmt.Errorf("%w: operación %s", domain.ErrNotFound, id)
	}
	return toOperationResponse(op), nil
}

// List lista operaciones con filtros y paginación, más recientes primero.
func (uc *UseCase) List(ctx context.Context, f repository.OperationFilters, page dto.PageRequest) (*dto.OperationListResponse, error) {
	ops, err := uc.opRepo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.opRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	data := make([]dto.OperationResponse, 0, len(ops))
	for _, op := range ops {
		data = append(data, *toOperationResponse(op))
	}
	return &dto.OperationListResponse{
		Data: data,
		Pagination: dto.Pagination{
			Page:    page.Page,
			Limit:   page.Limit,
			Total:   total,
			HasMore: page.Offset()+len(ops) < total,
		},
	}, nil
}

func toOperationResponse(op *entity.Operation) *dto.OperationResponse {
	items := make([]dto.OperationItemResponse, 0, len(op.Items))
	for _, item := range op.Items {
		items = append(items, dto.OperationItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return &dto.OperationResponse{
		ID:              op.ID,
		Type:            string(op.Type),
		Status:          string(op.Status),
		Reference:       op.Reference,
		WarehouseFromID: op.WarehouseFromID,
		LocationFromID:  op.LocationFromID,
		WarehouseToID:   op.WarehouseToID,
		LocationToID:    op.LocationToID,
		ContactName:     op.ContactName,
		ScheduleDate:    op.ScheduleDate,
		Notes:           op.Notes,
		CreatedByUserID: op.CreatedByUserID,
		ResponsibleID:   op.ResponsibleID,
		Items:           items,
		CreatedAt:       op.CreatedAt,
		UpdatedAt:       op.UpdatedAt,
	}
}
