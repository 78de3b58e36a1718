package operations_test

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/application/operations"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los tests del caso de uso. fakeStore hace de los
// cuatro repositorios transaccionales a la vez, respaldado por mapas.
// ─────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu         sync.Mutex
	operations map[string]*entity.Operation
	movements  []*entity.StockMovement
	levels     map[string]decimal.Decimal // productID|locationID
	sequences  map[entity.OperationType]int64

	// beforeUpdateStatus permite simular una carrera: se ejecuta justo antes
	// de evaluar la precondición de estado.
	beforeUpdateStatus func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		operations: make(map[string]*entity.Operation),
		levels:     make(map[string]decimal.Decimal),
		sequences:  make(map[entity.OperationType]int64),
	}
}

func levelKey(productID, locationID string) string { return productID + "|" + locationID }

// ── OperationRepository ──────────────────────────────────────────────────────

func (s *fakeStore) Create(_ context.Context, op *entity.Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *op
	cp.Items = append([]entity.OperationItem(nil), op.Items...)
	s.operations[op.ID] = &cp
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*entity.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.operations[id]
	if !ok {
		return nil, nil
	}
	cp := *op
	cp.Items = append([]entity.OperationItem(nil), op.Items...)
	return &cp, nil
}

func (s *fakeStore) List(_ context.Context, _ repository.OperationFilters, _, _ int) ([]*entity.Operation, error) {
	return nil, nil
}

func (s *fakeStore) Count(_ context.Context, _ repository.OperationFilters) (int, error) {
	return len(s.operations), nil
}

func (s *fakeStore) UpdateFields(_ context.Context, op *entity.Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.operations[op.ID]
	stored.ContactName = op.ContactName
	stored.ScheduleDate = op.ScheduleDate
	stored.Notes = op.Notes
	stored.ResponsibleID = op.ResponsibleID
	stored.UpdatedAt = op.UpdatedAt
	return nil
}

func (s *fakeStore) ReplaceItems(_ context.Context, operationID string, items []entity.OperationItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operations[operationID].Items = append([]entity.OperationItem(nil), items...)
	return nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id string, from, to entity.OperationStatus) (bool, error) {
	if s.beforeUpdateStatus != nil {
		s.beforeUpdateStatus()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	op := s.operations[id]
	if op.Status != from {
		return false, nil
	}
	op.Status = to
	return true, nil
}

// ── StockMovementRepository ──────────────────────────────────────────────────

func (s *fakeStore) CreateBatch(_ context.Context, movements []*entity.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = append(s.movements, movements...)
	return nil
}

func (s *fakeStore) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.StockMovement
	for _, mov := range s.movements {
		if mov.ProductID == productID {
			out = append(out, mov)
		}
	}
	return out, nil
}

func (s *fakeStore) ProductLedger(_ context.Context, _ string) ([]repository.ProductLedgerRow, error) {
	return nil, nil
}

func (s *fakeStore) History(_ context.Context, _ repository.HistoryFilters, _, _ int) ([]repository.MovementHistoryRow, error) {
	return nil, nil
}

func (s *fakeStore) CountHistory(_ context.Context, _ repository.HistoryFilters) (int, error) {
	return len(s.movements), nil
}

// ── StockLevelRepository ─────────────────────────────────────────────────────

func (s *fakeStore) Get(_ context.Context, productID, locationID string) (*entity.StockLevel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &entity.StockLevel{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   s.levels[levelKey(productID, locationID)],
	}, nil
}

func (s *fakeStore) ApplyDelta(_ context.Context, productID, locationID string, delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := levelKey(productID, locationID)
	s.levels[key] = s.levels[key].Add(delta)
	return nil
}

func (s *fakeStore) SumByProduct(_ context.Context, productID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for key, qty := range s.levels {
		if strings.HasPrefix(key, productID+"|") {
			total = total.Add(qty)
		}
	}
	return total, nil
}

func (s *fakeStore) SumByProductAndWarehouse(_ context.Context, _, _ string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *fakeStore) ProductTotals(_ context.Context) ([]repository.ProductTotal, error) {
	return nil, nil
}

// ── SequenceRepository ───────────────────────────────────────────────────────

func (s *fakeStore) Next(_ context.Context, opType entity.OperationType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[opType]++
	return s.sequences[opType], nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.OperationRepository,
	repository.StockMovementRepository,
	repository.StockLevelRepository,
	repository.SequenceRepository,
) error) error {
	return fn(r.store, r.store, r.store, r.store)
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func (r *fakeLocationRepo) Create(_ context.Context, _ *entity.Location) error { return nil }
func (r *fakeLocationRepo) Update(_ context.Context, _ *entity.Location) error { return nil }
func (r *fakeLocationRepo) Delete(_ context.Context, _ string) error           { return nil }

func (r *fakeLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	return r.locations[id], nil
}

func (r *fakeLocationRepo) ListByWarehouse(_ context.Context, _ string, _, _ int) ([]*entity.Location, error) {
	return nil, nil
}

func (r *fakeLocationRepo) List(_ context.Context, _, _ int) ([]*entity.Location, error) {
	return nil, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }
func (r *fakeProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(_ context.Context, _ string) error          { return nil }

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListActiveWithReorderLevel(_ context.Context) ([]*entity.Product, error) {
	return nil, nil
}

// ── EventPublisher ───────────────────────────────────────────────────────────

type publishedLevel struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
}

type publishedStatus struct {
	OperationID string
	Old, New    entity.OperationStatus
}

// recordingPublisher captura los eventos emitidos por el caso de uso.
type recordingPublisher struct {
	created       []string // IDs de operación
	updated       []string
	statusChanges []publishedStatus
	levelChanges  []publishedLevel
}

func (p *recordingPublisher) OperationCreated(op *entity.Operation) {
	p.created = append(p.created, op.ID)
}

func (p *recordingPublisher) OperationUpdated(op *entity.Operation) {
	p.updated = append(p.updated, op.ID)
}

func (p *recordingPublisher) OperationStatusChanged(operationID string, oldStatus, newStatus entity.OperationStatus) {
	p.statusChanges = append(p.statusChanges, publishedStatus{OperationID: operationID, Old: oldStatus, New: newStatus})
}

func (p *recordingPublisher) StockLevelChanged(productID, locationID string, newQty decimal.Decimal) {
	p.levelChanges = append(p.levelChanges, publishedLevel{ProductID: productID, LocationID: locationID, Quantity: newQty})
}

// ── DocumentGenerator ────────────────────────────────────────────────────────

type fakeDocGen struct{}

func (fakeDocGen) GenerateOperationDocument(_ context.Context, _ operations.DocumentData) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// ── Armado del caso de uso ───────────────────────────────────────────────────

type testEnv struct {
	uc        *operations.UseCase
	store     *fakeStore
	publisher *recordingPublisher
}

// newTestEnv arma el caso de uso con dos ubicaciones en el mismo almacén y
// dos productos activos.
func newTestEnv() *testEnv {
	store := newFakeStore()
	publisher := &recordingPublisher{}

	locations := &fakeLocationRepo{locations: map[string]*entity.Location{
		"loc-a": {ID: "loc-a", WarehouseID: "wh-1", Name: "Estantería A", ShortCode: "A-01", IsActive: true},
		"loc-b": {ID: "loc-b", WarehouseID: "wh-1", Name: "Estantería B", ShortCode: "B-01", IsActive: true},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", SKU: "TOR-001", Name: "Tornillo 5mm", UnitOfMeasure: "unidad", IsActive: true},
		"prod-2": {ID: "prod-2", SKU: "CAB-010", Name: "Cable 10m", UnitOfMeasure: "metro", IsActive: true},
	}}

	uc := operations.NewUseCase(
		&fakeTxRunner{store: store},
		store,
		locations,
		products,
		store,
		publisher,
		fakeDocGen{},
	)
	return &testEnv{uc: uc, store: store, publisher: publisher}
}
