package assembly_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con la misma semántica que los adaptadores Postgres:
// getters (nil, nil) cuando no hay fila, copias en lugar de punteros internos,
// y un TxRunner que restaura el estado completo cuando fn devuelve error.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

type fakeItemRepo struct {
	items map[int64]entity.Item
}

func newFakeItemRepo(items ...entity.Item) *fakeItemRepo {
	f := &fakeItemRepo{items: make(map[int64]entity.Item)}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return f
}

func (f *fakeItemRepo) Create(item *entity.Item) error {
	item.ID = int64(len(f.items) + 1)
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItemRepo) GetByID(id int64) (*entity.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := it
	return &cp, nil
}

func (f *fakeItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	for _, it := range f.items {
		if it.SKU == sku {
			cp := it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeItemRepo) Update(item *entity.Item) error {
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItemRepo) Deactivate(id int64) error {
	it, ok := f.items[id]
	if ok {
		it.Active = false
		f.items[id] = it
	}
	return nil
}

func (f *fakeItemRepo) List(onlyActive bool, limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range f.items {
		if onlyActive && !it.Active {
			continue
		}
		cp := it
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeItemRepo) ListTemplates() ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range f.items {
		if it.Active && (&it).IsTemplate() {
			cp := it
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeBomRepo struct {
	lines map[int64][]entity.BomLine // por parent_item_id
}

func newFakeBomRepo() *fakeBomRepo {
	return &fakeBomRepo{lines: make(map[int64][]entity.BomLine)}
}

func (f *fakeBomRepo) ListByParent(parentID int64) ([]*entity.BomLine, error) {
	src := f.lines[parentID]
	out := make([]*entity.BomLine, 0, len(src))
	for i := range src {
		cp := src[i]
		out = append(out, &cp)
	}
	// Mismo contrato que el adaptador real: orden estable por child_item_id.
	sort.Slice(out, func(i, j int) bool { return out[i].ChildItemID < out[j].ChildItemID })
	return out, nil
}

func (f *fakeBomRepo) ReplaceForParent(parentID int64, lines []*entity.BomLine) error {
	replaced := make([]entity.BomLine, 0, len(lines))
	for _, l := range lines {
		replaced = append(replaced, *l)
	}
	f.lines[parentID] = replaced
	return nil
}

type fakeSiteRepo struct {
	sites map[int64]entity.Site
}

func newFakeSiteRepo(sites ...entity.Site) *fakeSiteRepo {
	f := &fakeSiteRepo{sites: make(map[int64]entity.Site)}
	for _, s := range sites {
		f.sites[s.ID] = s
	}
	return f
}

func (f *fakeSiteRepo) Create(site *entity.Site) error {
	site.ID = int64(len(f.sites) + 1)
	f.sites[site.ID] = *site
	return nil
}

func (f *fakeSiteRepo) GetByID(id int64) (*entity.Site, error) {
	s, ok := f.sites[id]
	if !ok {
		return nil, nil
	}
	cp := s
	return &cp, nil
}

func (f *fakeSiteRepo) List() ([]*entity.Site, error) {
	var out []*entity.Site
	for _, s := range f.sites {
		cp := s
		out = append(out, &cp)
	}
	return out, nil
}

type stockKey struct{ item, site int64 }

type fakeStockRepo struct {
	rows map[stockKey]entity.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[stockKey]entity.Stock)}
}

func (f *fakeStockRepo) put(s entity.Stock) {
	f.rows[stockKey{s.ItemID, s.SiteID}] = s
}

func (f *fakeStockRepo) Get(itemID, siteID int64) (*entity.Stock, error) {
	s, ok := f.rows[stockKey{itemID, siteID}]
	if !ok {
		return nil, nil
	}
	cp := s
	return &cp, nil
}

func (f *fakeStockRepo) GetForUpdate(itemID, siteID int64) (*entity.Stock, error) {
	return f.Get(itemID, siteID)
}

func (f *fakeStockRepo) EnsureRow(itemID, siteID int64) error {
	if _, ok := f.rows[stockKey{itemID, siteID}]; !ok {
		f.put(entity.Stock{ItemID: itemID, SiteID: siteID, OnHand: decimal.Zero, Reserved: decimal.Zero})
	}
	return nil
}

func (f *fakeStockRepo) Upsert(s *entity.Stock) error {
	f.put(*s)
	return nil
}

func (f *fakeStockRepo) ListDetailed(itemID, siteID *int64) ([]*entity.StockDetail, error) {
	var out []*entity.StockDetail
	for _, s := range f.rows {
		if itemID != nil && s.ItemID != *itemID {
			continue
		}
		if siteID != nil && s.SiteID != *siteID {
			continue
		}
		out = append(out, &entity.StockDetail{Stock: s})
	}
	return out, nil
}

type fakeMovementRepo struct {
	movs []entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	m.ID = int64(len(f.movs) + 1)
	f.movs = append(f.movs, *m)
	return nil
}

func (f *fakeMovementRepo) List(itemID, siteID *int64, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range f.movs {
		m := f.movs[i]
		if itemID != nil && m.ItemID != *itemID {
			continue
		}
		if siteID != nil && m.SiteID != *siteID {
			continue
		}
		out = append(out, &m)
	}
	return out, nil
}

func (f *fakeMovementRepo) byType(movType string) []entity.StockMovement {
	var out []entity.StockMovement
	for _, m := range f.movs {
		if m.Type == movType {
			out = append(out, m)
		}
	}
	return out
}

type fakeAssemblyRepo struct {
	instances map[int64]entity.AssemblyInstance
	nextID    int64
}

func newFakeAssemblyRepo() *fakeAssemblyRepo {
	return &fakeAssemblyRepo{instances: make(map[int64]entity.AssemblyInstance), nextID: 1}
}

func (f *fakeAssemblyRepo) Create(a *entity.AssemblyInstance) error {
	a.ID = f.nextID
	f.nextID++
	f.instances[a.ID] = *a
	return nil
}

func (f *fakeAssemblyRepo) GetByID(id int64) (*entity.AssemblyInstance, error) {
	a, ok := f.instances[id]
	if !ok {
		return nil, nil
	}
	cp := a
	return &cp, nil
}

func (f *fakeAssemblyRepo) GetForUpdate(id int64) (*entity.AssemblyInstance, error) {
	return f.GetByID(id)
}

func (f *fakeAssemblyRepo) Update(a *entity.AssemblyInstance) error {
	f.instances[a.ID] = *a
	return nil
}

func (f *fakeAssemblyRepo) List(status *entity.Status, siteID *int64) ([]*entity.AssemblyDetail, error) {
	var out []*entity.AssemblyDetail
	for _, a := range f.instances {
		if status != nil && a.Status != *status {
			continue
		}
		if siteID != nil && a.SiteID != *siteID {
			continue
		}
		out = append(out, &entity.AssemblyDetail{AssemblyInstance: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAssemblyRepo) GetDetail(id int64) (*entity.AssemblyDetail, error) {
	a, ok := f.instances[id]
	if !ok {
		return nil, nil
	}
	return &entity.AssemblyDetail{AssemblyInstance: a}, nil
}

// fakeTxRunner emula el rollback del TxRunner real: si fn falla restaura
// stock, bitácora e instancias al estado previo a la transacción.
type fakeTxRunner struct {
	itemRepo  *fakeItemRepo
	bomRepo   *fakeBomRepo
	stockRepo *fakeStockRepo
	movRepo   *fakeMovementRepo
	asmRepo   *fakeAssemblyRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	bomRepo repository.BomRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	asmRepo repository.AssemblyRepository,
) error) error {
	stockSnap := make(map[stockKey]entity.Stock, len(r.stockRepo.rows))
	for k, v := range r.stockRepo.rows {
		stockSnap[k] = v
	}
	movSnap := make([]entity.StockMovement, len(r.movRepo.movs))
	copy(movSnap, r.movRepo.movs)
	asmSnap := make(map[int64]entity.AssemblyInstance, len(r.asmRepo.instances))
	for k, v := range r.asmRepo.instances {
		asmSnap[k] = v
	}
	nextID := r.asmRepo.nextID

	if err := fn(r.itemRepo, r.bomRepo, r.stockRepo, r.movRepo, r.asmRepo); err != nil {
		r.stockRepo.rows = stockSnap
		r.movRepo.movs = movSnap
		r.asmRepo.instances = asmSnap
		r.asmRepo.nextID = nextID
		return err
	}
	return nil
}
