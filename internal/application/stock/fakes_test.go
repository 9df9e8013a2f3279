package stock_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Emulan el contrato de los repositorios Postgres: los
// getters devuelven (nil, nil) cuando no hay fila y siempre copias, nunca
// los punteros internos del store.
// ──────────────────────────────────────────────────────────────────────────────

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

func (f *fakeStockRepo) snapshot() map[stockKey]entity.Stock {
	cp := make(map[stockKey]entity.Stock, len(f.rows))
	for k, v := range f.rows {
		cp[k] = v
	}
	return cp
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

// fakeTxRunner emula la semántica de rollback del TxRunner real: toma un
// snapshot del stock y la bitácora antes de fn y lo restaura si fn falla.
type fakeTxRunner struct {
	itemRepo  repository.ItemRepository
	bomRepo   repository.BomRepository
	stockRepo *fakeStockRepo
	movRepo   *fakeMovementRepo
	asmRepo   repository.AssemblyRepository
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	bomRepo repository.BomRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	asmRepo repository.AssemblyRepository,
) error) error {
	stockSnap := r.stockRepo.snapshot()
	movSnap := make([]entity.StockMovement, len(r.movRepo.movs))
	copy(movSnap, r.movRepo.movs)

	if err := fn(r.itemRepo, r.bomRepo, r.stockRepo, r.movRepo, r.asmRepo); err != nil {
		r.stockRepo.rows = stockSnap
		r.movRepo.movs = movSnap
		return err
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}
