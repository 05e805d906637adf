package services_test

import (
	"context"
	"sort"

	"github.com/ifd3f/DERP/internal/apperrors"
	"github.com/ifd3f/DERP/internal/core/domain"
	portsrepo "github.com/ifd3f/DERP/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// fakeStore is a single in-memory database shared by the fake repositories,
// with snapshot-based transactions: begin clones the maps, rollback restores
// the clone, commit discards it. The services never touch the pgx.Tx handle
// directly, so the fakes hand out a nil one.
type fakeStore struct {
	costCenters map[int64]domain.CostCenter
	itemKinds   map[int64]domain.ItemKind
	purchases   map[int64]domain.Purchase
	fundings    map[int64]domain.Funding

	nextCostCenterID int64
	nextItemKindID   int64
	nextPurchaseID   int64
	nextFundingID    int64

	snapshot *fakeStore
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		costCenters:      make(map[int64]domain.CostCenter),
		itemKinds:        make(map[int64]domain.ItemKind),
		purchases:        make(map[int64]domain.Purchase),
		fundings:         make(map[int64]domain.Funding),
		nextCostCenterID: 1,
		nextItemKindID:   1,
		nextPurchaseID:   1,
		nextFundingID:    1,
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for k, v := range s.costCenters {
		c.costCenters[k] = v
	}
	for k, v := range s.itemKinds {
		c.itemKinds[k] = v
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.fundings {
		c.fundings[k] = v
	}
	c.nextCostCenterID = s.nextCostCenterID
	c.nextItemKindID = s.nextItemKindID
	c.nextPurchaseID = s.nextPurchaseID
	c.nextFundingID = s.nextFundingID
	return c
}

func (s *fakeStore) begin() {
	s.snapshot = s.clone()
}

func (s *fakeStore) commit() {
	s.snapshot = nil
}

func (s *fakeStore) rollback() {
	if s.snapshot == nil {
		return
	}
	snap := s.snapshot
	s.costCenters = snap.costCenters
	s.itemKinds = snap.itemKinds
	s.purchases = snap.purchases
	s.fundings = snap.fundings
	s.nextCostCenterID = snap.nextCostCenterID
	s.nextItemKindID = snap.nextItemKindID
	s.nextPurchaseID = snap.nextPurchaseID
	s.nextFundingID = snap.nextFundingID
	s.snapshot = nil
}

// seedCostCenter inserts a cost center with a chosen id and path, for tests
// that need specific id shapes (e.g. the /1/2 vs /1/22 boundary).
func (s *fakeStore) seedCostCenter(id int64, parentID *int64, path string) {
	s.costCenters[id] = domain.CostCenter{
		CostCenterID: id,
		Name:         path,
		ParentID:     parentID,
		Path:         path,
	}
	if id >= s.nextCostCenterID {
		s.nextCostCenterID = id + 1
	}
}

// --- fake cost-center repository ---

type fakeCostCenterRepo struct {
	store *fakeStore

	// failUpdateAt makes the Nth UpdateCostCenterInTx call fail, to exercise
	// mid-cascade rollback. Zero disables the injection.
	failUpdateAt int
	failErr      error
	updateCalls  int
}

var _ portsrepo.CostCenterRepositoryWithTx = (*fakeCostCenterRepo)(nil)

func (r *fakeCostCenterRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	r.store.begin()
	return nil, nil
}

func (r *fakeCostCenterRepo) Commit(ctx context.Context, tx pgx.Tx) error {
	r.store.commit()
	return nil
}

func (r *fakeCostCenterRepo) Rollback(ctx context.Context, tx pgx.Tx) error {
	r.store.rollback()
	return nil
}

func (r *fakeCostCenterRepo) FindCostCenterByID(ctx context.Context, id int64) (*domain.CostCenter, error) {
	cc, ok := r.store.costCenters[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &cc, nil
}

func (r *fakeCostCenterRepo) FindCostCenterByIDInTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.CostCenter, error) {
	return r.FindCostCenterByID(ctx, id)
}

func (r *fakeCostCenterRepo) FindCostCentersByPathPrefixInTx(ctx context.Context, tx pgx.Tx, path string) ([]domain.CostCenter, error) {
	var out []domain.CostCenter
	for _, cc := range r.store.costCenters {
		if domain.PathWithinSubtree(cc.Path, path) {
			out = append(out, cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (r *fakeCostCenterRepo) ListRootCostCenters(ctx context.Context) ([]domain.CostCenter, error) {
	var out []domain.CostCenter
	for _, cc := range r.store.costCenters {
		if cc.ParentID == nil {
			out = append(out, cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CostCenterID < out[j].CostCenterID })
	return out, nil
}

func (r *fakeCostCenterRepo) ListChildCostCenters(ctx context.Context, parentID int64) ([]domain.CostCenter, error) {
	var out []domain.CostCenter
	for _, cc := range r.store.costCenters {
		if cc.ParentID != nil && *cc.ParentID == parentID {
			out = append(out, cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CostCenterID < out[j].CostCenterID })
	return out, nil
}

func (r *fakeCostCenterRepo) CountLedgerReferencesInTx(ctx context.Context, tx pgx.Tx, id int64) (int64, error) {
	var n int64
	for _, p := range r.store.purchases {
		if p.CostCenterID == id {
			n++
		}
	}
	for _, f := range r.store.fundings {
		if f.CostCenterID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeCostCenterRepo) SaveCostCenterInTx(ctx context.Context, tx pgx.Tx, cc *domain.CostCenter) error {
	cc.CostCenterID = r.store.nextCostCenterID
	r.store.nextCostCenterID++
	r.store.costCenters[cc.CostCenterID] = *cc
	return nil
}

func (r *fakeCostCenterRepo) UpdateCostCenterInTx(ctx context.Context, tx pgx.Tx, cc domain.CostCenter) error {
	r.updateCalls++
	if r.failUpdateAt > 0 && r.updateCalls >= r.failUpdateAt {
		return r.failErr
	}
	if _, ok := r.store.costCenters[cc.CostCenterID]; !ok {
		return apperrors.ErrNotFound
	}
	r.store.costCenters[cc.CostCenterID] = cc
	return nil
}

func (r *fakeCostCenterRepo) DeleteCostCenterInTx(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, ok := r.store.costCenters[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.costCenters, id)
	return nil
}

// --- fake item-kind repository ---

type fakeItemKindRepo struct {
	store *fakeStore
}

var _ portsrepo.ItemKindRepository = (*fakeItemKindRepo)(nil)

func (r *fakeItemKindRepo) FindItemKindByID(ctx context.Context, id int64) (*domain.ItemKind, error) {
	kind, ok := r.store.itemKinds[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &kind, nil
}

func (r *fakeItemKindRepo) FindItemKindByNameInTx(ctx context.Context, tx pgx.Tx, name string) (*domain.ItemKind, error) {
	for _, kind := range r.store.itemKinds {
		if kind.Name == name {
			return &kind, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeItemKindRepo) SaveItemKindInTx(ctx context.Context, tx pgx.Tx, kind *domain.ItemKind) error {
	kind.ItemKindID = r.store.nextItemKindID
	r.store.nextItemKindID++
	r.store.itemKinds[kind.ItemKindID] = *kind
	return nil
}

// --- fake purchase repository ---

type fakePurchaseRepo struct {
	store *fakeStore
}

var _ portsrepo.PurchaseRepositoryWithTx = (*fakePurchaseRepo)(nil)

func (r *fakePurchaseRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	r.store.begin()
	return nil, nil
}

func (r *fakePurchaseRepo) Commit(ctx context.Context, tx pgx.Tx) error {
	r.store.commit()
	return nil
}

func (r *fakePurchaseRepo) Rollback(ctx context.Context, tx pgx.Tx) error {
	r.store.rollback()
	return nil
}

func (r *fakePurchaseRepo) ledgerRow(p domain.Purchase) domain.PurchaseLedgerRow {
	return domain.PurchaseLedgerRow{
		Purchase:       p,
		ItemName:       r.store.itemKinds[p.ItemKindID].Name,
		CostCenterName: r.store.costCenters[p.CostCenterID].Name,
	}
}

func (r *fakePurchaseRepo) FindPurchaseByID(ctx context.Context, id int64) (*domain.PurchaseLedgerRow, error) {
	p, ok := r.store.purchases[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	row := r.ledgerRow(p)
	return &row, nil
}

func (r *fakePurchaseRepo) ListPurchasesByCostCenter(ctx context.Context, costCenterID int64) ([]domain.PurchaseLedgerRow, error) {
	var out []domain.PurchaseLedgerRow
	for _, p := range r.store.purchases {
		if p.CostCenterID == costCenterID {
			out = append(out, r.ledgerRow(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchaseID > out[j].PurchaseID })
	return out, nil
}

func (r *fakePurchaseRepo) FindPurchaseRowsByPathPrefix(ctx context.Context, path string) ([]domain.PurchaseLedgerRow, error) {
	var out []domain.PurchaseLedgerRow
	for _, p := range r.store.purchases {
		cc := r.store.costCenters[p.CostCenterID]
		if domain.PathWithinSubtree(cc.Path, path) {
			out = append(out, r.ledgerRow(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.Before(out[j].PurchaseDate)
		}
		return out[i].PurchaseID < out[j].PurchaseID
	})
	return out, nil
}

func (r *fakePurchaseRepo) SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase *domain.Purchase) error {
	purchase.PurchaseID = r.store.nextPurchaseID
	r.store.nextPurchaseID++
	r.store.purchases[purchase.PurchaseID] = *purchase
	return nil
}

// --- fake funding repository ---

type fakeFundingRepo struct {
	store *fakeStore
}

var _ portsrepo.FundingRepositoryFacade = (*fakeFundingRepo)(nil)

func (r *fakeFundingRepo) ledgerRow(f domain.Funding) domain.FundingLedgerRow {
	return domain.FundingLedgerRow{
		Funding:        f,
		CostCenterName: r.store.costCenters[f.CostCenterID].Name,
	}
}

func (r *fakeFundingRepo) FindFundingByID(ctx context.Context, id int64) (*domain.FundingLedgerRow, error) {
	f, ok := r.store.fundings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	row := r.ledgerRow(f)
	return &row, nil
}

func (r *fakeFundingRepo) ListFundingsByCostCenter(ctx context.Context, costCenterID int64) ([]domain.FundingLedgerRow, error) {
	var out []domain.FundingLedgerRow
	for _, f := range r.store.fundings {
		if f.CostCenterID == costCenterID {
			out = append(out, r.ledgerRow(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FundingID > out[j].FundingID })
	return out, nil
}

func (r *fakeFundingRepo) FindFundingRowsByPathPrefix(ctx context.Context, path string) ([]domain.FundingLedgerRow, error) {
	var out []domain.FundingLedgerRow
	for _, f := range r.store.fundings {
		cc := r.store.costCenters[f.CostCenterID]
		if domain.PathWithinSubtree(cc.Path, path) {
			out = append(out, r.ledgerRow(f))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FundingDate.Equal(out[j].FundingDate) {
			return out[i].FundingDate.Before(out[j].FundingDate)
		}
		return out[i].FundingID < out[j].FundingID
	})
	return out, nil
}

func (r *fakeFundingRepo) SaveFunding(ctx context.Context, funding *domain.Funding) error {
	funding.FundingID = r.store.nextFundingID
	r.store.nextFundingID++
	r.store.fundings[funding.FundingID] = *funding
	return nil
}
