package ledger_test

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/jcastell/milasset-api/internal/application/ledger"
	"github.com/jcastell/milasset-api/internal/domain"
	"github.com/jcastell/milasset-api/internal/domain/access"
	"github.com/jcastell/milasset-api/internal/domain/entity"
	"github.com/jcastell/milasset-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes over the repository ports
// ──────────────────────────────────────────────────────────────────────────────

type fakeLedgerRepo struct {
	mu      sync.Mutex
	entries []*entity.LedgerEntry
}

func (r *fakeLedgerRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLedgerRepo) List(_ context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.LedgerEntry
	for _, e := range r.entries {
		if f.BaseID != 0 && e.BaseID != f.BaseID {
			continue
		}
		if f.EquipmentID != 0 && e.EquipmentID != f.EquipmentID {
			continue
		}
		if len(f.Kinds) > 0 {
			found := false
			for _, k := range f.Kinds {
				if e.Kind == k {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if f.From != nil && e.EntryDate.Before(*f.From) {
			continue
		}
		if f.To != nil && e.EntryDate.After(*f.To) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.Before(out[j].EntryDate)
		}
		return out[i].ID < out[j].ID
	})
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeLedgerRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type fakeBaseRepo struct{ bases map[int64]*entity.Base }

func (r *fakeBaseRepo) GetByID(_ context.Context, id int64) (*entity.Base, error) {
	return r.bases[id], nil
}
func (r *fakeBaseRepo) List(_ context.Context) ([]*entity.Base, error) { return nil, nil }
func (r *fakeBaseRepo) Create(_ context.Context, _ *entity.Base) error { return nil }

type fakeEquipRepo struct{ types map[int64]*entity.EquipmentType }

func (r *fakeEquipRepo) GetByID(_ context.Context, id int64) (*entity.EquipmentType, error) {
	return r.types[id], nil
}
func (r *fakeEquipRepo) List(_ context.Context) ([]*entity.EquipmentType, error) { return nil, nil }
func (r *fakeEquipRepo) Create(_ context.Context, _ *entity.EquipmentType) error { return nil }

// fakeTxRunner stages appends and merges them only if fn succeeds, mirroring
// the all-or-nothing commit of the real transaction.
type fakeTxRunner struct{ repo *fakeLedgerRepo }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.LedgerRepository) error) error {
	stage := &fakeLedgerRepo{}
	if err := fn(stage); err != nil {
		return err
	}
	for _, e := range stage.entries {
		if err := r.repo.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

type seqIDs struct{ n int64 }

func (s *seqIDs) NextID() int64 { return atomic.AddInt64(&s.n, 1) }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	baseAlpha   = int64(1)
	baseBravo   = int64(2)
	equipRifle  = int64(10)
	equipRadio  = int64(11)
	unknownBase = int64(99)
)

var (
	adminScope     = access.Scope{UserID: "u-admin", Role: entity.RoleAdmin}
	commanderAlpha = access.Scope{UserID: "u-cmd", Role: entity.RoleBaseCommander, BaseID: baseAlpha}
	logisticsScope = access.Scope{UserID: "u-log", Role: entity.RoleLogisticsOfficer}
)

func newFixture() (*appledger.UseCase, *fakeLedgerRepo) {
	repo := &fakeLedgerRepo{}
	bases := &fakeBaseRepo{bases: map[int64]*entity.Base{
		baseAlpha: {ID: baseAlpha, Name: "Base Alpha"},
		baseBravo: {ID: baseBravo, Name: "Base Bravo"},
	}}
	equip := &fakeEquipRepo{types: map[int64]*entity.EquipmentType{
		equipRifle: {ID: equipRifle, Name: "Rifle"},
		equipRadio: {ID: equipRadio, Name: "Radio Set"},
	}}
	uc := appledger.NewUseCase(repo, bases, equip, &fakeTxRunner{repo: repo}, appledger.NewStockGuard(), &seqIDs{})
	return uc, repo
}

func jan(dayN int) time.Time {
	return time.Date(2025, time.January, dayN, 0, 0, 0, 0, time.UTC)
}

func mustPurchase(t *testing.T, uc *appledger.UseCase, baseID, equipID, qty int64) {
	t.Helper()
	_, err := uc.RecordPurchase(context.Background(), adminScope, appledger.PurchaseInput{
		BaseID: baseID, EquipmentID: equipID, Quantity: qty, Date: jan(1),
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Purchases
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPurchase_Appends(t *testing.T) {
	uc, repo := newFixture()

	e, err := uc.RecordPurchase(context.Background(), logisticsScope, appledger.PurchaseInput{
		BaseID: baseAlpha, EquipmentID: equipRifle, Quantity: 100, Date: jan(5),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.KindPurchase, e.Kind)
	assert.Equal(t, int64(100), e.Quantity)
	assert.Equal(t, "u-log", e.CreatedBy)
	assert.NotZero(t, e.ID)
	assert.Equal(t, 1, repo.len())
}

func TestRecordPurchase_RejectsNonPositiveQuantity(t *testing.T) {
	uc, repo := newFixture()

	for _, qty := range []int64{0, -5} {
		_, err := uc.RecordPurchase(context.Background(), adminScope, appledger.PurchaseInput{
			BaseID: baseAlpha, EquipmentID: equipRifle, Quantity: qty, Date: jan(5),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, 0, repo.len(), "a rejected transaction appends nothing")
}

func TestRecordPurchase_UnknownReferences(t *testing.T) {
	uc, repo := newFixture()

	_, err := uc.RecordPurchase(context.Background(), adminScope, appledger.PurchaseInput{
		BaseID: unknownBase, EquipmentID: equipRifle, Quantity: 1, Date: jan(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordPurchase(context.Background(), adminScope, appledger.PurchaseInput{
		BaseID: baseAlpha, EquipmentID: 12345, Quantity: 1, Date: jan(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 0, repo.len())
}

func TestRecordPurchase_CommanderForbidden(t *testing.T) {
	uc, repo := newFixture()

	_, err := uc.RecordPurchase(context.Background(), commanderAlpha, appledger.PurchaseInput{
		BaseID: baseAlpha, EquipmentID: equipRifle, Quantity: 1, Date: jan(5),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, repo.len())
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfers
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordTransfer_TwoLegsOneTransferID(t *testing.T) {
	uc, repo := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 100)

	out, in, err := uc.RecordTransfer(context.Background(), logisticsScope, appledger.TransferInput{
		SourceBaseID: baseAlpha, DestBaseID: baseBravo, EquipmentID: equipRifle, Quantity: 30, Date: jan(10),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.KindTransferOut, out.Kind)
	assert.Equal(t, baseAlpha, out.BaseID)
	assert.Equal(t, baseBravo, out.OtherBaseID)
	assert.Equal(t, entity.KindTransferIn, in.Kind)
	assert.Equal(t, baseBravo, in.BaseID)
	assert.Equal(t, baseAlpha, in.OtherBaseID)
	assert.NotEmpty(t, out.TransferID)
	assert.Equal(t, out.TransferID, in.TransferID)
	assert.Equal(t, 3, repo.len())

	// Stock moved: 70 left at the source, 30 arrived at the destination.
	alpha, err := repo.List(context.Background(), repository.LedgerFilter{BaseID: baseAlpha, EquipmentID: equipRifle})
	require.NoError(t, err)
	bravo, err := repo.List(context.Background(), repository.LedgerFilter{BaseID: baseBravo, EquipmentID: equipRifle})
	require.NoError(t, err)
	assert.Equal(t, int64(70), onHand(alpha))
	assert.Equal(t, int64(30), onHand(bravo))
}

func TestRecordTransfer_InsufficientStock(t *testing.T) {
	uc, repo := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 10)

	_, _, err := uc.RecordTransfer(context.Background(), adminScope, appledger.TransferInput{
		SourceBaseID: baseAlpha, DestBaseID: baseBravo, EquipmentID: equipRifle, Quantity: 11, Date: jan(10),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, repo.len(), "neither leg may be appended")
}

func TestRecordTransfer_SameBaseRejected(t *testing.T) {
	uc, _ := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 10)

	_, _, err := uc.RecordTransfer(context.Background(), adminScope, appledger.TransferInput{
		SourceBaseID: baseAlpha, DestBaseID: baseAlpha, EquipmentID: equipRifle, Quantity: 1, Date: jan(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordTransfer_UnknownDestBase(t *testing.T) {
	uc, _ := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 10)

	_, _, err := uc.RecordTransfer(context.Background(), adminScope, appledger.TransferInput{
		SourceBaseID: baseAlpha, DestBaseID: unknownBase, EquipmentID: equipRifle, Quantity: 1, Date: jan(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordTransfer_DrainToExactlyZero(t *testing.T) {
	uc, repo := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 10)

	_, _, err := uc.RecordTransfer(context.Background(), adminScope, appledger.TransferInput{
		SourceBaseID: baseAlpha, DestBaseID: baseBravo, EquipmentID: equipRifle, Quantity: 10, Date: jan(10),
	})
	require.NoError(t, err, "draining stock to exactly zero is allowed")

	alpha, err := repo.List(context.Background(), repository.LedgerFilter{BaseID: baseAlpha, EquipmentID: equipRifle})
	require.NoError(t, err)
	assert.Equal(t, int64(0), onHand(alpha))
}

// ──────────────────────────────────────────────────────────────────────────────
// Assignments
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordAssignment_CumulativeBound(t *testing.T) {
	uc, repo := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 10)

	_, err := uc.RecordAssignment(context.Background(), commanderAlpha, appledger.AssignmentInput{
		BaseID: baseAlpha, EquipmentID: equipRifle, PersonnelName: "Sgt. Reyes", Quantity: 7, Date: jan(3),
	})
	require.NoError(t, err)

	// 7 of 10 already allocated: another 4 would overshoot.
	_, err = uc.RecordAssignment(context.Background(), commanderAlpha, appledger.AssignmentInput{
		BaseID: baseAlpha, EquipmentID: equipRifle, PersonnelName: "Cpl. Varga", Quantity: 4, Date: jan(4),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.RecordAssignment(context.Background(), commanderAlpha, appledger.AssignmentInput{
		BaseID: baseAlpha, EquipmentID: equipRifle, PersonnelName: "Cpl. Varga", Quantity: 3, Date: jan(4),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, repo.len())
}

func TestRecordAssignment_PersonnelNameRequired(t *testing.T) {
	uc, _ := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 10)

	_, err := uc.RecordAssignment(context.Background(), commanderAlpha, appledger.AssignmentInput{
		BaseID: baseAlpha, EquipmentID: equipRifle, Quantity: 1, Date: jan(3),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordAssignment_CommanderWrongBase(t *testing.T) {
	uc, repo := newFixture()
	mustPurchase(t, uc, baseBravo, equipRifle, 10)

	_, err := uc.RecordAssignment(context.Background(), commanderAlpha, appledger.AssignmentInput{
		BaseID: baseBravo, EquipmentID: equipRifle, PersonnelName: "Sgt. Reyes", Quantity: 1, Date: jan(3),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 1, repo.len())
}

// ──────────────────────────────────────────────────────────────────────────────
// Expenditures
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordExpenditure_InsufficientStock(t *testing.T) {
	uc, repo := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 5)

	_, err := uc.RecordExpenditure(context.Background(), commanderAlpha, appledger.ExpenditureInput{
		BaseID: baseAlpha, EquipmentID: equipRifle, Quantity: 6, Date: jan(8),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, repo.len())
}

func TestRecordExpenditure_LogisticsForbidden(t *testing.T) {
	uc, _ := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 5)

	_, err := uc.RecordExpenditure(context.Background(), logisticsScope, appledger.ExpenditureInput{
		BaseID: baseAlpha, EquipmentID: equipRifle, Quantity: 1, Date: jan(8),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Ten workers racing to expend 10 each from a stock of 50: exactly five may
// succeed and the pair ends at zero, never below.
func TestRecordExpenditure_ConcurrentNeverNegative(t *testing.T) {
	uc, repo := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 50)

	var succeeded, insufficient int64
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordExpenditure(context.Background(), adminScope, appledger.ExpenditureInput{
				BaseID: baseAlpha, EquipmentID: equipRifle, Quantity: 10, Date: jan(9),
			})
			switch {
			case err == nil:
				atomic.AddInt64(&succeeded, 1)
			case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
				atomic.AddInt64(&insufficient, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(5), succeeded)
	assert.Equal(t, int64(5), insufficient)

	entries, err := repo.List(context.Background(), repository.LedgerFilter{BaseID: baseAlpha, EquipmentID: equipRifle})
	require.NoError(t, err)
	assert.Equal(t, int64(0), onHand(entries))
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_CommanderNarrowedToOwnBase(t *testing.T) {
	uc, _ := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 10)
	mustPurchase(t, uc, baseBravo, equipRifle, 20)

	// No explicit filter: the commander still only sees their own base.
	entries, err := uc.List(context.Background(), commanderAlpha, appledger.ListInput{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, baseAlpha, entries[0].BaseID)

	// An explicit foreign base is refused outright.
	_, err = uc.List(context.Background(), commanderAlpha, appledger.ListInput{BaseID: baseBravo})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestList_AdminSeesEverything(t *testing.T) {
	uc, _ := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 10)
	mustPurchase(t, uc, baseBravo, equipRadio, 20)

	entries, err := uc.List(context.Background(), adminScope, appledger.ListInput{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestList_InvertedDateRangeRejected(t *testing.T) {
	uc, _ := newFixture()
	from, to := jan(20), jan(10)

	_, err := uc.List(context.Background(), adminScope, appledger.ListInput{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_FiltersByKind(t *testing.T) {
	uc, _ := newFixture()
	mustPurchase(t, uc, baseAlpha, equipRifle, 10)
	_, err := uc.RecordExpenditure(context.Background(), adminScope, appledger.ExpenditureInput{
		BaseID: baseAlpha, EquipmentID: equipRifle, Quantity: 2, Date: jan(8),
	})
	require.NoError(t, err)

	entries, err := uc.List(context.Background(), adminScope, appledger.ListInput{
		Kinds: []entity.Kind{entity.KindExpenditure},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.KindExpenditure, entries[0].Kind)
}

func onHand(entries []*entity.LedgerEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Kind.Delta() * e.Quantity
	}
	return total
}
