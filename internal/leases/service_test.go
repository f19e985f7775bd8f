package leases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parklane-pm/parklane/internal/shared"
)

type fakeRepo struct {
	leases  map[int64]Lease
	nextID  int64
	listed  shared.ListFilters
	created *Lease
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leases: make(map[int64]Lease), nextID: 1}
}

func (f *fakeRepo) List(ctx context.Context, filters shared.ListFilters) ([]Lease, int, error) {
	f.listed = filters
	out := make([]Lease, 0, len(f.leases))
	for _, l := range f.leases {
		out = append(out, l)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Lease, error) {
	l, ok := f.leases[id]
	if !ok {
		return Lease{}, shared.ErrNotFound
	}
	return l, nil
}

func (f *fakeRepo) Create(ctx context.Context, lease Lease) (Lease, error) {
	for _, existing := range f.leases {
		if existing.LeaseNumber == lease.LeaseNumber {
			return Lease{}, shared.ErrDuplicate
		}
	}
	lease.ID = f.nextID
	f.nextID++
	f.leases[lease.ID] = lease
	f.created = &lease
	return lease, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, lease Lease) error {
	if _, ok := f.leases[id]; !ok {
		return shared.ErrNotFound
	}
	lease.ID = id
	f.leases[id] = lease
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.leases[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.leases, id)
	return nil
}

func validCreateInput() CreateLeaseInput {
	return CreateLeaseInput{
		LeaseNumber: "L-001",
		TenantID:    1,
		UnitID:      2,
		StartDate:   "2026-01-01",
		EndDate:     "2026-12-31",
		MonthlyRent: 1500,
		DepositHeld: 3000,
	}
}

func TestCreateLease(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	lease, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), lease.ID)
	assert.Equal(t, "L-001", lease.LeaseNumber)
	assert.Equal(t, 1500.0, lease.MonthlyRent)
}

func TestCreateLeaseValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	cases := map[string]func(*CreateLeaseInput){
		"missing lease number": func(in *CreateLeaseInput) { in.LeaseNumber = "" },
		"missing tenant":       func(in *CreateLeaseInput) { in.TenantID = 0 },
		"missing unit":         func(in *CreateLeaseInput) { in.UnitID = 0 },
		"bad start date":       func(in *CreateLeaseInput) { in.StartDate = "01/01/2026" },
		"negative rent":        func(in *CreateLeaseInput) { in.MonthlyRent = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := validCreateInput()
			mutate(&input)
			_, err := svc.Create(context.Background(), input)
			assert.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestCreateLeaseRejectsEndBeforeStart(t *testing.T) {
	svc := NewService(newFakeRepo())
	input := validCreateInput()
	input.StartDate = "2026-12-31"
	input.EndDate = "2026-01-01"
	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateLeaseDuplicateNumber(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validCreateInput())
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestUpdateLease(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	err = svc.Update(context.Background(), created.ID, UpdateLeaseInput{
		LeaseNumber: "L-001",
		StartDate:   "2026-01-01",
		EndDate:     "2027-12-31",
		MonthlyRent: 1600,
	})
	require.NoError(t, err)

	updated, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1600.0, updated.MonthlyRent)
}

func TestUpdateMissingLease(t *testing.T) {
	svc := NewService(newFakeRepo())
	err := svc.Update(context.Background(), 99, UpdateLeaseInput{
		LeaseNumber: "L-099",
		StartDate:   "2026-01-01",
		EndDate:     "2026-12-31",
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListDefaultsPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	_, _, err := svc.List(context.Background(), shared.ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listed.Page)
	assert.Equal(t, 25, repo.listed.Limit)
}

func TestDeleteLease(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
