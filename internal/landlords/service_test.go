package landlords

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parklane-pm/parklane/internal/shared"
)

type fakeRepo struct {
	landlords map[int64]Landlord
	nextID    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{landlords: make(map[int64]Landlord), nextID: 1}
}

func (f *fakeRepo) List(ctx context.Context, filters shared.ListFilters) ([]Landlord, int, error) {
	out := make([]Landlord, 0, len(f.landlords))
	for _, l := range f.landlords {
		out = append(out, l)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Landlord, error) {
	l, ok := f.landlords[id]
	if !ok {
		return Landlord{}, shared.ErrNotFound
	}
	return l, nil
}

func (f *fakeRepo) Create(ctx context.Context, landlord Landlord) (Landlord, error) {
	for _, existing := range f.landlords {
		if existing.Name == landlord.Name {
			return Landlord{}, shared.ErrDuplicate
		}
	}
	landlord.ID = f.nextID
	f.nextID++
	f.landlords[landlord.ID] = landlord
	return landlord, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, landlord Landlord) error {
	if _, ok := f.landlords[id]; !ok {
		return shared.ErrNotFound
	}
	landlord.ID = id
	f.landlords[id] = landlord
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.landlords[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.landlords, id)
	return nil
}

func TestCreateLandlord(t *testing.T) {
	svc := NewService(newFakeRepo())

	landlord, err := svc.Create(context.Background(), LandlordInput{
		Name:  "  Parkview Holdings  ",
		Email: "owner@parkview.example",
	})
	require.NoError(t, err)
	assert.Equal(t, "Parkview Holdings", landlord.Name)
	assert.Equal(t, int64(1), landlord.ID)
}

func TestCreateLandlordValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), LandlordInput{Name: ""})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), LandlordInput{Name: "X", Email: "not-an-email"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateLandlordDuplicate(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), LandlordInput{Name: "Parkview Holdings"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), LandlordInput{Name: "Parkview Holdings"})
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestUpdateLandlordMissing(t *testing.T) {
	svc := NewService(newFakeRepo())
	err := svc.Update(context.Background(), 7, LandlordInput{Name: "New Name"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteLandlord(t *testing.T) {
	svc := NewService(newFakeRepo())
	created, err := svc.Create(context.Background(), LandlordInput{Name: "Parkview Holdings"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
