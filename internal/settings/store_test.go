package settings

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[V any](v V) *V { return &v }

func newBusinessStore(t *testing.T) *MemoryStore[Business] {
	t.Helper()
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore(SeedBusinesses(created))
	s.now = func() time.Time { return time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestBusinessCreate(t *testing.T) {
	s := newBusinessStore(t)

	b, err := s.Create(Patch{Name: ptr("Entebbe Kiosk"), Description: ptr("Airport stall")})
	require.NoError(t, err)
	assert.Equal(t, 4, b.ID)
	assert.True(t, b.IsActive)
	assert.Equal(t, time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC), b.CreatedOn)

	list := s.List()
	require.Len(t, list, 4)
	assert.Equal(t, "Entebbe Kiosk", list[0].Name, "newest first")
}

func TestBusinessCreateUntitled(t *testing.T) {
	s := newBusinessStore(t)
	b, err := s.Create(Patch{Name: ptr("   ")})
	require.NoError(t, err)
	assert.Equal(t, "Untitled", b.Name)

	b, err = s.Create(Patch{})
	require.NoError(t, err)
	assert.Equal(t, "Untitled", b.Name)
	assert.Equal(t, 5, b.ID)
}

func TestCreateOnEmptyStoreStartsAtOne(t *testing.T) {
	s := NewMemoryStore[ExpenditureCategory](nil)
	c, err := s.Create(Patch{Name: ptr("Rent")})
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)
	assert.True(t, c.IsActive, "categories default to active")

	c, err = s.Create(Patch{Name: ptr("Fuel"), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, 2, c.ID)
	assert.False(t, c.IsActive)
}

func TestUpdateAppliesOnlyGivenFields(t *testing.T) {
	s := newBusinessStore(t)

	b, err := s.Update(2, Patch{Description: ptr("Retail outlet, Kampala Road")})
	require.NoError(t, err)
	assert.Equal(t, "Kampala Outlet", b.Name)
	assert.Equal(t, "Retail outlet, Kampala Road", b.Description)
	assert.True(t, b.IsActive)

	got, err := s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestToggle(t *testing.T) {
	s := newBusinessStore(t)

	b, err := s.Toggle(3)
	require.NoError(t, err)
	assert.True(t, b.IsActive)

	b, err = s.Toggle(3)
	require.NoError(t, err)
	assert.False(t, b.IsActive)
}

func TestDelete(t *testing.T) {
	s := NewMemoryStore(SeedCategories())
	require.NoError(t, s.Delete(4))
	assert.Len(t, s.List(), 3)

	// highest id is gone, so it is reused
	c, err := s.Create(Patch{Name: ptr("Marketing")})
	require.NoError(t, err)
	assert.Equal(t, 4, c.ID)
}

func TestNotFound(t *testing.T) {
	s := newBusinessStore(t)

	_, err := s.Get(99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Update(99, Patch{})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Toggle(99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(99), ErrNotFound)
}

func TestListReturnsCopy(t *testing.T) {
	s := newBusinessStore(t)
	list := s.List()
	list[0].Name = "mutated"

	b, err := s.Get(list[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", b.Name)
}

func TestConcurrentCreate(t *testing.T) {
	var st Store[ExpenditureCategory] = NewMemoryStore[ExpenditureCategory](nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = st.Create(Patch{Name: ptr("c")})
		}()
	}
	wg.Wait()

	seen := map[int]bool{}
	for _, c := range st.List() {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
	assert.Len(t, seen, 50)
}

func TestSeeds(t *testing.T) {
	assert.Len(t, Users(), 3)
	assert.Len(t, Integrations(), 3)
	st := NewSeededStores()
	assert.Len(t, st.Businesses.List(), 3)
	assert.Len(t, st.Categories.List(), 4)
}
