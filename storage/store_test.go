package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeItems struct {
	data    map[string][]byte
	loadErr error
}

func newFakeItems() *fakeItems {
	return &fakeItems{data: make(map[string][]byte)}
}

func (f *fakeItems) LoadItem(name string) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.data[name], nil
}

func (f *fakeItems) SaveItem(name string, data []byte) error {
	f.data[name] = data
	return nil
}

func TestSharedHealthDefaultsWhenAbsent(t *testing.T) {
	s := &Store{items: newFakeItems()}

	hp, max := s.SharedHealth()
	require.Equal(t, 4.0, hp)
	require.Equal(t, 4.0, max)
}

func TestSharedHealthRoundTrip(t *testing.T) {
	items := newFakeItems()
	s := &Store{items: items}

	s.SetSharedHealth(7, 12)

	hp, max := s.SharedHealth()
	require.Equal(t, 7.0, hp)
	require.Equal(t, 12.0, max)

	// Slots are decimal strings on disk.
	require.Equal(t, "7", string(items.data["sharedHp"]))
	require.Equal(t, "12", string(items.data["sharedMaxHp"]))
}

func TestSharedHealthDefaultsOnBadData(t *testing.T) {
	items := newFakeItems()
	items.data["sharedHp"] = []byte("not-a-number")
	s := &Store{items: items}

	hp, _ := s.SharedHealth()
	require.Equal(t, 4.0, hp)
}

func TestSharedHealthDefaultsOnLoadError(t *testing.T) {
	items := newFakeItems()
	items.loadErr = errors.New("disk gone")
	s := &Store{items: items}

	hp, max := s.SharedHealth()
	require.Equal(t, 4.0, hp)
	require.Equal(t, 4.0, max)
}

func TestNilStoreIsSafe(t *testing.T) {
	var s *Store

	hp, max := s.SharedHealth()
	require.Equal(t, 4.0, hp)
	require.Equal(t, 4.0, max)
	s.SetSharedHealth(8, 8) // must not panic
}
