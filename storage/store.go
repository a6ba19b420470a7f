package storage

import (
	"log"
	"strconv"

	"github.com/quasilyte/gdata"

	"github.com/moonveil/coven-mp/config"
)

const (
	keySharedHP    = "sharedHp"
	keySharedMaxHP = "sharedMaxHp"
)

// itemStore is the slice of gdata.Manager the store needs. Tests swap in
// a map-backed fake.
type itemStore interface {
	LoadItem(name string) ([]byte, error)
	SaveItem(name string, data []byte) error
}

// Store persists the shared-health slots as decimal strings. A nil Store
// is valid and behaves as an empty store, mirroring how the settings
// persistence degrades when the data dir is unavailable.
type Store struct {
	items itemStore
}

// Open initializes the on-disk store for the given app name.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[storage] could not open data store: %v", err)
		return nil, err
	}
	return &Store{items: m}, nil
}

// SharedHealth returns the persisted pool, defaulting both slots to the
// configured starting value when absent or unreadable.
func (s *Store) SharedHealth() (hp, max float64) {
	def := config.Health.DefaultShared
	if s == nil || s.items == nil {
		return def, def
	}
	return s.loadNumber(keySharedHP, def), s.loadNumber(keySharedMaxHP, def)
}

func (s *Store) SetSharedHealth(hp, max float64) {
	if s == nil || s.items == nil {
		return
	}
	s.saveNumber(keySharedHP, hp)
	s.saveNumber(keySharedMaxHP, max)
}

func (s *Store) loadNumber(key string, def float64) float64 {
	data, err := s.items.LoadItem(key)
	if err != nil {
		log.Printf("[storage] could not load %q: %v", key, err)
		return def
	}
	if len(data) == 0 {
		return def
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		log.Printf("[storage] bad value for %q: %v", key, err)
		return def
	}
	return v
}

func (s *Store) saveNumber(key string, v float64) {
	data := []byte(strconv.FormatFloat(v, 'f', -1, 64))
	if err := s.items.SaveItem(key, data); err != nil {
		log.Printf("[storage] could not save %q: %v", key, err)
	}
}
