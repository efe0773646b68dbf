package iotrait

import (
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
)

// traitValue is the cached payload, encoded with GOB.
type traitValue struct {
	Name     string
	LifeForm string
}

// traitStore is an ephemeral Badger key-value store spilling the
// session's trait lookups to disk. Area-wide pulls can touch tens of
// thousands of names; keeping only the hot set in memory bounds the
// footprint. The directory is cleaned on open and removed on cleanup,
// so nothing survives the session.
type traitStore struct {
	dir string
	db  *badger.DB
}

// newTraitStore creates and opens the store at dir.
func newTraitStore(dir string) (*traitStore, error) {
	if err := gnsys.MakeDir(dir); err != nil {
		slog.Error("Cannot create trait cache directory",
			"error", err, "dir", dir)
		return nil, CacheError(dir, err)
	}
	if err := gnsys.CleanDir(dir); err != nil {
		slog.Error("Cannot clean trait cache directory",
			"error", err, "dir", dir)
		return nil, CacheError(dir, err)
	}

	options := badger.DefaultOptions(dir)
	options.Logger = nil // Disable badger's internal logging

	db, err := badger.Open(options)
	if err != nil {
		slog.Error("Cannot open trait cache",
			"error", err, "dir", dir)
		return nil, CacheError(dir, err)
	}
	return &traitStore{dir: dir, db: db}, nil
}

// get retrieves a cached life form. ok is false on a miss.
func (s *traitStore) get(name string) (string, bool, error) {
	var valBytes []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if err == badger.ErrKeyNotFound {
			return nil // Not an error, just not found
		}
		if err != nil {
			return err
		}
		valBytes, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return "", false, err
	}
	if valBytes == nil {
		return "", false, nil
	}

	enc := gnfmt.GNgob{}
	var data traitValue
	if err := enc.Decode(valBytes, &data); err != nil {
		return "", false, err
	}
	return data.LifeForm, true, nil
}

// put stores a life form value under the queried name.
func (s *traitStore) put(name, lifeForm string) error {
	enc := gnfmt.GNgob{}
	valBytes, err := enc.Encode(traitValue{Name: name, LifeForm: lifeForm})
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(name), valBytes)
	})
}

// cleanup closes the database and removes the cache directory.
func (s *traitStore) cleanup() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Cannot close trait cache", "error", err)
			return err
		}
		s.db = nil
	}
	if err := gnsys.CleanDir(s.dir); err != nil {
		slog.Error("Cannot remove trait cache directory",
			"error", err, "dir", s.dir)
		return err
	}
	return nil
}
