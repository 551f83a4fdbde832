package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sitekit/pkg/log"
	"sitekit/pkg/utils"
)

const (
	deckKeyPrefix = "deck:"       // Prefix for deck id keys in DB
	progressDBDir = "progress_db" // Subdirectory name within stateDir for Badger DB files
)

// BadgerStore implements the Store interface using BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	log *logrus.Entry
}

// NewBadgerStore opens (or creates) the progress database under stateDir.
func NewBadgerStore(stateDir string, logger *logrus.Entry) (*BadgerStore, error) {
	dbPath := filepath.Join(stateDir, progressDBDir)

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("%w: cannot create state directory %s: %v", utils.ErrFilesystem, dbPath, err)
	}

	logger.Debugf("Opening progress database at: %s", dbPath)

	badgerLogger := log.NewBadgerLogrusAdapter(logger.WithField("component", "badgerdb"))
	opts := badger.DefaultOptions(dbPath).
		WithLogger(badgerLogger).
		WithNumVersionsToKeep(1) // Only the latest position matters

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open badger database at %s: %v", utils.ErrDatabase, dbPath, err)
	}

	return &BadgerStore{db: db, log: logger}, nil
}

const maxConflictRetries = 10

// dbUpdate wraps db.Update with a retry loop for BadgerDB transaction conflicts.
// Concurrent MVCC transactions on overlapping keys can return badger.ErrConflict;
// these resolve in microseconds, so a tight retry loop is sufficient.
func (s *BadgerStore) dbUpdate(fn func(txn *badger.Txn) error) error {
	for i := range maxConflictRetries {
		err := s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		s.log.Debugf("BadgerDB transaction conflict (attempt %d/%d), retrying", i+1, maxConflictRetries)
	}
	return fmt.Errorf("%w: transaction conflict not resolved after %d retries", utils.ErrDatabase, maxConflictRetries)
}

// Get implements the Store interface.
func (s *BadgerStore) Get(deckID string) (*DeckProgress, error) {
	key := []byte(deckKeyPrefix + deckID)

	var entry DeckProgress
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return json.Unmarshal(val, &entry)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: '%s'", utils.ErrProgressNotFound, deckID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading progress for '%s': %v", utils.ErrDatabase, deckID, err)
	}
	return &entry, nil
}

// Set implements the Store interface.
func (s *BadgerStore) Set(deckID string, slideIndex, slideCount int) (*DeckProgress, error) {
	if slideIndex < 0 {
		slideIndex = 0
	}
	if slideCount > 0 && slideIndex >= slideCount {
		slideIndex = slideCount - 1
	}

	key := []byte(deckKeyPrefix + deckID)
	entry := DeckProgress{
		DeckID:     deckID,
		SlideIndex: slideIndex,
		SlideCount: slideCount,
		UpdatedAt:  time.Now().UTC(),
	}

	err := s.dbUpdate(func(txn *badger.Txn) error {
		// Keep the existing session id, assign one on first write
		item, errGet := txn.Get(key)
		switch {
		case errGet == nil:
			val, errVal := item.ValueCopy(nil)
			if errVal != nil {
				return errVal
			}
			var prev DeckProgress
			if errJSON := json.Unmarshal(val, &prev); errJSON == nil && prev.SessionID != "" {
				entry.SessionID = prev.SessionID
			}
		case errors.Is(errGet, badger.ErrKeyNotFound):
			// First write for this deck
		default:
			return errGet
		}
		if entry.SessionID == "" {
			entry.SessionID = uuid.New().String()
		}

		data, errJSON := json.Marshal(&entry)
		if errJSON != nil {
			return errJSON
		}
		return txn.Set(key, data)
	})
	if err != nil {
		s.log.WithField("deck_id", deckID).Errorf("DB Update error in Set: %v", err)
		return nil, fmt.Errorf("%w: storing progress for '%s': %v", utils.ErrDatabase, deckID, err)
	}

	s.log.WithFields(logrus.Fields{
		"deck_id":     deckID,
		"slide_index": entry.SlideIndex,
		"slide_count": entry.SlideCount,
	}).Debug("Stored deck progress")
	return &entry, nil
}

// List implements the Store interface.
func (s *BadgerStore) List() ([]DeckProgress, error) {
	var entries []DeckProgress
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(deckKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			val, errVal := it.Item().ValueCopy(nil)
			if errVal != nil {
				return errVal
			}
			var entry DeckProgress
			if errJSON := json.Unmarshal(val, &entry); errJSON != nil {
				s.log.Warnf("Skipping unreadable progress record '%s': %v", it.Item().Key(), errJSON)
				continue
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing progress records: %v", utils.ErrDatabase, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].DeckID < entries[j].DeckID })
	return entries, nil
}

// Reset implements the Store interface.
func (s *BadgerStore) Reset(deckID string) error {
	key := []byte(deckKeyPrefix + deckID)
	err := s.dbUpdate(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("%w: resetting progress for '%s': %v", utils.ErrDatabase, deckID, err)
	}
	return nil
}

// Close implements the Store interface.
func (s *BadgerStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.log.Debug("Closing progress database")
	return s.db.Close()
}
