package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes. Secondary indexes all live under "idx:" so that a scan of a
// record prefix never returns index entries.
const (
	userPrefix         = "user:"
	sessionPrefix      = "session:"
	chatPrefix         = "chat:"
	messagePrefix      = "msg:"
	notificationPrefix = "notif:"
	authPrefix         = "auth:"
	mediaPrefix        = "media:"
	attachmentPrefix   = "attachment:"

	usernameIndex     = "idx:username:"
	tokenIndex        = "idx:token:"
	userSessionIndex  = "idx:session:"
	memberIndex       = "idx:member:"
	messageIndex      = "idx:msg:"
	notificationIndex = "idx:notif:"
)

// OpenBadger opens the store at path with a quiet logger, as used by every binary.
func OpenBadger(path string, readOnly bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLoggingLevel(badger.WARNING).
		WithReadOnly(readOnly)
	return badger.Open(opts)
}

// paddedNano renders t as 19 zero-padded digits so keys sort chronologically.
func paddedNano(t time.Time) string {
	return fmt.Sprintf("%019d", t.UnixNano())
}

// conflictRetries bounds how many times a read-modify-write transaction is
// replayed after badger reports a conflicting concurrent commit.
const conflictRetries = 5

func updateWithRetry(db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for range conflictRetries {
		if err = db.Update(fn); !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// getJSON decodes the value under key into T, translating a missing key into notFound.
func getJSON[T any](txn *badger.Txn, key string, notFound error) (T, error) {
	var out T
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return out, notFound
	}
	if err != nil {
		return out, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &out)
	})
	return out, err
}

func getString(txn *badger.Txn, key string, notFound error) (string, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", notFound
	}
	if err != nil {
		return "", err
	}
	val, err := item.ValueCopy(nil)
	return string(val), err
}

// scanPrefix walks every key under prefix in lexicographical order.
func scanPrefix(txn *badger.Txn, prefix string, fn func(key string, val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		item := it.Item()
		key := string(item.Key())
		err := item.Value(func(val []byte) error {
			return fn(key, val)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// scanKeys walks keys only, for index prefixes whose values are empty.
func scanKeys(txn *badger.Txn, prefix string, fn func(key string) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		if err := fn(string(it.Item().Key())); err != nil {
			return err
		}
	}
	return nil
}

func scanJSON[T any](txn *badger.Txn, prefix string) ([]T, error) {
	var out []T
	err := scanPrefix(txn, prefix, func(key string, val []byte) error {
		var v T
		if err := json.Unmarshal(val, &v); err != nil {
			return fmt.Errorf("decode %s failed: %w", key, err)
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

func exists(txn *badger.Txn, key string) (bool, error) {
	_, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}
