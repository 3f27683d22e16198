package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket    = []byte("config")    // vault ID, cipher, timestamps - unencrypted
	SnapshotsBucket = []byte("snapshots") // previous sealed containers
)

// Config keys
var (
	ConfigVersion = []byte("version")
	ConfigCreated = []byte("created")
	ConfigVaultID = []byte("vault_id")
	ConfigCipher  = []byte("cipher")
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Storage provides the BBolt side-store for a vault
type Storage struct {
	db *bolt.DB
}

// Snapshot describes a stored previous container
type Snapshot struct {
	ID   uint64
	Time time.Time
	Size int
}

// Open opens or creates the side-store at path
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, FilePermSecure, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Initialize creates the bucket structure
func (s *Storage) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, SnapshotsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if config.Get(ConfigVersion) != nil {
			return nil
		}
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}
		created, _ := time.Now().UTC().MarshalBinary()
		return config.Put(ConfigCreated, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// GetCreated retrieves the side-store creation time
func (s *Storage) GetCreated() (time.Time, error) {
	var created time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigCreated)
		if data == nil {
			return fmt.Errorf("created time not found")
		}
		return created.UnmarshalBinary(data)
	})
	return created, err
}

// GetVaultID retrieves the vault ID from config bucket
func (s *Storage) GetVaultID() (string, error) {
	var vaultID string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		vaultID = string(data)
		return nil
	})
	return vaultID, err
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (s *Storage) GetOrCreateVaultID() (string, error) {
	vaultID, err := s.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	vaultID = uuid.NewString()

	err = s.db.Update(func(tx *bolt.Tx) error {
		config, err := tx.CreateBucketIfNotExists(ConfigBucket)
		if err != nil {
			return err
		}
		return config.Put(ConfigVaultID, []byte(vaultID))
	})
	if err != nil {
		return "", err
	}

	return vaultID, nil
}

// SetCipher records the cipher the vault is sealed with
func (s *Storage) SetCipher(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config, err := tx.CreateBucketIfNotExists(ConfigBucket)
		if err != nil {
			return err
		}
		return config.Put(ConfigCipher, []byte(name))
	})
}

// GetCipher returns the recorded cipher name, or "" when none was stored
func (s *Storage) GetCipher() (string, error) {
	var name string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return nil
		}
		name = string(config.Get(ConfigCipher))
		return nil
	})
	return name, err
}

// PushSnapshot stores a copy of container and prunes the oldest snapshots
// so that at most keep remain. keep <= 0 disables snapshots.
func (s *Storage) PushSnapshot(container []byte, keep int) (uint64, error) {
	if keep <= 0 {
		return 0, nil
	}

	var id uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		snaps, err := tx.CreateBucketIfNotExists(SnapshotsBucket)
		if err != nil {
			return err
		}

		id = uint64(time.Now().UnixNano())
		// keep keys strictly increasing even on coarse clocks
		if last, _ := snaps.Cursor().Last(); last != nil {
			if prev := binary.BigEndian.Uint64(last); id <= prev {
				id = prev + 1
			}
		}
		if err := snaps.Put(snapshotKey(id), container); err != nil {
			return err
		}

		var keys [][]byte
		c := snaps.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for i := 0; i < len(keys)-keep; i++ {
			if err := snaps.Delete(keys[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return id, err
}

// ListSnapshots returns snapshots, newest first
func (s *Storage) ListSnapshots() ([]Snapshot, error) {
	var out []Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		snaps := tx.Bucket(SnapshotsBucket)
		if snaps == nil {
			return nil
		}
		c := snaps.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			id := binary.BigEndian.Uint64(k)
			out = append(out, Snapshot{
				ID:   id,
				Time: time.Unix(0, int64(id)),
				Size: len(v),
			})
		}
		return nil
	})
	return out, err
}

// GetSnapshot returns a copy of the container stored under id
func (s *Storage) GetSnapshot(id uint64) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		snaps := tx.Bucket(SnapshotsBucket)
		if snaps == nil {
			return ErrSnapshotNotFound
		}
		v := snaps.Get(snapshotKey(id))
		if v == nil {
			return ErrSnapshotNotFound
		}
		// Make a copy since the slice is only valid during the transaction
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

// LatestSnapshot returns the ID of the newest snapshot
func (s *Storage) LatestSnapshot() (uint64, error) {
	var id uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		snaps := tx.Bucket(SnapshotsBucket)
		if snaps == nil {
			return ErrSnapshotNotFound
		}
		k, _ := snaps.Cursor().Last()
		if k == nil {
			return ErrSnapshotNotFound
		}
		id = binary.BigEndian.Uint64(k)
		return nil
	})
	return id, err
}

func snapshotKey(id uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, id)
	return k
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after snapshots have been pruned.
func (s *Storage) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	dst, err := bolt.Open(tmpPath, FilePermSecure, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	s.db, err = bolt.Open(srcPath, FilePermSecure, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}
