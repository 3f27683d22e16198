package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rokybeast/passlock/internal/crypto"
	"github.com/rokybeast/passlock/internal/engine"
	"github.com/rokybeast/passlock/internal/storage"
	"github.com/rokybeast/passlock/internal/vault"
)

var (
	ErrNotInitialized   = errors.New("passlock vault not initialized")
	ErrAlreadyExists    = errors.New("passlock vault already exists")
	ErrPasswordRequired = errors.New("password required")
	ErrCipherMismatch   = errors.New("vault cipher is not available")
)

// Passlock manages one vault file and its side-store
type Passlock struct {
	path          string
	engine        *engine.Engine
	historyLimit  int
	snapshotLimit int
	log           *zap.Logger
}

// Option configures a Passlock
type Option func(*Passlock)

// WithEngine replaces the default engine
func WithEngine(e *engine.Engine) Option {
	return func(p *Passlock) { p.engine = e }
}

// WithHistoryLimit bounds per-entry password history
func WithHistoryLimit(n int) Option {
	return func(p *Passlock) { p.historyLimit = n }
}

// WithSnapshotLimit sets how many previous containers are kept; 0 disables
func WithSnapshotLimit(n int) Option {
	return func(p *Passlock) { p.snapshotLimit = n }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(p *Passlock) { p.log = l }
}

// New creates a Passlock for the vault file at path
func New(path string, opts ...Option) *Passlock {
	p := &Passlock{
		path:          path,
		engine:        engine.New(),
		historyLimit:  vault.DefaultHistoryLimit,
		snapshotLimit: 5,
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(zap.String("vault", path))
	return p
}

// Path returns the vault file path
func (p *Passlock) Path() string {
	return p.path
}

// Cipher returns the name of the cipher the vault is sealed with
func (p *Passlock) Cipher() (string, error) {
	eng, err := p.vaultEngine()
	if err != nil {
		return "", err
	}
	return eng.Backend().Name(), nil
}

// Exists reports whether the vault file is present
func (p *Passlock) Exists() (bool, error) {
	return storage.Exists(p.path)
}

// Init creates a new empty vault sealed under password. The side-store
// records the vault ID and the cipher, so later sessions open the vault
// with the same cipher whatever the configuration says.
func (p *Passlock) Init(ctx context.Context, password []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(password) == 0 {
		return ErrPasswordRequired
	}

	exists, err := p.Exists()
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return err
	}
	v := vault.New(salt)

	data, err := p.engine.Seal(v, password)
	if err != nil {
		return fmt.Errorf("failed to seal new vault: %w", err)
	}

	if err := storage.WriteContainer(p.path, data); err != nil {
		return err
	}
	if err := p.initSideStore(); err != nil {
		os.Remove(p.path)
		os.Remove(storage.SideStorePath(p.path))
		return fmt.Errorf("failed to initialize side-store: %w", err)
	}

	p.log.Info("vault created", zap.String("cipher", p.engine.Backend().Name()))
	return nil
}

func (p *Passlock) initSideStore() error {
	db, err := storage.Open(storage.SideStorePath(p.path))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Initialize(); err != nil {
		return err
	}
	if _, err := db.GetOrCreateVaultID(); err != nil {
		return err
	}
	return db.SetCipher(p.engine.Backend().Name())
}

// Open reads and decrypts the vault
func (p *Passlock) Open(ctx context.Context, password []byte) (*vault.Vault, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, ErrPasswordRequired
	}

	data, err := p.readContainer()
	if err != nil {
		return nil, err
	}
	eng, err := p.vaultEngine()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	v, err := eng.Open(data, password)
	if err != nil {
		p.log.Debug("open failed", zap.Duration("took", time.Since(start)))
		return nil, err
	}
	p.log.Debug("vault opened", zap.Int("entries", len(v.Entries)), zap.Duration("took", time.Since(start)))
	return v, nil
}

// Save seals v and replaces the vault file. The current file is kept as a
// snapshot first. Nothing is written unless sealing succeeds.
func (p *Passlock) Save(ctx context.Context, v *vault.Vault, password []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	eng, err := p.vaultEngine()
	if err != nil {
		return err
	}

	start := time.Now()
	data, err := eng.Seal(v, password)
	if err != nil {
		return err
	}

	if err := p.snapshotCurrent(); err != nil {
		p.log.Warn("snapshot failed", zap.Error(err))
	}

	if err := storage.WriteContainer(p.path, data); err != nil {
		return err
	}
	p.log.Info("vault saved", zap.Int("entries", len(v.Entries)), zap.Duration("took", time.Since(start)))
	return nil
}

// Update opens the vault, applies fn and saves the result. If fn returns
// an error nothing is written.
func (p *Passlock) Update(ctx context.Context, password []byte, fn func(*vault.Vault) error) error {
	v, err := p.Open(ctx, password)
	if err != nil {
		return err
	}
	if err := fn(v); err != nil {
		return err
	}
	return p.Save(ctx, v, password)
}

// AddEntry stores a new entry and returns it with its assigned ID
func (p *Passlock) AddEntry(ctx context.Context, password []byte, e vault.Entry) (vault.Entry, error) {
	var added vault.Entry
	err := p.Update(ctx, password, func(v *vault.Vault) error {
		var err error
		added, err = v.Add(e)
		return err
	})
	return added, err
}

// EditEntry applies fn to the entry named or identified by ref
func (p *Passlock) EditEntry(ctx context.Context, password []byte, ref string, fn func(*vault.Entry)) (vault.Entry, error) {
	var updated vault.Entry
	err := p.Update(ctx, password, func(v *vault.Vault) error {
		e, err := v.Lookup(ref)
		if err != nil {
			return err
		}
		updated, err = v.Update(e.ID, p.historyLimit, fn)
		return err
	})
	return updated, err
}

// RemoveEntry deletes the entry named or identified by ref
func (p *Passlock) RemoveEntry(ctx context.Context, password []byte, ref string) (vault.Entry, error) {
	var removed vault.Entry
	err := p.Update(ctx, password, func(v *vault.Vault) error {
		e, err := v.Lookup(ref)
		if err != nil {
			return err
		}
		removed = *e
		v.Remove(e.ID)
		return nil
	})
	return removed, err
}

// GetEntry returns the entry named or identified by ref
func (p *Passlock) GetEntry(ctx context.Context, password []byte, ref string) (vault.Entry, error) {
	v, err := p.Open(ctx, password)
	if err != nil {
		return vault.Entry{}, err
	}
	e, err := v.Lookup(ref)
	if err != nil {
		return vault.Entry{}, err
	}
	return *e, nil
}

// List returns entries matching query (all when empty)
func (p *Passlock) List(ctx context.Context, password []byte, query string) ([]vault.Entry, error) {
	v, err := p.Open(ctx, password)
	if err != nil {
		return nil, err
	}
	return v.Search(query), nil
}

// MatchURL returns entries stored for the site rawURL belongs to
func (p *Passlock) MatchURL(ctx context.Context, password []byte, rawURL string) ([]vault.Entry, error) {
	v, err := p.Open(ctx, password)
	if err != nil {
		return nil, err
	}
	return v.MatchURL(rawURL)
}

// ListTag returns entries carrying tag exactly
func (p *Passlock) ListTag(ctx context.Context, password []byte, tag string) ([]vault.Entry, error) {
	v, err := p.Open(ctx, password)
	if err != nil {
		return nil, err
	}
	return v.FilterTag(tag), nil
}

// Tags returns every tag in use with its entry count, most used first
func (p *Passlock) Tags(ctx context.Context, password []byte) ([]vault.TagCount, error) {
	v, err := p.Open(ctx, password)
	if err != nil {
		return nil, err
	}
	return v.Tags(), nil
}

// VerifyPassword checks if the password is correct for this vault
func (p *Passlock) VerifyPassword(password []byte) error {
	if len(password) == 0 {
		return ErrPasswordRequired
	}
	data, err := p.readContainer()
	if err != nil {
		return err
	}
	eng, err := p.vaultEngine()
	if err != nil {
		return err
	}
	return eng.Verify(data, password)
}

// Snapshots lists stored previous containers (no password required)
func (p *Passlock) Snapshots(ctx context.Context) ([]storage.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db, err := p.openSideStore()
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.ListSnapshots()
}

// OpenSnapshot decrypts a stored snapshot
func (p *Passlock) OpenSnapshot(ctx context.Context, password []byte, id uint64) (*vault.Vault, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := p.snapshotData(id)
	if err != nil {
		return nil, err
	}
	eng, err := p.vaultEngine()
	if err != nil {
		return nil, err
	}
	return eng.Open(data, password)
}

// Restore replaces the vault with snapshot id. The snapshot must open
// with password; the current file becomes a new snapshot.
func (p *Passlock) Restore(ctx context.Context, password []byte, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := p.snapshotData(id)
	if err != nil {
		return err
	}
	eng, err := p.vaultEngine()
	if err != nil {
		return err
	}
	if err := eng.Verify(data, password); err != nil {
		return err
	}

	if err := p.snapshotCurrent(); err != nil {
		p.log.Warn("snapshot failed", zap.Error(err))
	}
	if err := storage.WriteContainer(p.path, data); err != nil {
		return err
	}
	p.log.Info("snapshot restored", zap.Uint64("snapshot", id))
	return nil
}

// Info describes a vault without decrypting it
type Info struct {
	VaultID   string
	Cipher    string
	Created   time.Time
	Snapshots int
}

// Info reads vault metadata from the side-store (no password required)
func (p *Passlock) Info(ctx context.Context) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	cipherName, err := p.Cipher()
	if err != nil {
		return Info{}, err
	}

	db, err := p.openSideStore()
	if err != nil {
		return Info{}, err
	}
	defer db.Close()

	info := Info{Cipher: cipherName}
	if info.VaultID, err = db.GetVaultID(); err != nil {
		return Info{}, err
	}
	if info.Created, err = db.GetCreated(); err != nil {
		return Info{}, err
	}
	snaps, err := db.ListSnapshots()
	if err != nil {
		return Info{}, err
	}
	info.Snapshots = len(snaps)
	return info, nil
}

// Compact compacts the side-store to reclaim unused space
func (p *Passlock) Compact() error {
	db, err := p.openSideStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Compact()
}

// GetVaultID retrieves the vault ID from the side-store
func (p *Passlock) GetVaultID() (string, error) {
	db, err := p.openSideStore()
	if err != nil {
		return "", err
	}
	defer db.Close()
	return db.GetVaultID()
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (p *Passlock) GetOrCreateVaultID() (string, error) {
	db, err := p.openSideStore()
	if err != nil {
		return "", err
	}
	defer db.Close()
	if err := db.Initialize(); err != nil {
		return "", err
	}
	return db.GetOrCreateVaultID()
}

func (p *Passlock) readContainer() ([]byte, error) {
	data, err := storage.ReadContainer(p.path)
	if errors.Is(err, storage.ErrVaultNotFound) {
		return nil, ErrNotInitialized
	}
	return data, err
}

// vaultEngine returns the engine for the cipher recorded at Init. Without a
// recorded cipher (side-store missing) the configured engine is used.
func (p *Passlock) vaultEngine() (*engine.Engine, error) {
	name, err := p.storedCipher()
	if err != nil {
		return nil, err
	}
	if name == "" || name == p.engine.Backend().Name() {
		return p.engine, nil
	}

	backend, err := crypto.NewCipherBackend(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCipherMismatch, name)
	}
	p.log.Debug("using recorded cipher",
		zap.String("recorded", name), zap.String("configured", p.engine.Backend().Name()))
	return p.engine.Using(backend), nil
}

func (p *Passlock) storedCipher() (string, error) {
	dbPath := storage.SideStorePath(p.path)
	exists, err := storage.Exists(dbPath)
	if err != nil || !exists {
		return "", err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer db.Close()

	initialized, err := db.IsInitialized()
	if err != nil || !initialized {
		return "", err
	}
	return db.GetCipher()
}

// openSideStore opens the side-store of an existing vault
func (p *Passlock) openSideStore() (*storage.Storage, error) {
	exists, err := p.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotInitialized
	}
	return storage.Open(storage.SideStorePath(p.path))
}

func (p *Passlock) snapshotData(id uint64) ([]byte, error) {
	db, err := p.openSideStore()
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if id == 0 {
		if id, err = db.LatestSnapshot(); err != nil {
			return nil, err
		}
	}
	return db.GetSnapshot(id)
}

// snapshotCurrent copies the current vault file into the side-store
func (p *Passlock) snapshotCurrent() error {
	if p.snapshotLimit <= 0 {
		return nil
	}
	current, err := storage.ReadContainer(p.path)
	if errors.Is(err, storage.ErrVaultNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	db, err := storage.Open(storage.SideStorePath(p.path))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Initialize(); err != nil {
		return err
	}
	id, err := db.PushSnapshot(current, p.snapshotLimit)
	if err != nil {
		return err
	}
	p.log.Debug("snapshot stored", zap.Uint64("snapshot", id))
	return nil
}
