package keys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/illarion/credvault/internal/crypto"
	"github.com/illarion/credvault/internal/keyring"
)

const (
	KeySize        = crypto.KeySize
	DirPermSecure  = 0700
	FilePermSecure = 0600
)

// Key sources accepted by New
const (
	SourceFile    = "file"
	SourceKeyring = "keyring"
)

var (
	ErrKeyRead       = errors.New("cannot read key")
	ErrUnknownSource = errors.New("unknown key source")
)

// Manager supplies the master key, creating it on first use
type Manager interface {
	LoadOrCreate() ([]byte, error)
	// Exists reports whether a key is already stored
	Exists() bool
	// Location describes where the key lives, for status output
	Location() string
}

// New returns a Manager for the given source.
// For SourceFile, target is the key file path; for SourceKeyring, the keyring account.
func New(source, target string, log *zap.Logger) (Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch source {
	case SourceFile, "":
		return &FileManager{path: target, log: log}, nil
	case SourceKeyring:
		return &KeyringManager{account: target, log: log}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
}

// FileManager keeps the key in a file with owner-only permissions
type FileManager struct {
	path string
	log  *zap.Logger
}

// LoadOrCreate implements Manager
func (m *FileManager) LoadOrCreate() ([]byte, error) {
	return LoadOrCreate(m.path, m.log)
}

// Exists implements Manager
func (m *FileManager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Location implements Manager
func (m *FileManager) Location() string {
	return m.path
}

// LoadOrCreate returns the key stored at path. If the file does not exist, a
// new random key is generated and written there with owner-only permissions.
func LoadOrCreate(path string, log *zap.Logger) ([]byte, error) {
	if log == nil {
		log = zap.NewNop()
	}

	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != KeySize {
			crypto.ClearBytes(key)
			return nil, fmt.Errorf("%w: %s has %d bytes, want %d", ErrKeyRead, path, len(key), KeySize)
		}
		log.Debug("loaded key", zap.String("path", path))
		return key, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrKeyRead, err)
	}

	return create(path, log)
}

func create(path string, log *zap.Logger) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(path), DirPermSecure); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}

	key, err := crypto.GenerateRandom(KeySize)
	if err != nil {
		return nil, err
	}

	// O_EXCL: never overwrite a key another process created in the meantime
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FilePermSecure)
	if err != nil {
		crypto.ClearBytes(key)
		return nil, fmt.Errorf("failed to create key file: %w", err)
	}
	if _, err := f.Write(key); err != nil {
		f.Close()
		os.Remove(path)
		crypto.ClearBytes(key)
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		crypto.ClearBytes(key)
		return nil, fmt.Errorf("failed to sync key file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		crypto.ClearBytes(key)
		return nil, fmt.Errorf("failed to close key file: %w", err)
	}

	restrictPermissions(path, log)
	log.Info("created new key", zap.String("path", path))
	return key, nil
}

// restrictPermissions enforces 0600 regardless of umask. Hosts without POSIX
// permission bits only get a warning; the key is still usable.
func restrictPermissions(path string, log *zap.Logger) {
	if runtime.GOOS == "windows" {
		log.Warn("owner-only key permissions are not supported on this platform", zap.String("path", path))
		return
	}
	if err := os.Chmod(path, FilePermSecure); err != nil {
		log.Warn("failed to restrict key permissions", zap.String("path", path), zap.Error(err))
	}
}

// KeyringManager keeps the key in the OS keyring
type KeyringManager struct {
	account string
	log     *zap.Logger
}

// LoadOrCreate implements Manager
func (m *KeyringManager) LoadOrCreate() ([]byte, error) {
	key, err := keyring.GetKey(m.account)
	if err == nil {
		if len(key) != KeySize {
			crypto.ClearBytes(key)
			return nil, fmt.Errorf("%w: keyring account %q holds %d bytes, want %d", ErrKeyRead, m.account, len(key), KeySize)
		}
		m.log.Debug("loaded key from keyring", zap.String("account", m.account))
		return key, nil
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrKeyRead, err)
	}

	key, err = crypto.GenerateRandom(KeySize)
	if err != nil {
		return nil, err
	}
	if err := keyring.SaveKey(m.account, key); err != nil {
		crypto.ClearBytes(key)
		return nil, fmt.Errorf("failed to save key to keyring: %w", err)
	}
	m.log.Info("created new key in keyring", zap.String("account", m.account))
	return key, nil
}

// Exists implements Manager
func (m *KeyringManager) Exists() bool {
	return keyring.HasKey(m.account)
}

// Location implements Manager
func (m *KeyringManager) Location() string {
	return "keyring:" + m.account
}
