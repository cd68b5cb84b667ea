package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/illarion/credvault/internal/codec"
	"github.com/illarion/credvault/internal/crypto"
	"github.com/illarion/credvault/internal/keys"
	"github.com/illarion/credvault/internal/storage"
	"github.com/illarion/credvault/internal/vault"
)

var (
	errNotFound = errors.New("service not found")

	successMark = color.New(color.FgGreen).SprintFunc()
	warnMark    = color.New(color.FgYellow).SprintFunc()
	errorMark   = color.New(color.FgRed).SprintFunc()
)

// session is an open store plus the resources behind it
type session struct {
	store   *vault.Store
	codec   *codec.Codec
	backend storage.Backend
	keys    keys.Manager

	// keyCreated is set when this session generated the key
	keyCreated bool
}

func (s *session) Close() {
	s.codec.Destroy()
	if err := s.backend.Close(); err != nil {
		logger.Warn("failed to close storage")
	}
}

func keyTarget() string {
	if cfg.Key.Source == keys.SourceKeyring {
		return cfg.Key.KeyringAccount
	}
	return cfg.KeyPath()
}

// openSession loads or creates the key, then opens the store
func openSession() (*session, error) {
	km, err := keys.New(cfg.Key.Source, keyTarget(), logger)
	if err != nil {
		return nil, err
	}
	existed := km.Exists()
	key, err := km.LoadOrCreate()
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(key)

	backend, err := storage.Open(cfg.Storage.Backend, cfg.BlobPath())
	if err != nil {
		return nil, err
	}

	c, err := codec.New(backend, key)
	if err != nil {
		backend.Close()
		return nil, err
	}

	store, err := vault.Open(c, vault.WithLogger(logger))
	if err != nil {
		c.Destroy()
		backend.Close()
		return nil, err
	}

	return &session{store: store, codec: c, backend: backend, keys: km, keyCreated: !existed}, nil
}

// withStore runs fn against an open store and closes it afterwards
func withStore(fn func(*vault.Store) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.store)
}

// HandleError prints a user-facing message for err and exits non-zero
func HandleError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, errorMark("Error:"), describeError(err))
	os.Exit(1)
}

func describeError(err error) string {
	switch {
	case errors.Is(err, keys.ErrKeyRead):
		return fmt.Sprintf("%v\nThe key file is unreadable or has the wrong size. Restore it from backup; a new key cannot open an existing store.", err)
	case errors.Is(err, codec.ErrDecryption):
		return fmt.Sprintf("%v\nThe store was sealed with a different key or has been modified.", err)
	case errors.Is(err, codec.ErrParse):
		return fmt.Sprintf("%v\nThe store decrypted but its contents are not valid.", err)
	case errors.Is(err, vault.ErrImport):
		return fmt.Sprintf("%v\nThe import stopped at this row. Rows before it were kept.", err)
	case errors.Is(err, vault.ErrEmptyService):
		return "service name must not be empty"
	case errors.Is(err, storage.ErrUnknownBackend), errors.Is(err, keys.ErrUnknownSource):
		return fmt.Sprintf("%v\nCheck your configuration.", err)
	default:
		return err.Error()
	}
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successMark("✓"), fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warnMark("!"), fmt.Sprintf(format, args...))
}
