// Package codec converts between the in-memory credential database and the
// encrypted blob held by a storage backend.
//
// Blob layout:
//
//	magic "CVB1" | nonce (12 bytes) | AES-256-GCM ciphertext + tag
//
// The magic header is authenticated as additional data, so any modified
// byte fails decryption with ErrDecryption. The plaintext is the JSON wire
// format (see wireDatabase), validated on decode.
package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/illarion/credvault/internal/crypto"
	"github.com/illarion/credvault/internal/model"
	"github.com/illarion/credvault/internal/storage"
)

// blobKeyInfo binds the derived cipher key to this blob format
const blobKeyInfo = "credvault blob v1"

var magic = []byte("CVB1")

var (
	ErrDecryption = errors.New("cannot decrypt database: wrong key or corrupted file")
	ErrParse      = errors.New("decrypted database is malformed")
)

// Codec encrypts and decrypts the database to a storage backend
type Codec struct {
	backend storage.Backend
	key     []byte
}

// New creates a codec. The master key is copied; the caller may clear its own copy.
func New(backend storage.Backend, masterKey []byte) (*Codec, error) {
	if len(masterKey) != crypto.KeySize {
		return nil, fmt.Errorf("master key must be %d bytes", crypto.KeySize)
	}
	return &Codec{
		backend: backend,
		key:     append([]byte(nil), masterKey...),
	}, nil
}

// Backend returns the underlying storage backend
func (c *Codec) Backend() storage.Backend {
	return c.backend
}

// Destroy clears the master key held by the codec
func (c *Codec) Destroy() {
	crypto.ClearBytes(c.key)
}

func (c *Codec) encryptor() (*crypto.Encryptor, error) {
	key, err := crypto.DeriveKey(c.key, blobKeyInfo)
	if err != nil {
		return nil, err
	}
	return crypto.NewEncryptor(key), nil
}

// DecryptDatabase loads the database from the backend. A backend that holds
// no blob yet yields an empty database with no categories.
func (c *Codec) DecryptDatabase() (*model.Database, error) {
	data, err := c.backend.Read()
	if errors.Is(err, storage.ErrNotExist) {
		return model.NewDatabase(), nil
	}
	if err != nil {
		return nil, err
	}

	if len(data) < len(magic) || !bytes.Equal(data[:len(magic)], magic) {
		return nil, ErrDecryption
	}

	enc, err := c.encryptor()
	if err != nil {
		return nil, err
	}
	defer enc.Destroy()

	plaintext, err := enc.Decrypt(data[len(magic):], magic)
	if err != nil {
		return nil, ErrDecryption
	}
	defer crypto.ClearBytes(plaintext)

	return Unmarshal(plaintext)
}

// EncryptDatabase serializes, encrypts and atomically stores db
func (c *Codec) EncryptDatabase(db *model.Database) error {
	plaintext, err := Marshal(db)
	if err != nil {
		return err
	}
	defer crypto.ClearBytes(plaintext)

	enc, err := c.encryptor()
	if err != nil {
		return err
	}
	defer enc.Destroy()

	ciphertext, err := enc.Encrypt(plaintext, magic)
	if err != nil {
		return fmt.Errorf("failed to encrypt database: %w", err)
	}

	blob := make([]byte, 0, len(magic)+len(ciphertext))
	blob = append(blob, magic...)
	blob = append(blob, ciphertext...)

	return c.backend.Write(blob)
}
