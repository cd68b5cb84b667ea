package codec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illarion/credvault/internal/crypto"
	"github.com/illarion/credvault/internal/model"
	"github.com/illarion/credvault/internal/storage"
)

func newKey(t *testing.T) []byte {
	t.Helper()
	key, err := crypto.GenerateRandom(crypto.KeySize)
	require.NoError(t, err)
	return key
}

func sampleDatabase() *model.Database {
	db := model.NewDatabase()
	internet, _ := db.EnsureCategory("Internet")
	internet.Put("Mail", model.Record{Username: "alice", Password: "s3cr3t", Tags: []string{"work"}})
	internet.Put("github", model.Record{Username: "alice-gh", Password: "hunter2"})
	db.EnsureCategory("Gaming")
	shopping, _ := db.EnsureCategory("Shopping")
	shopping.Put("store", model.Record{Username: "bob", Password: "p@ss", Tags: []string{"a", "b"}})
	return db
}

func newFileCodec(t *testing.T, path string, key []byte) *Codec {
	t.Helper()
	c, err := New(storage.NewFileBackend(path), key)
	require.NoError(t, err)
	return c
}

func TestRoundTripFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "passwords.enc")
	key := newKey(t)
	c := newFileCodec(t, path, key)

	db := sampleDatabase()
	require.NoError(t, c.EncryptDatabase(db))

	got, err := c.DecryptDatabase()
	require.NoError(t, err)
	assert.Equal(t, db, got)
	assert.Equal(t, []string{"Internet", "Gaming", "Shopping"}, got.Names())
}

func TestRoundTripBolt(t *testing.T) {
	backend, err := storage.OpenBolt(filepath.Join(t.TempDir(), "passwords.db"))
	require.NoError(t, err)
	defer backend.Close()

	c, err := New(backend, newKey(t))
	require.NoError(t, err)

	db := sampleDatabase()
	require.NoError(t, c.EncryptDatabase(db))

	got, err := c.DecryptDatabase()
	require.NoError(t, err)
	assert.Equal(t, db, got)
}

func TestDecryptMissingBlob(t *testing.T) {
	c := newFileCodec(t, filepath.Join(t.TempDir(), "passwords.enc"), newKey(t))

	db, err := c.DecryptDatabase()
	require.NoError(t, err)
	assert.Empty(t, db.Names())
}

func TestBlobDoesNotContainPlaintext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.enc")
	c := newFileCodec(t, path, newKey(t))
	require.NoError(t, c.EncryptDatabase(sampleDatabase()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "s3cr3t")
	assert.NotContains(t, string(data), "alice")
}

func TestTamperDetection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.enc")
	c := newFileCodec(t, path, newKey(t))
	require.NoError(t, c.EncryptDatabase(sampleDatabase()))

	original, err := os.ReadFile(path)
	require.NoError(t, err)

	for i := range original {
		tampered := append([]byte(nil), original...)
		tampered[i] ^= 0x80
		require.NoError(t, os.WriteFile(path, tampered, 0600))

		_, err := c.DecryptDatabase()
		require.ErrorIs(t, err, ErrDecryption, "byte %d", i)
	}
}

func TestTruncatedBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.enc")
	c := newFileCodec(t, path, newKey(t))
	require.NoError(t, c.EncryptDatabase(sampleDatabase()))

	original, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, n := range []int{0, 2, len(magic), len(original) - 1} {
		require.NoError(t, os.WriteFile(path, original[:n], 0600))
		_, err := c.DecryptDatabase()
		require.ErrorIs(t, err, ErrDecryption, "length %d", n)
	}
}

func TestWrongKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.enc")
	require.NoError(t, newFileCodec(t, path, newKey(t)).EncryptDatabase(sampleDatabase()))

	_, err := newFileCodec(t, path, newKey(t)).DecryptDatabase()
	require.ErrorIs(t, err, ErrDecryption)
}

func TestParseErrorAfterDecryption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.enc")
	c := newFileCodec(t, path, newKey(t))

	cases := map[string]string{
		"not json":           "not json at all",
		"wrong version":      `{"version":99,"categories":[]}`,
		"empty category":     `{"version":1,"categories":[{"name":"","services":[]}]}`,
		"duplicate category": `{"version":1,"categories":[{"name":"A"},{"name":"A"}]}`,
		"empty service":      `{"version":1,"categories":[{"name":"A","services":[{"service":""}]}]}`,
		"duplicate service":  `{"version":1,"categories":[{"name":"A","services":[{"service":"x"},{"service":"x"}]}]}`,
	}

	for name, plaintext := range cases {
		t.Run(name, func(t *testing.T) {
			writeRawPlaintext(t, c, []byte(plaintext))
			_, err := c.DecryptDatabase()
			require.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestMissingTagsDecodeAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.enc")
	c := newFileCodec(t, path, newKey(t))

	writeRawPlaintext(t, c, []byte(`{"version":1,"categories":[{"name":"A","services":[{"service":"x","username":"u","password":"p"}]}]}`))

	db, err := c.DecryptDatabase()
	require.NoError(t, err)
	cat, ok := db.Category("A")
	require.True(t, ok)
	rec, ok := cat.Get("x")
	require.True(t, ok)
	assert.NotNil(t, rec.Tags)
	assert.Empty(t, rec.Tags)
}

func TestNewRejectsShortKey(t *testing.T) {
	_, err := New(storage.NewFileBackend("unused"), []byte("short"))
	assert.Error(t, err)
}

func TestCodecCopiesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.enc")
	key := newKey(t)
	c := newFileCodec(t, path, key)
	crypto.ClearBytes(key)

	require.NoError(t, c.EncryptDatabase(sampleDatabase()))
	_, err := c.DecryptDatabase()
	require.NoError(t, err)
}

// writeRawPlaintext encrypts arbitrary bytes the same way EncryptDatabase does
func writeRawPlaintext(t *testing.T, c *Codec, plaintext []byte) {
	t.Helper()
	enc, err := c.encryptor()
	require.NoError(t, err)
	defer enc.Destroy()

	ciphertext, err := enc.Encrypt(plaintext, magic)
	require.NoError(t, err)
	require.NoError(t, c.backend.Write(append(append([]byte(nil), magic...), ciphertext...)))
}
