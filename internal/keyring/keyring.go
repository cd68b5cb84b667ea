package keyring

import (
	"encoding/base64"
	"fmt"

	"github.com/zalando/go-keyring"
)

const serviceName = "credvault"

// ErrNotFound is returned when no key is stored for an account
var ErrNotFound = keyring.ErrNotFound

// SaveKey stores a key in the OS keyring
func SaveKey(account string, key []byte) error {
	return keyring.Set(serviceName, account, base64.StdEncoding.EncodeToString(key))
}

// GetKey retrieves a key from the OS keyring
func GetKey(account string) ([]byte, error) {
	encoded, err := keyring.Get(serviceName, account)
	if err != nil {
		return nil, err
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("stored key is not valid base64")
	}
	return key, nil
}

// HasKey checks if a key is stored in the keyring
func HasKey(account string) bool {
	_, err := keyring.Get(serviceName, account)
	return err == nil
}
