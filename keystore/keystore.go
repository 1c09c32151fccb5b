// Package keystore stores private keys AES-256-CBC encrypted under a random
// key, addressable by a PBKDF2 digest of a caller-chosen keyword. The AES key
// is returned to the caller at store time and must be presented again to
// retrieve the plaintext.
package keystore

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
	"gorm.io/gorm"

	"promptmarket/models"
)

var (
	ErrKeyNotFound = errors.New("no matching encrypted key found")
	ErrKeyMismatch = errors.New("invalid AES key provided")
)

// Keyword digests must be deterministic so they can be looked up, hence the
// fixed salt.
var keywordSalt = []byte("promptmarket-keystore")

const keywordIterations = 4096

// GenerateKey returns a random 256-bit AES key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// Encrypt AES-CBC encrypts plaintext with a random IV and PKCS7 padding,
// returning base64(iv || ciphertext).
func Encrypt(key []byte, plaintext string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(iv)+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(iv):], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt.
func Decrypt(key []byte, encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	if len(raw) < aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return "", fmt.Errorf("ciphertext length %d is not a block multiple", len(raw))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	iv, data := raw[:aes.BlockSize], raw[aes.BlockSize:]
	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)

	unpadded, err := pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

// HashKeyword derives the lookup digest for a keyword.
func HashKeyword(keyword string) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(keyword), keywordSalt, keywordIterations, 32, sha256.New))
}

// StoreKey encrypts and persists a private key under a fresh AES key, indexed
// by the keyword digest. Returns the base64 AES key the caller needs for
// retrieval.
func StoreKey(db *gorm.DB, privateKey, keyword string) (string, error) {
	aesKey, err := GenerateKey()
	if err != nil {
		return "", err
	}
	encrypted, err := Encrypt(aesKey, privateKey)
	if err != nil {
		return "", err
	}

	entry := models.EncryptedKey{
		AESEncryptedPrivateKey: encrypted,
		UniqueKeywordHash:      HashKeyword(keyword),
		AESKey:                 base64.StdEncoding.EncodeToString(aesKey),
	}
	if err := db.Create(&entry).Error; err != nil {
		return "", err
	}
	return entry.AESKey, nil
}

// RetrieveKey looks up the entry for keyword, verifies the presented AES key
// against the stored one, and returns the decrypted private key.
func RetrieveKey(db *gorm.DB, keyword, aesKeyB64 string) (string, error) {
	var entry models.EncryptedKey
	err := db.Where("unique_keyword_hash = ?", HashKeyword(keyword)).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}

	presented, err := base64.StdEncoding.DecodeString(aesKeyB64)
	if err != nil {
		return "", ErrKeyMismatch
	}
	stored, err := base64.StdEncoding.DecodeString(entry.AESKey)
	if err != nil {
		return "", err
	}
	if !bytes.Equal(presented, stored) {
		return "", ErrKeyMismatch
	}

	return Decrypt(stored, entry.AESEncryptedPrivateKey)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
