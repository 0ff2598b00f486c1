// Package cryptox implements the vault cipher: symmetric encryption of text
// and file payloads under a single passphrase-derived key, producing the
// envelope formats persisted to storage.
//
// Text envelopes use the OpenSSL salted format (the format CryptoJS emits in
// passphrase mode): base64("Salted__" || 8-byte salt || AES-256-CBC
// ciphertext), with key and IV derived per call via EVP_BytesToKey. A fresh
// random salt per call makes encryption non-deterministic.
//
// File envelopes wrap a data-URL payload: the base64 body is encrypted as
// text and stored next to the original mime type in a small JSON record, so
// a renderable data URL can be rebuilt on read without a side-channel lookup.
// The mime type itself stays in cleartext.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mkraev/lockbox/internal/common"
)

const (
	saltedPrefix = "Salted__"
	saltSize     = 8
	keySize      = 32 // AES-256
)

// FileEnvelope is the persisted representation of an encrypted file payload.
type FileEnvelope struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Cipher encrypts and decrypts vault content. It holds the process-wide
// passphrase and the file size cap; construct one per process and inject it
// where needed so tests can use their own secrets.
type Cipher struct {
	passphrase  []byte
	maxFileSize int64
}

// New returns a Cipher keyed by passphrase. maxFileSize caps the decoded
// size of file payloads accepted by EncryptFile.
func New(passphrase string, maxFileSize int64) *Cipher {
	return &Cipher{passphrase: []byte(passphrase), maxFileSize: maxFileSize}
}

// EncryptText encrypts plaintext into a self-contained envelope string.
// Two calls with the same plaintext produce different envelopes.
func (c *Cipher) EncryptText(plaintext string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt generation: %w", err)
	}

	key, iv := evpKDF(c.passphrase, salt, keySize, aes.BlockSize)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	out := make([]byte, 0, len(saltedPrefix)+saltSize+len(ct))
	out = append(out, saltedPrefix...)
	out = append(out, salt...)
	out = append(out, ct...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptText reverses EncryptText. Any structural defect, padding failure,
// or empty result yields ErrDecryption: a wrong key and corrupted data are
// deliberately indistinguishable.
func (c *Cipher) DecryptText(blob string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", common.ErrDecryption
	}
	if len(raw) < len(saltedPrefix)+saltSize || string(raw[:len(saltedPrefix)]) != saltedPrefix {
		return "", common.ErrDecryption
	}
	salt := raw[len(saltedPrefix) : len(saltedPrefix)+saltSize]
	ct := raw[len(saltedPrefix)+saltSize:]
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", common.ErrDecryption
	}

	key, iv := evpKDF(c.passphrase, salt, keySize, aes.BlockSize)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, ct)

	pt, ok := pkcs7Unpad(pt, aes.BlockSize)
	if !ok || len(pt) == 0 || !utf8.Valid(pt) {
		return "", common.ErrDecryption
	}
	return string(pt), nil
}

// EncryptFile accepts a base64 data URL ("data:<mime>;base64,<payload>"),
// enforces the size cap on the decoded payload before any cipher work, and
// returns the serialized FileEnvelope.
func (c *Cipher) EncryptFile(dataURL string) (string, error) {
	mime, payload, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	decodedSize := base64.StdEncoding.DecodedLen(len(payload))
	if c.maxFileSize > 0 && int64(decodedSize) > c.maxFileSize {
		return "", common.ErrSizeLimitExceeded
	}

	enc, err := c.EncryptText(payload)
	if err != nil {
		return "", err
	}

	env, err := json.Marshal(FileEnvelope{Type: mime, Content: enc})
	if err != nil {
		return "", err
	}
	return string(env), nil
}

// DecryptFile parses a serialized FileEnvelope and rebuilds the original
// data URL. A parse or cipher failure is ErrDecryption; a decryption that
// yields zero bytes is ErrEmptyResult, not a valid empty file.
func (c *Cipher) DecryptFile(envelope string) (string, error) {
	var env FileEnvelope
	if err := json.Unmarshal([]byte(envelope), &env); err != nil {
		return "", common.ErrDecryption
	}
	if env.Type == "" || env.Content == "" {
		return "", common.ErrDecryption
	}

	payload, err := c.DecryptText(env.Content)
	if err != nil {
		return "", err
	}
	if payload == "" {
		return "", common.ErrEmptyResult
	}
	return "data:" + env.Type + ";base64," + payload, nil
}

// parseDataURL splits "data:<mime>;base64,<payload>". Malformed input is a
// validation error, not a cipher error.
func parseDataURL(s string) (mime, payload string, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", "", fmt.Errorf("%w: not a data URL", common.ErrorValidation)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", "", fmt.Errorf("%w: not a base64 data URL", common.ErrorValidation)
	}
	mime = strings.TrimSuffix(meta, ";base64")
	if mime == "" || payload == "" {
		return "", "", fmt.Errorf("%w: empty mime type or payload", common.ErrorValidation)
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return "", "", fmt.Errorf("%w: invalid base64 payload", common.ErrorValidation)
	}
	return mime, payload, nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, bool) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}
	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
