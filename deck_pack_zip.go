package main

import (
	"archive/zip"
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/scrypt"
)

const (
	deckJSONFileName     = "deck.json"
	packMetadataFileName = "metadata.json"
	packEncryptionMagic  = "PDPENC" // 6-byte magic header indicating encrypted content
	packScryptN          = 32768
	packScryptR          = 8
	packScryptP          = 1
	packScryptKeyLen     = 32 // AES-256
	packSaltLen          = 32
)

var (
	ErrPackInvalid     = errors.New("invalid deck pack or missing deck.json")
	ErrPackBadPassword = errors.New("incorrect deck pack password")
	ErrPackEncrypted   = errors.New("deck pack is encrypted, password required")
)

// derivePackKey derives a 32-byte AES-256 key from a password and salt using scrypt.
func derivePackKey(password string, salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(password), salt, packScryptN, packScryptR, packScryptP, packScryptKeyLen)
}

// WriteDeckPackZip writes jsonData into a ZIP file at outputPath with an
// internal entry named "deck.json". If password is non-empty, the data is
// encrypted using AES-256-GCM before being stored. The pack metadata is also
// stored unencrypted as "metadata.json" for display in lists.
func WriteDeckPackZip(jsonData []byte, outputPath string, password string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	w, err := zw.Create(deckJSONFileName)
	if err != nil {
		zw.Close()
		return fmt.Errorf("create zip entry: %w", err)
	}

	var payload []byte
	if password != "" {
		payload, err = encryptPackData(jsonData, password)
		if err != nil {
			zw.Close()
			return fmt.Errorf("encrypt data: %w", err)
		}
	} else {
		payload = jsonData
	}

	if _, err := w.Write(payload); err != nil {
		zw.Close()
		return fmt.Errorf("write zip entry: %w", err)
	}

	var meta struct {
		Metadata DeckPackMetadata `json:"metadata"`
	}
	if err := json.Unmarshal(jsonData, &meta); err == nil {
		mw, err := zw.Create(packMetadataFileName)
		if err == nil {
			metaBytes, _ := json.MarshalIndent(meta.Metadata, "", "  ")
			if _, err := mw.Write(metaBytes); err != nil {
				zw.Close()
				return fmt.Errorf("write metadata entry: %w", err)
			}
		}
	}

	// Explicitly close zip writer to flush central directory — defer would swallow errors
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip: %w", err)
	}
	return nil
}

// ReadDeckPackZip reads the "deck.json" entry from the ZIP file at zipPath.
// If the entry is encrypted, password is used to decrypt it; an empty password
// on an encrypted entry returns ErrPackEncrypted.
func ReadDeckPackZip(zipPath string, password string) ([]byte, error) {
	data, err := readDeckEntry(zipPath)
	if err != nil {
		return nil, err
	}

	if isPackDataEncrypted(data) {
		if password == "" {
			return nil, ErrPackEncrypted
		}
		return decryptPackData(data, password)
	}

	// Not encrypted — a supplied password is simply ignored.
	return data, nil
}

// ReadDeckPackMetadata reads the pack metadata without decrypting the payload.
// It tries "metadata.json" first and falls back to "deck.json" when that entry
// is absent and the payload is unencrypted. The bool result reports whether
// the payload is encrypted.
func ReadDeckPackMetadata(zipPath string) (DeckPackMetadata, bool, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return DeckPackMetadata{}, false, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	var metadata DeckPackMetadata
	foundMetadata := false

	for _, f := range zr.File {
		if f.Name == packMetadataFileName {
			rc, err := f.Open()
			if err != nil {
				continue
			}
			data, err := io.ReadAll(rc)
			rc.Close()
			if err == nil {
				if err := json.Unmarshal(data, &metadata); err == nil {
					foundMetadata = true
					break
				}
			}
		}
	}

	isEncrypted := false
	if !foundMetadata {
		for _, f := range zr.File {
			if f.Name == deckJSONFileName {
				rc, err := f.Open()
				if err != nil {
					continue
				}
				data, err := io.ReadAll(rc)
				rc.Close()
				if err == nil {
					if isPackDataEncrypted(data) {
						isEncrypted = true
					} else {
						var pack struct {
							Metadata DeckPackMetadata `json:"metadata"`
						}
						if err := json.Unmarshal(data, &pack); err == nil {
							metadata = pack.Metadata
							foundMetadata = true
						}
					}
				}
				break
			}
		}
	} else {
		// Metadata found; still sniff deck.json for the encryption header.
		for _, f := range zr.File {
			if f.Name == deckJSONFileName {
				rc, err := f.Open()
				if err != nil {
					continue
				}
				header := make([]byte, len(packEncryptionMagic))
				io.ReadFull(rc, header)
				rc.Close()
				if string(header) == packEncryptionMagic {
					isEncrypted = true
				}
				break
			}
		}
	}

	if !foundMetadata {
		return DeckPackMetadata{}, isEncrypted, fmt.Errorf("metadata not found or encrypted")
	}

	return metadata, isEncrypted, nil
}

// IsDeckPackEncrypted checks whether the ZIP file at zipPath contains an
// encrypted payload.
func IsDeckPackEncrypted(zipPath string) (bool, error) {
	data, err := readDeckEntry(zipPath)
	if err != nil {
		return false, err
	}
	return isPackDataEncrypted(data), nil
}

// readDeckEntry opens the ZIP file and reads the raw bytes of the "deck.json" entry.
func readDeckEntry(zipPath string) ([]byte, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == deckJSONFileName {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open zip entry: %w", err)
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, ErrPackInvalid
}

// isPackDataEncrypted checks if raw data starts with the encryption magic header.
func isPackDataEncrypted(data []byte) bool {
	return len(data) >= len(packEncryptionMagic) && string(data[:len(packEncryptionMagic)]) == packEncryptionMagic
}

// encryptPackData encrypts plaintext using AES-256-GCM with a key derived from
// password via scrypt.
// Format: PDPENC (6 bytes) | salt (32 bytes) | nonce (12 bytes) | ciphertext
func encryptPackData(plaintext []byte, password string) ([]byte, error) {
	salt := make([]byte, packSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key, err := derivePackKey(password, salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	var buf bytes.Buffer
	buf.WriteString(packEncryptionMagic)
	buf.Write(salt)
	buf.Write(nonce)
	buf.Write(ciphertext)
	return buf.Bytes(), nil
}

// decryptPackData decrypts data that was encrypted by encryptPackData.
// Returns ErrPackBadPassword if the password is incorrect.
func decryptPackData(data []byte, password string) ([]byte, error) {
	magicLen := len(packEncryptionMagic)
	minLen := magicLen + packSaltLen + 12 // magic + salt + minimum nonce size
	if len(data) < minLen {
		return nil, ErrPackInvalid
	}

	salt := data[magicLen : magicLen+packSaltLen]

	key, err := derivePackKey(password, salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	nonceStart := magicLen + packSaltLen
	nonceEnd := nonceStart + gcm.NonceSize()
	if len(data) < nonceEnd {
		return nil, ErrPackInvalid
	}

	nonce := data[nonceStart:nonceEnd]
	ciphertext := data[nonceEnd:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrPackBadPassword
	}
	return plaintext, nil
}
