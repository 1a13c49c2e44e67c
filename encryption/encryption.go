/*
 * Copyright (c) 2025 66f94eae
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 */

package encryption

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"strings"
)

// Family selects the AES variant and with it the key size the cipher accepts.
type Family string

// Mode selects the block mode.
type Mode string

const (
	// AES128 cipher family
	AES128 Family = "aes128"
	// AES192 cipher family
	AES192 Family = "aes192"
	// AES256 cipher family
	AES256 Family = "aes256"

	// CBC block mode
	CBC Mode = "cbc"
	// ECB block mode
	ECB Mode = "ecb"
	// GCM block mode
	GCM Mode = "gcm"
)

const (
	// KeyLength is the key size the receiving app expects, independent of the
	// cipher's native key size.
	KeyLength = 24
	// IVLength is the IV size the receiving app expects.
	IVLength = 12
)

const ivCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ParseFamily validates an encryption family name.
func ParseFamily(family string) (Family, error) {
	switch strings.ToLower(family) {
	case "aes128":
		return AES128, nil
	case "aes192":
		return AES192, nil
	case "aes256":
		return AES256, nil
	default:
		return "", fmt.Errorf("invalid encrypt type: %s", family)
	}
}

// ParseMode validates a block mode name.
func ParseMode(mode string) (Mode, error) {
	switch strings.ToLower(mode) {
	case "cbc":
		return CBC, nil
	case "ecb":
		return ECB, nil
	case "gcm":
		return GCM, nil
	default:
		return "", fmt.Errorf("invalid encrypt mode: %s", mode)
	}
}

// KeySize returns the key size in bytes the family's cipher requires.
func (f Family) KeySize() int {
	switch f {
	case AES128:
		return 16
	case AES192:
		return 24
	case AES256:
		return 32
	}
	return 0
}

// GenerateIV returns a random alphanumeric IV of IVLength characters.
func GenerateIV() (string, error) {
	buf := make([]byte, IVLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating iv: %w", err)
	}
	for i, b := range buf {
		buf[i] = ivCharset[int(b)%len(ivCharset)]
	}
	return string(buf), nil
}

// Encrypt ciphers plaintext with the selected family and mode. CBC and ECB
// input is PKCS7 padded to the AES block size; GCM seals the plaintext using
// the IV as nonce and appends the authentication tag.
func Encrypt(family Family, mode Mode, key, iv, plaintext []byte) ([]byte, error) {
	block, err := newBlock(family, key)
	if err != nil {
		return nil, err
	}

	switch mode {
	case CBC:
		if len(iv) != aes.BlockSize {
			return nil, fmt.Errorf("cbc requires a %d byte iv, got %d", aes.BlockSize, len(iv))
		}
		data := pkcs7Pad(plaintext, aes.BlockSize)
		out := make([]byte, len(data))
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)
		return out, nil
	case ECB:
		data := pkcs7Pad(plaintext, aes.BlockSize)
		out := make([]byte, len(data))
		for i := 0; i < len(data); i += aes.BlockSize {
			block.Encrypt(out[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
		}
		return out, nil
	case GCM:
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		if len(iv) != aead.NonceSize() {
			return nil, fmt.Errorf("gcm requires a %d byte iv, got %d", aead.NonceSize(), len(iv))
		}
		return aead.Seal(nil, iv, plaintext, nil), nil
	default:
		return nil, fmt.Errorf("invalid encrypt mode: %s", mode)
	}
}

// Decrypt reverses Encrypt with the same parameters.
func Decrypt(family Family, mode Mode, key, iv, ciphertext []byte) ([]byte, error) {
	block, err := newBlock(family, key)
	if err != nil {
		return nil, err
	}

	switch mode {
	case CBC:
		if len(iv) != aes.BlockSize {
			return nil, fmt.Errorf("cbc requires a %d byte iv, got %d", aes.BlockSize, len(iv))
		}
		if len(ciphertext)%aes.BlockSize != 0 {
			return nil, fmt.Errorf("ciphertext is not a multiple of the block size")
		}
		out := make([]byte, len(ciphertext))
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
		return pkcs7Unpad(out, aes.BlockSize)
	case ECB:
		if len(ciphertext)%aes.BlockSize != 0 {
			return nil, fmt.Errorf("ciphertext is not a multiple of the block size")
		}
		out := make([]byte, len(ciphertext))
		for i := 0; i < len(ciphertext); i += aes.BlockSize {
			block.Decrypt(out[i:i+aes.BlockSize], ciphertext[i:i+aes.BlockSize])
		}
		return pkcs7Unpad(out, aes.BlockSize)
	case GCM:
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		if len(iv) != aead.NonceSize() {
			return nil, fmt.Errorf("gcm requires a %d byte iv, got %d", aead.NonceSize(), len(iv))
		}
		return aead.Open(nil, iv, ciphertext, nil)
	default:
		return nil, fmt.Errorf("invalid encrypt mode: %s", mode)
	}
}

func newBlock(family Family, key []byte) (cipher.Block, error) {
	size := family.KeySize()
	if size == 0 {
		return nil, fmt.Errorf("invalid encrypt type: %s", family)
	}
	if len(key) != size {
		return nil, fmt.Errorf("%s requires a %d byte key, got %d", family, size, len(key))
	}
	return aes.NewCipher(key)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	pad := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(pad)}, pad)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded data length %d", len(data))
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > blockSize || pad > len(data) {
		return nil, fmt.Errorf("invalid padding byte %d", pad)
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, fmt.Errorf("invalid padding byte %d", b)
		}
	}
	return data[:len(data)-pad], nil
}
