package checksum

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"hash"
)

func Sha256(bytes []byte) []byte {
	h := sha256.Sum256(bytes)
	return h[:]
}

// Sha256Hex returns the lowercase hex digest of bytes.
func Sha256Hex(bytes []byte) string {
	return HexEncodeStr(Sha256(bytes))
}

func HexEncodeStr(bytes []byte) string {
	return hex.EncodeToString(bytes)
}

func Base64EncodeStr(bytes []byte) string {
	return base64.StdEncoding.EncodeToString(bytes)
}

func NewSha256() hash.Hash {
	return sha256.New()
}
