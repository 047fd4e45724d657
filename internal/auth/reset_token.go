package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashResetToken produces the digest of a reset token that is persisted on
// the account. Only the hash is stored, never the token itself, so a leaked
// database row cannot be replayed as a reset token.
func HashResetToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
