package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Key hashes a namespace and the JSON encoding of v. encoding/json writes
// struct fields in declaration order and map keys sorted, so equal values
// always give equal keys.
func Key(namespace string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return makeKey(strings.TrimSpace(namespace), string(b)), nil
}

func makeKey(parts ...string) string {
	joined := strings.Join(parts, "|")
	h := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(h[:])
}
