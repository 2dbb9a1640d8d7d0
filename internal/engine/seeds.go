package engine

import (
	"crypto/rand"
	"math/big"
)

// Seeds pairs the HMAC key with the client half of every message.
type Seeds struct {
	Server string // used verbatim as the HMAC key, never hex-decoded
	Client string
}

const seedCharset = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ServerSeedLength is the length of generated server seeds.
const ServerSeedLength = 64

// RandomString generates a cryptographically random alphanumeric string.
func RandomString(length int) (string, error) {
	b := make([]byte, length)
	max := big.NewInt(int64(len(seedCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = seedCharset[n.Int64()]
	}
	return string(b), nil
}

// NewServerSeed returns a fresh random server seed.
func NewServerSeed() (string, error) {
	return RandomString(ServerSeedLength)
}
