package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"hash"
	"strconv"
)

// ByteGenerator streams HMAC-SHA256 bytes for one (server seed, client seed,
// nonce) triple. Each 32-byte block is HMAC(server, "client:nonce:round").
type ByteGenerator struct {
	clientSeed   string
	nonce        uint64
	currentRound uint64
	currentPos   int
	buffer       [32]byte
	mac          hash.Hash
	msg          []byte
}

// NewByteGenerator creates a new byte generator positioned at cursor
func NewByteGenerator(serverSeed, clientSeed string, nonce uint64, cursor uint64) *ByteGenerator {
	bg := &ByteGenerator{
		clientSeed:   clientSeed,
		nonce:        nonce,
		currentRound: cursor / 32,
		currentPos:   int(cursor % 32),
		mac:          hmac.New(sha256.New, []byte(serverSeed)),
		msg:          make([]byte, 0, len(clientSeed)+48),
	}

	bg.generateRound()

	return bg
}

// Reset rewinds the generator to cursor 0 of another nonce, keeping seeds.
func (bg *ByteGenerator) Reset(nonce uint64) {
	bg.nonce = nonce
	bg.currentRound = 0
	bg.currentPos = 0
	bg.generateRound()
}

// Next returns the next byte from the generator
func (bg *ByteGenerator) Next() byte {
	if bg.currentPos >= 32 {
		bg.currentRound++
		bg.currentPos = 0
		bg.generateRound()
	}

	b := bg.buffer[bg.currentPos]
	bg.currentPos++
	return b
}

// NextFloat generates the next float in [0, 1) using exactly 4 bytes
func (bg *ByteGenerator) NextFloat() float64 {
	return bytesToFloat([4]byte{bg.Next(), bg.Next(), bg.Next(), bg.Next()})
}

func (bg *ByteGenerator) generateRound() {
	bg.msg = append(bg.msg[:0], bg.clientSeed...)
	bg.msg = append(bg.msg, ':')
	bg.msg = strconv.AppendUint(bg.msg, bg.nonce, 10)
	bg.msg = append(bg.msg, ':')
	bg.msg = strconv.AppendUint(bg.msg, bg.currentRound, 10)

	bg.mac.Reset()
	bg.mac.Write(bg.msg)
	bg.mac.Sum(bg.buffer[:0])
}

var byteDividers = [4]float64{256, 256 * 256, 256 * 256 * 256, 256 * 256 * 256 * 256}

func bytesToFloat(bytes [4]byte) float64 {
	result := 0.0
	for i, b := range bytes {
		result += float64(b) / byteDividers[i]
	}
	return result
}
