package generator

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultUPIDPrefix is used when the caller passes no prefix.
	DefaultUPIDPrefix = "zzzz"

	upidPrefixLen  = 4
	upidVersion    = 0xa
	upidEncodedLen = 22

	upidAlphabet = "234567abcdefghijklmnopqrstuvwxyz"
)

// UPIDGenerator generates prefixed IDs of the form "<prefix>_<22 chars>".
// The encoded part carries 40 bits of time (256ms ticks), 64 random bits and
// a 4-bit version, base32 encoded with a lowercase alphabet.
type UPIDGenerator struct {
	mu     sync.Mutex
	now    func() time.Time
	random io.Reader
}

// NewUPIDGenerator creates a new UPIDGenerator.
func NewUPIDGenerator() *UPIDGenerator {
	return &UPIDGenerator{now: time.Now, random: rand.Reader}
}

// NextWithPrefix does not validate prefix: it is padded with 'z' or cut to
// four characters and otherwise used as given.
func (g *UPIDGenerator) NextWithPrefix(prefix string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var buf [14]byte
	ticks := uint64(g.now().UnixMilli()) >> 8
	for i := 4; i >= 0; i-- {
		buf[i] = byte(ticks)
		ticks >>= 8
	}
	if _, err := io.ReadFull(g.random, buf[5:13]); err != nil {
		return "", fmt.Errorf("failed to read upid entropy: %w", err)
	}
	buf[13] = upidVersion << 4

	return upidPrefix(prefix) + "_" + encodeUPID(buf[:]), nil
}

func upidPrefix(prefix string) string {
	runes := []rune(prefix)
	if len(runes) > upidPrefixLen {
		runes = runes[:upidPrefixLen]
	}
	return string(runes) + strings.Repeat("z", upidPrefixLen-len(runes))
}

// encodeUPID emits the leading 110 bits of b as 22 base32 characters.
func encodeUPID(b []byte) string {
	var sb strings.Builder
	sb.Grow(upidEncodedLen)
	var acc uint32
	bits := 0
	for _, c := range b {
		acc = acc<<8 | uint32(c)
		bits += 8
		for bits >= 5 && sb.Len() < upidEncodedLen {
			bits -= 5
			sb.WriteByte(upidAlphabet[(acc>>uint(bits))&0x1f])
		}
	}
	return sb.String()
}
