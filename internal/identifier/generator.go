// Package identifier produces candidate booking references (PNRs)
// and ticket numbers. The generators only mint candidates;
// uniqueness is owned by the storage layer's unique indexes, with
// the booking engine retrying a bounded number of times on a
// duplicate before failing loudly.
package identifier

import (
	"math/rand"
	"strings"
	"sync"
)

// pnrAlphabet is the symbol set for booking references: 36 symbols
// giving ~2.2 billion six-character combinations.
const pnrAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// PNRLength is the length of a booking reference.
const PNRLength = 6

// TicketRandomDigits is the number of random digits following the
// carrier prefix in a ticket number.
const TicketRandomDigits = 10

// MaxAttempts bounds the check-and-retry loop callers run around the
// generators. With the keyspace sizes involved, exhausting it under
// correct operation is a near-impossibility; hitting the bound
// signals a generator defect and is surfaced as a Conflict rather
// than retried further.
const MaxAttempts = 10

// Generator mints candidate identifiers from an injected randomness
// source, so generation is deterministic under a seeded source in
// tests. A *rand.Rand is not safe for concurrent use; the mutex
// serialises draws.
type Generator struct {
	carrierPrefix string
	mu            sync.Mutex
	rnd           *rand.Rand
}

// New returns a Generator using the given three-digit carrier prefix
// for ticket numbers and the given randomness source.
func New(carrierPrefix string, rnd *rand.Rand) *Generator {
	return &Generator{carrierPrefix: carrierPrefix, rnd: rnd}
}

// PNR returns a candidate six-character booking reference drawn
// uniformly from A-Z and 0-9.
func (g *Generator) PNR() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var b strings.Builder
	b.Grow(PNRLength)
	for i := 0; i < PNRLength; i++ {
		b.WriteByte(pnrAlphabet[g.rnd.Intn(len(pnrAlphabet))])
	}
	return b.String()
}

// TicketNumber returns a candidate thirteen-digit ticket number: the
// three-digit carrier prefix followed by ten random digits.
func (g *Generator) TicketNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var b strings.Builder
	b.Grow(len(g.carrierPrefix) + TicketRandomDigits)
	b.WriteString(g.carrierPrefix)
	for i := 0; i < TicketRandomDigits; i++ {
		b.WriteByte('0' + byte(g.rnd.Intn(10)))
	}
	return b.String()
}
