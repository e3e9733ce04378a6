package identifier

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pnrPattern    = regexp.MustCompile(`^[A-Z0-9]{6}$`)
	ticketPattern = regexp.MustCompile(`^\d{13}$`)
)

func TestPNRFormat(t *testing.T) {
	g := New("176", rand.New(rand.NewSource(1)))
	for i := 0; i < 1000; i++ {
		pnr := g.PNR()
		require.Truef(t, pnrPattern.MatchString(pnr), "unexpected PNR %q", pnr)
	}
}

func TestTicketNumberFormat(t *testing.T) {
	g := New("176", rand.New(rand.NewSource(1)))
	for i := 0; i < 1000; i++ {
		num := g.TicketNumber()
		require.Truef(t, ticketPattern.MatchString(num), "unexpected ticket number %q", num)
		assert.Equal(t, "176", num[:3])
	}
}

func TestDeterministicUnderSeededSource(t *testing.T) {
	a := New("176", rand.New(rand.NewSource(42)))
	b := New("176", rand.New(rand.NewSource(42)))
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.PNR(), b.PNR())
		assert.Equal(t, a.TicketNumber(), b.TicketNumber())
	}
}

func TestCandidatesVary(t *testing.T) {
	g := New("176", rand.New(rand.NewSource(7)))
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[g.PNR()] = struct{}{}
	}
	// A hundred draws from a 2.2e9 keyspace should not collide.
	assert.Len(t, seen, 100)
}
