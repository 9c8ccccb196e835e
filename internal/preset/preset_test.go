package preset

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTable(t *testing.T) {
	want := map[string]Preset{
		"classic":    {0.02, 40, 3, 1, 0, 0.3},
		"ballad":     {0.015, 35, 2, 0.7, 0.1, 0.4},
		"jazz":       {0.025, 45, 4, 1.5, 0.6, 0.2},
		"meditation": {0.008, 25, 2, 0.4, 0, 0.6},
		"rock":       {0.035, 60, 5, 2, 0.8, 0.1},
	}
	for name, p := range want {
		if diff := cmp.Diff(p, Lookup(name)); diff != "" {
			t.Errorf("Lookup(%q) mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestLookupUnknownFallsBackToClassic(t *testing.T) {
	for _, name := range []string{"", "polka", "CLASSIC", "Jazz "} {
		assert.Equal(t, Lookup("classic"), Lookup(name), name)
	}
}

func TestParse(t *testing.T) {
	st, ok := Parse(" Jazz ")
	require.True(t, ok)
	assert.Equal(t, Jazz, st)

	st, ok = Parse("dubstep")
	assert.False(t, ok)
	assert.Equal(t, Classic, st)
}

func TestLayerCount(t *testing.T) {
	assert.Equal(t, 3, LayerCount(Lookup("classic")))
	assert.Equal(t, 2, LayerCount(Lookup("meditation")))
	assert.Equal(t, 3, LayerCount(Lookup("rock")))
}

func TestStylesIsACopy(t *testing.T) {
	s := Styles()
	require.Len(t, s, 5)
	s[0] = Rock
	assert.Equal(t, Classic, Styles()[0])
}

func TestPulsePeriod(t *testing.T) {
	assert.Equal(t, 3*time.Second, PulsePeriod(Meditation))
	assert.Equal(t, 800*time.Millisecond, PulsePeriod(Rock))
	assert.Equal(t, 2*time.Second, PulsePeriod(Ballad))
}

func TestNextWraps(t *testing.T) {
	assert.Equal(t, Ballad, Next(Classic))
	assert.Equal(t, Classic, Next(Rock))
	assert.Equal(t, Classic, Next("unknown"))
}
