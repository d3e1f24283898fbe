package tools

import (
	"context"
	"testing"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKit_Defaults(t *testing.T) {
	kit, err := NewKit()
	require.NoError(t, err)
	require.NotNil(t, kit)

	assert.NotNil(t, kit.sms, "default stub sender expected")
	assert.NotNil(t, kit.now, "default clock expected")
}

func TestNewKit_NilOptionValues(t *testing.T) {
	_, err := NewKit(WithSMSSender(nil))
	assert.Error(t, err)

	_, err = NewKit(WithClock(nil))
	assert.Error(t, err)
}

func TestKit_Register(t *testing.T) {
	kit, err := NewKit()
	require.NoError(t, err)

	g := genkit.Init(context.Background())
	require.NoError(t, kit.Register(g))

	for _, name := range []string{"calculator", "currentTime", "sendSMS"} {
		assert.NotNil(t, genkit.LookupTool(g, name), "tool %s not registered", name)
	}
}

func TestKit_Register_NilGenkit(t *testing.T) {
	kit, err := NewKit()
	require.NoError(t, err)

	assert.Error(t, kit.Register(nil))
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	kit, err := NewKit(WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	assert.Equal(t, fixed, kit.now())
}
