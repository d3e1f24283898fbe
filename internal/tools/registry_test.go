package tools

import (
	"context"
	"testing"

	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegisteredKit(t *testing.T) *Registry {
	t.Helper()

	kit, err := NewKit()
	require.NoError(t, err)

	g := genkit.Init(context.Background())
	require.NoError(t, kit.Register(g))

	return NewRegistry(g)
}

func TestRegistry_Descriptors(t *testing.T) {
	reg := newRegisteredKit(t)

	descs := reg.Descriptors()
	require.Len(t, descs, 3)

	names := make(map[string]bool, len(descs))
	for _, d := range descs {
		names[d.Name] = true
		assert.NotEmpty(t, d.Description, "tool %s has no description", d.Name)
	}

	for _, want := range []string{"calculator", "currentTime", "sendSMS"} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}

func TestRegistry_All(t *testing.T) {
	reg := newRegisteredKit(t)

	assert.Len(t, reg.All(), 3)
	assert.Equal(t, 3, reg.Count())
}

func TestRegistry_Empty(t *testing.T) {
	g := genkit.Init(context.Background())
	reg := NewRegistry(g)

	assert.Empty(t, reg.Descriptors())
	assert.Zero(t, reg.Count())
}
