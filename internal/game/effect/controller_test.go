package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Lifecycle(t *testing.T) {
	c := NewController(0.5)

	c.Setup(10, 20, int(KindMeleeHit))
	c.Update(0.2)
	c.Setup(30, 40, int(KindMeleeHit))

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, KindMeleeHit, active[0].Kind)
	assert.InDelta(t, 0.2, active[0].Age, 1e-6)
	assert.InDelta(t, 0.0, active[1].Age, 1e-6)

	c.Update(0.35)
	active = c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, float32(30), active[0].X)

	c.Update(1)
	assert.Empty(t, c.Active())
	assert.Equal(t, 2, c.Total())
}

func TestNewController_DefaultLifetime(t *testing.T) {
	c := NewController(0)
	c.Setup(0, 0, 1)
	c.Update(DefaultLifetime - 0.01)
	assert.Len(t, c.Active(), 1)
}
