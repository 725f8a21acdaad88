package headless

import (
	"testing"

	"github.com/spaghettifunk/heritage/engine/geometry"
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendBookkeeping(t *testing.T) {
	b := New()
	require.NoError(t, b.Initialize(&metadata.RendererBackendConfig{Width: 10, Height: 20}))
	assert.True(t, b.Initialized())

	g := geometry.Box(1, 1, 1)
	require.NoError(t, b.CreateGeometry(g))
	assert.NotEqual(t, metadata.InvalidID, g.InternalID)
	assert.Error(t, b.CreateGeometry(g))

	require.NoError(t, b.BeginFrame(&metadata.RenderPacket{}))
	assert.Error(t, b.BeginFrame(&metadata.RenderPacket{}))
	b.DrawGeometry(&metadata.GeometryRenderData{Model: math.NewMat4Identity(), Geometry: g})
	require.NoError(t, b.EndFrame(0))
	assert.Equal(t, 12, b.Stats().TrianglesDrawn)

	b.DestroyGeometry(g)
	assert.Equal(t, metadata.InvalidID, g.InternalID)
	created, destroyed := b.Totals()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, destroyed)

	require.NoError(t, b.Shutdown())
	assert.Error(t, b.Shutdown())
}
