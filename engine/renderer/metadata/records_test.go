package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordEncodingsMatchDeclaredSizes(t *testing.T) {
	var frame FrameData
	var object ObjectData
	var material MaterialData
	var light LightParameters
	var lightSet LightSet
	var textureSet TextureSet

	assert.Len(t, frame.Bytes(), FrameDataSize)
	assert.Len(t, object.Bytes(), ObjectDataSize)
	assert.Len(t, material.Bytes(), MaterialDataSize)
	assert.Len(t, light.Bytes(), LightDataSize)
	assert.Len(t, lightSet.Bytes(), LightSetDataSize)
	assert.Len(t, textureSet.Bytes(), TextureSetDataSize)
}

func TestLightParametersAreComparable(t *testing.T) {
	a := LightParameters{Type: LightPoint, ConstantAttenuation: 1}
	b := LightParameters{Type: LightPoint, ConstantAttenuation: 1}
	c := LightParameters{Type: LightPoint, ConstantAttenuation: 2}

	assert.True(t, a == b)
	assert.False(t, a == c)

	// Comparable descriptors can key a map directly.
	registry := map[LightParameters]uint8{a: 3}
	assert.Equal(t, uint8(3), registry[b])
}

func TestLightSetContains(t *testing.T) {
	s := LightSet{Count: 2, Lights: [MaxEnabledLights]uint32{4, 9, 7}}

	assert.True(t, s.Contains(4))
	assert.True(t, s.Contains(9))
	assert.False(t, s.Contains(7), "slots beyond Count are not enabled")
}

func TestVertexLayoutComputesOffsetsAndStride(t *testing.T) {
	layout := NewVertexLayout(
		VertexAttribute{Name: AttributePosition, NumValues: 3, Type: TypeFloat32},
		VertexAttribute{Name: AttributeNormal, NumValues: 3, Type: TypeFloat32},
		VertexAttribute{Name: AttributeTexCoord, NumValues: 2, Type: TypeFloat32},
	)

	assert.Equal(t, uint32(32), layout.Stride)
	normal, ok := layout.Attribute(AttributeNormal)
	assert.True(t, ok)
	assert.Equal(t, uint32(12), normal.Offset)
	_, ok = layout.Attribute("sg_Missing")
	assert.False(t, ok)
}
