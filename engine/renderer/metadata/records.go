package metadata

import (
	"encoding/binary"
	gomath "math"

	"github.com/spaghettifunk/vetro/engine/math"
)

// Byte sizes of the records below, as laid out by their Bytes encoders
// (std140-compatible, little-endian).
const (
	FrameDataSize      = 272
	ObjectDataSize     = 80
	MaterialDataSize   = 96
	LightDataSize      = 112
	LightSetDataSize   = 48
	TextureSetDataSize = 32
)

// MaxEnabledLights is the number of simultaneously enabled lights in a
// light set.
const MaxEnabledLights = 8

// FrameData is the per-frame record shared by every draw of a frame:
// camera and projection transforms plus the viewport.
type FrameData struct {
	ViewMatrix              math.Mat4 // world to camera
	InverseViewMatrix       math.Mat4 // camera to world
	ProjectionMatrix        math.Mat4 // camera to clipping
	InverseProjectionMatrix math.Mat4 // clipping to camera
	Viewport                math.Vec4
}

// ObjectData is the per-draw record indexed by draw id: model
// transform, point size and the material/light-set selectors.
type ObjectData struct {
	ModelMatrix math.Mat4 // model to camera
	PointSize   float32
	MaterialID  uint32
	LightSetID  uint32
	DrawID      uint32
}

func NewObjectData() ObjectData {
	return ObjectData{ModelMatrix: math.NewMat4Identity(), PointSize: 1}
}

// MaterialParameters is a classic fixed-function surface material.
type MaterialParameters struct {
	Ambient   math.Color4f
	Diffuse   math.Color4f
	Specular  math.Color4f
	Emission  math.Color4f
	Shininess float32
}

// MaterialData is the cached material record; Enabled distinguishes an
// explicitly set material from the default.
type MaterialData struct {
	Mat     MaterialParameters
	Enabled bool
}

// LightType discriminates light descriptors.
type LightType uint32

const (
	LightDirectional LightType = 1
	LightPoint       LightType = 2
	LightSpot        LightType = 3
)

// LightParameters is a light descriptor. It is a comparable POD value:
// the registry dedupes descriptors by exact structural comparison of
// every field in order, so two lights are the same hardware light iff
// all fields match bit for bit.
type LightParameters struct {
	Type                 LightType
	Position             math.Vec3
	Direction            math.Vec3
	Ambient              math.Color4f
	Diffuse              math.Color4f
	Specular             math.Color4f
	ConstantAttenuation  float32
	LinearAttenuation    float32
	QuadraticAttenuation float32
	Exponent             float32
	CosCutoff            float32
}

// LightSet is the bounded set of currently enabled hardware light ids.
// Order is not preserved: disabling swaps with the last slot.
type LightSet struct {
	Count  uint32
	Lights [MaxEnabledLights]uint32
}

// Contains reports whether the given hardware id is enabled.
func (s *LightSet) Contains(id uint32) bool {
	for i := uint32(0); i < s.Count; i++ {
		if s.Lights[i] == id {
			return true
		}
	}
	return false
}

// TextureSet records which texture units are populated (1) or empty (0).
type TextureSet [MaxTextureUnits]uint32

// recordWriter serializes records into the fixed std140-style layouts
// the cache buffers expect.
type recordWriter struct {
	buf []byte
}

func newRecordWriter(size int) *recordWriter {
	return &recordWriter{buf: make([]byte, 0, size)}
}

func (w *recordWriter) putUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *recordWriter) putFloat32(v float32) {
	w.putUint32(gomath.Float32bits(v))
}

func (w *recordWriter) putVec3AsVec4(v math.Vec3) {
	w.putFloat32(v.X)
	w.putFloat32(v.Y)
	w.putFloat32(v.Z)
	w.putFloat32(0)
}

func (w *recordWriter) putVec4(v math.Vec4) {
	w.putFloat32(v.X)
	w.putFloat32(v.Y)
	w.putFloat32(v.Z)
	w.putFloat32(v.W)
}

func (w *recordWriter) putColor(c math.Color4f) {
	w.putFloat32(c.R)
	w.putFloat32(c.G)
	w.putFloat32(c.B)
	w.putFloat32(c.A)
}

func (w *recordWriter) putMat4(m math.Mat4) {
	for _, v := range m.Data {
		w.putFloat32(v)
	}
}

func (w *recordWriter) pad(words int) {
	for i := 0; i < words; i++ {
		w.putUint32(0)
	}
}

// Bytes encodes the record into FrameDataSize bytes.
func (d *FrameData) Bytes() []byte {
	w := newRecordWriter(FrameDataSize)
	w.putMat4(d.ViewMatrix)
	w.putMat4(d.InverseViewMatrix)
	w.putMat4(d.ProjectionMatrix)
	w.putMat4(d.InverseProjectionMatrix)
	w.putVec4(d.Viewport)
	return w.buf
}

// Bytes encodes the record into ObjectDataSize bytes.
func (d *ObjectData) Bytes() []byte {
	w := newRecordWriter(ObjectDataSize)
	w.putMat4(d.ModelMatrix)
	w.putFloat32(d.PointSize)
	w.putUint32(d.MaterialID)
	w.putUint32(d.LightSetID)
	w.putUint32(d.DrawID)
	return w.buf
}

// Bytes encodes the record into MaterialDataSize bytes.
func (d *MaterialData) Bytes() []byte {
	w := newRecordWriter(MaterialDataSize)
	w.putColor(d.Mat.Ambient)
	w.putColor(d.Mat.Diffuse)
	w.putColor(d.Mat.Specular)
	w.putColor(d.Mat.Emission)
	w.putFloat32(d.Mat.Shininess)
	w.pad(3)
	var enabled uint32
	if d.Enabled {
		enabled = 1
	}
	w.putUint32(enabled)
	w.pad(3)
	return w.buf
}

// Bytes encodes the descriptor into LightDataSize bytes.
func (d *LightParameters) Bytes() []byte {
	w := newRecordWriter(LightDataSize)
	w.putVec3AsVec4(d.Position)
	w.putVec3AsVec4(d.Direction)
	w.putColor(d.Ambient)
	w.putColor(d.Diffuse)
	w.putColor(d.Specular)
	w.putFloat32(d.ConstantAttenuation)
	w.putFloat32(d.LinearAttenuation)
	w.putFloat32(d.QuadraticAttenuation)
	w.putFloat32(d.Exponent)
	w.putFloat32(d.CosCutoff)
	w.putUint32(uint32(d.Type))
	w.pad(2)
	return w.buf
}

// Bytes encodes the record into LightSetDataSize bytes.
func (s *LightSet) Bytes() []byte {
	w := newRecordWriter(LightSetDataSize)
	w.putUint32(s.Count)
	w.pad(3)
	for _, id := range s.Lights {
		w.putUint32(id)
	}
	return w.buf
}

// Bytes encodes the record into TextureSetDataSize bytes.
func (s *TextureSet) Bytes() []byte {
	w := newRecordWriter(TextureSetDataSize)
	for _, v := range s {
		w.putUint32(v)
	}
	return w.buf
}
