package mesh

import (
	"encoding/binary"
	stdmath "math"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// VertexData owns the vertex side of a mesh: at most one local byte
// buffer and at most one device buffer. While the changed flag is set
// the local copy is authoritative and the device copy is stale; after a
// successful upload the flags clear and both copies agree.
type VertexData struct {
	layout  metadata.VertexLayout
	count   uint32
	local   []byte
	buffer  renderer.Buffer
	changed bool
	bb      math.Extents3D
}

// Allocate establishes the vertex format and count and (re)creates the
// local buffer. Previous local content is discarded.
func (d *VertexData) Allocate(count uint32, layout metadata.VertexLayout) {
	d.layout = layout
	d.count = count
	d.local = make([]byte, int(count)*int(layout.Stride))
	d.changed = true
}

// Release drops the local copy and destroys the device buffer.
func (d *VertexData) Release() {
	d.ReleaseLocalData()
	d.RemoveBuffer()
	d.count = 0
	d.changed = false
}

// ReleaseLocalData frees the host copy. Callers must ensure the device
// copy is current first.
func (d *VertexData) ReleaseLocalData() {
	d.local = nil
}

// RemoveBuffer destroys the device buffer, if any.
func (d *VertexData) RemoveBuffer() {
	if d.buffer != nil {
		d.buffer.Destroy()
		d.buffer = nil
	}
}

func (d *VertexData) MarkChanged()                  { d.changed = true }
func (d *VertexData) Changed() bool                 { return d.changed }
func (d *VertexData) VertexCount() uint32           { return d.count }
func (d *VertexData) Empty() bool                   { return d.count == 0 }
func (d *VertexData) Layout() metadata.VertexLayout { return d.layout }
func (d *VertexData) HasLocalData() bool            { return d.local != nil }
func (d *VertexData) Data() []byte                  { return d.local }
func (d *VertexData) Buffer() renderer.Buffer       { return d.buffer }
func (d *VertexData) BoundingBox() math.Extents3D   { return d.bb }

// IsUploaded reports whether a live device copy exists.
func (d *VertexData) IsUploaded() bool {
	return d.buffer != nil && d.buffer.IsValid()
}

// Upload pushes the local copy into a device buffer, creating or
// recreating it as needed, and clears the changed flag. Uploading
// without local data is an error.
func (d *VertexData) Upload(backend renderer.Backend, usage metadata.BufferUsage) error {
	if d.local == nil {
		return core.ErrInvalidArgument
	}
	size := len(d.local)
	if d.buffer != nil && (!d.buffer.IsValid() || d.buffer.Size() != size) {
		d.RemoveBuffer()
	}
	if d.buffer == nil {
		buf, err := backend.CreateBuffer(size, usage)
		if err != nil {
			return err
		}
		d.buffer = buf
	}
	if err := d.buffer.Upload(d.local, 0); err != nil {
		return err
	}
	d.changed = false
	return nil
}

// Download replaces the local copy with the device buffer's content and
// clears the changed flag.
func (d *VertexData) Download() error {
	if !d.IsUploaded() {
		return core.ErrInvalidArgument
	}
	data, err := d.buffer.Download(int(d.count) * int(d.layout.Stride))
	if err != nil {
		return err
	}
	d.local = data
	d.changed = false
	return nil
}

// Position reads the position attribute of vertex i from the local
// copy.
func (d *VertexData) Position(i uint32) math.Vec3 {
	attr, ok := d.layout.Attribute(metadata.AttributePosition)
	if !ok || i >= d.count || d.local == nil {
		return math.Vec3{}
	}
	base := int(i)*int(d.layout.Stride) + int(attr.Offset)
	return math.Vec3{
		X: stdmath.Float32frombits(binary.LittleEndian.Uint32(d.local[base:])),
		Y: stdmath.Float32frombits(binary.LittleEndian.Uint32(d.local[base+4:])),
		Z: stdmath.Float32frombits(binary.LittleEndian.Uint32(d.local[base+8:])),
	}
}

// SetPosition writes the position attribute of vertex i into the local
// copy and marks the data changed.
func (d *VertexData) SetPosition(i uint32, p math.Vec3) {
	attr, ok := d.layout.Attribute(metadata.AttributePosition)
	if !ok || i >= d.count || d.local == nil {
		return
	}
	base := int(i)*int(d.layout.Stride) + int(attr.Offset)
	binary.LittleEndian.PutUint32(d.local[base:], stdmath.Float32bits(p.X))
	binary.LittleEndian.PutUint32(d.local[base+4:], stdmath.Float32bits(p.Y))
	binary.LittleEndian.PutUint32(d.local[base+8:], stdmath.Float32bits(p.Z))
	d.changed = true
}

// SetFloats writes raw float32 values for the named attribute of
// vertex i and marks the data changed.
func (d *VertexData) SetFloats(i uint32, name string, values ...float32) {
	attr, ok := d.layout.Attribute(name)
	if !ok || i >= d.count || d.local == nil {
		return
	}
	base := int(i)*int(d.layout.Stride) + int(attr.Offset)
	for j, v := range values {
		if uint32(j) >= attr.NumValues {
			break
		}
		binary.LittleEndian.PutUint32(d.local[base+j*4:], stdmath.Float32bits(v))
	}
	d.changed = true
}

// UpdateBoundingBox recomputes the axis-aligned bounds from the local
// position data.
func (d *VertexData) UpdateBoundingBox() math.Extents3D {
	d.bb = math.Extents3D{}
	if d.count == 0 || d.local == nil {
		return d.bb
	}
	if _, ok := d.layout.Attribute(metadata.AttributePosition); !ok {
		return d.bb
	}
	p := d.Position(0)
	d.bb = math.Extents3D{Min: p, Max: p}
	for i := uint32(1); i < d.count; i++ {
		p = d.Position(i)
		d.bb.Min.X = math.Min(d.bb.Min.X, p.X)
		d.bb.Min.Y = math.Min(d.bb.Min.Y, p.Y)
		d.bb.Min.Z = math.Min(d.bb.Min.Z, p.Z)
		d.bb.Max.X = math.Max(d.bb.Max.X, p.X)
		d.bb.Max.Y = math.Max(d.bb.Max.Y, p.Y)
		d.bb.Max.Z = math.Max(d.bb.Max.Z, p.Z)
	}
	return d.bb
}
