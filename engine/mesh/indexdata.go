package mesh

import (
	"encoding/binary"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// IndexData owns the index side of a mesh. Indices are 32 bit. The
// changed flag follows the same rules as VertexData.
type IndexData struct {
	indices []uint32
	count   uint32
	buffer  renderer.Buffer
	changed bool
}

// Allocate (re)creates the local index array. Previous content is
// discarded.
func (d *IndexData) Allocate(count uint32) {
	d.count = count
	d.indices = make([]uint32, count)
	d.changed = true
}

// Release drops the local copy and destroys the device buffer.
func (d *IndexData) Release() {
	d.ReleaseLocalData()
	d.RemoveBuffer()
	d.count = 0
	d.changed = false
}

func (d *IndexData) ReleaseLocalData() {
	d.indices = nil
}

func (d *IndexData) RemoveBuffer() {
	if d.buffer != nil {
		d.buffer.Destroy()
		d.buffer = nil
	}
}

func (d *IndexData) MarkChanged()            { d.changed = true }
func (d *IndexData) Changed() bool           { return d.changed }
func (d *IndexData) IndexCount() uint32      { return d.count }
func (d *IndexData) Empty() bool             { return d.count == 0 }
func (d *IndexData) HasLocalData() bool      { return d.indices != nil }
func (d *IndexData) Indices() []uint32       { return d.indices }
func (d *IndexData) Buffer() renderer.Buffer { return d.buffer }

// SetIndex writes one index and marks the data changed.
func (d *IndexData) SetIndex(i, value uint32) {
	if i >= d.count || d.indices == nil {
		return
	}
	d.indices[i] = value
	d.changed = true
}

// IsUploaded reports whether a live device copy exists.
func (d *IndexData) IsUploaded() bool {
	return d.buffer != nil && d.buffer.IsValid()
}

// Upload pushes the local indices into a device buffer and clears the
// changed flag.
func (d *IndexData) Upload(backend renderer.Backend, usage metadata.BufferUsage) error {
	if d.indices == nil {
		return core.ErrInvalidArgument
	}
	size := len(d.indices) * 4
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
	raw := make([]byte, size)
	for i, idx := range d.indices {
		binary.LittleEndian.PutUint32(raw[i*4:], idx)
	}
	if err := d.buffer.Upload(raw, 0); err != nil {
		return err
	}
	d.changed = false
	return nil
}

// Download replaces the local indices with the device buffer's content
// and clears the changed flag.
func (d *IndexData) Download() error {
	if !d.IsUploaded() {
		return core.ErrInvalidArgument
	}
	raw, err := d.buffer.Download(int(d.count) * 4)
	if err != nil {
		return err
	}
	d.indices = make([]uint32, d.count)
	for i := range d.indices {
		d.indices[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	d.changed = false
	return nil
}
