package renderer

import (
	"fmt"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// InvalidIndex is returned by AddParameter when a slot is full.
const InvalidIndex = ^uint32(0)

type cacheBinding struct {
	location uint32
	target   metadata.BufferTarget
	valid    bool
}

type cacheSlot struct {
	name            string
	elementSize     uint32
	maxElementCount uint32
	usage           metadata.BufferUsage
	head            uint32
	multiBufferHead uint32
	buffers         []Buffer
	lastBinding     cacheBinding
}

func (s *cacheSlot) current() Buffer {
	return s.buffers[s.multiBufferHead]
}

// ParameterCache manages the named, fixed-capacity device-resident
// record arrays ("slots") shared by all shaders: per-frame data,
// streamed per-draw data, materials, lights, light sets and texture
// sets. Slot buffers live for the lifetime of the context.
type ParameterCache struct {
	backend Backend
	slots   map[string]*cacheSlot
}

// NewParameterCache creates an empty cache allocating buffers through
// the given backend.
func NewParameterCache(backend Backend) *ParameterCache {
	return &ParameterCache{
		backend: backend,
		slots:   make(map[string]*cacheSlot),
	}
}

// CreateCache declares a slot of maxElementCount records of
// elementSize bytes, backed by multiBufferCount device buffers.
// multiBufferCount > 1 enables ring buffering for streamed writes: the
// device may still read buffer N while the host fills buffer N+1.
// Declaring an existing slot with identical geometry is a no-op;
// differing geometry is reported and ignored.
func (c *ParameterCache) CreateCache(name string, elementSize, maxElementCount uint32, usage metadata.BufferUsage, multiBufferCount uint32) error {
	if existing, ok := c.slots[name]; ok {
		if existing.elementSize != elementSize || existing.maxElementCount != maxElementCount || existing.usage != usage {
			core.LogWarn("a cache named '%s' already exists, but with different size or usage flags", name)
		}
		return nil
	}
	if elementSize == 0 || maxElementCount == 0 {
		return fmt.Errorf("cache '%s': element size and count must be positive: %w", name, core.ErrInvalidArgument)
	}
	if multiBufferCount == 0 {
		multiBufferCount = 1
	}
	slot := &cacheSlot{
		name:            name,
		elementSize:     elementSize,
		maxElementCount: maxElementCount,
		usage:           usage,
	}
	for i := uint32(0); i < multiBufferCount; i++ {
		buf, err := c.backend.CreateBuffer(int(elementSize*maxElementCount), usage)
		if err != nil {
			return fmt.Errorf("cache '%s': %w", name, err)
		}
		slot.buffers = append(slot.buffers, buf)
	}
	c.slots[name] = slot
	return nil
}

// DeleteCache destroys a slot and its device buffers.
func (c *ParameterCache) DeleteCache(name string) {
	slot, ok := c.slots[name]
	if !ok {
		return
	}
	for _, buf := range slot.buffers {
		buf.Destroy()
	}
	delete(c.slots, name)
}

// IsCache reports whether a slot with the given name exists.
func (c *ParameterCache) IsCache(name string) bool {
	_, ok := c.slots[name]
	return ok
}

// Capacity returns the record capacity of a slot, or 0 if it does not
// exist.
func (c *ParameterCache) Capacity(name string) uint32 {
	if slot, ok := c.slots[name]; ok {
		return slot.maxElementCount
	}
	return 0
}

// ResizeCache grows or shrinks a slot to the given record count. The
// stream cursor is reset; previous contents are not carried over.
func (c *ParameterCache) ResizeCache(name string, elementCount uint32) error {
	slot, ok := c.slots[name]
	if !ok {
		return fmt.Errorf("cache '%s' does not exist: %w", name, core.ErrInvalidArgument)
	}
	if slot.maxElementCount == elementCount {
		return nil
	}
	for i, buf := range slot.buffers {
		newBuf, err := c.backend.CreateBuffer(int(slot.elementSize*elementCount), slot.usage)
		if err != nil {
			return fmt.Errorf("cache '%s': %w", name, err)
		}
		buf.Destroy()
		slot.buffers[i] = newBuf
	}
	slot.maxElementCount = elementCount
	slot.head = 0
	slot.lastBinding = cacheBinding{}
	return nil
}

// SetParameter overwrites the record at a fixed index in the slot's
// current buffer. Out-of-range indices are reported and ignored.
func (c *ParameterCache) SetParameter(name string, index uint32, record []byte) error {
	slot, ok := c.slots[name]
	if !ok {
		return fmt.Errorf("cache '%s' does not exist: %w", name, core.ErrInvalidArgument)
	}
	if index >= slot.maxElementCount {
		core.LogWarn("ParameterCache.SetParameter: index %d out of range for cache '%s'", index, name)
		return nil
	}
	return slot.current().Upload(record, int(index*slot.elementSize))
}

// Parameter reads back the record at a fixed index from the slot's
// current buffer.
func (c *ParameterCache) Parameter(name string, index uint32) ([]byte, error) {
	slot, ok := c.slots[name]
	if !ok {
		return nil, fmt.Errorf("cache '%s' does not exist: %w", name, core.ErrInvalidArgument)
	}
	if index >= slot.maxElementCount {
		return nil, fmt.Errorf("index %d out of range for cache '%s': %w", index, name, core.ErrOutOfRange)
	}
	data, err := slot.current().Download(int((index + 1) * slot.elementSize))
	if err != nil {
		return nil, fmt.Errorf("cache '%s': %w", name, err)
	}
	return data[index*slot.elementSize:], nil
}

// AddParameter appends a record at the slot's stream cursor and returns
// the assigned index. When the slot is full it reports the overflow and
// returns InvalidIndex; callers are responsible for calling Swap before
// that happens (the device may still be reading earlier records, so the
// cache never recycles indices on its own).
func (c *ParameterCache) AddParameter(name string, record []byte) uint32 {
	slot, ok := c.slots[name]
	if !ok {
		core.LogWarn("ParameterCache.AddParameter: cache '%s' does not exist", name)
		return InvalidIndex
	}
	if slot.head >= slot.maxElementCount {
		core.LogWarn("ParameterCache.AddParameter: cache '%s' is full", name)
		return InvalidIndex
	}
	index := slot.head
	slot.head++
	if err := slot.current().Upload(record, int(index*slot.elementSize)); err != nil {
		core.LogWarn("ParameterCache.AddParameter: upload to cache '%s' failed: %v", name, err)
		return InvalidIndex
	}
	return index
}

// Swap advances a multi-buffered slot to its next ring buffer and
// resets the stream cursor. On single-buffered slots only the cursor is
// reset, which deterministically overwrites from index 0.
func (c *ParameterCache) Swap(name string) {
	slot, ok := c.slots[name]
	if !ok {
		core.LogWarn("ParameterCache.Swap: cache '%s' does not exist", name)
		return
	}
	slot.multiBufferHead = (slot.multiBufferHead + 1) % uint32(len(slot.buffers))
	slot.head = 0
	// The ring moved to a different device buffer; the previous binding
	// no longer refers to it.
	slot.lastBinding.valid = false
}

// Bind attaches the slot's current buffer to a shader interface
// location. The call is idempotent per (location, target) pair unless
// forced.
func (c *ParameterCache) Bind(name string, location uint32, target metadata.BufferTarget, forced bool) error {
	slot, ok := c.slots[name]
	if !ok {
		return fmt.Errorf("cache '%s' does not exist: %w", name, core.ErrInvalidArgument)
	}
	binding := cacheBinding{location: location, target: target, valid: true}
	if !forced && slot.lastBinding == binding {
		return nil
	}
	if err := slot.current().Bind(target, location); err != nil {
		return fmt.Errorf("cache '%s': %w", name, err)
	}
	slot.lastBinding = binding
	return nil
}
