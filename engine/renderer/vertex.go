package renderer

import (
	"fmt"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// SetVertexLayout declares how the buffer at the given binding point is
// laid out. Attribute locations come from the currently set shader when
// it knows the attribute names; without a shader they are assigned
// sequentially. Attributes the shader does not consume are skipped.
func (c *Context) SetVertexLayout(layout metadata.VertexLayout, binding uint32) error {
	if binding >= metadata.MaxVertexBindings {
		return fmt.Errorf("vertex binding %d exceeds limit %d: %w", binding, metadata.MaxVertexBindings, core.ErrInvalidArgument)
	}
	c.target.resetVertexFormats(binding)
	shader := c.target.shader
	for i, attr := range layout.Attributes {
		if attr.Empty() {
			continue
		}
		location := int32(i)
		if shader != nil {
			location = shader.VertexAttributeLocation(attr.Name)
			if location < 0 {
				continue
			}
		}
		if location >= metadata.MaxVertexAttribs {
			core.LogWarn("SetVertexLayout: attribute '%s' resolves to location %d, limit is %d", attr.Name, location, metadata.MaxVertexAttribs)
			continue
		}
		c.target.vertexFormats[location] = VertexFormat{Attribute: attr, Binding: binding}
	}
	return nil
}

// BindVertexBuffer attaches a buffer to a vertex binding point. The
// stride must match the layout declared for the same binding.
func (c *Context) BindVertexBuffer(binding uint32, buffer Buffer, offset, stride, divisor uint32) error {
	if binding >= metadata.MaxVertexBindings {
		return fmt.Errorf("vertex binding %d exceeds limit %d: %w", binding, metadata.MaxVertexBindings, core.ErrInvalidArgument)
	}
	c.target.vertexBindings[binding] = VertexBufferBinding{
		Buffer:  buffer,
		Offset:  offset,
		Stride:  stride,
		Divisor: divisor,
	}
	return nil
}

// UnbindVertexBuffer detaches the buffer and clears every attribute
// format that referred to the binding point.
func (c *Context) UnbindVertexBuffer(binding uint32) {
	if binding >= metadata.MaxVertexBindings {
		core.LogWarn("UnbindVertexBuffer: binding %d out of range", binding)
		return
	}
	c.target.vertexBindings[binding] = VertexBufferBinding{}
	c.target.resetVertexFormats(binding)
}

// BindIndexBuffer selects the buffer indexed draws read from. Passing
// nil unbinds.
func (c *Context) BindIndexBuffer(buffer Buffer) {
	c.target.elementBuffer = buffer
}

// BoundIndexBuffer returns the buffer indexed draws will read from.
func (c *Context) BoundIndexBuffer() Buffer {
	return c.target.elementBuffer
}
