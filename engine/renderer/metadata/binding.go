package metadata

const (
	// MaxTextureUnits is the number of texture units tracked per context.
	MaxTextureUnits = 8
	// MaxImageUnits is the number of image load/store units tracked per
	// context.
	MaxImageUnits = 8
	// MaxVertexAttribs is the number of vertex attribute locations
	// tracked per context.
	MaxVertexAttribs = 16
	// MaxVertexBindings is the number of vertex buffer binding points
	// tracked per context.
	MaxVertexBindings = 4
)

// BufferTarget is a device bind point for a buffer.
type BufferTarget uint8

const (
	TargetUniformBuffer BufferTarget = iota
	TargetShaderStorageBuffer
	TargetArrayBuffer
	TargetElementArrayBuffer
	TargetAtomicCounterBuffer
	TargetDrawIndirectBuffer
)

// BufferUsage is a set of usage-hint flags for device buffer allocation.
type BufferUsage uint32

const (
	UsageDynamicStorage BufferUsage = 1 << iota
	UsageMapRead
	UsageMapWrite
	UsageMapPersistent
	UsageMapCoherent
	// UsageClientStorage asks for device-visible but host-mapped storage.
	UsageClientStorage
)

// Composite usage hints mirroring the common allocation profiles.
const (
	UsageStatic  BufferUsage = 0
	UsageDynamic BufferUsage = UsageDynamicStorage | UsageMapWrite
	UsageStream  BufferUsage = UsageDynamicStorage | UsageMapWrite | UsageMapPersistent | UsageMapCoherent
)

// PrimitiveMode is the primitive topology of a draw call.
type PrimitiveMode uint8

const (
	PrimitivePoints PrimitiveMode = iota
	PrimitiveLines
	PrimitiveLineStrip
	PrimitiveTriangles
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
)

// IndexType is the element type of an index buffer.
type IndexType uint8

const (
	IndexUint8 IndexType = iota
	IndexUint16
	IndexUint32
)

// Size returns the byte size of one index of this type.
func (t IndexType) Size() uint32 {
	switch t {
	case IndexUint8:
		return 1
	case IndexUint16:
		return 2
	default:
		return 4
	}
}

// DataType is the component type of a vertex attribute or pixel.
type DataType uint8

const (
	TypeFloat32 DataType = iota
	TypeInt8
	TypeUint8
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
)

// Size returns the byte size of one component of this type.
func (t DataType) Size() uint32 {
	switch t {
	case TypeInt8, TypeUint8:
		return 1
	case TypeInt16, TypeUint16:
		return 2
	default:
		return 4
	}
}

// VertexAttribute describes one attribute inside a vertex layout. Name
// is the semantic name resolved against the bound shader.
type VertexAttribute struct {
	Name           string
	NumValues      uint32
	Type           DataType
	Offset         uint32
	Normalize      bool
	ConvertToFloat bool
}

// Empty reports whether the attribute slot is unused.
func (a VertexAttribute) Empty() bool {
	return a.NumValues == 0
}

// ByteSize returns the packed byte size of the attribute.
func (a VertexAttribute) ByteSize() uint32 {
	return a.NumValues * a.Type.Size()
}

// Well-known vertex attribute names.
const (
	AttributePosition = "sg_Position"
	AttributeNormal   = "sg_Normal"
	AttributeColor    = "sg_Color"
	AttributeTexCoord = "sg_TexCoord0"
)

// VertexLayout is the format of one interleaved vertex stream.
type VertexLayout struct {
	Attributes []VertexAttribute
	Stride     uint32
}

// NewVertexLayout builds an interleaved layout from the given
// attributes, computing offsets and the stride.
func NewVertexLayout(attrs ...VertexAttribute) VertexLayout {
	layout := VertexLayout{}
	offset := uint32(0)
	for _, a := range attrs {
		a.Offset = offset
		offset += a.ByteSize()
		layout.Attributes = append(layout.Attributes, a)
	}
	layout.Stride = offset
	return layout
}

// Attribute returns the attribute with the given name, if present.
func (l VertexLayout) Attribute(name string) (VertexAttribute, bool) {
	for _, a := range l.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return VertexAttribute{}, false
}

// PixelComponents is the component layout of a texel.
type PixelComponents uint8

const (
	ComponentsR PixelComponents = iota
	ComponentsRG
	ComponentsRGB
	ComponentsRGBA
)

// PixelFormat describes the texel layout of a texture, used to pick an
// image-binding access format.
type PixelFormat struct {
	Components  PixelComponents
	ElementType DataType
}
