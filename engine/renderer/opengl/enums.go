package opengl

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

func comparisonToGL(c metadata.Comparison) uint32 {
	switch c {
	case metadata.ComparisonNever:
		return gl.NEVER
	case metadata.ComparisonLess:
		return gl.LESS
	case metadata.ComparisonEqual:
		return gl.EQUAL
	case metadata.ComparisonLessEqual:
		return gl.LEQUAL
	case metadata.ComparisonGreater:
		return gl.GREATER
	case metadata.ComparisonNotEqual:
		return gl.NOTEQUAL
	case metadata.ComparisonGreaterEqual:
		return gl.GEQUAL
	default:
		return gl.ALWAYS
	}
}

func blendFuncToGL(f metadata.BlendFunc) uint32 {
	switch f {
	case metadata.BlendZero:
		return gl.ZERO
	case metadata.BlendOne:
		return gl.ONE
	case metadata.BlendSrcColor:
		return gl.SRC_COLOR
	case metadata.BlendOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case metadata.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case metadata.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case metadata.BlendDstAlpha:
		return gl.DST_ALPHA
	case metadata.BlendOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case metadata.BlendDstColor:
		return gl.DST_COLOR
	case metadata.BlendOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case metadata.BlendConstantColor:
		return gl.CONSTANT_COLOR
	default:
		return gl.ONE_MINUS_CONSTANT_COLOR
	}
}

func blendEquationToGL(e metadata.BlendEquation) uint32 {
	switch e {
	case metadata.BlendEquationAdd:
		return gl.FUNC_ADD
	case metadata.BlendEquationSubtract:
		return gl.FUNC_SUBTRACT
	case metadata.BlendEquationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case metadata.BlendEquationMin:
		return gl.MIN
	default:
		return gl.MAX
	}
}

func stencilActionToGL(a metadata.StencilAction) uint32 {
	switch a {
	case metadata.StencilKeep:
		return gl.KEEP
	case metadata.StencilZero:
		return gl.ZERO
	case metadata.StencilReplace:
		return gl.REPLACE
	case metadata.StencilIncr:
		return gl.INCR
	case metadata.StencilIncrWrap:
		return gl.INCR_WRAP
	case metadata.StencilDecr:
		return gl.DECR
	case metadata.StencilDecrWrap:
		return gl.DECR_WRAP
	default:
		return gl.INVERT
	}
}

func cullModeToGL(m metadata.CullFaceMode) uint32 {
	switch m {
	case metadata.CullFront:
		return gl.FRONT
	case metadata.CullFrontAndBack:
		return gl.FRONT_AND_BACK
	default:
		return gl.BACK
	}
}

func polygonModeToGL(m metadata.PolygonModeType) uint32 {
	switch m {
	case metadata.PolygonLine:
		return gl.LINE
	case metadata.PolygonPoint:
		return gl.POINT
	default:
		return gl.FILL
	}
}

func primitiveModeToGL(m metadata.PrimitiveMode) uint32 {
	switch m {
	case metadata.PrimitivePoints:
		return gl.POINTS
	case metadata.PrimitiveLines:
		return gl.LINES
	case metadata.PrimitiveLineStrip:
		return gl.LINE_STRIP
	case metadata.PrimitiveTriangleStrip:
		return gl.TRIANGLE_STRIP
	case metadata.PrimitiveTriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

func indexTypeToGL(t metadata.IndexType) uint32 {
	switch t {
	case metadata.IndexUint8:
		return gl.UNSIGNED_BYTE
	case metadata.IndexUint16:
		return gl.UNSIGNED_SHORT
	default:
		return gl.UNSIGNED_INT
	}
}

func dataTypeToGL(t metadata.DataType) uint32 {
	switch t {
	case metadata.TypeInt8:
		return gl.BYTE
	case metadata.TypeUint8:
		return gl.UNSIGNED_BYTE
	case metadata.TypeInt16:
		return gl.SHORT
	case metadata.TypeUint16:
		return gl.UNSIGNED_SHORT
	case metadata.TypeInt32:
		return gl.INT
	case metadata.TypeUint32:
		return gl.UNSIGNED_INT
	default:
		return gl.FLOAT
	}
}

func bufferTargetToGL(t metadata.BufferTarget) uint32 {
	switch t {
	case metadata.TargetUniformBuffer:
		return gl.UNIFORM_BUFFER
	case metadata.TargetShaderStorageBuffer:
		return gl.SHADER_STORAGE_BUFFER
	case metadata.TargetArrayBuffer:
		return gl.ARRAY_BUFFER
	case metadata.TargetElementArrayBuffer:
		return gl.ELEMENT_ARRAY_BUFFER
	case metadata.TargetAtomicCounterBuffer:
		return gl.ATOMIC_COUNTER_BUFFER
	default:
		return gl.DRAW_INDIRECT_BUFFER
	}
}

func usageToGLStorageFlags(u metadata.BufferUsage) uint32 {
	var flags uint32
	if u&metadata.UsageDynamicStorage != 0 {
		flags |= gl.DYNAMIC_STORAGE_BIT
	}
	if u&metadata.UsageMapRead != 0 {
		flags |= gl.MAP_READ_BIT
	}
	if u&metadata.UsageMapWrite != 0 {
		flags |= gl.MAP_WRITE_BIT
	}
	if u&metadata.UsageMapPersistent != 0 {
		flags |= gl.MAP_PERSISTENT_BIT
	}
	if u&metadata.UsageMapCoherent != 0 {
		flags |= gl.MAP_COHERENT_BIT
	}
	if u&metadata.UsageClientStorage != 0 {
		flags |= gl.CLIENT_STORAGE_BIT
	}
	return flags
}

// imageFormatToGL picks a sized internal format for image load/store
// bindings from the texture's pixel format.
func imageFormatToGL(f metadata.PixelFormat) (uint32, bool) {
	switch f.Components {
	case metadata.ComponentsR:
		switch f.ElementType {
		case metadata.TypeFloat32:
			return gl.R32F, true
		case metadata.TypeUint8:
			return gl.R8, true
		case metadata.TypeUint32:
			return gl.R32UI, true
		case metadata.TypeInt32:
			return gl.R32I, true
		}
	case metadata.ComponentsRG:
		switch f.ElementType {
		case metadata.TypeFloat32:
			return gl.RG32F, true
		case metadata.TypeUint8:
			return gl.RG8, true
		case metadata.TypeUint32:
			return gl.RG32UI, true
		}
	case metadata.ComponentsRGBA:
		switch f.ElementType {
		case metadata.TypeFloat32:
			return gl.RGBA32F, true
		case metadata.TypeUint8:
			return gl.RGBA8, true
		case metadata.TypeUint16:
			return gl.RGBA16, true
		case metadata.TypeUint32:
			return gl.RGBA32UI, true
		case metadata.TypeInt32:
			return gl.RGBA32I, true
		}
	}
	return 0, false
}
