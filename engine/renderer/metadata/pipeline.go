package metadata

import (
	"github.com/spaghettifunk/vetro/engine/math"
)

// Comparison is a depth/stencil comparison function.
type Comparison uint8

const (
	ComparisonNever Comparison = iota
	ComparisonLess
	ComparisonEqual
	ComparisonLessEqual
	ComparisonGreater
	ComparisonNotEqual
	ComparisonGreaterEqual
	ComparisonAlways
)

// BlendFunc is a blending factor for source or destination colors.
type BlendFunc uint8

const (
	BlendZero BlendFunc = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendDstColor
	BlendOneMinusDstColor
	BlendConstantColor
	BlendOneMinusConstantColor
)

// BlendEquation combines source and destination terms.
type BlendEquation uint8

const (
	BlendEquationAdd BlendEquation = iota
	BlendEquationSubtract
	BlendEquationReverseSubtract
	BlendEquationMin
	BlendEquationMax
)

// BlendingParameters describes the fixed-function blending state.
type BlendingParameters struct {
	Enabled       bool
	SrcFuncRGB    BlendFunc
	DstFuncRGB    BlendFunc
	SrcFuncAlpha  BlendFunc
	DstFuncAlpha  BlendFunc
	EquationRGB   BlendEquation
	EquationAlpha BlendEquation
	Color         math.Color4f
}

// NewBlendingParameters returns the default blending state: disabled,
// src-alpha over one-minus-src-alpha.
func NewBlendingParameters() BlendingParameters {
	return BlendingParameters{
		SrcFuncRGB:   BlendSrcAlpha,
		DstFuncRGB:   BlendOneMinusSrcAlpha,
		SrcFuncAlpha: BlendSrcAlpha,
		DstFuncAlpha: BlendOneMinusSrcAlpha,
	}
}

// ColorBufferParameters describes the per-channel color write mask.
type ColorBufferParameters struct {
	RedWritingEnabled   bool
	GreenWritingEnabled bool
	BlueWritingEnabled  bool
	AlphaWritingEnabled bool
}

// NewColorBufferParameters returns the default mask with every channel
// writable.
func NewColorBufferParameters() ColorBufferParameters {
	return ColorBufferParameters{
		RedWritingEnabled:   true,
		GreenWritingEnabled: true,
		BlueWritingEnabled:  true,
		AlphaWritingEnabled: true,
	}
}

// CullFaceMode selects which triangle faces are discarded.
type CullFaceMode uint8

const (
	CullBack CullFaceMode = iota
	CullFront
	CullFrontAndBack
)

type CullFaceParameters struct {
	Enabled bool
	Mode    CullFaceMode
}

// NewCullFaceParameters returns back-face culling, enabled.
func NewCullFaceParameters() CullFaceParameters {
	return CullFaceParameters{Enabled: true, Mode: CullBack}
}

type DepthBufferParameters struct {
	TestEnabled    bool
	WritingEnabled bool
	Function       Comparison
}

// NewDepthBufferParameters returns the default depth state: test and
// writes enabled with a less-than comparison.
func NewDepthBufferParameters() DepthBufferParameters {
	return DepthBufferParameters{TestEnabled: true, WritingEnabled: true, Function: ComparisonLess}
}

// StencilAction is the operation applied to a stencil value.
type StencilAction uint8

const (
	StencilKeep StencilAction = iota
	StencilZero
	StencilReplace
	StencilIncr
	StencilIncrWrap
	StencilDecr
	StencilDecrWrap
	StencilInvert
)

type StencilParameters struct {
	Enabled             bool
	Function            Comparison
	ReferenceValue      int32
	BitMask             uint32
	FailAction          StencilAction
	DepthTestFailAction StencilAction
	DepthTestPassAction StencilAction
}

func NewStencilParameters() StencilParameters {
	return StencilParameters{
		Function: ComparisonAlways,
		BitMask:  0xffffffff,
	}
}

// DifferentFunctionParameters reports whether the test-function part of
// the state differs.
func (s StencilParameters) DifferentFunctionParameters(o StencilParameters) bool {
	return s.Function != o.Function || s.ReferenceValue != o.ReferenceValue || s.BitMask != o.BitMask
}

// DifferentActionParameters reports whether the action part of the
// state differs.
func (s StencilParameters) DifferentActionParameters(o StencilParameters) bool {
	return s.FailAction != o.FailAction || s.DepthTestFailAction != o.DepthTestFailAction || s.DepthTestPassAction != o.DepthTestPassAction
}

type ScissorParameters struct {
	Enabled bool
	Rect    math.Rect2i
}

func NewScissorParameters(rect math.Rect2i) ScissorParameters {
	return ScissorParameters{Enabled: true, Rect: rect}
}

// PolygonModeType selects how polygons are rasterized.
type PolygonModeType uint8

const (
	PolygonFill PolygonModeType = iota
	PolygonLine
	PolygonPoint
)

type PolygonModeParameters struct {
	Mode PolygonModeType
}

type PolygonOffsetParameters struct {
	Enabled bool
	Factor  float32
	Units   float32
}

type LineParameters struct {
	Width float32
}

func NewLineParameters() LineParameters {
	return LineParameters{Width: 1.0}
}
