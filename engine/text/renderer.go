// Package text renders strings with AngelCode bitmap fonts. Glyph
// quads are rebuilt into a dynamic-vertex mesh per string and drawn
// through the rendering context with scoped blend and depth state.
package text

import (
	"fmt"

	"github.com/fzipp/bmfont"

	"github.com/spaghettifunk/vetro/engine/core"
	"github.com/spaghettifunk/vetro/engine/math"
	"github.com/spaghettifunk/vetro/engine/mesh"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/engine/renderer/metadata"
)

// GlyphLayout is the vertex format of the glyph quads: screen position
// and texture coordinate.
func GlyphLayout() metadata.VertexLayout {
	return metadata.NewVertexLayout(
		metadata.VertexAttribute{Name: metadata.AttributePosition, NumValues: 3, Type: metadata.TypeFloat32},
		metadata.VertexAttribute{Name: metadata.AttributeTexCoord, NumValues: 2, Type: metadata.TypeFloat32},
	)
}

// Renderer draws text with one bitmap font. The font page texture is a
// collaborator prepared elsewhere; the renderer only binds it.
type Renderer struct {
	desc    *bmfont.Descriptor
	texture renderer.Texture
	quads   *mesh.Mesh
}

// NewRenderer loads a bmfont descriptor (.fnt) and pairs it with the
// already-created page texture.
func NewRenderer(descriptorPath string, texture renderer.Texture) (*Renderer, error) {
	desc, err := bmfont.LoadDescriptor(descriptorPath)
	if err != nil {
		return nil, fmt.Errorf("loading font descriptor: %w", err)
	}
	if len(desc.Pages) > 1 {
		return nil, fmt.Errorf("multi-page fonts are not supported: %w", core.ErrUnsupported)
	}
	quads := mesh.New()
	quads.SetStrategy(mesh.NewDynamicVertexStrategy())
	return &Renderer{desc: desc, texture: texture, quads: quads}, nil
}

// LineHeight returns the font's line advance in pixels.
func (r *Renderer) LineHeight() int {
	return r.desc.Common.LineHeight
}

// Measure returns the pixel width of the string's longest line.
func (r *Renderer) Measure(text string) int {
	width, maxWidth := 0, 0
	var prev rune
	for _, ch := range text {
		if ch == '\n' {
			if width > maxWidth {
				maxWidth = width
			}
			width, prev = 0, 0
			continue
		}
		glyph, ok := r.desc.Chars[ch]
		if !ok {
			continue
		}
		width += glyph.XAdvance + r.kerning(prev, ch)
		prev = ch
	}
	if width > maxWidth {
		maxWidth = width
	}
	return maxWidth
}

// BuildMesh fills the glyph-quad mesh for the string with pen origin at
// pos (top-left, pixel coordinates) and returns it. The mesh is reused
// across calls; the dynamic strategy re-uploads it on the next draw.
func (r *Renderer) BuildMesh(text string, pos math.Vec2) *mesh.Mesh {
	glyphCount := 0
	for _, ch := range text {
		if _, ok := r.desc.Chars[ch]; ok && ch != '\n' {
			glyphCount++
		}
	}
	r.quads.DrawMode = metadata.PrimitiveTriangles
	r.quads.Vertices.Allocate(uint32(glyphCount*4), GlyphLayout())
	r.quads.Indices.Allocate(uint32(glyphCount * 6))

	scaleW := float32(r.desc.Common.ScaleW)
	scaleH := float32(r.desc.Common.ScaleH)
	penX, penY := pos.X, pos.Y
	var prev rune
	quad := uint32(0)
	for _, ch := range text {
		if ch == '\n' {
			penX = pos.X
			penY += float32(r.desc.Common.LineHeight)
			prev = 0
			continue
		}
		glyph, ok := r.desc.Chars[ch]
		if !ok {
			continue
		}
		penX += float32(r.kerning(prev, ch))
		x0 := penX + float32(glyph.XOffset)
		y0 := penY + float32(glyph.YOffset)
		x1 := x0 + float32(glyph.Width)
		y1 := y0 + float32(glyph.Height)
		u0 := float32(glyph.X) / scaleW
		v0 := float32(glyph.Y) / scaleH
		u1 := float32(glyph.X+glyph.Width) / scaleW
		v1 := float32(glyph.Y+glyph.Height) / scaleH

		base := quad * 4
		r.setGlyphVertex(base+0, x0, y0, u0, v0)
		r.setGlyphVertex(base+1, x1, y0, u1, v0)
		r.setGlyphVertex(base+2, x1, y1, u1, v1)
		r.setGlyphVertex(base+3, x0, y1, u0, v1)
		idx := quad * 6
		r.quads.Indices.SetIndex(idx+0, base+0)
		r.quads.Indices.SetIndex(idx+1, base+2)
		r.quads.Indices.SetIndex(idx+2, base+1)
		r.quads.Indices.SetIndex(idx+3, base+0)
		r.quads.Indices.SetIndex(idx+4, base+3)
		r.quads.Indices.SetIndex(idx+5, base+2)

		penX += float32(glyph.XAdvance)
		prev = ch
		quad++
	}
	return r.quads
}

func (r *Renderer) setGlyphVertex(i uint32, x, y, u, v float32) {
	r.quads.Vertices.SetPosition(i, math.Vec3{X: x, Y: y, Z: 0})
	r.quads.Vertices.SetFloats(i, metadata.AttributeTexCoord, u, v)
}

// Draw renders the string at pos with alpha blending on and the depth
// test off, restoring both categories afterwards.
func (r *Renderer) Draw(ctx *renderer.Context, text string, pos math.Vec2) error {
	m := r.BuildMesh(text, pos)
	if m.DrawCount() == 0 {
		return nil
	}
	blend := metadata.NewBlendingParameters()
	blend.Enabled = true
	ctx.PushAndSetBlending(blend)
	ctx.PushAndSetDepthBuffer(metadata.DepthBufferParameters{})
	ctx.PushAndSetTexture(0, r.texture)
	err := m.Display(ctx)
	ctx.PopTexture(0)
	ctx.PopDepthBuffer()
	ctx.PopBlending()
	return err
}

func (r *Renderer) kerning(prev, ch rune) int {
	if prev == 0 {
		return 0
	}
	if k, ok := r.desc.Kerning[bmfont.CharPair{First: prev, Second: ch}]; ok {
		return k.Amount
	}
	return 0
}
