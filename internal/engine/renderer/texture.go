package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrCubemapFaces is returned when cubemap faces are missing or mismatched.
var ErrCubemapFaces = errors.New("invalid cubemap faces")

// Texture is a 2D texture.
type Texture struct {
	id uint32
}

// UploadTexture creates a mipmapped, repeating 2D texture from RGBA pixels.
func UploadTexture(img *image.RGBA) *Texture {
	w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())

	t := &Texture{}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Delete releases the GL texture.
func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// Cubemap is a six-face cube texture.
type Cubemap struct {
	id uint32
}

// checkFaces requires six non-nil square faces of one size.
func checkFaces(faces [6]*image.RGBA) error {
	var size image.Point
	for i, f := range faces {
		if f == nil {
			return fmt.Errorf("%w: face %d missing", ErrCubemapFaces, i)
		}
		s := f.Bounds().Size()
		if s.X != s.Y {
			return fmt.Errorf("%w: face %d is %dx%d, not square", ErrCubemapFaces, i, s.X, s.Y)
		}
		if i == 0 {
			size = s
		} else if s != size {
			return fmt.Errorf("%w: face %d is %v, face 0 is %v", ErrCubemapFaces, i, s, size)
		}
	}
	return nil
}

// UploadCubemap creates a cubemap from faces in +X, -X, +Y, -Y, +Z, -Z order.
func UploadCubemap(faces [6]*image.RGBA) (*Cubemap, error) {
	if err := checkFaces(faces); err != nil {
		return nil, err
	}

	c := &Cubemap{}
	gl.GenTextures(1, &c.id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, f := range faces {
		w, h := int32(f.Bounds().Dx()), int32(f.Bounds().Dy())
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return c, nil
}

// Bind binds the cubemap to the given texture unit.
func (c *Cubemap) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.id)
}

// Delete releases the GL texture.
func (c *Cubemap) Delete() {
	if c.id != 0 {
		gl.DeleteTextures(1, &c.id)
		c.id = 0
	}
}
