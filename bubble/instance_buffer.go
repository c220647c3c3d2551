package bubble

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// InstanceStride is the byte size of one packed transform.
const InstanceStride = 16 * 4

// InstanceBuffer holds one column-major transform per particle slot and a
// flag telling the render boundary that the contents changed since the
// last upload.
type InstanceBuffer struct {
	mats        []mgl32.Mat4
	needsUpload bool
	packed      []byte
}

func NewInstanceBuffer(count int) *InstanceBuffer {
	b := &InstanceBuffer{mats: make([]mgl32.Mat4, count)}
	for i := range b.mats {
		b.mats[i] = mgl32.Ident4()
	}
	return b
}

func (b *InstanceBuffer) Len() int { return len(b.mats) }

// WriteTransform stores a translation-only transform at slot i.
func (b *InstanceBuffer) WriteTransform(i int, pos mgl32.Vec3) {
	b.mats[i] = mgl32.Translate3D(pos.X(), pos.Y(), pos.Z())
	b.needsUpload = true
}

// ReadPosition returns the translation column of slot i.
func (b *InstanceBuffer) ReadPosition(i int) mgl32.Vec3 {
	return b.mats[i].Col(3).Vec3()
}

func (b *InstanceBuffer) NeedsUpload() bool { return b.needsUpload }

// Commit is called by the render boundary once the contents reached the GPU.
func (b *InstanceBuffer) Commit() { b.needsUpload = false }

// Matrices exposes the backing transforms. Callers must not modify them.
func (b *InstanceBuffer) Matrices() []mgl32.Mat4 { return b.mats }

// Bytes packs all transforms as little-endian float32, column-major,
// InstanceStride bytes per slot. The returned slice is reused by the next
// call.
func (b *InstanceBuffer) Bytes() []byte {
	size := len(b.mats) * InstanceStride
	if cap(b.packed) < size {
		b.packed = make([]byte, size)
	}
	b.packed = b.packed[:size]
	off := 0
	for _, m := range b.mats {
		for _, f := range m {
			binary.LittleEndian.PutUint32(b.packed[off:], math.Float32bits(f))
			off += 4
		}
	}
	return b.packed
}
