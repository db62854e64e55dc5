// Package ring implements the fixed-capacity, single-buffer FIFO of
// spec.md section 4.5: a ring buffer laid out inside a shared-memory
// segment so multiple processes can exchange a byte stream through it.
package ring

import (
	"encoding/binary"

	cerrors "coreu/errors"
	"coreu/shm"
)

// header is the cursor block spec.md requires at the front of the mapped
// region, mirroring the AlephTX seqlock-feeder idiom of keeping producer
// and consumer state inside the segment itself rather than alongside it.
// All four fields are stored little-endian so the layout is stable across
// architectures sharing the segment.
type header struct {
	readPos   uint32
	writePos  uint32
	size      uint32
	usedSpace uint32
}

const headerSize = 16 // 4 uint32 fields, binary.Size(header{}) worth of bytes

// Buffer is a shared-memory ring buffer.
type Buffer struct {
	seg *shm.Segment
}

// New creates or opens a named ring buffer sized to hold size bytes of
// payload. Reopening an existing buffer with a different size silently
// honors the size stored in the header at creation time, per spec.md's
// "new" contract.
func New(name string, size int, mode shm.Mode) (*Buffer, error) {
	if size <= 0 {
		return nil, cerrors.New(cerrors.IPCInvalidArgument, "ring buffer size must be > 0")
	}

	seg, err := shm.New(name, headerSize+size, mode)
	if err != nil {
		return nil, err
	}

	b := &Buffer{seg: seg}
	if err := seg.Lock(); err != nil {
		return nil, err
	}
	defer seg.Unlock()

	h := b.readHeader()
	if h.size == 0 {
		h.size = uint32(size)
		b.writeHeader(h)
	}
	return b, nil
}

// Free releases the underlying shared-memory segment.
func (b *Buffer) Free() error {
	return b.seg.Free()
}

// TakeOwnership delegates to the underlying segment.
func (b *Buffer) TakeOwnership() {
	b.seg.TakeOwnership()
}

func (b *Buffer) readHeader() header {
	buf := b.seg.Address()
	return header{
		readPos:   binary.LittleEndian.Uint32(buf[0:4]),
		writePos:  binary.LittleEndian.Uint32(buf[4:8]),
		size:      binary.LittleEndian.Uint32(buf[8:12]),
		usedSpace: binary.LittleEndian.Uint32(buf[12:16]),
	}
}

func (b *Buffer) writeHeader(h header) {
	buf := b.seg.Address()
	binary.LittleEndian.PutUint32(buf[0:4], h.readPos)
	binary.LittleEndian.PutUint32(buf[4:8], h.writePos)
	binary.LittleEndian.PutUint32(buf[8:12], h.size)
	binary.LittleEndian.PutUint32(buf[12:16], h.usedSpace)
}

func (b *Buffer) payload() []byte {
	return b.seg.Address()[headerSize:]
}

// Read copies up to len(dst) bytes out of the buffer, returning the
// number actually read. If the buffer is empty, it returns (0, nil) —
// emptiness is not an error.
func (b *Buffer) Read(dst []byte) (int, error) {
	if err := b.seg.Lock(); err != nil {
		return 0, err
	}
	defer b.seg.Unlock()

	h := b.readHeader()
	if h.usedSpace == 0 {
		return 0, nil
	}

	n := len(dst)
	if uint32(n) > h.usedSpace {
		n = int(h.usedSpace)
	}

	payload := b.payload()
	size := int(h.size)
	pos := int(h.readPos)
	for i := 0; i < n; i++ {
		dst[i] = payload[(pos+i)%size]
	}

	h.readPos = uint32((pos + n) % size)
	h.usedSpace -= uint32(n)
	b.writeHeader(h)
	return n, nil
}

// Write copies all of src into the buffer, or none of it: if there is
// not enough free space for the whole write, it returns (0, nil) rather
// than a partial write.
func (b *Buffer) Write(src []byte) (int, error) {
	if err := b.seg.Lock(); err != nil {
		return 0, err
	}
	defer b.seg.Unlock()

	h := b.readHeader()
	free := h.size - h.usedSpace
	n := len(src)
	if uint32(n) > free {
		return 0, nil
	}
	if n == 0 {
		return 0, nil
	}

	payload := b.payload()
	size := int(h.size)
	pos := int(h.writePos)
	for i := 0; i < n; i++ {
		payload[(pos+i)%size] = src[i]
	}

	h.writePos = uint32((pos + n) % size)
	h.usedSpace += uint32(n)
	b.writeHeader(h)
	return n, nil
}

// FreeSpace returns the number of bytes currently available to Write.
func (b *Buffer) FreeSpace() (int, error) {
	if err := b.seg.Lock(); err != nil {
		return 0, err
	}
	defer b.seg.Unlock()
	h := b.readHeader()
	return int(h.size - h.usedSpace), nil
}

// UsedSpace returns the number of bytes currently available to Read.
func (b *Buffer) UsedSpace() (int, error) {
	if err := b.seg.Lock(); err != nil {
		return 0, err
	}
	defer b.seg.Unlock()
	h := b.readHeader()
	return int(h.usedSpace), nil
}

// Clear zeroes the payload and the header's cursors and used-space count,
// discarding any buffered data; the stored capacity is kept.
func (b *Buffer) Clear() error {
	if err := b.seg.Lock(); err != nil {
		return err
	}
	defer b.seg.Unlock()

	h := b.readHeader()
	size := h.size
	clear(b.seg.Address())
	b.writeHeader(header{size: size})
	return nil
}
