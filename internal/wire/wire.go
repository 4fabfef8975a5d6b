package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const (
	version    byte = 1
	kindSingle byte = 1
	kindBulk   byte = 2

	singleHdr = 4 + 1 + 1 + 8 + 4 + 8
	bulkHdr   = 4 + 1 + 1 + 4
)

var (
	ErrCorrupt   = errors.New("jsonvalue: corrupt entry")
	ErrKeyLength = errors.New("jsonvalue: invalid key length in bulk")
	magic4       = [...]byte{'J', 'S', 'N', 'V'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Single: magic(4) | ver(1) | kind(1=single) | gen(u64 be) | vlen(u32 be) | sum(u64 be) | payload(vlen)
//
// sum is the xxhash64 of the payload; a mismatch is reported as corruption.
func EncodeSingle(gen uint64, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(singleHdr + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindSingle)
	writeEntry(&buf, gen, payload)
	return buf.Bytes()
}

func DecodeSingle(b []byte) (gen uint64, payload []byte, err error) {
	if len(b) < singleHdr || !hasMagic(b) || b[4] != version || b[5] != kindSingle {
		return 0, nil, ErrCorrupt
	}
	gen, payload, off, err := readEntry(b, 6)
	if err != nil {
		return 0, nil, err
	}
	if off != len(b) {
		return 0, nil, ErrCorrupt
	}
	return gen, payload, nil
}

// Bulk:
//
//	magic(4) | ver(1) | kind(1=bulk) | n(u32 be)
//	keyLen(u16 be) | key(keyLen) | gen(u64 be) | vlen(u32 be) | sum(u64 be) | payload(vlen) * n
type BulkItem struct {
	Key     string
	Gen     uint64
	Payload []byte
}

func EncodeBulk(items []BulkItem) ([]byte, error) {
	total := bulkHdr
	for _, it := range items {
		if l := len(it.Key); l == 0 || l > 0xFFFF {
			return nil, fmt.Errorf("%w: %d", ErrKeyLength, l)
		}
		total += 2 + len(it.Key) + 8 + 4 + 8 + len(it.Payload)
	}

	var buf bytes.Buffer
	buf.Grow(total)

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindBulk)

	var u4 [4]byte
	var u2 [2]byte

	binary.BigEndian.PutUint32(u4[:], uint32(len(items)))
	buf.Write(u4[:])

	for _, it := range items {
		binary.BigEndian.PutUint16(u2[:], uint16(len(it.Key)))
		buf.Write(u2[:])
		buf.WriteString(it.Key)
		writeEntry(&buf, it.Gen, it.Payload)
	}
	return buf.Bytes(), nil
}

func DecodeBulk(b []byte) ([]BulkItem, error) {
	if len(b) < bulkHdr || !hasMagic(b) || b[4] != version || b[5] != kindBulk {
		return nil, ErrCorrupt
	}

	off := 6
	n := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	// every item takes at least one header's worth of bytes
	if n < 0 || n > (len(b)-off)/(2+1+8+4+8) {
		return nil, ErrCorrupt
	}

	items := make([]BulkItem, 0, n)
	for i := 0; i < n; i++ {
		if off+2 > len(b) {
			return nil, ErrCorrupt
		}
		klen := int(binary.BigEndian.Uint16(b[off : off+2]))
		off += 2
		if klen <= 0 || klen > len(b)-off {
			return nil, ErrCorrupt
		}
		keyBytes := b[off : off+klen]
		off += klen

		gen, payload, next, err := readEntry(b, off)
		if err != nil {
			return nil, err
		}
		off = next

		items = append(items, BulkItem{
			Key:     string(keyBytes),
			Gen:     gen,
			Payload: payload,
		})
	}
	if off != len(b) {
		return nil, ErrCorrupt
	}
	return items, nil
}

func writeEntry(buf *bytes.Buffer, gen uint64, payload []byte) {
	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], gen)
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	binary.BigEndian.PutUint64(u8[:], xxhash.Sum64(payload))
	buf.Write(u8[:])

	buf.Write(payload)
}

// readEntry reads gen | vlen | sum | payload at off. The payload aliases b.
func readEntry(b []byte, off int) (gen uint64, payload []byte, next int, err error) {
	if off+8+4+8 > len(b) {
		return 0, nil, 0, ErrCorrupt
	}
	gen = binary.BigEndian.Uint64(b[off : off+8])
	off += 8
	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	sum := binary.BigEndian.Uint64(b[off : off+8])
	off += 8
	if vlen < 0 || vlen > len(b)-off {
		return 0, nil, 0, ErrCorrupt
	}
	payload = b[off : off+vlen]
	if xxhash.Sum64(payload) != sum {
		return 0, nil, 0, ErrCorrupt
	}
	return gen, payload, off + vlen, nil
}
