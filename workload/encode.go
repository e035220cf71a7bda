package workload

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Wire layout, little-endian, fields concatenated in order:
//
//	int64   id
//	4*dim   raw float32 embedding values
//	uint32  original data length, then that many bytes
//	uint32  database id length, then that many bytes
//	int64   created-at (unix milliseconds)
//
// The embedding carries no length prefix; its length is fixed by the
// corpus dimension, which writer and reader both know.

// EncodedSize returns the number of bytes Encode produces for e.
func EncodedSize(e *Entry) int {
	return 8 + 4*len(e.Embedding) + 4 + len(e.OriginalData) + 4 + len(e.DatabaseID) + 8
}

// Encode serializes e into its wire form. It cannot fail for an Entry
// satisfying the data model invariants.
func Encode(e *Entry) []byte {
	buf := make([]byte, 0, EncodedSize(e))

	buf = binary.LittleEndian.AppendUint64(buf, uint64(e.ID))

	for _, v := range e.Embedding {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e.OriginalData)))
	buf = append(buf, e.OriginalData...)

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e.DatabaseID)))
	buf = append(buf, e.DatabaseID...)

	buf = binary.LittleEndian.AppendUint64(buf, uint64(e.CreatedAt))

	return buf
}

// Decode parses an encoded entry. The caller supplies the corpus
// dimension since the embedding length is not self-describing.
func Decode(buf []byte, dim int) (Entry, error) {
	var e Entry

	if dim < 0 {
		return e, fmt.Errorf("negative dimension %d", dim)
	}

	off := 0

	id, ok := takeUint64(buf, &off)
	if !ok {
		return e, fmt.Errorf("short buffer: id")
	}
	e.ID = int64(id)

	e.Embedding = make([]float32, dim)
	for i := range e.Embedding {
		bits, ok := takeUint32(buf, &off)
		if !ok {
			return e, fmt.Errorf("short buffer: embedding value %d", i)
		}
		e.Embedding[i] = math.Float32frombits(bits)
	}

	data, ok := takeString(buf, &off)
	if !ok {
		return e, fmt.Errorf("short buffer: original data")
	}
	e.OriginalData = data

	dbID, ok := takeString(buf, &off)
	if !ok {
		return e, fmt.Errorf("short buffer: database id")
	}
	e.DatabaseID = dbID

	created, ok := takeUint64(buf, &off)
	if !ok {
		return e, fmt.Errorf("short buffer: created-at")
	}
	e.CreatedAt = int64(created)

	if off != len(buf) {
		return e, fmt.Errorf("%d trailing bytes after entry", len(buf)-off)
	}

	return e, nil
}

func takeUint64(buf []byte, off *int) (uint64, bool) {
	if len(buf)-*off < 8 {
		return 0, false
	}

	v := binary.LittleEndian.Uint64(buf[*off:])
	*off += 8

	return v, true
}

func takeUint32(buf []byte, off *int) (uint32, bool) {
	if len(buf)-*off < 4 {
		return 0, false
	}

	v := binary.LittleEndian.Uint32(buf[*off:])
	*off += 4

	return v, true
}

func takeString(buf []byte, off *int) (string, bool) {
	n, ok := takeUint32(buf, off)
	if !ok || len(buf)-*off < int(n) {
		return "", false
	}

	s := string(buf[*off : *off+int(n)])
	*off += int(n)

	return s, true
}
