// Package woff wraps OpenType fonts in the WOFF 1.0 container format and
// unwraps them again.
//
// Every table is zlib-compressed unless compression does not make it
// smaller, in which case it is stored as is. Extended metadata and private
// data blocks are not written.
package woff

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Sentinel errors for WOFF operations.
var (
	ErrInvalidSFNT = errors.New("invalid sfnt data")
	ErrInvalidWOFF = errors.New("invalid woff data")
)

// Signature is the magic number at the start of every WOFF file.
const Signature = 0x774F4646 // "wOFF"

const (
	woffHeaderSize  = 44
	woffEntrySize   = 20
	sfntHeaderSize  = 12
	sfntRecordSize  = 16
	maxTables       = 1024
	maxDecodedTable = 64 << 20
)

type table struct {
	tag      uint32
	checksum uint32
	data     []byte // uncompressed
}

// Encode converts an sfnt (OpenType or TrueType) font into WOFF.
func Encode(sfnt []byte) ([]byte, error) {
	flavor, tables, err := readSFNT(sfnt)
	if err != nil {
		return nil, err
	}

	type entry struct {
		table
		stored []byte
	}
	entries := make([]entry, len(tables))
	totalSfntSize := uint32(sfntHeaderSize + sfntRecordSize*len(tables))
	for i, t := range tables {
		stored, err := compress(t.data)
		if err != nil {
			return nil, fmt.Errorf("compressing table %s: %w", tagString(t.tag), err)
		}
		entries[i] = entry{table: t, stored: stored}
		totalSfntSize += uint32(pad4(len(t.data)))
	}

	var major, minor uint16
	for _, t := range tables {
		if t.tag == tagHead && len(t.data) >= 8 {
			major = binary.BigEndian.Uint16(t.data[4:])
			minor = binary.BigEndian.Uint16(t.data[6:])
		}
	}

	offset := woffHeaderSize + woffEntrySize*len(entries)
	dir := make([]byte, 0, woffEntrySize*len(entries))
	body := make([]byte, 0)
	for _, e := range entries {
		dir = binary.BigEndian.AppendUint32(dir, e.tag)
		dir = binary.BigEndian.AppendUint32(dir, uint32(offset+len(body)))
		dir = binary.BigEndian.AppendUint32(dir, uint32(len(e.stored)))
		dir = binary.BigEndian.AppendUint32(dir, uint32(len(e.data)))
		dir = binary.BigEndian.AppendUint32(dir, e.checksum)
		body = append(body, e.stored...)
		body = append(body, make([]byte, pad4(len(e.stored))-len(e.stored))...)
	}

	out := make([]byte, 0, offset+len(body))
	out = binary.BigEndian.AppendUint32(out, Signature)
	out = binary.BigEndian.AppendUint32(out, flavor)
	out = binary.BigEndian.AppendUint32(out, uint32(offset+len(body)))
	out = binary.BigEndian.AppendUint16(out, uint16(len(entries)))
	out = binary.BigEndian.AppendUint16(out, 0) // reserved
	out = binary.BigEndian.AppendUint32(out, totalSfntSize)
	out = binary.BigEndian.AppendUint16(out, major)
	out = binary.BigEndian.AppendUint16(out, minor)
	out = append(out, make([]byte, 20)...) // no metadata, no private data
	out = append(out, dir...)
	out = append(out, body...)
	return out, nil
}

// Decode converts a WOFF file back into sfnt bytes. Tables are laid out in
// tag order.
func Decode(woff []byte) ([]byte, error) {
	if len(woff) < woffHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrInvalidWOFF, len(woff))
	}
	if sig := binary.BigEndian.Uint32(woff); sig != Signature {
		return nil, fmt.Errorf("%w: bad signature 0x%08X", ErrInvalidWOFF, sig)
	}
	flavor := binary.BigEndian.Uint32(woff[4:])
	if length := binary.BigEndian.Uint32(woff[8:]); int(length) != len(woff) {
		return nil, fmt.Errorf("%w: header length %d, file has %d bytes", ErrInvalidWOFF, length, len(woff))
	}
	numTables := int(binary.BigEndian.Uint16(woff[12:]))
	if numTables == 0 || numTables > maxTables {
		return nil, fmt.Errorf("%w: %d tables", ErrInvalidWOFF, numTables)
	}
	if len(woff) < woffHeaderSize+woffEntrySize*numTables {
		return nil, fmt.Errorf("%w: truncated table directory", ErrInvalidWOFF)
	}

	tables := make([]table, numTables)
	for i := range tables {
		e := woff[woffHeaderSize+woffEntrySize*i:]
		tag := binary.BigEndian.Uint32(e)
		off := int(binary.BigEndian.Uint32(e[4:]))
		compLen := int(binary.BigEndian.Uint32(e[8:]))
		origLen := int(binary.BigEndian.Uint32(e[12:]))
		if off < 0 || compLen < 0 || off+compLen > len(woff) || compLen > origLen || origLen > maxDecodedTable {
			return nil, fmt.Errorf("%w: table %s out of bounds", ErrInvalidWOFF, tagString(tag))
		}
		data := woff[off : off+compLen]
		if compLen < origLen {
			var err error
			data, err = decompress(data, origLen)
			if err != nil {
				return nil, fmt.Errorf("%w: table %s: %v", ErrInvalidWOFF, tagString(tag), err)
			}
		}
		tables[i] = table{tag: tag, checksum: binary.BigEndian.Uint32(e[16:]), data: data}
	}
	return writeSFNT(flavor, tables), nil
}

const tagHead = 0x68656164 // "head"

func readSFNT(data []byte) (uint32, []table, error) {
	if len(data) < sfntHeaderSize {
		return 0, nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrInvalidSFNT, len(data))
	}
	flavor := binary.BigEndian.Uint32(data)
	numTables := int(binary.BigEndian.Uint16(data[4:]))
	if numTables == 0 || numTables > maxTables {
		return 0, nil, fmt.Errorf("%w: %d tables", ErrInvalidSFNT, numTables)
	}
	if len(data) < sfntHeaderSize+sfntRecordSize*numTables {
		return 0, nil, fmt.Errorf("%w: truncated table directory", ErrInvalidSFNT)
	}

	tables := make([]table, numTables)
	for i := range tables {
		rec := data[sfntHeaderSize+sfntRecordSize*i:]
		tag := binary.BigEndian.Uint32(rec)
		off := int(binary.BigEndian.Uint32(rec[8:]))
		length := int(binary.BigEndian.Uint32(rec[12:]))
		if off < 0 || length < 0 || off+length > len(data) {
			return 0, nil, fmt.Errorf("%w: table %s out of bounds", ErrInvalidSFNT, tagString(tag))
		}
		tables[i] = table{
			tag:      tag,
			checksum: binary.BigEndian.Uint32(rec[4:]),
			data:     data[off : off+length],
		}
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].tag < tables[j].tag })
	for i := 1; i < len(tables); i++ {
		if tables[i].tag == tables[i-1].tag {
			return 0, nil, fmt.Errorf("%w: duplicate table %s", ErrInvalidSFNT, tagString(tables[i].tag))
		}
	}
	return flavor, tables, nil
}

func writeSFNT(flavor uint32, tables []table) []byte {
	sort.Slice(tables, func(i, j int) bool { return tables[i].tag < tables[j].tag })

	n := len(tables)
	entrySelector := 0
	for 1<<(entrySelector+1) <= n {
		entrySelector++
	}
	searchRange := (1 << entrySelector) * 16

	out := make([]byte, 0, sfntHeaderSize+sfntRecordSize*n)
	out = binary.BigEndian.AppendUint32(out, flavor)
	out = binary.BigEndian.AppendUint16(out, uint16(n))
	out = binary.BigEndian.AppendUint16(out, uint16(searchRange))
	out = binary.BigEndian.AppendUint16(out, uint16(entrySelector))
	out = binary.BigEndian.AppendUint16(out, uint16(n*16-searchRange))

	offset := sfntHeaderSize + sfntRecordSize*n
	for _, t := range tables {
		out = binary.BigEndian.AppendUint32(out, t.tag)
		out = binary.BigEndian.AppendUint32(out, t.checksum)
		out = binary.BigEndian.AppendUint32(out, uint32(offset))
		out = binary.BigEndian.AppendUint32(out, uint32(len(t.data)))
		offset += pad4(len(t.data))
	}
	for _, t := range tables {
		out = append(out, t.data...)
		out = append(out, make([]byte, pad4(len(t.data))-len(t.data))...)
	}
	return out
}

// compress returns the zlib stream for data, or data itself when that is
// not larger.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	if buf.Len() >= len(data) {
		return data, nil
	}
	return buf.Bytes(), nil
}

func decompress(data []byte, size int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, err
	}
	// The stream must end exactly at the declared size.
	if n, _ := zr.Read(make([]byte, 1)); n != 0 {
		return nil, errors.New("table longer than declared")
	}
	return out, nil
}

func pad4(n int) int {
	return (n + 3) &^ 3
}

func tagString(tag uint32) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], tag)
	return fmt.Sprintf("%q", b[:])
}
