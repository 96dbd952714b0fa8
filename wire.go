// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Wire tags. The first byte of every primitive/composite value selects the
// decoding rule from this table.
const (
	tagMaxImmediate = 231 // 0..231: immediate unsigned integer equal to the tag

	tag2Byte        = 232 // 2-byte little-endian unsigned follows
	tag4Byte        = 233 // 4-byte little-endian unsigned follows
	tag8Byte        = 234 // 8-byte little-endian unsigned follows
	tagNeg1Byte     = 235 // 1-byte little-endian two's complement (int32 negative)
	tagNeg2Byte     = 236 // 2-byte little-endian two's complement (int32 negative)
	tagNeg4Byte     = 237 // 4-byte little-endian two's complement (int32 negative)
	tagInt64        = 238 // 8-byte little-endian signed int64
	tagTimestamp    = 239 // 8-byte little-endian signed unix-millis
	tagFloat32      = 240 // 4-byte little-endian IEEE-754 float32
	tagFloat64      = 241 // 8-byte little-endian IEEE-754 float64
	tagEmptyString  = 242
	tagString       = 243 // length-prefixed UTF-8 bytes
	tagEmptyBytes   = 244
	tagBytes        = 245 // length-prefixed bytes
	tagEmptyArray   = 246 // empty array / empty struct (0 slots)
	tagArray1       = 247
	tagArray2       = 248 // overloaded: enum length-prefixed number in enum context
	tagArray3       = 249
	tagArrayN       = 250 // length-prefixed element/slot count
	tagEnumWrapper1 = 251
	tagEnumWrapper2 = 252
	tagEnumWrapper3 = 253
	tagEnumWrapper4 = 254
	tagAbsent       = 255
)

// decodeBuffer is a read cursor over an input byte slice.
type decodeBuffer struct {
	buf []byte
	pos int
}

func newDecodeBuffer(buf []byte) *decodeBuffer {
	return &decodeBuffer{buf: buf}
}

func (d *decodeBuffer) atEOF() bool {
	return d.pos >= len(d.buf)
}

func (d *decodeBuffer) remaining() []byte {
	return d.buf[d.pos:]
}

func (d *decodeBuffer) readByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, fmt.Errorf("%w: unexpected end of input", ErrInvalidWire)
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *decodeBuffer) peekByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, fmt.Errorf("%w: unexpected end of input", ErrInvalidWire)
	}
	return d.buf[d.pos], nil
}

func (d *decodeBuffer) readN(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.buf) {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrInvalidWire)
	}
	out := d.buf[d.pos : d.pos+n]
	d.pos += n
	return out, nil
}

func (d *decodeBuffer) skip(n int) error {
	_, err := d.readN(n)
	return err
}

// encoder accumulates encoded bytes. It mirrors the teacher's use of
// bytes.Buffer plus encoding/binary in ts/writer.go.
type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) writeByte(b byte) {
	e.buf.WriteByte(b)
}

func (e *encoder) writeBytes(b []byte) {
	e.buf.Write(b)
}

func (e *encoder) writeUint16LE(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) writeUint32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) writeUint64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) bytes() []byte {
	return e.buf.Bytes()
}

// encodeUint64 writes n using the unsigned-integer encoding rules: a single
// byte if n < 232, else tag 232/233/234 followed by a 2/4/8 byte payload.
func encodeUint64(e *encoder, n uint64) {
	switch {
	case n <= tagMaxImmediate:
		e.writeByte(byte(n))
	case n < 1<<16:
		e.writeByte(tag2Byte)
		e.writeUint16LE(uint16(n))
	case n < 1<<32:
		e.writeByte(tag4Byte)
		e.writeUint32LE(uint32(n))
	default:
		e.writeByte(tag8Byte)
		e.writeUint64LE(n)
	}
}

// encodeLengthPrefix emits n using the same rule as encodeUint64; n must be
// non-negative (slot counts, element counts, string/byte lengths).
func encodeLengthPrefix(e *encoder, n int) {
	encodeUint64(e, uint64(n))
}

// decodeUnsignedNumber reads a tag and returns the unsigned value it
// encodes, accepting only the tags used by encodeUint64/encodeLengthPrefix
// (0..234). It is used for string/bytes lengths, list/struct slot counts,
// and enum variant numbers.
func decodeUnsignedNumber(d *decodeBuffer) (uint64, error) {
	tag, err := d.readByte()
	if err != nil {
		return 0, err
	}
	switch {
	case tag <= tagMaxImmediate:
		return uint64(tag), nil
	case tag == tag2Byte:
		b, err := d.readN(2)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case tag == tag4Byte:
		b, err := d.readN(4)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case tag == tag8Byte:
		b, err := d.readN(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(b), nil
	default:
		return 0, fmt.Errorf("%w: tag %d is not a valid length/number", ErrInvalidWire, tag)
	}
}

// decodeUnusedValue advances past one logically-complete value without
// producing it, used to skip removed slots and to measure unrecognized
// payloads. See wire.go's tag table: every tag's byte length is determined
// solely by the tag, independent of whether the value is a primitive,
// struct, list, or enum — so this needs no type context, matching the
// "Context is set by the calling serializer" note in the spec for the one
// case (tag 248) that would otherwise look ambiguous: read as "two nested
// values" it consumes exactly the same bytes as "an enum number followed by
// one value" would, because a number's own encoding never uses a composite
// tag.
func decodeUnusedValue(d *decodeBuffer) error {
	tag, err := d.readByte()
	if err != nil {
		return err
	}
	switch {
	case tag <= tagMaxImmediate:
		return nil
	case tag == tag2Byte:
		return d.skip(2)
	case tag == tag4Byte:
		return d.skip(4)
	case tag == tag8Byte:
		return d.skip(8)
	case tag == tagNeg1Byte:
		return d.skip(1)
	case tag == tagNeg2Byte:
		return d.skip(2)
	case tag == tagNeg4Byte:
		return d.skip(4)
	case tag == tagInt64:
		return d.skip(8)
	case tag == tagTimestamp:
		return d.skip(8)
	case tag == tagFloat32:
		return d.skip(4)
	case tag == tagFloat64:
		return d.skip(8)
	case tag == tagEmptyString:
		return nil
	case tag == tagString:
		n, err := decodeUnsignedNumber(d)
		if err != nil {
			return err
		}
		return d.skip(int(n))
	case tag == tagEmptyBytes:
		return nil
	case tag == tagBytes:
		n, err := decodeUnsignedNumber(d)
		if err != nil {
			return err
		}
		return d.skip(int(n))
	case tag == tagEmptyArray:
		return nil
	case tag == tagArray1:
		return decodeUnusedValue(d)
	case tag == tagArray2:
		if err := decodeUnusedValue(d); err != nil {
			return err
		}
		return decodeUnusedValue(d)
	case tag == tagArray3:
		for i := 0; i < 3; i++ {
			if err := decodeUnusedValue(d); err != nil {
				return err
			}
		}
		return nil
	case tag == tagArrayN:
		n, err := decodeUnsignedNumber(d)
		if err != nil {
			return err
		}
		for i := uint64(0); i < n; i++ {
			if err := decodeUnusedValue(d); err != nil {
				return err
			}
		}
		return nil
	case tag >= tagEnumWrapper1 && tag <= tagEnumWrapper4:
		return decodeUnusedValue(d)
	case tag == tagAbsent:
		return nil
	default:
		return fmt.Errorf("%w: unexpected tag %d", ErrInvalidWire, tag)
	}
}

// captureUnusedBytes behaves like decodeUnusedValue but returns the exact
// bytes it consumed, deep-copied so the caller can retain them past the
// lifetime of the input buffer.
func captureUnusedBytes(d *decodeBuffer) ([]byte, error) {
	start := d.pos
	if err := decodeUnusedValue(d); err != nil {
		return nil, err
	}
	out := make([]byte, d.pos-start)
	copy(out, d.buf[start:d.pos])
	return out, nil
}
