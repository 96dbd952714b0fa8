// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/solidcoredata/soia/descriptor"
)

// Timestamp is a unix-millisecond instant, always clamped to the range the
// wire format and every host language can represent exactly:
// ±8_640_000_000_000_000ms (roughly ±273,790 years from the epoch).
type Timestamp int64

const (
	minTimestampMillis int64 = -8_640_000_000_000_000
	maxTimestampMillis int64 = 8_640_000_000_000_000
)

func clampMillis(n int64) int64 {
	if n < minTimestampMillis {
		return minTimestampMillis
	}
	if n > maxTimestampMillis {
		return maxTimestampMillis
	}
	return n
}

// TimestampFromTime converts and clamps t to a Timestamp.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(clampMillis(t.UnixMilli()))
}

// Time returns the UTC time.Time this Timestamp represents.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

const (
	jsonSafeIntMax = int64(1)<<53 - 1
	jsonSafeIntMin = -(int64(1)<<53 - 1)
)

// --- wire-level primitive codecs ---

func encodeBool(e *encoder, v bool) {
	if v {
		e.writeByte(1)
	} else {
		e.writeByte(0)
	}
}

func decodeBool(d *decodeBuffer) (bool, error) {
	n, err := decodeUnsignedNumber(d)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func encodeInt32(e *encoder, n int32) {
	switch {
	case n >= 0:
		encodeUint64(e, uint64(uint32(n)))
	case n >= -256:
		e.writeByte(tagNeg1Byte)
		e.writeByte(byte(int32(n) + 256))
	case n >= -65536:
		e.writeByte(tagNeg2Byte)
		e.writeUint16LE(uint16(int32(n) + 65536))
	default:
		e.writeByte(tagNeg4Byte)
		e.writeUint32LE(uint32(n))
	}
}

func decodeInt32(d *decodeBuffer) (int32, error) {
	tag, err := d.peekByte()
	if err != nil {
		return 0, err
	}
	switch tag {
	case tagNeg1Byte:
		d.pos++
		b, err := d.readN(1)
		if err != nil {
			return 0, err
		}
		return int32(b[0]) - 256, nil
	case tagNeg2Byte:
		d.pos++
		b, err := d.readN(2)
		if err != nil {
			return 0, err
		}
		return int32(binary.LittleEndian.Uint16(b)) - 65536, nil
	case tagNeg4Byte:
		d.pos++
		b, err := d.readN(4)
		if err != nil {
			return 0, err
		}
		return int32(binary.LittleEndian.Uint32(b)), nil
	default:
		raw, err := decodeUnsignedNumber(d)
		if err != nil {
			return 0, err
		}
		return int32(uint32(raw)), nil
	}
}

func encodeInt64(e *encoder, n int64) {
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		encodeInt32(e, int32(n))
		return
	}
	e.writeByte(tagInt64)
	e.writeUint64LE(uint64(n))
}

func decodeInt64(d *decodeBuffer) (int64, error) {
	tag, err := d.peekByte()
	if err != nil {
		return 0, err
	}
	if tag == tagInt64 {
		d.pos++
		b, err := d.readN(8)
		if err != nil {
			return 0, err
		}
		return int64(binary.LittleEndian.Uint64(b)), nil
	}
	n, err := decodeInt32(d)
	return int64(n), err
}

func encodeUint64Value(e *encoder, n uint64) {
	encodeUint64(e, n)
}

func decodeUint64Value(d *decodeBuffer) (uint64, error) {
	return decodeUnsignedNumber(d)
}

func encodeFloat32(e *encoder, f float32) {
	if f == 0 && !math.Signbit(float64(f)) {
		e.writeByte(0)
		return
	}
	e.writeByte(tagFloat32)
	e.writeUint32LE(math.Float32bits(f))
}

func decodeFloat32(d *decodeBuffer) (float32, error) {
	tag, err := d.peekByte()
	if err != nil {
		return 0, err
	}
	if tag == tagFloat32 {
		d.pos++
		b, err := d.readN(4)
		if err != nil {
			return 0, err
		}
		return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
	}
	n, err := decodeUnsignedNumber(d)
	if err != nil {
		return 0, err
	}
	if n != 0 {
		return 0, fmt.Errorf("%w: unexpected tag for float32", ErrInvalidWire)
	}
	return 0, nil
}

func encodeFloat64(e *encoder, f float64) {
	if f == 0 && !math.Signbit(f) {
		e.writeByte(0)
		return
	}
	e.writeByte(tagFloat64)
	e.writeUint64LE(math.Float64bits(f))
}

func decodeFloat64(d *decodeBuffer) (float64, error) {
	tag, err := d.peekByte()
	if err != nil {
		return 0, err
	}
	if tag == tagFloat64 {
		d.pos++
		b, err := d.readN(8)
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	}
	n, err := decodeUnsignedNumber(d)
	if err != nil {
		return 0, err
	}
	if n != 0 {
		return 0, fmt.Errorf("%w: unexpected tag for float64", ErrInvalidWire)
	}
	return 0, nil
}

func encodeString(e *encoder, s string) {
	if s == "" {
		e.writeByte(tagEmptyString)
		return
	}
	e.writeByte(tagString)
	encodeLengthPrefix(e, len(s))
	e.writeBytes([]byte(s))
}

func decodeString(d *decodeBuffer) (string, error) {
	tag, err := d.peekByte()
	if err != nil {
		return "", err
	}
	switch tag {
	case 0, tagEmptyString:
		d.pos++
		return "", nil
	case tagString:
		d.pos++
		n, err := decodeUnsignedNumber(d)
		if err != nil {
			return "", err
		}
		b, err := d.readN(int(n))
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", fmt.Errorf("%w: invalid UTF-8 string", ErrInvalidWire)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("%w: unexpected tag %d for string", ErrInvalidWire, tag)
	}
}

func encodeBytes(e *encoder, b []byte) {
	if len(b) == 0 {
		e.writeByte(tagEmptyBytes)
		return
	}
	e.writeByte(tagBytes)
	encodeLengthPrefix(e, len(b))
	e.writeBytes(b)
}

func decodeBytes(d *decodeBuffer) ([]byte, error) {
	tag, err := d.peekByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagEmptyBytes:
		d.pos++
		return nil, nil
	case tagBytes:
		d.pos++
		n, err := decodeUnsignedNumber(d)
		if err != nil {
			return nil, err
		}
		b, err := d.readN(int(n))
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unexpected tag %d for bytes", ErrInvalidWire, tag)
	}
}

func encodeTimestamp(e *encoder, ts Timestamp) {
	millis := clampMillis(int64(ts))
	if millis == 0 {
		e.writeByte(0)
		return
	}
	e.writeByte(tagTimestamp)
	e.writeUint64LE(uint64(millis))
}

func decodeTimestamp(d *decodeBuffer) (Timestamp, error) {
	tag, err := d.peekByte()
	if err != nil {
		return 0, err
	}
	if tag == tagTimestamp {
		d.pos++
		b, err := d.readN(8)
		if err != nil {
			return 0, err
		}
		millis := int64(binary.LittleEndian.Uint64(b))
		return Timestamp(clampMillis(millis)), nil
	}
	n, err := decodeUnsignedNumber(d)
	if err != nil {
		return 0, err
	}
	if n != 0 {
		return 0, fmt.Errorf("%w: unexpected tag for timestamp", ErrInvalidWire)
	}
	return 0, nil
}

// --- JSON conversions ---

func boolToJSON(v bool) jsonValue { return v }

func boolFromJSON(j jsonValue) (bool, error) {
	switch v := j.(type) {
	case bool:
		return v, nil
	case json.Number:
		f, _ := v.Float64()
		return f != 0, nil
	case string:
		switch v {
		case "0", "0.0", "-0.0", "false":
			return false, nil
		default:
			return true, nil
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("%w: cannot decode %T as bool", ErrInvalidArgument, j)
	}
}

func int32ToJSON(n int32) jsonValue { return json.Number(strconv.FormatInt(int64(n), 10)) }

func int32FromJSON(j jsonValue) (int32, error) {
	switch v := j.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
			}
			return int32(f), nil
		}
		return int32(n), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return int32(n), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: cannot decode %T as int32", ErrInvalidArgument, j)
	}
}

func int64ToJSON(n int64) jsonValue {
	if n > jsonSafeIntMax || n < jsonSafeIntMin {
		return strconv.FormatInt(n, 10)
	}
	return json.Number(strconv.FormatInt(n, 10))
}

func int64FromJSON(j jsonValue) (int64, error) {
	switch v := j.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: cannot decode %T as int64", ErrInvalidArgument, j)
	}
}

func uint64ToJSON(n uint64) jsonValue {
	if n > uint64(jsonSafeIntMax) {
		return strconv.FormatUint(n, 10)
	}
	return json.Number(strconv.FormatUint(n, 10))
}

func uint64FromJSON(j jsonValue) (uint64, error) {
	switch v := j.(type) {
	case json.Number:
		n, err := strconv.ParseUint(v.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return n, nil
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: cannot decode %T as uint64", ErrInvalidArgument, j)
	}
}

func float32ToJSON(f float32) jsonValue {
	switch {
	case math.IsNaN(float64(f)):
		return "NaN"
	case math.IsInf(float64(f), 1):
		return "Infinity"
	case math.IsInf(float64(f), -1):
		return "-Infinity"
	default:
		return json.Number(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
}

func float32FromJSON(j jsonValue) (float32, error) {
	f, err := float64FromJSONText(j)
	return float32(f), err
}

func float64ToJSON(f float64) jsonValue {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
	}
}

func float64FromJSON(j jsonValue) (float64, error) {
	return float64FromJSONText(j)
}

func float64FromJSONText(j jsonValue) (float64, error) {
	switch v := j.(type) {
	case json.Number:
		return v.Float64()
	case string:
		switch v {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return f, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: cannot decode %T as float", ErrInvalidArgument, j)
	}
}

func stringToJSON(s string) jsonValue { return s }

func stringFromJSON(j jsonValue) (string, error) {
	switch v := j.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("%w: cannot decode %T as string", ErrInvalidArgument, j)
	}
}

func bytesToJSON(b []byte, flavor Flavor) jsonValue {
	if flavor == Readable {
		return "hex:" + hex.EncodeToString(b)
	}
	return b
}

func bytesFromJSON(j jsonValue) ([]byte, error) {
	switch v := j.(type) {
	case []byte:
		return v, nil
	case string:
		if strings.HasPrefix(v, "hex:") {
			return hex.DecodeString(v[4:])
		}
		return base64.StdEncoding.DecodeString(v)
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: cannot decode %T as bytes", ErrInvalidArgument, j)
	}
}

func timestampToJSON(ts Timestamp, flavor Flavor) jsonValue {
	millis := clampMillis(int64(ts))
	if flavor == Readable {
		return map[string]any{
			"unix_millis": json.Number(strconv.FormatInt(millis, 10)),
			"formatted":   time.UnixMilli(millis).UTC().Format("2006-01-02T15:04:05.000Z"),
		}
	}
	return json.Number(strconv.FormatInt(millis, 10))
}

func timestampFromJSON(j jsonValue) (Timestamp, error) {
	switch v := j.(type) {
	case map[string]any:
		raw, ok := v["unix_millis"]
		if !ok {
			return 0, fmt.Errorf("%w: timestamp object missing unix_millis", ErrInvalidArgument)
		}
		return timestampFromJSON(raw)
	case nil:
		return 0, nil
	default:
		n, err := int64FromJSON(j)
		if err != nil {
			return 0, err
		}
		return Timestamp(clampMillis(n)), nil
	}
}

// --- anySerializer implementations ---

type boolSerializer struct{}

func (boolSerializer) encodeAny(e *encoder, v any)   { encodeBool(e, v.(bool)) }
func (boolSerializer) decodeAny(d *decodeBuffer, _ bool) (any, error) {
	return decodeBool(d)
}
func (boolSerializer) toJSONAny(v any, _ Flavor) jsonValue { return boolToJSON(v.(bool)) }
func (boolSerializer) fromJSONAny(j jsonValue, _ bool) (any, error) {
	return boolFromJSON(j)
}
func (boolSerializer) isDefaultAny(v any) bool { return !v.(bool) }
func (boolSerializer) typeDescriptor() *descriptor.Type {
	return descriptor.NewPrimitive(descriptor.Bool)
}

type int32Serializer struct{}

func (int32Serializer) encodeAny(e *encoder, v any) { encodeInt32(e, v.(int32)) }
func (int32Serializer) decodeAny(d *decodeBuffer, _ bool) (any, error) {
	return decodeInt32(d)
}
func (int32Serializer) toJSONAny(v any, _ Flavor) jsonValue { return int32ToJSON(v.(int32)) }
func (int32Serializer) fromJSONAny(j jsonValue, _ bool) (any, error) {
	return int32FromJSON(j)
}
func (int32Serializer) isDefaultAny(v any) bool { return v.(int32) == 0 }
func (int32Serializer) typeDescriptor() *descriptor.Type {
	return descriptor.NewPrimitive(descriptor.Int32)
}

type int64Serializer struct{}

func (int64Serializer) encodeAny(e *encoder, v any) { encodeInt64(e, v.(int64)) }
func (int64Serializer) decodeAny(d *decodeBuffer, _ bool) (any, error) {
	return decodeInt64(d)
}
func (int64Serializer) toJSONAny(v any, _ Flavor) jsonValue { return int64ToJSON(v.(int64)) }
func (int64Serializer) fromJSONAny(j jsonValue, _ bool) (any, error) {
	return int64FromJSON(j)
}
func (int64Serializer) isDefaultAny(v any) bool { return v.(int64) == 0 }
func (int64Serializer) typeDescriptor() *descriptor.Type {
	return descriptor.NewPrimitive(descriptor.Int64)
}

type uint64Serializer struct{}

func (uint64Serializer) encodeAny(e *encoder, v any) { encodeUint64Value(e, v.(uint64)) }
func (uint64Serializer) decodeAny(d *decodeBuffer, _ bool) (any, error) {
	return decodeUint64Value(d)
}
func (uint64Serializer) toJSONAny(v any, _ Flavor) jsonValue { return uint64ToJSON(v.(uint64)) }
func (uint64Serializer) fromJSONAny(j jsonValue, _ bool) (any, error) {
	return uint64FromJSON(j)
}
func (uint64Serializer) isDefaultAny(v any) bool { return v.(uint64) == 0 }
func (uint64Serializer) typeDescriptor() *descriptor.Type {
	return descriptor.NewPrimitive(descriptor.Uint64)
}

type float32Serializer struct{}

func (float32Serializer) encodeAny(e *encoder, v any) { encodeFloat32(e, v.(float32)) }
func (float32Serializer) decodeAny(d *decodeBuffer, _ bool) (any, error) {
	return decodeFloat32(d)
}
func (float32Serializer) toJSONAny(v any, _ Flavor) jsonValue { return float32ToJSON(v.(float32)) }
func (float32Serializer) fromJSONAny(j jsonValue, _ bool) (any, error) {
	return float32FromJSON(j)
}
func (float32Serializer) isDefaultAny(v any) bool { return v.(float32) == 0 }
func (float32Serializer) typeDescriptor() *descriptor.Type {
	return descriptor.NewPrimitive(descriptor.Float32)
}

type float64Serializer struct{}

func (float64Serializer) encodeAny(e *encoder, v any) { encodeFloat64(e, v.(float64)) }
func (float64Serializer) decodeAny(d *decodeBuffer, _ bool) (any, error) {
	return decodeFloat64(d)
}
func (float64Serializer) toJSONAny(v any, _ Flavor) jsonValue { return float64ToJSON(v.(float64)) }
func (float64Serializer) fromJSONAny(j jsonValue, _ bool) (any, error) {
	return float64FromJSON(j)
}
func (float64Serializer) isDefaultAny(v any) bool { return v.(float64) == 0 }
func (float64Serializer) typeDescriptor() *descriptor.Type {
	return descriptor.NewPrimitive(descriptor.Float64)
}

type stringSerializer struct{}

func (stringSerializer) encodeAny(e *encoder, v any) { encodeString(e, v.(string)) }
func (stringSerializer) decodeAny(d *decodeBuffer, _ bool) (any, error) {
	return decodeString(d)
}
func (stringSerializer) toJSONAny(v any, _ Flavor) jsonValue { return stringToJSON(v.(string)) }
func (stringSerializer) fromJSONAny(j jsonValue, _ bool) (any, error) {
	return stringFromJSON(j)
}
func (stringSerializer) isDefaultAny(v any) bool { return v.(string) == "" }
func (stringSerializer) typeDescriptor() *descriptor.Type {
	return descriptor.NewPrimitive(descriptor.String)
}

type bytesSerializer struct{}

func (bytesSerializer) encodeAny(e *encoder, v any) { encodeBytes(e, v.([]byte)) }
func (bytesSerializer) decodeAny(d *decodeBuffer, _ bool) (any, error) {
	return decodeBytes(d)
}
func (bytesSerializer) toJSONAny(v any, flavor Flavor) jsonValue {
	return bytesToJSON(v.([]byte), flavor)
}
func (bytesSerializer) fromJSONAny(j jsonValue, _ bool) (any, error) {
	return bytesFromJSON(j)
}
func (bytesSerializer) isDefaultAny(v any) bool { return len(v.([]byte)) == 0 }
func (bytesSerializer) typeDescriptor() *descriptor.Type {
	return descriptor.NewPrimitive(descriptor.Bytes)
}

type timestampSerializer struct{}

func (timestampSerializer) encodeAny(e *encoder, v any) { encodeTimestamp(e, v.(Timestamp)) }
func (timestampSerializer) decodeAny(d *decodeBuffer, _ bool) (any, error) {
	return decodeTimestamp(d)
}
func (timestampSerializer) toJSONAny(v any, flavor Flavor) jsonValue {
	return timestampToJSON(v.(Timestamp), flavor)
}
func (timestampSerializer) fromJSONAny(j jsonValue, _ bool) (any, error) {
	return timestampFromJSON(j)
}
func (timestampSerializer) isDefaultAny(v any) bool { return v.(Timestamp) == 0 }
func (timestampSerializer) typeDescriptor() *descriptor.Type {
	return descriptor.NewPrimitive(descriptor.Timestamp)
}

// Shared singleton instances: primitive serializers carry no per-call
// state, so every caller gets the same instance (spec.md §4.9).
var (
	boolSerializerInstance      anySerializer = boolSerializer{}
	int32SerializerInstance     anySerializer = int32Serializer{}
	int64SerializerInstance     anySerializer = int64Serializer{}
	uint64SerializerInstance    anySerializer = uint64Serializer{}
	float32SerializerInstance   anySerializer = float32Serializer{}
	float64SerializerInstance   anySerializer = float64Serializer{}
	stringSerializerInstance    anySerializer = stringSerializer{}
	bytesSerializerInstance     anySerializer = bytesSerializer{}
	timestampSerializerInstance anySerializer = timestampSerializer{}
)

// NewBoolSerializer returns the shared Serializer for bool.
func NewBoolSerializer() Serializer[bool] { return Serializer[bool]{raw: boolSerializerInstance} }

// NewInt32Serializer returns the shared Serializer for int32.
func NewInt32Serializer() Serializer[int32] { return Serializer[int32]{raw: int32SerializerInstance} }

// NewInt64Serializer returns the shared Serializer for int64.
func NewInt64Serializer() Serializer[int64] { return Serializer[int64]{raw: int64SerializerInstance} }

// NewUint64Serializer returns the shared Serializer for uint64.
func NewUint64Serializer() Serializer[uint64] {
	return Serializer[uint64]{raw: uint64SerializerInstance}
}

// NewFloat32Serializer returns the shared Serializer for float32.
func NewFloat32Serializer() Serializer[float32] {
	return Serializer[float32]{raw: float32SerializerInstance}
}

// NewFloat64Serializer returns the shared Serializer for float64.
func NewFloat64Serializer() Serializer[float64] {
	return Serializer[float64]{raw: float64SerializerInstance}
}

// NewStringSerializer returns the shared Serializer for string.
func NewStringSerializer() Serializer[string] {
	return Serializer[string]{raw: stringSerializerInstance}
}

// NewBytesSerializer returns the shared Serializer for []byte.
func NewBytesSerializer() Serializer[[]byte] {
	return Serializer[[]byte]{raw: bytesSerializerInstance}
}

// NewTimestampSerializer returns the shared Serializer for Timestamp.
func NewTimestampSerializer() Serializer[Timestamp] {
	return Serializer[Timestamp]{raw: timestampSerializerInstance}
}

func (boolSerializer) transformAny(v any, t Transformer) any { return t.TransformBool(v.(bool)) }
func (int32Serializer) transformAny(v any, t Transformer) any { return t.TransformInt32(v.(int32)) }
func (int64Serializer) transformAny(v any, t Transformer) any { return t.TransformInt64(v.(int64)) }
func (uint64Serializer) transformAny(v any, t Transformer) any { return t.TransformUint64(v.(uint64)) }
func (float32Serializer) transformAny(v any, t Transformer) any { return t.TransformFloat32(v.(float32)) }
func (float64Serializer) transformAny(v any, t Transformer) any { return t.TransformFloat64(v.(float64)) }
func (stringSerializer) transformAny(v any, t Transformer) any { return t.TransformString(v.(string)) }
func (bytesSerializer) transformAny(v any, t Transformer) any { return t.TransformBytes(v.([]byte)) }
func (timestampSerializer) transformAny(v any, t Transformer) any { return t.TransformTimestamp(v.(Timestamp)) }
