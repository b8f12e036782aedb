package appmsg

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// TupleType tags the encoding of a tuple value.
type TupleType uint8

// Tuple value encodings, numbered as on the wire.
const (
	TypeBytes TupleType = iota
	TypeCString
	TypeUint
	TypeInt
)

func (t TupleType) String() string {
	switch t {
	case TypeBytes:
		return "bytes"
	case TypeCString:
		return "cstring"
	case TypeUint:
		return "uint"
	case TypeInt:
		return "int"
	default:
		return "type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Tuple is a single key/value pair of a dictionary.
type Tuple struct {
	Key   uint32
	Type  TupleType
	Value []byte
}

// Uint8 builds an unsigned one-byte tuple.
func Uint8(key uint32, v uint8) Tuple {
	return Tuple{Key: key, Type: TypeUint, Value: []byte{v}}
}

// Int32 builds a signed four-byte tuple.
func Int32(key uint32, v int32) Tuple {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return Tuple{Key: key, Type: TypeInt, Value: buf}
}

// CString builds a NUL-terminated string tuple.
func CString(key uint32, s string) Tuple {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return Tuple{Key: key, Type: TypeCString, Value: buf}
}

// Bytes builds a raw byte-array tuple.
func Bytes(key uint32, b []byte) Tuple {
	return Tuple{Key: key, Type: TypeBytes, Value: append([]byte(nil), b...)}
}

// Int32 reads the value as a signed integer. Unsigned values are
// zero-extended, signed values sign-extended; strings parse their leading
// integer and anything else reads as zero.
func (t Tuple) Int32() int32 {
	switch t.Type {
	case TypeInt:
		switch len(t.Value) {
		case 1:
			return int32(int8(t.Value[0]))
		case 2:
			return int32(int16(binary.LittleEndian.Uint16(t.Value)))
		case 4:
			return int32(binary.LittleEndian.Uint32(t.Value))
		}
	case TypeUint:
		switch len(t.Value) {
		case 1:
			return int32(t.Value[0])
		case 2:
			return int32(binary.LittleEndian.Uint16(t.Value))
		case 4:
			return int32(binary.LittleEndian.Uint32(t.Value))
		}
	case TypeCString:
		n, _ := strconv.ParseInt(leadingInt(t.CString()), 10, 32)
		return int32(n)
	}
	return 0
}

// CString reads the value as text up to the first NUL.
func (t Tuple) CString() string {
	if i := bytes.IndexByte(t.Value, 0); i >= 0 {
		return string(t.Value[:i])
	}
	return string(t.Value)
}

func leadingInt(s string) string {
	end := 0
	for end < len(s) {
		c := s[end]
		if (c == '-' || c == '+') && end == 0 {
			end++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		end++
	}
	return s[:end]
}

// Dict is an ordered dictionary of tuples. Order is the order of delivery and
// is not guaranteed to be sorted by key.
type Dict []Tuple

// Find returns the first tuple with the given key.
func (d Dict) Find(key uint32) (Tuple, bool) {
	for _, t := range d {
		if t.Key == key {
			return t, true
		}
	}
	return Tuple{}, false
}

const (
	headerSize = 1
	tupleHead  = 4 + 1 + 2
	maxTuples  = math.MaxUint8
)

// Size returns the encoded size in bytes.
func (d Dict) Size() int {
	n := headerSize
	for _, t := range d {
		n += tupleHead + len(t.Value)
	}
	return n
}

// MarshalBinary encodes the dictionary in the toolkit layout: a tuple count
// byte followed by each tuple as key (u32 LE), type (u8), length (u16 LE)
// and value.
func (d Dict) MarshalBinary() ([]byte, error) {
	if len(d) > maxTuples {
		return nil, fmt.Errorf("%w: %d tuples", ErrTooLarge, len(d))
	}
	out := make([]byte, 0, d.Size())
	out = append(out, byte(len(d)))
	for _, t := range d {
		if len(t.Value) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: key %d value is %d bytes", ErrTooLarge, t.Key, len(t.Value))
		}
		out = binary.LittleEndian.AppendUint32(out, t.Key)
		out = append(out, byte(t.Type))
		out = binary.LittleEndian.AppendUint16(out, uint16(len(t.Value)))
		out = append(out, t.Value...)
	}
	return out, nil
}

// UnmarshalBinary decodes the toolkit layout written by MarshalBinary.
func (d *Dict) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	count := int(data[0])
	rest := data[headerSize:]
	out := make(Dict, 0, count)
	for i := 0; i < count; i++ {
		if len(rest) < tupleHead {
			return fmt.Errorf("%w: tuple %d header truncated", ErrMalformed, i)
		}
		key := binary.LittleEndian.Uint32(rest)
		typ := TupleType(rest[4])
		n := int(binary.LittleEndian.Uint16(rest[5:]))
		rest = rest[tupleHead:]
		if len(rest) < n {
			return fmt.Errorf("%w: tuple %d value truncated", ErrMalformed, i)
		}
		out = append(out, Tuple{Key: key, Type: typ, Value: append([]byte(nil), rest[:n]...)})
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(rest))
	}
	*d = out
	return nil
}

// MarshalJSON writes the dictionary as an object keyed by decimal tuple keys,
// preserving tuple order. Integers become numbers, strings become strings and
// byte arrays become arrays of numbers.
func (d Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.FormatUint(uint64(t.Key), 10)))
		buf.WriteByte(':')
		var v any
		switch t.Type {
		case TypeCString:
			v = t.CString()
		case TypeInt:
			v = t.Int32()
		case TypeUint:
			v = uint32(t.Int32())
		default:
			ints := make([]int, len(t.Value))
			for j, b := range t.Value {
				ints[j] = int(b)
			}
			v = ints
		}
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(enc)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by decimal tuple keys in document
// order. Numbers become int32 tuples with any fraction truncated, strings
// become cstrings, booleans become uint8 and arrays of numbers become byte
// arrays.
func (d *Dict) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: want object", ErrMalformed)
	}
	var out Dict
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		name, _ := tok.(string)
		key, err := strconv.ParseUint(name, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: key %q is not a tuple key", ErrMalformed, name)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: key %d: %v", ErrMalformed, key, err)
		}
		t, err := tupleFromJSON(uint32(key), raw)
		if err != nil {
			return err
		}
		out = append(out, t)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	*d = out
	return nil
}

func tupleFromJSON(key uint32, raw json.RawMessage) (Tuple, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return Tuple{}, fmt.Errorf("%w: key %d: %v", ErrMalformed, key, err)
	}
	switch val := v.(type) {
	case string:
		return CString(key, val), nil
	case bool:
		if val {
			return Uint8(key, 1), nil
		}
		return Uint8(key, 0), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil || f < math.MinInt32 || f > math.MaxInt32 {
			return Tuple{}, fmt.Errorf("%w: key %d: number %s out of range", ErrMalformed, key, val)
		}
		return Int32(key, int32(f)), nil
	case []any:
		b := make([]byte, len(val))
		for i, e := range val {
			n, ok := e.(json.Number)
			if !ok {
				return Tuple{}, fmt.Errorf("%w: key %d: byte array holds %T", ErrMalformed, key, e)
			}
			x, err := n.Int64()
			if err != nil || x < 0 || x > math.MaxUint8 {
				return Tuple{}, fmt.Errorf("%w: key %d: byte %s out of range", ErrMalformed, key, n)
			}
			b[i] = byte(x)
		}
		return Tuple{Key: key, Type: TypeBytes, Value: b}, nil
	}
	return Tuple{}, fmt.Errorf("%w: key %d: unsupported value %T", ErrMalformed, key, v)
}

// Errors reported by dictionary encoding and the message channels.
var (
	ErrMalformed = errors.New("malformed dictionary")
	ErrTooLarge  = errors.New("dictionary too large")
	ErrBusy      = errors.New("outbox busy")
	ErrInboxFull = errors.New("inbox full")
	ErrNoLink    = errors.New("no companion link")
)
