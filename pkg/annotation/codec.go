package annotation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const recordIndent = "    "

var (
	// ErrNotObject is returned when a record is not a JSON object.
	ErrNotObject = errors.New("annotation: record is not a JSON object")
	// ErrBadIndex is returned when a record key is not a non-negative decimal integer.
	ErrBadIndex = errors.New("annotation: frame index is not a non-negative integer")
	// ErrBadPoint is returned when a record value is not a two-element integer array.
	ErrBadPoint = errors.New("annotation: point is not an [x, y] integer pair")
	// ErrDuplicateIndex is returned when two keys name the same frame ("3" and "03").
	ErrDuplicateIndex = errors.New("annotation: duplicate frame index")
)

// SerializationError reports a malformed annotation record.
type SerializationError struct {
	Path string // Record path, empty when decoding raw bytes
	Key  string // Offending key, empty for document-level problems
	Err  error
}

func (e *SerializationError) Error() string {
	where := "annotation record"
	if e.Path != "" {
		where = e.Path
	}
	if e.Key != "" {
		return fmt.Sprintf("%s: key %q: %v", where, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Encode serializes m as a JSON object keyed by decimal frame index in
// ascending numeric order, each value an [x, y] array, indented four spaces.
func Encode(m Map) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, idx := range m.Indices() {
		if idx < 0 {
			return nil, &SerializationError{Key: strconv.Itoa(idx), Err: ErrBadIndex}
		}
		if i > 0 {
			compact.WriteByte(',')
		}
		p := m[idx]
		fmt.Fprintf(&compact, `"%d":[%d,%d]`, idx, p.X, p.Y)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", recordIndent); err != nil {
		return nil, fmt.Errorf("indent record: %w", err)
	}
	return out.Bytes(), nil
}

// Decode parses a record produced by Encode (or by any tool writing the same
// shape). Every key must be a non-negative decimal integer and every value an
// [x, y] pair of integers.
func Decode(data []byte) (Map, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, &SerializationError{Err: fmt.Errorf("%w: %v", ErrNotObject, err)}
	}
	if raw == nil {
		return nil, &SerializationError{Err: ErrNotObject}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &SerializationError{Err: fmt.Errorf("%w: trailing data", ErrNotObject)}
	}

	m := make(Map, len(raw))
	for key, value := range raw {
		idx, err := parseIndex(key)
		if err != nil {
			return nil, &SerializationError{Key: key, Err: err}
		}
		if _, dup := m[idx]; dup {
			return nil, &SerializationError{Key: key, Err: ErrDuplicateIndex}
		}
		p, err := parsePoint(value)
		if err != nil {
			return nil, &SerializationError{Key: key, Err: err}
		}
		m[idx] = p
	}
	return m, nil
}

func parseIndex(key string) (int, error) {
	if key == "" {
		return 0, ErrBadIndex
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, ErrBadIndex
		}
	}
	idx, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadIndex, err)
	}
	return idx, nil
}

func parsePoint(value interface{}) (Point, error) {
	pair, ok := value.([]interface{})
	if !ok || len(pair) != 2 {
		return Point{}, ErrBadPoint
	}
	var coords [2]int
	for i, v := range pair {
		n, ok := v.(json.Number)
		if !ok {
			return Point{}, ErrBadPoint
		}
		c, err := strconv.Atoi(n.String())
		if err != nil {
			return Point{}, ErrBadPoint
		}
		coords[i] = c
	}
	return Point{X: coords[0], Y: coords[1]}, nil
}
