package annotation

import (
	"errors"
	"testing"
)

func TestEncode_OrderAndShape(t *testing.T) {
	m := Map{
		10: {X: 5, Y: 6},
		2:  {X: 10, Y: 20},
		9:  {X: -1, Y: 0},
	}

	data, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := `{
    "2": [
        10,
        20
    ],
    "9": [
        -1,
        0
    ],
    "10": [
        5,
        6
    ]
}`
	if string(data) != want {
		t.Errorf("unexpected record:\n%s\nwant:\n%s", data, want)
	}
}

func TestEncode_Empty(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("expected {}, got %s", data)
	}
}

func TestEncode_NegativeIndex(t *testing.T) {
	_, err := Encode(Map{-1: {}})
	if !errors.Is(err, ErrBadIndex) {
		t.Errorf("expected ErrBadIndex, got %v", err)
	}
}

func TestDecode_Valid(t *testing.T) {
	data := []byte(`{"3": [10, 20], "17": [0, 5]}`)

	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := Map{3: {X: 10, Y: 20}, 17: {X: 0, Y: 5}}
	if !m.Equal(want) {
		t.Errorf("expected %v, got %v", want, m)
	}
}

func TestDecode_EncodedRecord(t *testing.T) {
	original := Map{0: {X: 1, Y: 2}, 120: {X: 640, Y: 360}}
	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !m.Equal(original) {
		t.Errorf("expected %v, got %v", original, m)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"not json", `{"3": [1, 2]`, ErrNotObject},
		{"array document", `[[1, 2]]`, ErrNotObject},
		{"null document", `null`, ErrNotObject},
		{"trailing data", `{} {}`, ErrNotObject},
		{"negative key", `{"-1": [1, 2]}`, ErrBadIndex},
		{"text key", `{"first": [1, 2]}`, ErrBadIndex},
		{"empty key", `{"": [1, 2]}`, ErrBadIndex},
		{"float coordinate", `{"1": [1.5, 2]}`, ErrBadPoint},
		{"short point", `{"1": [1]}`, ErrBadPoint},
		{"long point", `{"1": [1, 2, 3]}`, ErrBadPoint},
		{"object point", `{"1": {"x": 1, "y": 2}}`, ErrBadPoint},
		{"string coordinate", `{"1": ["1", 2]}`, ErrBadPoint},
		{"duplicate index", `{"3": [1, 2], "03": [3, 4]}`, ErrDuplicateIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			var serr *SerializationError
			if !errors.As(err, &serr) {
				t.Fatalf("expected *SerializationError, got %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDecode_EmptyObject(t *testing.T) {
	m, err := Decode([]byte("{}\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if m == nil || len(m) != 0 {
		t.Errorf("expected empty map, got %#v", m)
	}
}

func TestMap_IndicesAndClone(t *testing.T) {
	m := Map{7: {}, 1: {}, 4: {}}

	indices := m.Indices()
	want := []int{1, 4, 7}
	if len(indices) != len(want) {
		t.Fatalf("expected %v, got %v", want, indices)
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Errorf("expected %v, got %v", want, indices)
			break
		}
	}

	c := m.Clone()
	c[9] = Point{}
	if _, ok := m[9]; ok {
		t.Error("clone shares storage with the original")
	}

	var nilMap Map
	if nilMap.Clone() == nil {
		t.Error("clone of nil map should be non-nil")
	}
}
