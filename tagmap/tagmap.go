// Package tagmap models the raw, vendor-specific metadata tags attached to a
// media file as a read-only mapping from tag name to a typed value.
//
// An absent key always means "unknown", never false or zero. Keys are the
// exact tag names produced by the extractor (exiftool naming) and are not
// case-normalized here.
package tagmap

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindInt
	KindFloat
	KindBool
	KindCoord
	KindBlob
)

// Value is one raw tag value. The variant set is closed: extractors
// pattern-match on the kind they expect and treat anything else as absent.
type Value struct {
	kind     Kind
	text     string
	num      int64
	fnum     float64
	flag     bool
	lat, lon float64
	blob     []byte
}

func Text(s string) Value     { return Value{kind: KindText, text: s} }
func Int(n int64) Value       { return Value{kind: KindInt, num: n} }
func Float(f float64) Value   { return Value{kind: KindFloat, fnum: f} }
func Bool(b bool) Value       { return Value{kind: KindBool, flag: b} }
func Blob(b []byte) Value     { return Value{kind: KindBlob, blob: b} }
func Coord(lat, lon float64) Value {
	return Value{kind: KindCoord, lat: lat, lon: lon}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.num, true
	case KindFloat:
		if v.fnum == float64(int64(v.fnum)) {
			return int64(v.fnum), true
		}
	}
	return 0, false
}

func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.num), true
	case KindFloat:
		return v.fnum, true
	}
	return 0, false
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.flag, true
}

func (v Value) Coord() (lat, lon float64, ok bool) {
	if v.kind != KindCoord {
		return 0, 0, false
	}
	return v.lat, v.lon, true
}

func (v Value) Blob() ([]byte, bool) {
	if v.kind != KindBlob {
		return nil, false
	}
	return v.blob, true
}

// Truthy reports whether the value reads as an affirmative vendor marker:
// a true boolean, a nonzero number, or one of the usual textual spellings.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.flag
	case KindInt:
		return v.num != 0
	case KindFloat:
		return v.fnum != 0
	case KindText:
		switch strings.ToLower(strings.TrimSpace(v.text)) {
		case "1", "true", "yes", "on":
			return true
		}
	}
	return false
}

// Mapping is the read-only tag-name -> value view this module operates on.
type Mapping map[string]Value

func (m Mapping) Has(key string) bool {
	_, ok := m[key]
	return ok
}

func (m Mapping) Text(key string) (string, bool) {
	return m[key].Text()
}

func (m Mapping) Int(key string) (int64, bool) {
	return m[key].Int()
}

func (m Mapping) Float(key string) (float64, bool) {
	return m[key].Float()
}

func (m Mapping) Truthy(key string) bool {
	return m[key].Truthy()
}

// FromJSON builds a Mapping from exiftool JSON output. Both a single object
// and the top-level array emitted by `exiftool -j` are accepted; for an array
// the first element is used. Nested objects and arrays are skipped: grouped
// output should be flattened by the extractor before it reaches this layer.
func FromJSON(data []byte) (Mapping, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode tag JSON: %w", err)
	}
	if arr, ok := raw.([]any); ok {
		if len(arr) == 0 {
			return Mapping{}, nil
		}
		raw = arr[0]
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("tag JSON is not an object")
	}

	m := make(Mapping, len(obj))
	for key, val := range obj {
		switch tv := val.(type) {
		case string:
			m[key] = Text(tv)
		case bool:
			m[key] = Bool(tv)
		case json.Number:
			if n, err := tv.Int64(); err == nil {
				m[key] = Int(n)
			} else if f, err := tv.Float64(); err == nil {
				m[key] = Float(f)
			}
		}
	}
	return m, nil
}
