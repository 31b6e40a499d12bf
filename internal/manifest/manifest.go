// Package manifest reads, merges and writes package.json files.
//
// A Manifest keeps the document as raw JSON rather than a Go map, so key
// order and the exact text of untouched values survive a round-trip. Reads go
// through gjson and writes through sjson: setting an existing key replaces its
// value in place, setting a new key appends it to the end of the object.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Manifest is a parsed package.json whose top-level value is an object.
type Manifest struct {
	raw []byte
}

// Block is a top-level key and the literal JSON value merged under it.
type Block struct {
	Key   string
	Value []byte
}

// Parse validates text as a JSON object.
func Parse(text []byte) (*Manifest, error) {
	if !gjson.ValidBytes(text) {
		return nil, &ParseError{Err: syntaxError(text)}
	}
	res := gjson.ParseBytes(text)
	if !res.IsObject() {
		return nil, &ParseError{Err: fmt.Errorf("top-level value is %s, want an object", kindOf(res))}
	}
	return &Manifest{raw: bytes.Clone(text)}, nil
}

// Keys returns the top-level keys in document order.
func (m *Manifest) Keys() []string {
	var keys []string
	gjson.ParseBytes(m.raw).ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// Get returns the top-level value stored under key. Keys are matched
// literally, so names containing dots or wildcards need no escaping.
func (m *Manifest) Get(key string) (gjson.Result, bool) {
	var found gjson.Result
	ok := false
	gjson.ParseBytes(m.raw).ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

// Bytes returns a copy of the document as currently held.
func (m *Manifest) Bytes() []byte {
	return bytes.Clone(m.raw)
}

// Merge returns a copy of m with every block's key set to its value.
// This is a shallow overwrite: an existing value is replaced entirely, never
// combined with the new one. Existing keys keep their position and new keys
// are appended in block order. When the document repeats a key, the first
// occurrence takes the new value and the later ones are removed, so no
// reader can pick up a stale duplicate. m itself is left unchanged.
func Merge(m *Manifest, blocks ...Block) (*Manifest, error) {
	out := bytes.Clone(m.raw)
	for _, b := range blocks {
		if b.Key == "" {
			return nil, errors.New("merge: empty key")
		}
		if !gjson.ValidBytes(b.Value) {
			return nil, fmt.Errorf("merge: value for %q is not valid JSON", b.Key)
		}

		var err error
		out, err = sjson.SetRawBytes(out, escapePath(b.Key), b.Value)
		if err != nil {
			return nil, fmt.Errorf("merge %q: %w", b.Key, err)
		}
		out = dropLaterDuplicates(out, b.Key)
	}
	return &Manifest{raw: out}, nil
}

// dropLaterDuplicates rebuilds the top-level object keeping only the first
// member named key. The document is returned as-is when key appears once.
func dropLaterDuplicates(raw []byte, key string) []byte {
	doc := gjson.ParseBytes(raw)

	count := 0
	doc.ForEach(func(k, _ gjson.Result) bool {
		if k.String() == key {
			count++
		}
		return true
	})
	if count < 2 {
		return raw
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	seen, first := false, true
	doc.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			if seen {
				return true
			}
			seen = true
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(k.Raw)
		buf.WriteByte(':')
		buf.WriteString(v.Raw)
		return true
	})
	buf.WriteByte('}')
	return buf.Bytes()
}

// Serialize renders m with two-space indentation in document key order,
// followed by a newline. String and number literals are copied verbatim.
func Serialize(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(m.raw), "", "  "); err != nil {
		return nil, fmt.Errorf("serialize manifest: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// pathSpecial lists the characters sjson gives meaning to in a path.
const pathSpecial = `\.*?|#@:!=<>%`

// escapePath turns a literal key into an sjson path naming exactly that
// top-level key.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		if strings.ContainsRune(pathSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// syntaxError recovers a positioned error message for invalid JSON; gjson
// only reports validity.
func syntaxError(text []byte) error {
	if len(bytes.TrimSpace(text)) == 0 {
		return errors.New("empty document")
	}
	var v any
	if err := json.Unmarshal(text, &v); err != nil {
		return err
	}
	return errors.New("malformed JSON")
}

func kindOf(res gjson.Result) string {
	switch {
	case res.IsArray():
		return "an array"
	case res.Type == gjson.String:
		return "a string"
	case res.Type == gjson.Number:
		return "a number"
	case res.Type == gjson.True, res.Type == gjson.False:
		return "a boolean"
	default:
		return "null"
	}
}
