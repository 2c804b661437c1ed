// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package datafile inspects the JSON data files the actions dashboard reads.
// It checks for their presence, decodes them strictly while keeping object key
// order, and re-serializes the decoded value to measure its size.
package datafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 is returned when a data file is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

	// ErrTrailingData is returned when a data file holds more than one JSON value.
	ErrTrailingData = errors.New("extra data after JSON value")
)

// NonFinite is a NaN, Infinity or -Infinity literal. These are not JSON, but
// the hand-maintained data files have always been read by a parser that
// accepts them.
type NonFinite string

// nonFiniteLiterals is ordered so -Infinity matches before Infinity.
var nonFiniteLiterals = []string{"-Infinity", "Infinity", "NaN"}

// Object is a decoded JSON object that remembers the order keys first appeared in.
type Object struct {
	Keys   []string
	Values map[string]any
}

// set stores v under k. A repeated key replaces the earlier value but keeps
// its original position.
func (o *Object) set(k string, v any) {
	if _, ok := o.Values[k]; !ok {
		o.Keys = append(o.Keys, k)
	}
	o.Values[k] = v
}

// Decode parses data as exactly one JSON value. Objects decode to *Object,
// arrays to []any, numbers to json.Number, NaN and the infinities to
// NonFinite, and the remaining literals to string, bool or nil.
func Decode(data []byte) (any, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}

	masked, nonFinite := maskNonFinite(data)
	dec := &decoder{
		Decoder:   json.NewDecoder(bytes.NewReader(masked)),
		nonFinite: nonFinite,
	}
	dec.UseNumber()

	v, err := dec.value()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding JSON: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
		return nil, ErrTrailingData
	}
	return v, nil
}

// maskNonFinite replaces each NaN, Infinity and -Infinity literal outside a
// string with "0" padded by spaces to the same width, so encoding/json accepts
// it and every byte offset is unchanged. The returned map is keyed by the
// offset just past each "0", which is the decoder's InputOffset after reading it.
func maskNonFinite(data []byte) ([]byte, map[int64]NonFinite) {
	var (
		out      []byte
		found    map[int64]NonFinite
		inString bool
		escaped  bool
	)
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			continue
		}
		if !atValueStart(data, i) {
			continue
		}
		for _, lit := range nonFiniteLiterals {
			if !bytes.HasPrefix(data[i:], []byte(lit)) {
				continue
			}
			if out == nil {
				out = bytes.Clone(data)
				found = make(map[int64]NonFinite)
			}
			out[i] = '0'
			for j := i + 1; j < i+len(lit); j++ {
				out[j] = ' '
			}
			found[int64(i+1)] = NonFinite(lit)
			i += len(lit) - 1
			break
		}
	}
	if out == nil {
		return data, nil
	}
	return out, found
}

// atValueStart reports whether a value may begin at data[i]. Literals glued to
// a preceding token (1NaN, -NaN) are left alone for the decoder to reject.
func atValueStart(data []byte, i int) bool {
	if i == 0 {
		return true
	}
	switch data[i-1] {
	case ' ', '\t', '\n', '\r', '[', ',', ':':
		return true
	}
	return false
}

type decoder struct {
	*json.Decoder
	nonFinite map[int64]NonFinite
}

func (d *decoder) value() (any, error) {
	tok, err := d.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return d.object()
		case '[':
			return d.array()
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		if lit, ok := d.nonFinite[d.InputOffset()]; ok {
			return lit, nil
		}
		return t, nil
	default:
		return t, nil
	}
}

func (d *decoder) object() (*Object, error) {
	obj := &Object{Values: make(map[string]any)}
	for d.More() {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not string", tok)
		}
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		obj.set(key, v)
	}
	if err := d.closeDelim('}'); err != nil {
		return nil, err
	}
	return obj, nil
}

func (d *decoder) array() ([]any, error) {
	arr := []any{}
	for d.More() {
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if err := d.closeDelim(']'); err != nil {
		return nil, err
	}
	return arr, nil
}

func (d *decoder) closeDelim(want json.Delim) error {
	tok, err := d.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
