// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package datafile

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const hexDigits = "0123456789abcdef"

// Encode re-serializes a value produced by Decode in the compact form the
// data tooling has always measured: ", " between items, ": " after keys,
// ASCII-only string escapes, and keys in their original order.
func Encode(v any) (string, error) {
	var sb strings.Builder
	if err := encodeValue(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// SerializedSize returns the length of Encode(v).
func SerializedSize(v any) (int, error) {
	s, err := Encode(v)
	if err != nil {
		return 0, err
	}
	return len(s), nil
}

func encodeValue(sb *strings.Builder, v any) error {
	switch t := v.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		if t {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case string:
		writeString(sb, t)
	case NonFinite:
		sb.WriteString(string(t))
	case json.Number:
		n, err := formatNumber(t)
		if err != nil {
			return err
		}
		sb.WriteString(n)
	case []any:
		sb.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := encodeValue(sb, item); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case *Object:
		sb.WriteByte('{')
		for i, k := range t.Keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeString(sb, k)
			sb.WriteString(": ")
			if err := encodeValue(sb, t.Values[k]); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode %T", v)
	}
	return nil
}

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			switch {
			case r >= 0x20 && r <= 0x7e:
				sb.WriteRune(r)
			case r > 0xffff:
				n := r - 0x10000
				writeEscape(sb, 0xd800|((n>>10)&0x3ff))
				writeEscape(sb, 0xdc00|(n&0x3ff))
			default:
				writeEscape(sb, r)
			}
		}
	}
	sb.WriteByte('"')
}

func writeEscape(sb *strings.Builder, r rune) {
	sb.WriteString(`\u`)
	sb.WriteByte(hexDigits[(r>>12)&0xf])
	sb.WriteByte(hexDigits[(r>>8)&0xf])
	sb.WriteByte(hexDigits[(r>>4)&0xf])
	sb.WriteByte(hexDigits[r&0xf])
}

// formatNumber renders integers exactly as written and everything else as
// the shortest round-trip binary64 representation.
func formatNumber(n json.Number) (string, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if s == "-0" {
			return "0", nil
		}
		return s, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return "", fmt.Errorf("parsing number %q: %w", s, err)
	}
	return formatFloat(f), nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	// 'e' output always ends in a signed decimal exponent, so Atoi cannot fail.
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}

	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return fixed
}
