package toon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jpfluger/toonengine/aerr"
)

// DecodeJSON parses data into an order-preserving Value tree. It uses
// json.Decoder's token stream rather than map[string]interface{} because
// Go's map type discards key order, and TOON's tabular/inline array
// selection depends on that order being stable.
func DecodeJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, aerr.NewError(aerr.KindJsonParse, err)
	}
	v, err := decodeJSONToken(dec, tok)
	if err != nil {
		return nil, aerr.NewError(aerr.KindJsonParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, aerr.New(aerr.KindJsonParse, "trailing data after JSON value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case json.Number:
		s := t.String()
		if strings.ContainsAny(s, ".eE") {
			f, err := t.Float64()
			if err != nil {
				return nil, err
			}
			return NewNumber(f), nil
		}
		n, err := t.Int64()
		if err != nil {
			f, ferr := t.Float64()
			if ferr != nil {
				return nil, err
			}
			return NewNumber(f), nil
		}
		return NewInt(n), nil
	case string:
		return NewString(t), nil
	case json.Delim:
		switch t {
		case '{':
			m := NewOrderedMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected string object key, got %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return &Value{Kind: KindMapping, Mapping: m}, nil
		case '[':
			var items []*Value
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return &Value{Kind: KindSequence, Sequence: items}, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}
