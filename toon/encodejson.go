package toon

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/jpfluger/toonengine/aerr"
)

// EncodeJSON renders v as JSON text, preserving mapping key order.
// encoding/json.Marshal can't be used directly on the tree since Go's map
// type would discard that order; object bodies are written by hand instead.
func EncodeJSON(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, v); err != nil {
		return nil, aerr.NewError(aerr.KindEncode, err)
	}
	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v *Value) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case KindNumber:
		buf.WriteString(strconv.FormatFloat(v.Number, 'g', -1, 64))
	case KindString:
		b, err := json.Marshal(v.Str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindMapping:
		buf.WriteByte('{')
		for i, e := range v.Mapping.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(e.Key)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeJSONValue(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.Sequence {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}
