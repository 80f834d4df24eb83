package loader

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// companionJSON backs `use "json"`: json.parse bridges JSON text into
// MyLang Dict/Array/scalar values via gjson; json.stringify does the
// reverse, composing the JSON text back up with sjson.SetRaw at every
// object/array level (only scalar leaves get their own small literal
// encoder -- gjson/sjson have no "encode this Go value as a JSON literal"
// entry point of their own, so the leaf case is this package's to write).
// Grounded in SPEC_FULL.md's domain-stack section, which calls out exactly
// this pairing as the realistic stdlib companion-module example per
// spec.md §4.5.
func companionJSON(myExport *value.Dict, ev core.Evaluator) (core.Value, error) {
	d := value.NewDict()
	if myExport != nil {
		keys, vals := myExport.Keys(), myExport.Values()
		for i, k := range keys {
			d.Set(k, vals[i])
		}
	}
	d.Set(value.String("parse"), companionFn("json.parse", nativeJSONParse))
	d.Set(value.String("stringify"), companionFn("json.stringify", nativeJSONStringify))
	return d, nil
}

func nativeJSONParse(args *value.Args, ev core.Evaluator) (core.Value, error) {
	s, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "json.parse", "1", "0")
	}
	text, ok := s.(value.String)
	if !ok {
		return nil, verror.Type(verror.IDTypeMismatch, "json.parse", "String", s.Kind().String())
	}
	if !gjson.Valid(string(text)) {
		return nil, verror.Type(verror.IDInvalidOperation, "json.parse", "malformed JSON")
	}
	return gjsonToValue(gjson.Parse(string(text))), nil
}

func gjsonToValue(r gjson.Result) core.Value {
	switch r.Type {
	case gjson.Null:
		return value.NullValue
	case gjson.True:
		return value.True
	case gjson.False:
		return value.False
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) && !strings.ContainsAny(r.Raw, ".eE") {
			return value.Int(int64(r.Num))
		}
		f, _ := value.NewFloatFromString(r.Raw)
		return f
	case gjson.String:
		return value.String(r.Str)
	default:
		if r.IsObject() {
			d := value.NewDict()
			r.ForEach(func(key, val gjson.Result) bool {
				d.Set(value.String(key.String()), gjsonToValue(val))
				return true
			})
			return d
		}
		if r.IsArray() {
			arr := value.NewArray()
			for _, el := range r.Array() {
				arr.Append(gjsonToValue(el))
			}
			return arr
		}
		return value.NullValue
	}
}

func nativeJSONStringify(args *value.Args, ev core.Evaluator) (core.Value, error) {
	v, ok := args.At(0)
	if !ok {
		return nil, verror.Arity(verror.IDArgCount, "json.stringify", "1", "0")
	}
	text, err := stringifyValue(v)
	if err != nil {
		return nil, err
	}
	return value.String(text), nil
}

func stringifyValue(v core.Value) (string, error) {
	switch t := v.(type) {
	case value.Null, value.Undefined:
		return "null", nil
	case value.Bool:
		if bool(t) {
			return "true", nil
		}
		return "false", nil
	case value.Int:
		return strconv.FormatInt(int64(t), 10), nil
	case value.Float:
		return t.Big().String(), nil
	case value.String:
		return quoteJSONString(string(t)), nil
	case *value.Dict:
		raw := "{}"
		var err error
		for i, k := range t.Keys() {
			name, ok := k.(value.String)
			if !ok {
				return "", verror.Type(verror.IDTypeMismatch, "json.stringify", "String key", k.Kind().String())
			}
			child, cerr := stringifyValue(t.Values()[i])
			if cerr != nil {
				return "", cerr
			}
			raw, err = sjson.SetRaw(raw, jsonPathKey(string(name)), child)
			if err != nil {
				return "", verror.Type(verror.IDInvalidOperation, "json.stringify", err.Error())
			}
		}
		return raw, nil
	case *value.Array:
		raw := "[]"
		var err error
		for _, el := range t.Elements() {
			child, cerr := stringifyValue(el)
			if cerr != nil {
				return "", cerr
			}
			raw, err = sjson.SetRaw(raw, "-1", child)
			if err != nil {
				return "", verror.Type(verror.IDInvalidOperation, "json.stringify", err.Error())
			}
		}
		return raw, nil
	default:
		return "", verror.Type(verror.IDTypeMismatch, "json.stringify", "Dict/Array/scalar", v.Kind().String())
	}
}

// jsonPathKey escapes a Dict key for use as an sjson path component: `.`
// and `*`/`?` are sjson path metacharacters, so a key containing any of
// them is wrapped with sjson's own colon-delimited literal-key syntax.
func jsonPathKey(key string) string {
	if strings.ContainsAny(key, ".*?") {
		return ":" + key
	}
	return key
}

func quoteJSONString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 {
				b.WriteString("\\u")
				hex := strconv.FormatInt(int64(r), 16)
				for len(hex) < 4 {
					hex = "0" + hex
				}
				b.WriteString(hex)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func companionFn(name string, f value.NativeFunc) *value.Function {
	return &value.Function{Name: name, Native: f}
}
