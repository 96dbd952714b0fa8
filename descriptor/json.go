// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package descriptor

import (
	"encoding/json"
	"fmt"
)

// AsJSON renders t as the self-describing document
// {"type": <type_signature>, "records": [<record_def>, ...]}.
// Record definitions are emitted once each, deduped by *Record identity,
// in breadth-first order starting from the records t's own signature
// references.
func AsJSON(t *Type) any {
	emitted := map[*Record]bool{}
	var order []map[string]any
	var queue []*Record

	enqueue := func(r *Record) {
		if !emitted[r] {
			emitted[r] = true
			queue = append(queue, r)
		}
	}

	sig := typeSignature(t, enqueue)

	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		order = append(order, recordDef(r, enqueue))
	}

	records := make([]any, len(order))
	for i, r := range order {
		records[i] = r
	}
	return map[string]any{
		"type":    sig,
		"records": records,
	}
}

// AsJSONCode renders AsJSON(t) as compact JSON text.
func AsJSONCode(t *Type) ([]byte, error) {
	return json.Marshal(AsJSON(t))
}

func typeSignature(t *Type, enqueue func(*Record)) map[string]any {
	switch t.Kind {
	case KindPrimitive:
		return map[string]any{"kind": "primitive", "value": t.Primitive.Name()}
	case KindOptional:
		return map[string]any{"kind": "optional", "value": typeSignature(t.Optional, enqueue)}
	case KindArray:
		value := map[string]any{"item": typeSignature(t.Item, enqueue)}
		if t.KeyProperty != "" {
			value["key_extractor"] = t.KeyProperty
		}
		return map[string]any{"kind": "array", "value": value}
	case KindStruct, KindEnum:
		enqueue(t.Record)
		return map[string]any{"kind": "record", "value": t.Record.RecordID}
	default:
		panic(fmt.Sprintf("descriptor: unhandled kind %d", t.Kind))
	}
}

func recordDef(r *Record, enqueue func(*Record)) map[string]any {
	out := map[string]any{"id": r.RecordID}
	if r.Doc != "" {
		out["doc"] = r.Doc
	}
	if len(r.RemovedNumbers) > 0 {
		nums := make([]any, len(r.RemovedNumbers))
		for i, n := range r.RemovedNumbers {
			nums[i] = float64(n)
		}
		out["removed_numbers"] = nums
	}
	switch r.Kind {
	case StructRecord:
		out["kind"] = "struct"
		fields := make([]any, len(r.Fields))
		for i, f := range r.Fields {
			fd := map[string]any{
				"name":   f.Name,
				"number": float64(f.Number),
				"type":   typeSignature(f.Type, enqueue),
			}
			if f.Doc != "" {
				fd["doc"] = f.Doc
			}
			fields[i] = fd
		}
		out["fields"] = fields
	case EnumRecord:
		out["kind"] = "enum"
		variants := make([]any, len(r.Variants))
		for i, v := range r.Variants {
			vd := map[string]any{
				"name":   v.Name,
				"number": float64(v.Number),
			}
			if v.Kind == WrapperVariant {
				vd["value_type"] = typeSignature(v.ValueType, enqueue)
			}
			if v.Doc != "" {
				vd["doc"] = v.Doc
			}
			variants[i] = vd
		}
		out["variants"] = variants
	}
	return out
}

// ParseFromJSON is the inverse of AsJSON. It first materializes an empty
// struct/enum shell for every entry in "records", installs them in a
// record-id-keyed map, then resolves field/variant types by recursive
// descent — so a record referencing itself (directly or transitively)
// resolves correctly: by the time the cycle is followed, the shell already
// exists in the map.
func ParseFromJSON(doc any) (*Type, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("descriptor: expected a JSON object at the top level")
	}
	rawRecords, _ := root["records"].([]any)
	shells := map[string]*Record{}
	rawByID := map[string]map[string]any{}

	for _, rr := range rawRecords {
		rm, ok := rr.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("descriptor: record entry is not an object")
		}
		id, _ := rm["id"].(string)
		kindStr, _ := rm["kind"].(string)
		var kind RecordKind
		switch kindStr {
		case "struct":
			kind = StructRecord
		case "enum":
			kind = EnumRecord
		default:
			return nil, fmt.Errorf("%w: record %q has kind %q", ErrUnknownKind, id, kindStr)
		}
		shells[id] = &Record{Kind: kind, RecordID: id}
		rawByID[id] = rm
	}

	for id, r := range shells {
		rm := rawByID[id]
		r.Doc, _ = rm["doc"].(string)
		if rn, ok := rm["removed_numbers"].([]any); ok {
			r.RemovedNumbers = make([]int32, len(rn))
			for i, n := range rn {
				r.RemovedNumbers[i] = int32(toFloat(n))
			}
		}
		switch r.Kind {
		case StructRecord:
			rawFields, _ := rm["fields"].([]any)
			r.Fields = make([]Field, len(rawFields))
			for i, rf := range rawFields {
				fm, _ := rf.(map[string]any)
				ft, err := parseTypeSignature(fm["type"], shells)
				if err != nil {
					return nil, err
				}
				doc, _ := fm["doc"].(string)
				name, _ := fm["name"].(string)
				r.Fields[i] = Field{
					Name:   name,
					Number: int32(toFloat(fm["number"])),
					Type:   ft,
					Doc:    doc,
				}
			}
		case EnumRecord:
			rawVariants, _ := rm["variants"].([]any)
			r.Variants = make([]Variant, len(rawVariants))
			for i, rv := range rawVariants {
				vm, _ := rv.(map[string]any)
				name, _ := vm["name"].(string)
				doc, _ := vm["doc"].(string)
				v := Variant{
					Name:   name,
					Number: int32(toFloat(vm["number"])),
					Doc:    doc,
				}
				if vt, ok := vm["value_type"]; ok {
					valueType, err := parseTypeSignature(vt, shells)
					if err != nil {
						return nil, err
					}
					v.Kind = WrapperVariant
					v.ValueType = valueType
				} else {
					v.Kind = ConstantVariant
				}
				r.Variants[i] = v
			}
		}
	}

	rootType, ok := root["type"]
	if !ok {
		return nil, fmt.Errorf("descriptor: missing top-level \"type\"")
	}
	return parseTypeSignature(rootType, shells)
}

// ParseFromJSONCode parses JSON text produced by AsJSONCode.
func ParseFromJSONCode(code []byte) (*Type, error) {
	var doc any
	if err := json.Unmarshal(code, &doc); err != nil {
		return nil, fmt.Errorf("descriptor: %w", err)
	}
	return ParseFromJSON(doc)
}

func parseTypeSignature(v any, shells map[string]*Record) (*Type, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("descriptor: expected a type-signature object")
	}
	kind, _ := m["kind"].(string)
	switch kind {
	case "primitive":
		name, _ := m["value"].(string)
		pk, ok := PrimitiveKindByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, name)
		}
		return NewPrimitive(pk), nil
	case "optional":
		inner, err := parseTypeSignature(m["value"], shells)
		if err != nil {
			return nil, err
		}
		return NewOptional(inner), nil
	case "array":
		value, _ := m["value"].(map[string]any)
		item, err := parseTypeSignature(value["item"], shells)
		if err != nil {
			return nil, err
		}
		keyProperty, _ := value["key_extractor"].(string)
		return &Type{Kind: KindArray, Item: item, KeyProperty: keyProperty}, nil
	case "record":
		id, _ := m["value"].(string)
		r, ok := shells[id]
		if !ok {
			return nil, fmt.Errorf("descriptor: type signature references unknown record %q", id)
		}
		return NewRecordType(r), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}
