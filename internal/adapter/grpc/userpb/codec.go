package userpb

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToStruct converts a JSON-tagged Go value into a Struct.
func ToStruct(v any) (*structpb.Struct, error) {
	var m map[string]any
	if err := roundTrip(v, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// ToList converts a JSON-tagged Go slice into a ListValue.
func ToList(v any) (*structpb.ListValue, error) {
	l := []any{}
	if err := roundTrip(v, &l); err != nil {
		return nil, err
	}
	return structpb.NewList(l)
}

// FromStruct decodes s into the JSON-tagged value pointed to by out.
func FromStruct(s *structpb.Struct, out any) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal struct: %w", err)
	}
	return json.Unmarshal(data, out)
}

// FromList decodes l into the JSON-tagged slice pointed to by out.
func FromList(l *structpb.ListValue, out any) error {
	data, err := protojson.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal list: %w", err)
	}
	return json.Unmarshal(data, out)
}

func roundTrip(in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
