package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/valyala/fastjson"
)

var (
	ErrNotAnArray  = errors.New("input document must be a JSON array of app records")
	ErrNotAnObject = errors.New("app record must be a JSON object")
)

// DecodeRecords parses a JSON array of app records. Elements that are not
// objects decode to an empty record so that every input position still
// yields one record.
func DecodeRecords(data []byte) ([]RawAppRecord, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}
	if v.Type() != fastjson.TypeArray {
		return nil, ErrNotAnArray
	}
	items, _ := v.Array() //nolint:errcheck
	records := make([]RawAppRecord, 0, len(items))
	for _, item := range items {
		if item.Type() != fastjson.TypeObject {
			records = append(records, RawAppRecord{})
			continue
		}
		records = append(records, recordFromValue(item))
	}
	return records, nil
}

func DecodeRecord(data []byte) (RawAppRecord, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return RawAppRecord{}, fmt.Errorf("failed to parse record: %w", err)
	}
	if v.Type() != fastjson.TypeObject {
		return RawAppRecord{}, ErrNotAnObject
	}
	return recordFromValue(v), nil
}

// RecordFromMap builds a record from an in-memory mapping such as one produced
// by a JSON decoder or handed over by another component.
func RecordFromMap(m map[string]any) (RawAppRecord, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return RawAppRecord{}, fmt.Errorf("failed to encode record: %w", err)
	}
	return DecodeRecord(data)
}

func recordFromValue(v *fastjson.Value) RawAppRecord {
	rec := RawAppRecord{
		AppID:         stringField(v, "appId"),
		Title:         stringField(v, "title"),
		Description:   stringField(v, "description"),
		Category:      stringField(v, "category"),
		Price:         numberField(v, "price"),
		ContentRating: stringField(v, "contentRating"),
		Developer:     objectField(v, "developer"),
		Permissions:   permissionsField(v.Get("permissions")),
	}
	if reviews := v.Get("reviews"); reviews != nil && reviews.Type() == fastjson.TypeArray {
		rec.Reviews = reviewsFrom(reviews)
	} else if comments := v.Get("comments"); comments != nil && comments.Type() == fastjson.TypeArray {
		rec.Reviews = reviewsFrom(comments)
	}
	return rec
}

func stringField(v *fastjson.Value, key string) *string {
	f := v.Get(key)
	if f == nil || f.Type() != fastjson.TypeString {
		return nil
	}
	b, err := f.StringBytes()
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

func numberField(v *fastjson.Value, key string) *float64 {
	f := v.Get(key)
	if f == nil || f.Type() != fastjson.TypeNumber {
		return nil
	}
	n, err := f.Float64()
	if err != nil {
		return nil
	}
	return &n
}

func objectField(v *fastjson.Value, key string) map[string]any {
	f := v.Get(key)
	if f == nil || f.Type() != fastjson.TypeObject {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(f.MarshalTo(nil), &out); err != nil {
		return nil
	}
	return out
}

func permissionsField(f *fastjson.Value) Permissions {
	if f == nil {
		return Permissions{}
	}
	switch f.Type() {
	case fastjson.TypeArray:
		list := stringsFrom(f)
		return Permissions{List: list, Count: len(list)}
	case fastjson.TypeObject:
		perms := Permissions{Wrapped: true}
		if list := f.Get("list"); list != nil && list.Type() == fastjson.TypeArray {
			perms.List = stringsFrom(list)
		}
		if count := f.Get("count"); count != nil && count.Type() == fastjson.TypeNumber {
			perms.Count = count.GetInt()
		} else {
			perms.Count = len(perms.List)
		}
		return perms
	default:
		return Permissions{}
	}
}

func stringsFrom(arr *fastjson.Value) []string {
	items, _ := arr.Array() //nolint:errcheck
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type() != fastjson.TypeString {
			continue
		}
		b, err := item.StringBytes()
		if err != nil {
			continue
		}
		out = append(out, string(b))
	}
	return out
}

func reviewsFrom(arr *fastjson.Value) []Review {
	items, _ := arr.Array() //nolint:errcheck
	out := make([]Review, 0, len(items))
	for _, item := range items {
		var r Review
		if item.Type() == fastjson.TypeObject {
			if n := numberField(item, "score"); n != nil {
				r.Score = *n
			}
			if s := stringField(item, "text"); s != nil {
				r.Text = *s
			}
			if s := stringField(item, "at"); s != nil {
				r.At = *s
			}
		}
		out = append(out, r)
	}
	return out
}
