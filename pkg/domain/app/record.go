package app

import (
	"encoding/json"
)

const (
	UnknownAppID    = "unknown"
	UnknownAppTitle = "unknown"
)

// RawAppRecord is a store listing as delivered by the scraper. Every field is
// optional; a nil pointer means the key was absent or carried the wrong type.
type RawAppRecord struct {
	AppID         *string
	Title         *string
	Description   *string
	Category      *string
	Price         *float64
	ContentRating *string
	Developer     map[string]any
	Permissions   Permissions
	Reviews       []Review
}

// Permissions accepts both a bare list and the wrapped {count, list} shape.
type Permissions struct {
	List    []string
	Count   int
	Wrapped bool
}

type Review struct {
	Score float64 `json:"score"`
	Text  string  `json:"text"`
	At    string  `json:"at,omitempty"`
}

func (r RawAppRecord) ID() string {
	if r.AppID == nil {
		return UnknownAppID
	}
	return *r.AppID
}

func (r RawAppRecord) DisplayTitle() string {
	if r.Title == nil {
		return UnknownAppTitle
	}
	return *r.Title
}

// DeveloperString returns the developer field under key when it is a non-empty string.
func (r RawAppRecord) DeveloperString(key string) (string, bool) {
	if r.Developer == nil {
		return "", false
	}
	s, ok := r.Developer[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (r RawAppRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any)
	if r.AppID != nil {
		out["appId"] = *r.AppID
	}
	if r.Title != nil {
		out["title"] = *r.Title
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.Category != nil {
		out["category"] = *r.Category
	}
	if r.Price != nil {
		out["price"] = *r.Price
	}
	if r.ContentRating != nil {
		out["contentRating"] = *r.ContentRating
	}
	if r.Developer != nil {
		out["developer"] = r.Developer
	}
	if r.Permissions.Wrapped {
		list := r.Permissions.List
		if list == nil {
			list = []string{}
		}
		out["permissions"] = map[string]any{"count": r.Permissions.Count, "list": list}
	} else if r.Permissions.List != nil {
		out["permissions"] = r.Permissions.List
	}
	if r.Reviews != nil {
		out["comments"] = r.Reviews
	}
	return json.Marshal(out)
}

func (r *RawAppRecord) UnmarshalJSON(data []byte) error {
	rec, err := DecodeRecord(data)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}
