// Package mf2 decodes Microformats2 h-entry JSON into typed records.
//
// mf2 JSON conventionally wraps every property value in an array, even when
// the property is semantically a single value. Fields such as content are
// therefore accepted both as "text" and as ["text"]; see DecodeScalar.
package mf2

import (
	"encoding/json"
	"fmt"
)

// TypeEntry is the discriminator value of an h-entry item.
const TypeEntry = "h-entry"

// Kind identifies which variant an Item holds.
type Kind int

const (
	// KindUnknown is any item whose type is not recognised.
	KindUnknown Kind = iota
	// KindEntry is an h-entry item; Item.Entry is set.
	KindEntry
)

func (k Kind) String() string {
	switch k {
	case KindEntry:
		return TypeEntry
	default:
		return "unknown"
	}
}

// Item is a tagged mf2 item: {"type": "h-entry", "properties": {...}}.
//
// The variant is chosen by the exact string value of "type". Any tag other
// than "h-entry" yields KindUnknown and its properties are not decoded.
type Item struct {
	Kind Kind
	// Type is the raw discriminator as found on the wire.
	Type  string
	Entry *EntryProps
}

// Entry is a standalone h-entry whose type may be a string or a
// single-element array, as returned by Micropub source queries.
type Entry struct {
	Type       string     `json:"type"`
	Properties EntryProps `json:"properties"`
}

// EntryProps holds the properties of an h-entry.
type EntryProps struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Categories []string `json:"category"`
}

// ParseItem decodes a tagged item from JSON text.
func ParseItem(data []byte) (Item, error) {
	var it Item
	if err := json.Unmarshal(data, &it); err != nil {
		return Item{}, err
	}
	return it, nil
}

// ParseEntry decodes a standalone entry from JSON text.
func ParseEntry(data []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (it *Item) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}
	raw, ok := fields["type"]
	if !ok {
		return missingField("type")
	}
	tag, err := decodeString("type", raw)
	if err != nil {
		return err
	}

	switch tag {
	case TypeEntry:
		raw, ok := fields["properties"]
		if !ok {
			return missingField("properties")
		}
		var props EntryProps
		if err := props.UnmarshalJSON(raw); err != nil {
			return fieldError("properties", err)
		}
		*it = Item{Kind: KindEntry, Type: tag, Entry: &props}
	default:
		*it = Item{Kind: KindUnknown, Type: tag}
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Unknown items keep only their type.
func (it Item) MarshalJSON() ([]byte, error) {
	if it.Kind == KindEntry && it.Entry != nil {
		return json.Marshal(Entry{Type: TypeEntry, Properties: *it.Entry})
	}
	return json.Marshal(struct {
		Type string `json:"type"`
	}{it.Type})
}

// UnmarshalJSON implements json.Unmarshaler. Unlike Item, a type that is
// neither a string nor a non-empty array is an error.
func (e *Entry) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}
	raw, ok := fields["type"]
	if !ok {
		return missingField("type")
	}
	typ, err := DecodeScalar(raw, ParseString)
	if err != nil {
		return fieldError("type", err)
	}
	raw, ok = fields["properties"]
	if !ok {
		return missingField("properties")
	}
	var props EntryProps
	if err := props.UnmarshalJSON(raw); err != nil {
		return fieldError("properties", err)
	}
	*e = Entry{Type: typ, Properties: props}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *EntryProps) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}

	var props EntryProps
	if raw, ok := fields["title"]; ok {
		if props.Title, err = decodeString("title", raw); err != nil {
			return err
		}
	}

	raw, ok := fields["content"]
	if !ok {
		return missingField("content")
	}
	if props.Content, err = DecodeScalar(raw, ParseString); err != nil {
		return fieldError("content", err)
	}

	raw, ok = fields["category"]
	if !ok {
		return missingField("category")
	}
	if jsonKind(raw) != '[' {
		return typeMismatch("category", "array of strings", raw)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return &DecodeError{Field: "category", Err: fmt.Errorf("%w: %v", ErrTypeMismatch, err)}
	}
	props.Categories = make([]string, 0, len(elems))
	for i, elem := range elems {
		// Decoded one by one so a null element is rejected instead of becoming "".
		s, err := decodeString(fmt.Sprintf("category[%d]", i), elem)
		if err != nil {
			return err
		}
		props.Categories = append(props.Categories, s)
	}

	*p = props
	return nil
}

// decodeObject splits a JSON object into its raw members.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	if jsonKind(data) != '{' {
		return nil, typeMismatch("", "object", data)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %v", ErrTypeMismatch, err)}
	}
	return fields, nil
}

func decodeString(field string, raw json.RawMessage) (string, error) {
	if jsonKind(raw) != '"' {
		return "", typeMismatch(field, "string", raw)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &DecodeError{Field: field, Err: fmt.Errorf("%w: %v", ErrTypeMismatch, err)}
	}
	return s, nil
}
