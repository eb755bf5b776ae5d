package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Item is a single record returned by a provider.
// The gateway passes items through unmodified and never inspects them.
//
// The typed fields are read-only views used by the CLI and TUI. Fields the
// struct does not name, and named fields whose upstream value is not a plain
// string (numbers, nulls, objects), are kept verbatim in Extra and win over
// the typed field when the item is encoded again.
type Item struct {
	Name         string   `json:"name"`
	Size         string   `json:"size,omitempty"`
	Date         string   `json:"date,omitempty"`
	Seeders      string   `json:"seeders,omitempty"`
	Leechers     string   `json:"leechers,omitempty"`
	URL          string   `json:"url,omitempty"`
	UploadedBy   string   `json:"uploaded_by,omitempty"`
	Category     string   `json:"category,omitempty"`
	Language     string   `json:"language,omitempty"`
	Screenshot   []string `json:"screenshot,omitempty"`
	Poster       string   `json:"poster,omitempty"`
	Magnet       string   `json:"magnet,omitempty"`
	Hash         string   `json:"hash,omitempty"`
	Torrent      string   `json:"torrent,omitempty"`
	Files        []string `json:"files,omitempty"`
	ProviderID   string   `json:"provider,omitempty"`
	ReleaseGroup string   `json:"release_group,omitempty"`

	// Extra holds upstream fields exactly as received, keyed by name.
	Extra map[string]json.RawMessage `json:"-"`
}

// itemFields is Item without its codec methods.
type itemFields Item

func (it *Item) textFields() map[string]*string {
	return map[string]*string{
		"name":          &it.Name,
		"size":          &it.Size,
		"date":          &it.Date,
		"seeders":       &it.Seeders,
		"leechers":      &it.Leechers,
		"url":           &it.URL,
		"uploaded_by":   &it.UploadedBy,
		"category":      &it.Category,
		"language":      &it.Language,
		"poster":        &it.Poster,
		"magnet":        &it.Magnet,
		"hash":          &it.Hash,
		"torrent":       &it.Torrent,
		"provider":      &it.ProviderID,
		"release_group": &it.ReleaseGroup,
	}
}

func (it *Item) listFields() map[string]*[]string {
	return map[string]*[]string{
		"screenshot": &it.Screenshot,
		"files":      &it.Files,
	}
}

// UnmarshalJSON decodes any JSON object; null is a no-op. Scalars in typed
// fields are read as text, so a numeric seeders count is accepted.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	*it = Item{}
	texts, lists := it.textFields(), it.listFields()
	for key, value := range raw {
		if dst, ok := texts[key]; ok {
			if !isString(value) {
				it.keep(key, value)
			}
			*dst = scalarText(value)
			continue
		}
		if dst, ok := lists[key]; ok {
			var list []string
			if bytes.Equal(bytes.TrimSpace(value), []byte("null")) || json.Unmarshal(value, &list) != nil {
				it.keep(key, value)
				list = scalarList(value)
			}
			*dst = list
			continue
		}
		it.keep(key, value)
	}
	return nil
}

// MarshalJSON encodes the typed fields overlaid with Extra.
func (it Item) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(itemFields(it))
	if err != nil || len(it.Extra) == 0 {
		return data, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range it.Extra {
		merged[key] = value
	}
	return json.Marshal(merged)
}

func (it *Item) keep(key string, value json.RawMessage) {
	if it.Extra == nil {
		it.Extra = make(map[string]json.RawMessage)
	}
	it.Extra[key] = append(json.RawMessage(nil), value...)
}

func isString(value json.RawMessage) bool {
	v := bytes.TrimSpace(value)
	return len(v) > 0 && v[0] == '"'
}

// scalarText renders a JSON scalar as text; objects and arrays yield "".
func scalarText(value json.RawMessage) string {
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func scalarList(value json.RawMessage) []string {
	var elems []json.RawMessage
	if err := json.Unmarshal(value, &elems); err != nil {
		if s := scalarText(value); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if s := scalarText(e); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Page is one page of items as returned by a provider.
type Page struct {
	// Items is the page content.
	Items []Item `json:"data"`
	// Total is the provider-reported result count.
	Total int `json:"total"`
}
