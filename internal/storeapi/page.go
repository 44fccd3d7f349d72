package storeapi

import (
	"bytes"
	"encoding/json"
)

// Page is a paginated listing. The API answers either with
// {count, next, previous, results} or, when pagination is off, with a bare
// array; both decode into a Page.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*p = Page[T]{Count: len(items), Results: items}
		return nil
	}

	type page Page[T]
	var raw page
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Page[T](raw)
	return nil
}
