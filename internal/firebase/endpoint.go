// Package firebase builds requests for, and decodes responses from, a
// Firebase Realtime Database style REST collection.
package firebase

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/tinytelemetry/pantry/internal/model"
	"github.com/tinytelemetry/pantry/internal/request"
)

// Correlation ids that route a completed call to its list transition.
const (
	CorrelationAdd    = "ADD_INGREDIENT"
	CorrelationRemove = "REMOVE_INGREDIENT"
	CorrelationSearch = "SEARCH_INGREDIENTS"
)

// Endpoint addresses one collection below a database base URL.
type Endpoint struct {
	BaseURL    string
	Collection string
}

// NewEndpoint validates baseURL and returns an endpoint for collection.
func NewEndpoint(baseURL, collection string) (Endpoint, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return Endpoint{}, fmt.Errorf("parsing backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Endpoint{}, fmt.Errorf("backend url %q: scheme must be http or https", baseURL)
	}
	if collection == "" {
		collection = model.DefaultCollection
	}
	return Endpoint{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Collection: collection,
	}, nil
}

// ListURL returns the collection URL. A non-empty filter adds an equality
// filter on the title field.
func (e Endpoint) ListURL(filter string) string {
	base := fmt.Sprintf("%s/%s.json", e.BaseURL, e.Collection)
	if filter == "" {
		return base
	}
	q := url.Values{}
	q.Set("orderBy", strconv.Quote("title"))
	q.Set("equalTo", strconv.Quote(filter))
	return base + "?" + q.Encode()
}

// ItemURL returns the URL of one record.
func (e Endpoint) ItemURL(id string) string {
	return fmt.Sprintf("%s/%s/%s.json", e.BaseURL, e.Collection, url.PathEscape(id))
}

// SearchRequest lists records matching filter. The filter text travels as
// correlation data so a response can be checked against the input it answers.
func (e Endpoint) SearchRequest(filter string) request.Request {
	return request.Request{
		URL:             e.ListURL(filter),
		Method:          http.MethodGet,
		CorrelationData: filter,
		CorrelationID:   CorrelationSearch,
	}
}

// AddRequest creates in. The created record is assembled from the response
// id and the correlation data.
func (e Endpoint) AddRequest(in model.NewIngredient) (request.Request, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return request.Request{}, fmt.Errorf("encoding ingredient: %w", err)
	}
	return request.Request{
		URL:             e.ListURL(""),
		Method:          http.MethodPost,
		Body:            body,
		CorrelationData: in,
		CorrelationID:   CorrelationAdd,
	}, nil
}

// RemoveRequest deletes the record with id.
func (e Endpoint) RemoveRequest(id string) request.Request {
	return request.Request{
		URL:             e.ItemURL(id),
		Method:          http.MethodDelete,
		CorrelationData: id,
		CorrelationID:   CorrelationRemove,
	}
}

// DecodeList converts a collection object into records ordered by key.
// A null payload is an empty collection.
func DecodeList(payload json.RawMessage) ([]model.Ingredient, error) {
	var raw map[string]model.NewIngredient
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decoding ingredient list: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]model.Ingredient, 0, len(keys))
	for _, k := range keys {
		list = append(list, raw[k].WithID(k))
	}
	return list, nil
}

// EncodeList is the inverse of DecodeList.
func EncodeList(list []model.Ingredient) map[string]model.NewIngredient {
	out := make(map[string]model.NewIngredient, len(list))
	for _, ing := range list {
		out[ing.ID] = model.NewIngredient{Title: ing.Title, Amount: ing.Amount}
	}
	return out
}

// Created is the body answered to a create.
type Created struct {
	Name string `json:"name"`
}

// DecodeCreated returns the id generated for a create.
func DecodeCreated(payload json.RawMessage) (string, error) {
	var c Created
	if err := json.Unmarshal(payload, &c); err != nil {
		return "", fmt.Errorf("decoding create response: %w", err)
	}
	if c.Name == "" {
		return "", errors.New("create response has no name")
	}
	return c.Name, nil
}

// ParseQuotedParam strips the JSON quoting Firebase requires on orderBy and
// equalTo values. Unquoted values are returned as they are.
func ParseQuotedParam(v string) string {
	if s, err := strconv.Unquote(v); err == nil {
		return s
	}
	return v
}
