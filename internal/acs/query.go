package acs

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the Census Data API root.
const DefaultBaseURL = "https://api.census.gov/data"

// Geography column names the API appends to every row.
const (
	ColumnName  = "NAME"
	ColumnZCTA  = "zip code tabulation area"
	ColumnState = "state"
)

// Scope is the geographic filter of a query: the "for" and optional "in" predicates.
type Scope struct {
	For string
	In  string
}

// ZCTAInState selects every ZIP code tabulation area within a state.
func ZCTAInState(stateFIPS string) Scope {
	return Scope{For: ColumnZCTA + ":*", In: ColumnState + ":" + stateFIPS}
}

// StateScope selects a single state.
func StateScope(stateFIPS string) Scope {
	return Scope{For: ColumnState + ":" + stateFIPS}
}

// Query describes one ACS API request.
type Query struct {
	Year   int
	Family Family
	Fields []string
	Scope  Scope
	Key    string
}

// URL renders the request URL below baseURL.
func (q Query) URL(baseURL string) string {
	params := url.Values{}
	params.Set("get", strings.Join(q.Fields, ","))
	params.Set("for", q.Scope.For)
	if q.Scope.In != "" {
		params.Set("in", q.Scope.In)
	}
	if q.Key != "" {
		params.Set("key", q.Key)
	}
	return fmt.Sprintf("%s/%d/%s?%s", strings.TrimRight(baseURL, "/"), q.Year, q.Family.Path(), params.Encode())
}
