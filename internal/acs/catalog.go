package acs

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/acs-demographics/internal/fetcher"
)

// Variable is one entry of an ACS variable catalog.
type Variable struct {
	Label         string `json:"label"`
	Concept       string `json:"concept"`
	Group         string `json:"group"`
	PredicateType string `json:"predicateType"`
}

// Catalog maps variable codes to their metadata.
type Catalog map[string]Variable

type variablesDocument struct {
	Variables Catalog `json:"variables"`
}

// VariablesURL returns the metadata endpoint for a year and family,
// e.g. https://api.census.gov/data/2022/acs/acs5/variables.json.
func (c *Client) VariablesURL(year int, family Family) string {
	return fmt.Sprintf("%s/%d/%s/variables.json", c.baseURL, year, family.Path())
}

// Variables downloads the variable catalog for a year and family.
func (c *Client) Variables(ctx context.Context, year int, family Family) (Catalog, error) {
	body, err := c.f.Download(ctx, c.VariablesURL(year, family))
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	doc, err := fetcher.DecodeJSONObject[variablesDocument](body)
	if err != nil {
		return nil, eris.Wrap(err, "acs: parse variables")
	}
	if doc.Variables == nil {
		return nil, eris.New("acs: variables document has no \"variables\" key")
	}
	return doc.Variables, nil
}

// Filter narrows a catalog to the variables a query should request.
type Filter struct {
	// Prefixes keeps codes starting with any of these (e.g. "B01001", "B02001_").
	// Empty keeps every table variable.
	Prefixes []string
	// IncludePuertoRico keeps Puerto-Rico-specific tables such as B05002PR.
	IncludePuertoRico bool
	// EstimatesOnly keeps estimate codes (suffix E) and drops margins of error and annotations.
	EstimatesOnly bool
}

// Filter returns the matching codes in sorted order. Pseudo-variables the catalog lists
// alongside real ones ("for", "in", "ucgid", geography columns) never match.
func (c Catalog) Filter(f Filter) []string {
	var out []string
	for code := range c {
		if !isTableVariable(code) {
			continue
		}
		if len(f.Prefixes) > 0 && !hasAnyPrefix(code, f.Prefixes) {
			continue
		}
		if !f.IncludePuertoRico && IsPuertoRico(code) {
			continue
		}
		if f.EstimatesOnly && !strings.HasSuffix(code, "E") {
			continue
		}
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Mapping builds a code to display-name mapping from catalog labels. Labels that would
// collide get their code appended so every column name stays unique.
func (c Catalog) Mapping(codes []string) map[string]string {
	out := make(map[string]string, len(codes))
	used := make(map[string]bool, len(codes))
	for _, code := range codes {
		label := CleanLabel(c[code].Label)
		if label == "" {
			label = code
		}
		if used[label] {
			label = fmt.Sprintf("%s (%s)", label, code)
		}
		used[label] = true
		out[code] = label
	}
	return out
}

// CleanConcept title-cases the all-caps concepts older catalogs carry ("SEX BY AGE" becomes
// "Sex By Age"). Mixed-case concepts are returned trimmed but otherwise untouched.
func CleanConcept(concept string) string {
	concept = strings.TrimSpace(concept)
	if concept == "" || concept != strings.ToUpper(concept) {
		return concept
	}
	return cases.Title(language.English).String(strings.ToLower(concept))
}

// CleanLabel turns "Estimate!!Total:!!Male:!!Under 5 years" into "Total Male Under 5 years".
func CleanLabel(label string) string {
	var parts []string
	for _, p := range strings.Split(label, "!!") {
		p = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), ":"))
		if p == "" || p == "Estimate" {
			continue
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

// IsPuertoRico reports whether code belongs to a Puerto-Rico-specific table (group ends in PR).
func IsPuertoRico(code string) bool {
	group, _, ok := strings.Cut(code, "_")
	return ok && strings.HasSuffix(group, "PR")
}

// isTableVariable reports whether code looks like a table cell, e.g. B01003_001E or
// DP05_0001E, as opposed to NAME, GEO_ID, for or in.
func isTableVariable(code string) bool {
	group, cell, ok := strings.Cut(code, "_")
	if !ok || group == "" || cell == "" {
		return false
	}
	return cell[0] >= '0' && cell[0] <= '9'
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
