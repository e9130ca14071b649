package servicenow

import (
	"strconv"
	"strings"

	"github.com/ternarybob/snowbridge/internal/models"
)

// ServiceNow encoded query grammar: "^" joins AND terms, "^OR" joins OR
// terms, "LIKE" is a substring match.
const (
	andSeparator = "^"
	orSeparator  = "^OR"
	likeOperator = "LIKE"
)

// Filter is one equality term of an encoded query
type Filter struct {
	Field string
	Value string
}

// equalityQuery renders equality filters ANDed in declaration order,
// optionally followed by a free-text OR pair over the kind's text fields.
// Filters with empty values are skipped.
func equalityQuery(filters []Filter, text string, textFields []string) string {
	terms := make([]string, 0, len(filters)+1)
	for _, filter := range filters {
		if filter.Value == "" {
			continue
		}
		terms = append(terms, filter.Field+"="+filter.Value)
	}

	if text != "" {
		clauses := make([]string, 0, len(textFields))
		for _, field := range textFields {
			clauses = append(clauses, field+likeOperator+text)
		}
		terms = append(terms, strings.Join(clauses, orSeparator))
	}

	return strings.Join(terms, andSeparator)
}

// keywordQuery expands keywords into an any-keyword-any-field OR chain:
// len(keywords) x len(textFields) LIKE clauses. Blank keywords are skipped;
// an all-blank list yields an empty query and the caller must short-circuit
// instead of issuing a request.
func keywordQuery(keywords []string, textFields []string) string {
	clauses := make([]string, 0, len(keywords)*len(textFields))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		for _, field := range textFields {
			clauses = append(clauses, field+likeOperator+keyword)
		}
	}
	return strings.Join(clauses, orSeparator)
}

// validatePage rejects page bounds before any network call is made
func validatePage(limit, offset int) error {
	if limit <= 0 {
		return &models.ValidationError{Field: "limit", Reason: "must be greater than zero"}
	}
	if offset < 0 {
		return &models.ValidationError{Field: "offset", Reason: "must not be negative"}
	}
	return nil
}

// pageParams builds the sysparm query parameters shared by every table read.
// Display values are always requested and reference links suppressed so
// dereferenced fields degrade to a predictable shape.
func pageParams(encoded string, limit, offset int, fields FieldMap) map[string]string {
	params := map[string]string{
		"sysparm_limit":                  strconv.Itoa(limit),
		"sysparm_offset":                 strconv.Itoa(offset),
		"sysparm_display_value":          "true",
		"sysparm_exclude_reference_link": "true",
	}
	if encoded != "" {
		params["sysparm_query"] = encoded
	}
	if len(fields) > 0 {
		params["sysparm_fields"] = strings.Join(fields.Sources(), ",")
	}
	return params
}
