// Package query translates raw request query parameters into a document
// store query: filter predicates, sort order, field projection and
// pagination. It is deliberately schema-agnostic: unknown fields pass
// through as literal equality predicates.
package query

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// reserved parameters drive sorting/projection/pagination and are never
// treated as filter fields.
var reserved = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// comparison operator suffixes recognised in keys like price[gte].
var operators = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

// Spec is the normalized representation of one request's query string.
// Built per request, never persisted.
type Spec struct {
	Filter     bson.M
	Sort       bson.D
	Projection bson.M
	Page       int64
	Limit      int64
}

// Skip returns the pagination offset.
func (s Spec) Skip() int64 {
	return (s.Page - 1) * s.Limit
}

// Translate builds a Spec from raw string key/value pairs. The pipeline
// mirrors filter -> sort -> field selection -> paginate; the stages are
// independent, so the construction order does not matter.
func Translate(raw map[string]string) Spec {
	spec := Spec{
		Filter:     bson.M{},
		Sort:       defaultSort(),
		Projection: nil,
		Page:       DefaultPage,
		Limit:      DefaultLimit,
	}

	for key, value := range raw {
		if reserved[key] {
			continue
		}
		field, op := splitOperator(key)
		if op == "" {
			spec.Filter[field] = coerce(value)
			continue
		}
		// Merge so that price[gte]=100&price[lt]=500 lands on one field.
		cond, ok := spec.Filter[field].(bson.M)
		if !ok {
			cond = bson.M{}
			spec.Filter[field] = cond
		}
		cond[op] = coerce(value)
	}

	if sort, ok := raw["sort"]; ok && sort != "" {
		spec.Sort = parseSort(sort)
	}
	if fields, ok := raw["fields"]; ok && fields != "" {
		spec.Projection = parseFields(fields)
	}
	spec.Page = positiveInt(raw["page"], DefaultPage)
	spec.Limit = positiveInt(raw["limit"], DefaultLimit)

	return spec
}

// FindOptions applies the sort, projection and pagination stages to a
// mongo find call. The filter stage is the caller's find filter.
func (s Spec) FindOptions() *options.FindOptions {
	opts := options.Find().
		SetSort(s.Sort).
		SetSkip(s.Skip()).
		SetLimit(s.Limit)
	if s.Projection != nil {
		opts.SetProjection(s.Projection)
	}
	return opts
}

func defaultSort() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}}
}

// splitOperator recognises the field[op] structural pattern. Keys without
// a known operator suffix are plain equality fields.
func splitOperator(key string) (field, op string) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	suffix := key[open+1 : len(key)-1]
	mongoOp, ok := operators[suffix]
	if !ok {
		return key, ""
	}
	return key[:open], mongoOp
}

// coerce converts numeric and boolean literals so comparisons work against
// typed document fields; anything else stays a string.
func coerce(value string) interface{} {
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if value == "true" || value == "false" {
		return value == "true"
	}
	return value
}

// parseSort handles comma-separated sort keys, "-" prefix for descending.
func parseSort(raw string) bson.D {
	var sort bson.D
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		direction := 1
		if strings.HasPrefix(field, "-") {
			direction = -1
			field = field[1:]
		}
		if field == "" {
			continue
		}
		sort = append(sort, bson.E{Key: field, Value: direction})
	}
	if len(sort) == 0 {
		return defaultSort()
	}
	return sort
}

// parseFields handles comma-separated projections; a "-" prefix excludes.
// Mongo rejects mixed projections, so the first entry decides the mode.
func parseFields(raw string) bson.M {
	projection := bson.M{}
	include := !strings.HasPrefix(strings.TrimSpace(raw), "-")
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		excluded := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		if field == "" || excluded == include {
			continue
		}
		if excluded {
			projection[field] = 0
		} else {
			projection[field] = 1
		}
	}
	if len(projection) == 0 {
		return nil
	}
	return projection
}

func positiveInt(raw string, fallback int64) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
