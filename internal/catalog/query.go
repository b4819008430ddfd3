// Package catalog translates free-form product listing parameters into a
// single structured Mongo query.
package catalog

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10

	defaultSortField = "created_at"
)

// reservedKeys are parameters with dedicated meaning; everything else is a
// candidate equality filter.
var reservedKeys = map[string]bool{
	"searchTerm": true,
	"page":       true,
	"limit":      true,
	"sortTerm":   true,
	"sortOrder":  true,
	"minPrice":   true,
	"maxPrice":   true,
	"categories": true,
	"minRating":  true,
}

// productFields maps wire names to document field names. Only fields listed
// here are admitted for sorting and pass-through equality filters; unknown
// keys are dropped rather than applied as opaque filters.
var productFields = map[string]string{
	"name":        "name",
	"description": "description",
	"category":    "category",
	"price":       "price",
	"stock":       "stock",
	"rating":      "rating",
	"image":       "image",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// EqualsFilter is an exact-match constraint on a single product field.
type EqualsFilter struct {
	Field string
	Value interface{}
}

// ProductQuery is an immutable filter specification for the product
// collection. Build one with Parse, then hand it to Filter and FindOptions.
type ProductQuery struct {
	SearchTerm string
	MinPrice   *float64
	MaxPrice   *float64
	Categories []string
	MinRating  *float64
	Equals     []EqualsFilter
	SortField  string
	Descending bool
	Page       int64
	Limit      int64
}

// Parse reads listing parameters into a ProductQuery. Missing numeric bounds
// are omitted, never coerced to zero; a non-numeric page or limit falls back
// to its default; an unknown sortTerm falls back to created_at.
func Parse(values url.Values) ProductQuery {
	q := ProductQuery{
		SortField: defaultSortField,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}

	q.SearchTerm = strings.TrimSpace(values.Get("searchTerm"))

	if v, err := strconv.ParseFloat(values.Get("minPrice"), 64); err == nil {
		q.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(values.Get("maxPrice"), 64); err == nil {
		q.MaxPrice = &v
	}
	if v, err := strconv.ParseFloat(values.Get("minRating"), 64); err == nil {
		q.MinRating = &v
	}

	if raw := values.Get("categories"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				q.Categories = append(q.Categories, c)
			}
		}
	}

	if field, ok := productFields[values.Get("sortTerm")]; ok {
		q.SortField = field
	}
	q.Descending = values.Get("sortOrder") == "desc"

	if v, err := strconv.ParseInt(values.Get("page"), 10, 64); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.ParseInt(values.Get("limit"), 10, 64); err == nil && v > 0 {
		q.Limit = v
	}

	// Remaining keys become explicit equality filters, admitted and typed
	// through the product field map. Keys are sorted so the resulting
	// specification does not depend on map iteration order.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if reservedKeys[key] {
			continue
		}
		field, ok := productFields[key]
		if !ok {
			continue
		}
		q.Equals = append(q.Equals, EqualsFilter{Field: field, Value: coerce(field, values.Get(key))})
	}

	return q
}

// coerce converts raw values for numeric fields so equality filters compare
// against the stored bson type.
func coerce(field, raw string) interface{} {
	switch field {
	case "price", "rating":
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	case "stock":
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return raw
}

// Filter builds the single Mongo filter document: the conjunction of every
// active constraint, with the search term an $or across name and description.
func (q ProductQuery) Filter() bson.M {
	var conds []bson.M

	if q.SearchTerm != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.SearchTerm), Options: "i"}
		conds = append(conds, bson.M{"$or": []bson.M{
			{"name": pattern},
			{"description": pattern},
		}})
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		conds = append(conds, bson.M{"price": price})
	}

	if len(q.Categories) > 0 {
		conds = append(conds, bson.M{"category": bson.M{"$in": q.Categories}})
	}

	if q.MinRating != nil {
		conds = append(conds, bson.M{"rating": bson.M{"$gte": *q.MinRating}})
	}

	for _, eq := range q.Equals {
		conds = append(conds, bson.M{eq.Field: eq.Value})
	}

	switch len(conds) {
	case 0:
		return bson.M{}
	case 1:
		return conds[0]
	default:
		return bson.M{"$and": conds}
	}
}

// FindOptions builds sort and pagination options: skip = (page-1) * limit.
func (q ProductQuery) FindOptions() *options.FindOptions {
	order := 1
	if q.Descending {
		order = -1
	}
	return options.Find().
		SetSort(bson.D{{Key: q.SortField, Value: order}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)
}
