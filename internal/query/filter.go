// Package query translates whitelisted URL query parameters into SQL
// predicates, sort order and pagination for listing endpoints. Unknown
// parameters are ignored so older clients keep working.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Field declares one query parameter a listing endpoint honors and the column
// it filters on.
type Field struct {
	Param  string   // query parameter name
	Column string   // database column
	Bool   bool     // "true" coerces to true, any other present value to false
	Enum   []string // allowed values; values outside the set are ignored
}

// Whitelist is the fixed parameter set of one listing endpoint.
type Whitelist struct {
	Fields      []Field
	SortColumns map[string]string // API sort field -> database column
	DefaultSort string            // e.g. "-priority,-createdAt"
}

type sortKey struct {
	column string
	desc   bool
}

// Filter is the request-scoped result of Build: equality predicates, a sort
// specification and a page request, renderable as SQL clause suffixes.
type Filter struct {
	conds []string
	args  []interface{}
	sort  []sortKey
	Page  int
	Limit int
}

// Build constructs a Filter from raw query parameters using the endpoint's
// whitelist.
func Build(params url.Values, wl Whitelist) *Filter {
	f := &Filter{Page: DefaultPage, Limit: DefaultLimit}

	for _, field := range wl.Fields {
		if _, present := params[field.Param]; !present {
			continue
		}
		raw := params.Get(field.Param)

		if field.Bool {
			f.Where(field.Column, raw == "true")
			continue
		}
		if len(field.Enum) > 0 && !contains(field.Enum, raw) {
			continue
		}
		if raw == "" {
			continue
		}
		f.Where(field.Column, raw)
	}

	if page, err := strconv.Atoi(params.Get("page")); err == nil && page >= 1 {
		f.Page = page
	}
	if limit, err := strconv.Atoi(params.Get("limit")); err == nil && limit >= 1 {
		f.Limit = limit
	}

	sortExpr := params.Get("sort")
	if sortExpr == "" {
		sortExpr = wl.DefaultSort
	}
	f.sort = parseSort(sortExpr, wl.SortColumns)

	return f
}

// Where appends an equality predicate. Resource handlers use it for fixed
// visibility rules (is_public, is_active) on top of the built filter.
func (f *Filter) Where(column string, value interface{}) *Filter {
	f.args = append(f.args, value)
	f.conds = append(f.conds, fmt.Sprintf("%s = $%d", column, len(f.args)))
	return f
}

// Skip is the row offset implied by the page request.
func (f *Filter) Skip() int {
	return (f.Page - 1) * f.Limit
}

// CountClause renders the WHERE clause (possibly empty) and its arguments for
// a COUNT query over the same predicate set.
func (f *Filter) CountClause() (string, []interface{}) {
	return f.whereSQL(), f.args
}

// SelectClause renders WHERE + ORDER BY + LIMIT/OFFSET with positional
// arguments continuing the predicate numbering.
func (f *Filter) SelectClause() (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(f.whereSQL())
	sb.WriteString(f.orderBySQL())

	args := make([]interface{}, len(f.args), len(f.args)+2)
	copy(args, f.args)
	sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, f.Limit, f.Skip())

	return sb.String(), args
}

func (f *Filter) whereSQL() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

func (f *Filter) orderBySQL() string {
	keys := make([]string, 0, len(f.sort)+1)
	for _, k := range f.sort {
		dir := "ASC"
		if k.desc {
			dir = "DESC"
		}
		keys = append(keys, k.column+" "+dir)
	}
	// Deterministic final tiebreaker so identical-key rows keep a stable order
	// across pages.
	keys = append(keys, "id ASC")
	return " ORDER BY " + strings.Join(keys, ", ")
}

// parseSort accepts comma or space separated field names with an optional "-"
// prefix for descending order. Fields outside the whitelist are dropped.
func parseSort(expr string, columns map[string]string) []sortKey {
	fields := strings.FieldsFunc(expr, func(r rune) bool {
		return r == ',' || r == ' '
	})

	keys := make([]sortKey, 0, len(fields))
	for _, field := range fields {
		desc := strings.HasPrefix(field, "-")
		name := strings.TrimPrefix(field, "-")
		column, ok := columns[name]
		if !ok {
			continue
		}
		keys = append(keys, sortKey{column: column, desc: desc})
	}
	return keys
}

// Pagination is the envelope returned alongside every listing.
type Pagination struct {
	Current int  `json:"current"`
	Pages   int  `json:"pages"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// Paginate computes the envelope for the given total row count.
func (f *Filter) Paginate(total int) Pagination {
	pages := 0
	if total > 0 {
		pages = (total + f.Limit - 1) / f.Limit
	}
	return Pagination{
		Current: f.Page,
		Pages:   pages,
		Total:   total,
		HasNext: f.Page*f.Limit < total,
		HasPrev: f.Page > 1,
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
