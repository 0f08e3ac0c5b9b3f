package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testWhitelist = Whitelist{
	Fields: []Field{
		{Param: "featured", Column: "featured", Bool: true},
		{Param: "category", Column: "category", Enum: []string{"web", "mobile"}},
	},
	SortColumns: map[string]string{
		"priority":  "priority",
		"createdAt": "created_at",
		"title":     "title",
	},
	DefaultSort: "-priority,-createdAt",
}

func TestBuildDefaults(t *testing.T) {
	f := Build(url.Values{}, testWhitelist)

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 0, f.Skip())

	where, args := f.CountClause()
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildBoolCoercion(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		want   []interface{}
	}{
		{"true value", url.Values{"featured": {"true"}}, []interface{}{true}},
		{"other value coerces to false", url.Values{"featured": {"yes"}}, []interface{}{false}},
		{"empty value coerces to false", url.Values{"featured": {""}}, []interface{}{false}},
		{"absent means no predicate", url.Values{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Build(tt.params, testWhitelist)
			_, args := f.CountClause()
			assert.Equal(t, tt.want, args)
		})
	}
}

func TestBuildEnumFilter(t *testing.T) {
	f := Build(url.Values{"category": {"web"}}, testWhitelist)
	where, args := f.CountClause()
	assert.Equal(t, " WHERE category = $1", where)
	assert.Equal(t, []interface{}{"web"}, args)

	// Values outside the allowed set are dropped, not errored.
	f = Build(url.Values{"category": {"nonsense"}}, testWhitelist)
	where, _ = f.CountClause()
	assert.Empty(t, where)
}

func TestBuildIgnoresUnknownParams(t *testing.T) {
	f := Build(url.Values{"evil": {"1; DROP TABLE projects"}}, testWhitelist)
	where, args := f.CountClause()
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildPagination(t *testing.T) {
	f := Build(url.Values{"page": {"3"}, "limit": {"20"}}, testWhitelist)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 40, f.Skip())

	// Garbage and out-of-range values fall back to the defaults.
	f = Build(url.Values{"page": {"0"}, "limit": {"abc"}}, testWhitelist)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)
}

func TestSortParsing(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want string
	}{
		{"default", "", " ORDER BY priority DESC, created_at DESC, id ASC"},
		{"ascending", "title", " ORDER BY title ASC, id ASC"},
		{"descending prefix", "-createdAt", " ORDER BY created_at DESC, id ASC"},
		{"comma separated", "-priority,title", " ORDER BY priority DESC, title ASC, id ASC"},
		{"space separated", "-priority title", " ORDER BY priority DESC, title ASC, id ASC"},
		{"unknown fields dropped", "-hacked,title", " ORDER BY title ASC, id ASC"},
		{"all unknown leaves tiebreaker", "hacked", " ORDER BY id ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := url.Values{}
			if tt.sort != "" {
				params.Set("sort", tt.sort)
			}
			f := Build(params, testWhitelist)
			clause, _ := f.SelectClause()
			assert.Contains(t, clause, tt.want)
		})
	}
}

func TestSelectClauseNumbering(t *testing.T) {
	f := Build(url.Values{"featured": {"true"}, "category": {"web"}, "page": {"2"}, "limit": {"5"}}, testWhitelist)

	clause, args := f.SelectClause()
	assert.Equal(t, " WHERE featured = $1 AND category = $2 ORDER BY priority DESC, created_at DESC, id ASC LIMIT $3 OFFSET $4", clause)
	assert.Equal(t, []interface{}{true, "web", 5, 5}, args)

	// The COUNT query shares the predicate arguments only.
	where, countArgs := f.CountClause()
	assert.Equal(t, " WHERE featured = $1 AND category = $2", where)
	assert.Equal(t, []interface{}{true, "web"}, countArgs)
}

func TestWhereAppends(t *testing.T) {
	f := Build(url.Values{"featured": {"true"}}, testWhitelist)
	f.Where("is_public", true)

	where, args := f.CountClause()
	assert.Equal(t, " WHERE featured = $1 AND is_public = $2", where)
	assert.Equal(t, []interface{}{true, true}, args)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int
		want  Pagination
	}{
		{"middle page", 2, 10, 25, Pagination{Current: 2, Pages: 3, Total: 25, HasNext: true, HasPrev: true}},
		{"first page", 1, 10, 25, Pagination{Current: 1, Pages: 3, Total: 25, HasNext: true, HasPrev: false}},
		{"last page", 3, 10, 25, Pagination{Current: 3, Pages: 3, Total: 25, HasNext: false, HasPrev: true}},
		{"exact fit", 2, 10, 20, Pagination{Current: 2, Pages: 2, Total: 20, HasNext: false, HasPrev: true}},
		{"empty result", 1, 10, 0, Pagination{Current: 1, Pages: 0, Total: 0, HasNext: false, HasPrev: false}},
		{"page beyond total", 5, 10, 25, Pagination{Current: 5, Pages: 3, Total: 25, HasNext: false, HasPrev: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Filter{Page: tt.page, Limit: tt.limit}
			assert.Equal(t, tt.want, f.Paginate(tt.total))
		})
	}
}
