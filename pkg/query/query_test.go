package query_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/adscreen/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "analyses", "a").
		Project("id", "id").
		Project("ad_name", "ad_name").
		Project("risk_level", "risk_level").
		Project("created_at", "created_at")
}

const selectAll = "SELECT a.id, a.ad_name, a.risk_level, a.created_at FROM public.analyses a"

func ptr(s string) *string { return &s }

func TestProjectionMap(t *testing.T) {
	p := testProjection()

	if got := p.Table(); got != "public.analyses a" {
		t.Errorf("Table() = %q", got)
	}
	if got := p.Columns(); got != "a.id, a.ad_name, a.risk_level, a.created_at" {
		t.Errorf("Columns() = %q", got)
	}

	tests := []struct {
		name     string
		viewName string
		want     string
		wantHas  bool
	}{
		{"mapped field", "ad_name", "a.ad_name", true},
		{"unmapped passthrough", "unknown", "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
			if got := p.Has(tt.viewName); got != tt.wantHas {
				t.Errorf("Has(%q) = %v, want %v", tt.viewName, got, tt.wantHas)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		input string
		want  []query.SortField
	}{
		{"", nil},
		{"ad_name", []query.SortField{{Field: "ad_name"}}},
		{"-created_at,ad_name", []query.SortField{{Field: "created_at", Descending: true}, {Field: "ad_name"}}},
		{" , -risk_level ,", []query.SortField{{Field: "risk_level", Descending: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		build    func(b *query.Builder) (string, []any)
		wantSQL  string
		wantArgs int
	}{
		{
			name:    "build",
			build:   func(b *query.Builder) (string, []any) { return b.Build() },
			wantSQL: selectAll + " ORDER BY a.created_at DESC",
		},
		{
			name:    "count ignores order",
			build:   func(b *query.Builder) (string, []any) { return b.BuildCount() },
			wantSQL: "SELECT COUNT(*) FROM public.analyses a",
		},
		{
			name:    "page",
			build:   func(b *query.Builder) (string, []any) { return b.BuildPage(2, 10) },
			wantSQL: selectAll + " ORDER BY a.created_at DESC LIMIT 10 OFFSET 10",
		},
		{
			name:     "single",
			build:    func(b *query.Builder) (string, []any) { return b.BuildSingle("id", "abc") },
			wantSQL:  selectAll + " WHERE a.id = $1",
			wantArgs: 1,
		},
		{
			name: "conditions numbered in order",
			build: func(b *query.Builder) (string, []any) {
				return b.
					WhereEquals("risk_level", "high").
					WhereContains("ad_name", ptr("clinic")).
					WhereAtLeast("created_at", since).
					BuildCount()
			},
			wantSQL:  "SELECT COUNT(*) FROM public.analyses a WHERE a.risk_level = $1 AND a.ad_name ILIKE $2 AND a.created_at >= $3",
			wantArgs: 3,
		},
		{
			name: "nil and empty conditions skipped",
			build: func(b *query.Builder) (string, []any) {
				var nilTime *time.Time
				return b.
					WhereEquals("risk_level", nil).
					WhereContains("ad_name", ptr("")).
					WhereSearch(nil, "ad_name").
					WhereIn("id", nil).
					WhereAtLeast("created_at", nilTime).
					BuildCount()
			},
			wantSQL: "SELECT COUNT(*) FROM public.analyses a",
		},
		{
			name: "search and in",
			build: func(b *query.Builder) (string, []any) {
				return b.
					WhereSearch(ptr("x"), "ad_name", "id").
					WhereIn("risk_level", []any{"high", "medium"}).
					BuildCount()
			},
			wantSQL:  "SELECT COUNT(*) FROM public.analyses a WHERE (a.ad_name ILIKE $1 OR a.id ILIKE $2) AND a.risk_level IN ($3, $4)",
			wantArgs: 4,
		},
		{
			name: "nullable",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereNullable("risk_level", nil).BuildCount()
			},
			wantSQL: "SELECT COUNT(*) FROM public.analyses a WHERE a.risk_level IS NULL",
		},
		{
			name: "explicit sort overrides default",
			build: func(b *query.Builder) (string, []any) {
				return b.OrderByFields(query.ParseSortFields("ad_name,-risk_level")).Build()
			},
			wantSQL: selectAll + " ORDER BY a.ad_name ASC, a.risk_level DESC",
		},
		{
			name: "unknown sort fields dropped",
			build: func(b *query.Builder) (string, []any) {
				return b.OrderByFields(query.ParseSortFields("ad_name;drop table analyses,-ad_name")).Build()
			},
			wantSQL: selectAll + " ORDER BY a.ad_name DESC",
		},
		{
			name: "all sort fields unknown",
			build: func(b *query.Builder) (string, []any) {
				return b.OrderByFields(query.ParseSortFields("nope")).Build()
			},
			wantSQL: selectAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(testProjection(), query.SortField{Field: "created_at", Descending: true})
			sql, args := tt.build(b)
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %v, want %d", args, tt.wantArgs)
			}
		})
	}
}
