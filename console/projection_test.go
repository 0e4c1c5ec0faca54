package console

import (
	"testing"

	"article-admin/models"
)

func TestParseSelection(t *testing.T) {
	cases := map[string]Selection{
		"":      SelectAny,
		"SEL:V": SelectSelected,
		"SEL:F": SelectUnselected,
		"foo":   SelectAny,
	}
	for in, want := range cases {
		if got := ParseSelection(in); got != want {
			t.Errorf("ParseSelection(%q) = %v, want %v", in, got, want)
		}
		if want != SelectAny && ParseSelection(in).FormValue() != in {
			t.Errorf("FormValue round trip failed for %q", in)
		}
	}
}

func TestProject(t *testing.T) {
	all := []models.Record{
		rec(1, "Machine Learning in Health", "Smith", true),
		rec(2, "Deep Networks", "Jones", false),
		rec(3, "", "learning Lab", false),
		rec(4, "Other", "", true),
	}
	translated := rec(5, "", "", false)
	translated.TitleTranslated = strPtr("Aprendizaje automático")
	all = append(all, translated)

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"empty", Filter{}, []int{1, 2, 3, 4, 5}},
		{"query case-insensitive", Filter{Query: "LEARNING"}, []int{1, 3}},
		{"translated title", Filter{Query: "automático"}, []int{5}},
		{"selected", Filter{Selection: SelectSelected}, []int{1, 4}},
		{"unselected", Filter{Selection: SelectUnselected}, []int{2, 3, 5}},
		{"and", Filter{Query: "learning", Selection: SelectUnselected}, []int{3}},
		{"no match", Filter{Query: "zzz"}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(all, tt.filter)
			if !equalInts(ids(got), tt.want) {
				t.Fatalf("Project = %v, want %v", ids(got), tt.want)
			}
			for _, r := range got {
				if !tt.filter.Matches(&r) {
					t.Errorf("record %d does not satisfy the filter", r.ID)
				}
			}
		})
	}
}

func TestProjectKeepsOrderAndInput(t *testing.T) {
	all := []models.Record{rec(3, "x", "", false), rec(1, "x", "", false), rec(2, "y", "", false)}
	got := Project(all, Filter{Query: "x"})
	if !equalInts(ids(got), []int{3, 1}) {
		t.Fatalf("order not preserved: %v", ids(got))
	}
	if len(all) != 3 || all[0].ID != 3 {
		t.Fatal("input modified")
	}
}
