package selector

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func equalColumns(a ResolvedColumns, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		spec       ColumnSpec
		tableWidth int
		want       []int
	}{
		{
			name:       "literal list preserved in order",
			spec:       ColumnSpec{StartOrList: []int{3, 5, 8}},
			tableWidth: 10,
			want:       []int{3, 5, 8},
		},
		{
			name:       "literal list filtered by width",
			spec:       ColumnSpec{StartOrList: []int{3, 5, 8}},
			tableWidth: 4,
			want:       []int{3},
		},
		{
			name:       "start plus count yields consecutive run",
			spec:       ColumnSpec{StartOrList: []int{3}, Count: intPtr(2)},
			tableWidth: 10,
			want:       []int{3, 4},
		},
		{
			name:       "extra list values ignored when count given",
			spec:       ColumnSpec{StartOrList: []int{3, 7, 9}, Count: intPtr(2)},
			tableWidth: 10,
			want:       []int{3, 4},
		},
		{
			name:       "count alone starts from column 1",
			spec:       ColumnSpec{Count: intPtr(2)},
			tableWidth: 10,
			want:       []int{1, 2},
		},
		{
			name:       "neither given uses all columns",
			spec:       ColumnSpec{},
			tableWidth: 4,
			want:       []int{1, 2, 3, 4},
		},
		{
			name:       "duplicates in literal list preserved",
			spec:       ColumnSpec{StartOrList: []int{2, 2, 1}},
			tableWidth: 3,
			want:       []int{2, 2, 1},
		},
		{
			name:       "run clipped at table width",
			spec:       ColumnSpec{StartOrList: []int{3}, Count: intPtr(5)},
			tableWidth: 4,
			want:       []int{3, 4},
		},
		{
			name:       "non-positive positions filtered",
			spec:       ColumnSpec{StartOrList: []int{0, -1, 2}},
			tableWidth: 4,
			want:       []int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.spec, tt.tableWidth)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if !equalColumns(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			for _, col := range got {
				if col < 1 || col > tt.tableWidth {
					t.Errorf("column %d outside [1, %d]", col, tt.tableWidth)
				}
			}
		})
	}
}

func TestResolve_NoValidColumns(t *testing.T) {
	tests := []struct {
		name       string
		spec       ColumnSpec
		tableWidth int
	}{
		{
			name:       "list entirely out of range",
			spec:       ColumnSpec{StartOrList: []int{50}},
			tableWidth: 4,
		},
		{
			name:       "run entirely out of range",
			spec:       ColumnSpec{StartOrList: []int{10}, Count: intPtr(3)},
			tableWidth: 4,
		},
		{
			name:       "zero count",
			spec:       ColumnSpec{Count: intPtr(0)},
			tableWidth: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.spec, tt.tableWidth)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidColumnSpec) {
				t.Errorf("expected ErrInvalidColumnSpec, got %v", err)
			}
		})
	}
}

func TestParseStartOrList(t *testing.T) {
	tests := []struct {
		raw  string
		want []int
	}{
		{"", nil},
		{"3", []int{3}},
		{"3-5-8", []int{3, 5, 8}},
	}

	for _, tt := range tests {
		got, err := ParseStartOrList(tt.raw)
		if err != nil {
			t.Fatalf("ParseStartOrList(%q) returned error: %v", tt.raw, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("ParseStartOrList(%q): expected %v, got %v", tt.raw, tt.want, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseStartOrList(%q): expected %v, got %v", tt.raw, tt.want, got)
			}
		}
	}
}

func TestParseStartOrList_InvalidTokens(t *testing.T) {
	for _, raw := range []string{"a", "3-x-8", "3--5", "-3"} {
		_, err := ParseStartOrList(raw)
		if err == nil {
			t.Fatalf("ParseStartOrList(%q): expected error, got nil", raw)
		}
		if !errors.Is(err, ErrInvalidColumnSpec) {
			t.Errorf("ParseStartOrList(%q): expected ErrInvalidColumnSpec, got %v", raw, err)
		}
	}
}

func TestResolvedColumns_String(t *testing.T) {
	rc := ResolvedColumns{3, 5, 8}
	if got := rc.String(); got != "3,5,8" {
		t.Errorf("expected \"3,5,8\", got %q", got)
	}
}
