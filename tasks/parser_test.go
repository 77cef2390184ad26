package tasks

import (
	"reflect"
	"testing"
)

func TestParse_TaskLines(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []Task
	}{
		{
			name: "two pending tasks",
			doc:  "- [ ] 1. Setup\n- [ ] 2. Build",
			want: []Task{
				{ID: "1", Description: "Setup", Status: StatusPending, RawText: "- [ ] 1. Setup"},
				{ID: "2", Description: "Build", Status: StatusPending, RawText: "- [ ] 2. Build"},
			},
		},
		{
			name: "completed marker",
			doc:  "- [x] 1. Setup\n- [ ] 2. Build",
			want: []Task{
				{ID: "1", Description: "Setup", Status: StatusCompleted, RawText: "- [x] 1. Setup"},
				{ID: "2", Description: "Build", Status: StatusPending, RawText: "- [ ] 2. Build"},
			},
		},
		{
			name: "nested ids with indentation and colon separator",
			doc:  "- [ ] 2. Parent\n  - [ ] 2.1: Child",
			want: []Task{
				{ID: "2", Description: "Parent", Status: StatusPending, RawText: "- [ ] 2. Parent"},
				{ID: "2.1", Description: "Child", Status: StatusPending, ParentTaskID: "2", RawText: "  - [ ] 2.1: Child"},
			},
		},
		{
			name: "malformed lines are skipped",
			doc:  "# Tasks\n- [ ] 1. Real\n- [] no id here\n- [ ] also no id\n- [ ] 2. Also real",
			want: []Task{
				{ID: "1", Description: "Real", Status: StatusPending, RawText: "- [ ] 1. Real"},
				{ID: "2", Description: "Also real", Status: StatusPending, RawText: "- [ ] 2. Also real"},
			},
		},
		{
			name: "empty document",
			doc:  "",
			want: nil,
		},
		{
			name: "whitespace only",
			doc:  "   \n\t\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.doc)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParse_Metadata(t *testing.T) {
	doc := "- [ ] 1. A\n- [ ] 2. B\n  - _Requirements: 3.2_\n  - _Leverage: internal/auth_"
	got := Parse(doc)
	if len(got) != 2 {
		t.Fatalf("len(Parse()) = %d, want 2", len(got))
	}
	if got[0].RequirementsRef != "" {
		t.Errorf("task 1 RequirementsRef = %q, want empty", got[0].RequirementsRef)
	}
	if got[1].RequirementsRef != "3.2" {
		t.Errorf("task 2 RequirementsRef = %q, want 3.2", got[1].RequirementsRef)
	}
	if got[1].LeverageRef != "internal/auth" {
		t.Errorf("task 2 LeverageRef = %q, want internal/auth", got[1].LeverageRef)
	}
}

func TestParse_MetadataLastOccurrenceWins(t *testing.T) {
	doc := "- [ ] 1. A\n  - _Requirements: 1.1_\n  - _Requirements: 9.9_"
	got := Parse(doc)
	if len(got) != 1 {
		t.Fatalf("len(Parse()) = %d, want 1", len(got))
	}
	if got[0].RequirementsRef != "9.9" {
		t.Errorf("RequirementsRef = %q, want 9.9 (last occurrence wins)", got[0].RequirementsRef)
	}
}

func TestParse_MetadataBlockEndsAtBlankThenUnindented(t *testing.T) {
	// Blank line followed by a non-indented non-list line closes the block;
	// metadata after that point no longer attaches to task 1.
	doc := "- [ ] 1. A\n\nSome prose paragraph.\n_Requirements: 4.4_"
	got := Parse(doc)
	if len(got) != 1 {
		t.Fatalf("len(Parse()) = %d, want 1", len(got))
	}
	if got[0].RequirementsRef != "" {
		t.Errorf("RequirementsRef = %q, want empty after block closed", got[0].RequirementsRef)
	}
}

func TestParse_MetadataBlockSurvivesBlankBeforeIndentedLine(t *testing.T) {
	doc := "- [ ] 1. A\n\n  _Requirements: 2.2_"
	got := Parse(doc)
	if got[0].RequirementsRef != "2.2" {
		t.Errorf("RequirementsRef = %q, want 2.2 (indented line keeps block open)", got[0].RequirementsRef)
	}
}

func TestParse_Idempotent(t *testing.T) {
	doc := "- [x] 1. Setup\n- [ ] 2. Build\n  - _Requirements: 1.2_\n- [ ] 2.1 Sub"
	first := Parse(doc)
	second := Parse(doc)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse() not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}
