package action

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Kind
		wantError bool
	}{
		{
			name:  "not defined",
			input: "Not defined",
			want:  NotDefined,
		},
		{
			name:  "ignore",
			input: "Ignore",
			want:  Ignore,
		},
		{
			name:  "copy",
			input: "Copy",
			want:  Copy,
		},
		{
			name:  "move",
			input: "Move",
			want:  Move,
		},
		{
			name:  "delete",
			input: "Delete",
			want:  Delete,
		},
		{
			name:      "case sensitive",
			input:     "move",
			wantError: true,
		},
		{
			name:      "unknown",
			input:     "Rename",
			wantError: true,
		},
		{
			name:      "empty",
			input:     "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantError {
				t.Fatalf("ParseKind(%q) error = %v, wantError %v", tt.input, err, tt.wantError)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("ParseKind(%q) error = %v, want ErrInvalidArgument", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		source    string
		target    string
		wantError bool
	}{
		{
			name:   "delete needs no target",
			kind:   Delete,
			source: "/src/a",
		},
		{
			name:   "ignore needs no target",
			kind:   Ignore,
			source: "/src/a",
		},
		{
			name:   "copy with target",
			kind:   Copy,
			source: "/src/a",
			target: "/dst/a",
		},
		{
			name:      "copy without target",
			kind:      Copy,
			source:    "/src/a",
			wantError: true,
		},
		{
			name:      "move without target",
			kind:      Move,
			source:    "/src/a",
			wantError: true,
		},
		{
			name:      "unknown kind",
			kind:      Kind(42),
			source:    "/src/a",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.kind, tt.source, tt.target, 1)
			if (err != nil) != tt.wantError {
				t.Fatalf("New() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("New() error = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if a.Kind != tt.kind {
				t.Errorf("New() kind = %v, want %v", a.Kind, tt.kind)
			}
		})
	}
}

func TestNewTargetIsFile(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{
			name:   "extension marks a file",
			target: "/dst/report.txt",
			want:   true,
		},
		{
			name:   "no extension reads as directory",
			target: "/dst/reports",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(Copy, "/src/a", tt.target, 1)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := a.TargetIsFile(); got != tt.want {
				t.Errorf("TargetIsFile() = %v, want %v", got, tt.want)
			}

			a.MarkTargetAsFile()
			if !a.TargetIsFile() {
				t.Error("TargetIsFile() = false after MarkTargetAsFile")
			}
		})
	}
}

func TestIgnoreSubfolder(t *testing.T) {
	a, err := New(Copy, "/src", "/dst", 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := a.IgnoreSubfolder("/src/skip", false); err != nil {
		t.Fatalf("IgnoreSubfolder() error = %v", err)
	}
	if got := a.Excluded(); len(got) != 1 || got[0] != "/src/skip" {
		t.Errorf("Excluded() = %v, want [/src/skip]", got)
	}

	if err := a.IgnoreSubfolder("/src/other", true); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("IgnoreSubfolder() on file source error = %v, want ErrInvalidArgument", err)
	}
}

func TestClone(t *testing.T) {
	a, err := New(Copy, "/src", "/dst", 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := a.IgnoreSubfolder("/src/skip", false); err != nil {
		t.Fatalf("IgnoreSubfolder() error = %v", err)
	}

	c := a.Clone()
	if err := c.IgnoreSubfolder("/src/more", false); err != nil {
		t.Fatalf("IgnoreSubfolder() error = %v", err)
	}

	if len(a.Excluded()) != 1 {
		t.Errorf("original exclusion set changed by clone: %v", a.Excluded())
	}
	if len(c.Excluded()) != 2 {
		t.Errorf("clone exclusion set = %v, want two entries", c.Excluded())
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		target string
		want   string
	}{
		{
			name: "delete omits target",
			kind: Delete,
			want: "Delete /src/a",
		},
		{
			name:   "move shows target",
			kind:   Move,
			target: "/dst/a",
			want:   "Move /src/a -> /dst/a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.kind, "/src/a", tt.target, 1)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := a.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
