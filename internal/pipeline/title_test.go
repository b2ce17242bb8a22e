package pipeline

// Notes:
// - Titles feed the index listing, so the cases focus on which <h1> wins
//   and how its text is assembled, not on general HTML parsing

import "testing"

// ---------------------------------------------------------------------------
// TestExtractTitle
// ---------------------------------------------------------------------------

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"simple", "<h1>Intro</h1><p>x</p>", "Intro", true},
		{"first wins", "<h1>One</h1><h1>Two</h1>", "One", true},
		{"attributes and whitespace", `<h1 id="sec-a">  Spaced  </h1>`, "Spaced", true},
		{"nested inline text concatenated", "<h1>Go <em>fast</em>!</h1>", "Go fast!", true},
		{"entities decoded", "<h1>Tom &amp; Jerry</h1>", "Tom & Jerry", true},
		{"uppercase tag", "<H1>Loud</H1>", "Loud", true},
		{"empty h1 skipped", "<h1>  </h1><h1>Real</h1>", "Real", true},
		{"unclosed h1", "<h1>Open", "Open", true},
		{"h2 only", "<h2>Sub</h2>", "", false},
		{"no headings", "<p>plain</p>", "", false},
		{"empty", "", "", false},
		{"h1 inside comment ignored", "<!-- <h1>No</h1> --><p>x</p>", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ExtractTitle([]byte(tt.input))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("title = %q, want %q", got, tt.want)
			}
		})
	}
}
