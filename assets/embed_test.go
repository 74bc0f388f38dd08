package assets

import "testing"

func TestCleanAssetPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"audio/dirt_step.wav", "audio/dirt_step.wav"},
		{"assets/audio/dirt_step.wav", "audio/dirt_step.wav"},
		{"/home/dev/bowstep/assets/audio/theme.wav", "audio/theme.wav"},
	}
	for _, tc := range tests {
		if got := cleanAssetPath(tc.in); got != tc.want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoadFileCaches(t *testing.T) {
	a, err := LoadFile("audio/dirt_step.wav")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	b, err := LoadFile("assets/audio/dirt_step.wav")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(a) == 0 || &a[0] != &b[0] {
		t.Fatalf("expected cached bytes to be shared")
	}
	if _, err := LoadFile("audio/nope.wav"); err == nil {
		t.Fatalf("expected error for missing asset")
	}
}
