package course

import "testing"

func TestDetectContent(t *testing.T) {
	tests := []struct {
		name     string
		videoURL string
		fileURL  string
		text     string
		want     ContentKind
	}{
		{"video only", "https://cdn/v.mp4", "", "", ContentVideo},
		{"file only", "", "https://cdn/slides.pdf", "", ContentFile},
		{"text only", "", "", "read this", ContentText},
		{"nothing", "", "", "", ContentNone},
		{"video wins over file", "https://cdn/v.mp4", "https://cdn/f.pdf", "", ContentVideo},
		{"video wins over text", "https://cdn/v.mp4", "", "body", ContentVideo},
		{"file wins over text", "", "https://cdn/f.pdf", "body", ContentFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectContent(tt.videoURL, tt.fileURL, tt.text)
			if got.Kind != tt.want {
				t.Errorf("DetectContent(%q, %q, %q).Kind = %v, want %v",
					tt.videoURL, tt.fileURL, tt.text, got.Kind, tt.want)
			}
		})
	}
}

func TestContentKindString(t *testing.T) {
	tests := []struct {
		kind ContentKind
		want string
	}{
		{ContentVideo, "video"},
		{ContentFile, "file"},
		{ContentText, "text"},
		{ContentNone, "none"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ContentKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
