package backend

import "testing"

func TestResolveOrigin_ConfiguredWins(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		public     string
		want       string
	}{
		{
			name:       "explicit origin used verbatim",
			configured: "https://api.example.com",
			public:     "https://influence-ui.onrender.com",
			want:       "https://api.example.com",
		},
		{
			name:       "trailing slash trimmed",
			configured: "https://api.example.com/",
			public:     "",
			want:       "https://api.example.com",
		},
		{
			name:       "explicit origin beats heuristic regardless of location",
			configured: "http://backend.internal:9000",
			public:     "https://whatever-ui.onrender.com",
			want:       "http://backend.internal:9000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveOrigin(tt.configured, tt.public); got != tt.want {
				t.Fatalf("ResolveOrigin(%q, %q) = %q, want %q", tt.configured, tt.public, got, tt.want)
			}
		})
	}
}

func TestResolveOrigin_RenderHeuristic(t *testing.T) {
	tests := []struct {
		name   string
		public string
		want   string
	}{
		{
			name:   "ui token substituted",
			public: "https://influence-ui.onrender.com",
			want:   "https://influence-api.onrender.com",
		},
		{
			name:   "arbitrary service name with ui token",
			public: "https://myapp-ui.onrender.com",
			want:   "https://myapp-api.onrender.com",
		},
		{
			name:   "name fallback without ui token",
			public: "https://influence-ui-xyz.onrender.com",
			want:   "https://influence-api-xyz.onrender.com",
		},
		{
			name: "pattern absent keeps origin unchanged",
			// Best effort only: an unknown naming scheme degrades to a
			// visible connection failure, never a silent guess.
			public: "https://something.onrender.com",
			want:   "https://something.onrender.com",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveOrigin("http://127.0.0.1:8000", tt.public); got != tt.want {
				t.Fatalf("ResolveOrigin(placeholder, %q) = %q, want %q", tt.public, got, tt.want)
			}
		})
	}
}

func TestResolveOrigin_Default(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		public     string
	}{
		{"placeholder config and plain host", "http://127.0.0.1:8000", "http://localhost:3000"},
		{"empty config", "", ""},
		{"placeholder config and no public origin", "http://127.0.0.1:8000", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveOrigin(tt.configured, tt.public); got != defaultOrigin {
				t.Fatalf("ResolveOrigin(%q, %q) = %q, want default %q", tt.configured, tt.public, got, defaultOrigin)
			}
		})
	}
}

func TestResolveOrigin_Deterministic(t *testing.T) {
	first := ResolveOrigin("http://127.0.0.1:8000", "https://acme-ui.onrender.com")
	for i := 0; i < 5; i++ {
		if got := ResolveOrigin("http://127.0.0.1:8000", "https://acme-ui.onrender.com"); got != first {
			t.Fatalf("resolution not deterministic: %q then %q", first, got)
		}
	}
}
