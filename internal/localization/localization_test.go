package localization

import "testing"

func TestGet(t *testing.T) {
	s, err := NewService()
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	tests := []struct {
		name   string
		lang   string
		key    string
		params map[string]interface{}
		want   string
	}{
		{
			name: "english",
			lang: "en",
			key:  "buy.demo_disabled",
			want: "🚧 Purchasing is not available in demo mode.",
		},
		{
			name:   "placeholders",
			lang:   "ru",
			key:    "stats.users",
			params: map[string]interface{}{"count": 7},
			want:   "👥 Пользователей: 7",
		},
		{
			name: "unknown language falls back to english",
			lang: "de",
			key:  "errors.generic",
			want: "❌ Error. Please try again later.",
		},
		{
			name: "missing arabic key falls back to english",
			lang: "ar",
			key:  "stats.refresh",
			want: "🔄 Refresh",
		},
		{
			name: "unknown key returns key",
			lang: "en",
			key:  "buy.nothing",
			want: "buy.nothing",
		},
		{
			name: "section instead of leaf returns key",
			lang: "en",
			key:  "buy",
			want: "buy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Get(tt.lang, tt.key, tt.params); got != tt.want {
				t.Errorf("Get(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	s, err := NewService()
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	tests := map[string]string{
		"en":    "en",
		"en-US": "en",
		"RU":    "ru",
		"ar_EG": "ar",
		"de":    "en",
		"":      "en",
	}

	for input, want := range tests {
		if got := s.Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}
