package ports

import "testing"

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"quiet", LevelQuiet},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestImageFormat(t *testing.T) {
	tests := []struct {
		in   string
		want ImageFormat
		mime string
	}{
		{"jpeg", FormatJPEG, "image/jpeg"},
		{"JPG", FormatJPEG, "image/jpeg"},
		{"png", FormatPNG, "image/png"},
		{"WebP", FormatWebP, "image/webp"},
		{"gif", FormatJPEG, "image/jpeg"},
	}

	for _, tt := range tests {
		got := ParseImageFormat(tt.in)
		if got != tt.want {
			t.Errorf("ParseImageFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.MIMEType() != tt.mime {
			t.Errorf("%v.MIMEType() = %q, want %q", got, got.MIMEType(), tt.mime)
		}
	}
}
