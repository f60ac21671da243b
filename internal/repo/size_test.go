package repo

import "testing"

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00KB"},
		{512, "0.50KB"},
		{2048, "2.00KB"},
		{1048575, "1024.00KB"},
		{1048576, "1.00MB"},
		{5 * 1024 * 1024, "5.00MB"},
		{1073741824, "1.00GB"},
		{3 * 1073741824 / 2, "1.50GB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
