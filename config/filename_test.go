package config

import "testing"

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"main.css", "main.css"},
		{"a/b.css", "ab.css"},
		{"..", "_bad_file_name_"},
		{"...theme.less", "theme.less"},
		{"", "_bad_file_name_"},
		{"tab\tname", "tabname"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
