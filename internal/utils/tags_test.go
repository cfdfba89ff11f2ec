package utils

import (
	"reflect"
	"testing"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no tags",
			text: "wrote the quarterly report",
			want: nil,
		},
		{
			name: "single tag",
			text: "fixed login bug #backend",
			want: []string{"backend"},
		},
		{
			name: "multiple tags",
			text: "#deep-work on the parser #compiler",
			want: []string{"deep-work", "compiler"},
		},
		{
			name: "duplicates collapsed",
			text: "#go refactor #GO cleanup",
			want: []string{"go"},
		},
		{
			name: "trailing punctuation stripped",
			text: "shipped release #v2, finally!",
			want: []string{"v2"},
		},
		{
			name: "bare hash ignored",
			text: "issue # 42",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTags(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTags(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
