package hours

import "testing"

func TestParseRanges(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{"single range", "09:00-17:00", 1, false},
		{"split day", "09:00-12:00,14:00-18:00", 2, false},
		{"spaces tolerated", " 09:00 - 12:00 , 14:00-18:00", 2, false},
		{"reversed", "17:00-09:00", 0, true},
		{"zero width", "09:00-09:00", 0, true},
		{"malformed", "9am-5pm", 0, true},
		{"missing end", "09:00-", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRanges(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRanges(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}
