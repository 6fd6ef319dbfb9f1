package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantID  int64
		wantOK  bool
	}{
		{"well-formed", "STUDENT_ID:42", 42, true},
		{"surrounding whitespace", "  STUDENT_ID:7\n", 7, true},
		{"missing tag", "garbage", 0, false},
		{"empty", "", 0, false},
		{"non-numeric remainder", "STUDENT_ID:abc", 0, false},
		{"empty remainder", "STUDENT_ID:", 0, false},
		{"zero identity", "STUDENT_ID:0", 0, false},
		{"negative identity", "STUDENT_ID:-3", 0, false},
		{"foreign barcode", "https://example.com/x", 0, false},
		{"tag not at start", "XSTUDENT_ID:42", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParsePayload(tt.payload)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
