package llm

import (
	"errors"
	"testing"

	"github.com/docuparse/invoice-parser/internal/common"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "bare object",
			in:   `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "code fenced",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "prose around object",
			in:   `Here is the extracted data: {"total": 12.5} Let me know if you need more.`,
			want: `{"total": 12.5}`,
		},
		{
			name: "nested braces",
			in:   `{"vendor": {"name": "x"}}`,
			want: `{"vendor": {"name": "x"}}`,
		},
		{
			name: "whitespace padded object",
			in:   "  \n {\"a\": 1} \n ",
			want: `{"a": 1}`,
		},
		{
			name:    "no object",
			in:      "I could not read the document.",
			wantErr: true,
		},
		{
			name:    "empty response",
			in:      "",
			wantErr: true,
		},
		{
			name:    "unbalanced braces",
			in:      `{"a": 1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if !errors.Is(err, common.ErrResponseParse) {
					t.Fatalf("expected ErrResponseParse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}
