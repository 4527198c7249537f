package usecase

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	cases := []struct {
		name    string
		raw     string
		want    payload
		wantErr bool
	}{
		{
			name: "plain object",
			raw:  `{"name":"acme","score":42}`,
			want: payload{Name: "acme", Score: 42},
		},
		{
			name: "prose around object",
			raw:  "Sure! Here is the result you asked for:\n{\"name\":\"acme\",\"score\":42}\nLet me know if you need anything else.",
			want: payload{Name: "acme", Score: 42},
		},
		{
			name: "fenced json block",
			raw:  "```json\n{\"name\":\"acme\",\"score\":42}\n```",
			want: payload{Name: "acme", Score: 42},
		},
		{
			name: "generic fence",
			raw:  "```\n{\"name\":\"acme\",\"score\":42}\n```",
			want: payload{Name: "acme", Score: 42},
		},
		{
			name: "braces inside string literal",
			raw:  `result: {"name":"acme {inc}","score":7} trailing`,
			want: payload{Name: "acme {inc}", Score: 7},
		},
		{
			name:    "no object at all",
			raw:     "I could not determine any competitors.",
			wantErr: true,
		},
		{
			name:    "unterminated object",
			raw:     `{"name":"acme","score":`,
			wantErr: true,
		},
		{
			name:    "malformed object",
			raw:     `{"name":acme}`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got payload
			err := ExtractJSON(tc.raw, &got)

			if tc.wantErr {
				if !errors.Is(err, ErrNoJSON) {
					t.Fatalf("expected ErrNoJSON, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSON returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected payload: %+v", got)
			}
		})
	}
}
