package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIdentifier(t *testing.T) {
	tests := []struct {
		name string
		ids  []industryIdentifier
		want string
	}{
		{
			name: "isbn13 preferred over isbn10 regardless of order",
			ids: []industryIdentifier{
				{Type: "ISBN_10", Identifier: "0000000000"},
				{Type: "ISBN_13", Identifier: "9780000000000"},
			},
			want: "9780000000000",
		},
		{
			name: "isbn10 when no isbn13",
			ids: []industryIdentifier{
				{Type: "ISBN_10", Identifier: "0441013597"},
			},
			want: "0441013597",
		},
		{
			name: "oclc marker stripped",
			ids: []industryIdentifier{
				{Type: "OTHER", Identifier: "OCLC:12345"},
			},
			want: "12345",
		},
		{
			name: "numeric other accepted as isbn",
			ids: []industryIdentifier{
				{Type: "OTHER", Identifier: "9780441013593"},
			},
			want: "9780441013593",
		},
		{
			name: "non numeric other rejected",
			ids: []industryIdentifier{
				{Type: "OTHER", Identifier: "UOM:39015002}"},
			},
			want: "",
		},
		{
			name: "wrong length numeric other rejected",
			ids: []industryIdentifier{
				{Type: "OTHER", Identifier: "12345"},
			},
			want: "",
		},
		{
			name: "empty list",
			ids:  nil,
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractIdentifier(tc.ids))
		})
	}
}

func TestParsePublishedDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1999", "1999"},
		{"1999-05", "1999-05"},
		{"1999-05-20", "1999-05-20"},
		{"99", ""},
		{"1999-13", ""},
		{"not a date 1", ""},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ParsePublishedDate(tc.raw), "input %q", tc.raw)
	}
}
