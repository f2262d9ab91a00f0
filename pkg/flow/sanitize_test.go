package flow

import (
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	cols := DefaultColumns()
	fb := DefaultFallbacks()

	tests := []struct {
		name string
		in   RawRecord
		want CleanedRecord
	}{
		{
			name: "plain",
			in:   RawRecord{"country": "USA", "discipline": "Swimming", "gender": "Male"},
			want: CleanedRecord{Country: "USA", CategoryRaw: "Swimming", Subgroup: "Male"},
		},
		{
			name: "trims whitespace",
			in:   RawRecord{"country": "  France ", "discipline": "\tJudo\n", "gender": " Female"},
			want: CleanedRecord{Country: "France", CategoryRaw: "Judo", Subgroup: "Female"},
		},
		{
			name: "blank fields fall back",
			in:   RawRecord{"country": "   ", "discipline": "", "gender": nil},
			want: CleanedRecord{Country: UnknownCountry, CategoryRaw: UnknownDiscipline, Subgroup: Unknown},
		},
		{
			name: "absent fields fall back",
			in:   RawRecord{},
			want: CleanedRecord{Country: UnknownCountry, CategoryRaw: UnknownDiscipline, Subgroup: Unknown},
		},
		{
			name: "non-string values are coerced",
			in:   RawRecord{"country": 42, "discipline": 3.5, "gender": true},
			want: CleanedRecord{Country: "42", CategoryRaw: "3.5", Subgroup: "true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in, cols, fb); got != tt.want {
				t.Errorf("Sanitize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSanitizeEventFallback(t *testing.T) {
	v, ok := LookupVariant(VariantEvents)
	if !ok {
		t.Fatal("events variant missing")
	}
	got := Sanitize(RawRecord{"country": "USA"}, v.Columns, v.Fallbacks)
	if got.CategoryRaw != Unknown {
		t.Errorf("CategoryRaw = %q, want %q", got.CategoryRaw, Unknown)
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{[]byte("bytes"), "bytes"},
		{7, "7"},
		{time.Second, "1s"},
	}

	for _, tt := range tests {
		if got := Coerce(tt.in); got != tt.want {
			t.Errorf("Coerce(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
