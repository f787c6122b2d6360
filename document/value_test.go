package document

import "testing"

func TestRawString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `This is a test`, `#"This is a test"#`},
		{"one embedded quote", `This "is" a test`, `#"This "is" a test"#`},
		{"embedded hash-quote", `This #"is"# a test`, `##"This #"is"# a test"##`},
		{"empty", ``, `#""#`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rawString(tt.in); got != tt.want {
				t.Errorf("rawString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRawString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"one hash level", `r#"[id="node-node"]"#`, `[id="node-node"]`, false},
		{"no hash level", `r"plain text"`, `plain text`, false},
		{"two hash levels", `r##"a "# b"##`, `a "# b`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRawString([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRawString(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseRawString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSuffixedDecimalRoundTrip(t *testing.T) {
	sd, err := ParseSuffixedDecimal([]byte("32kb"))
	if err != nil {
		t.Fatalf("ParseSuffixedDecimal: %v", err)
	}
	if sd.String() != "32kb" {
		t.Errorf("String() = %q, want %q", sd.String(), "32kb")
	}
	n, err := sd.AsNumber()
	if err != nil {
		t.Fatalf("AsNumber: %v", err)
	}
	if f, ok := n.(float64); !ok || f != 32*1024 {
		t.Errorf("AsNumber() = %v (%T), want %v", n, n, float64(32*1024))
	}
}

func TestSuffixedDecimalAsDuration(t *testing.T) {
	sd, err := ParseSuffixedDecimal([]byte("15s"))
	if err != nil {
		t.Fatalf("ParseSuffixedDecimal: %v", err)
	}
	d, err := sd.AsDuration()
	if err != nil {
		t.Fatalf("AsDuration: %v", err)
	}
	if d.Seconds() != 15 {
		t.Errorf("AsDuration() = %v, want 15s", d)
	}
}

func TestParseSuffixedDecimalNoDigits(t *testing.T) {
	if _, err := ParseSuffixedDecimal([]byte("kb")); err == nil {
		t.Error("expected error for suffix with no leading digits")
	}
}
