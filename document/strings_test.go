package document

import "testing"

func TestQuoteString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "This is a test", `"This is a test"`},
		{"embedded quote", "This \"is\" a test", `"This \"is\" a test"`},
		{"embedded tab mid-string", "This is\ta test", `"This is\ta test"`},
		{"trailing tab", "This is a test\t", `"This is a test\t"`},
		{"trailing backslash", "This is a test\\", `"This is a test\\"`},
		{"empty", "", `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteString(tt.in); got != tt.want {
				t.Errorf("QuoteString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAppendQuotedStringCustomQuote(t *testing.T) {
	got := string(AppendQuotedString(nil, `a "b" c`, '\''))
	want := `'a "b" c'`
	if got != want {
		t.Errorf("AppendQuotedString with custom quote = %q, want %q", got, want)
	}
}

func TestUnquoteString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", `"This is a test"`, "This is a test", false},
		{"escaped quote", `"This \"is\" a test"`, "This \"is\" a test", false},
		{"escaped tab mid-string", `"This is\ta test"`, "This is\ta test", false},
		{"escaped tab trailing", `"This is a test\t"`, "This is a test\t", false},
		{"dangling backslash", `"This is a test\"`, "", true},
		{"empty string literal", `""`, "", false},
		{"unterminated", `"`, "", true},
		{"single char", `"x"`, "x", false},
		{"single char plus tab", `"x\t"`, "x\t", false},
		{"leading tab", `"\tx"`, "\tx", false},
		{"just a tab", `"\t"`, "\t", false},
		{"multibyte passthrough", `"This is a test😀"`, "This is a test😀", false},
		{"multibyte after escape", `"This is a test\t😀"`, "This is a test\t😀", false},
		{"unicode escape", `"\u{0020}"`, " ", false},
		{"unicode escape out of range", `"\u{1000000}"`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnquoteString(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnquoteString(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("UnquoteString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
