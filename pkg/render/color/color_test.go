package color

import (
	"testing"

	"github.com/matzehuels/energydiagram/pkg/errors"
)

func TestHex(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"", "#000000"},
		{"k", "#000000"},
		{"w", "#ffffff"},
		{"r", "#ff0000"},
		{"g", "#008000"},
		{"c", "#00bfbf"},
		{"C0", "#1f77b4"},
		{"C9", "#17becf"},
		{"tab:orange", "#ff7f0e"},
		{"TAB:Grey", "#7f7f7f"},
		{"DarkRed", "#8b0000"},
		{"#f00", "#ff0000"},
		{"#1F77B4", "#1f77b4"},
		{"0", "#000000"},
		{"1.0", "#ffffff"},
		{" b ", "#0000ff"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Hex(tt.spec)
			if err != nil {
				t.Fatalf("Hex(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Hex(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, spec := range []string{"blurple", "tab:teal", "#12", "#xyzxyz", "1.5", "-0.1", "c0", "C10"} {
		t.Run(spec, func(t *testing.T) {
			_, err := Parse(spec)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", spec)
			}
			if !errors.Is(err, errors.ErrCodeInvalidColor) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidColor)
			}
		})
	}
}

func TestHexOr(t *testing.T) {
	if got := HexOr("nope", "#123456"); got != "#123456" {
		t.Errorf("HexOr() = %q, want fallback", got)
	}
	if got := HexOr("k", "#123456"); got != "#000000" {
		t.Errorf("HexOr() = %q, want #000000", got)
	}
	if Valid("nope") || !Valid("tab:blue") {
		t.Error("Valid() disagrees with Parse()")
	}
}
