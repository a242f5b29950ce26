package language

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantName string
		wantErr  bool
	}{
		{name: "english", in: "en", wantName: "English"},
		{name: "french", in: "fr", wantName: "French"},
		{name: "regional", in: "pt-BR", wantName: "Brazilian Portuguese"},
		{name: "spaces trimmed", in: "  de ", wantName: "German"},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "!!", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.in, err)
			}
			if target.Name != tc.wantName {
				t.Errorf("Parse(%q).Name = %q; want %q", tc.in, target.Name, tc.wantName)
			}
		})
	}
}

func TestInstruction_MentionsLanguage(t *testing.T) {
	target, err := Parse("fr")
	if err != nil {
		t.Fatal(err)
	}
	inst := target.Instruction()
	if !strings.Contains(inst, "French") {
		t.Errorf("instruction %q does not mention the target language", inst)
	}
	// l'instruction est fixe : deux appels donnent le même texte
	if inst != target.Instruction() {
		t.Error("instruction is not stable across calls")
	}
}
