package qsim

import (
	"reflect"
	"testing"
)

// ═══════════════════════════════════════════════════════════════════════════════
// TOKENIZER TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "whitespace only",
			text: "  \t\n ",
			want: []string{},
		},
		{
			name: "stop words and short tokens removed",
			text: "Do you encrypt data at rest?",
			want: []string{"encrypt", "data", "rest"},
		},
		{
			name: "written policy",
			text: "Do you have a written information security policy?",
			want: []string{"written", "information", "security", "policy"},
		},
		{
			name: "maintained policy",
			text: "Do you maintain a written information security policy?",
			want: []string{"maintain", "written", "information", "security", "policy"},
		},
		{
			name: "no stemming by default",
			text: "Is data encrypted while stored?",
			want: []string{"data", "encrypted", "while", "stored"},
		},
		{
			name: "punctuation splits words",
			text: "Penetration-test results (annual)",
			want: []string{"penetration", "test", "results", "annual"},
		},
		{
			name: "duplicates and order preserved",
			text: "Backup, backup and BACKUP restore",
			want: []string{"backup", "backup", "backup", "restore"},
		},
		{
			name: "question framing removed",
			text: "Please describe and explain your process regarding access reviews",
			want: []string{"process", "access", "reviews"},
		},
		{
			name: "digits kept",
			text: "Are you SOC2 or ISO 27001 certified?",
			want: []string{"soc2", "iso", "27001", "certified"},
		},
		{
			name: "compatibility characters normalized",
			text: "Is a ﬁrewall deployed?",
			want: []string{"firewall", "deployed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if got == nil {
				t.Fatal("Tokenize() returned nil, want empty slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	text := "How do you manage third-party vendor risk assessments?"

	first := Tokenize(text)
	second := Tokenize(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Tokenize is not deterministic: %v vs %v", first, second)
	}
}

func TestAnalyzer_MinTokenLength(t *testing.T) {
	analyzer := NewAnalyzer(AnalyzerConfig{MinTokenLength: 2})

	got := analyzer.Tokenize("an IT ok go")
	want := []string{"ok", "go"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestAnalyzer_MinTokenLengthCountsRunes(t *testing.T) {
	analyzer := NewAnalyzer(DefaultAnalyzerConfig())

	// "été" is three runes but six bytes
	got := analyzer.Tokenize("été ça")
	want := []string{"été"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestAnalyzer_Stemming(t *testing.T) {
	analyzer := NewAnalyzer(AnalyzerConfig{MinTokenLength: 3, EnableStemming: true})

	got := analyzer.Tokenize("encrypted backups")
	want := []string{"encrypt", "backup"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestAnalyzer_ExtraStopwords(t *testing.T) {
	analyzer := NewAnalyzer(AnalyzerConfig{
		MinTokenLength: 3,
		ExtraStopwords: []string{" Vendor "},
	})

	got := analyzer.Tokenize("Vendor access review")
	want := []string{"access", "review"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestIsStopword(t *testing.T) {
	for _, word := range []string{"the", "You", "describe", "regarding", "provide", "explain"} {
		if !IsStopword(word) {
			t.Errorf("IsStopword(%q) = false, want true", word)
		}
	}
	for _, word := range []string{"encrypt", "data", "rest", "while", "policy", "security", "system"} {
		if IsStopword(word) {
			t.Errorf("IsStopword(%q) = true, want false", word)
		}
	}
}

func BenchmarkTokenize(b *testing.B) {
	text := "Does your organization maintain a documented incident response plan that is tested at least annually?"
	for i := 0; i < b.N; i++ {
		Tokenize(text)
	}
}
