package mask

import (
	"reflect"
	"testing"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantMasked string
		wantTokens TokenMap
	}{
		{
			name:       "no placeholders",
			text:       "Hello world",
			wantMasked: "Hello world",
			wantTokens: TokenMap{},
		},
		{
			name:       "single placeholder",
			text:       "Press {color:red}X{/color} to fire",
			wantMasked: "Press {1}X{2} to fire",
			wantTokens: TokenMap{"1": "{color:red}", "2": "{/color}"},
		},
		{
			name:       "numeric placeholder",
			text:       "{0} items left",
			wantMasked: "{1} items left",
			wantTokens: TokenMap{"1": "{0}"},
		},
		{
			name:       "empty braces",
			text:       "a {} b",
			wantMasked: "a {1} b",
			wantTokens: TokenMap{"1": "{}"},
		},
		{
			name:       "empty input",
			text:       "",
			wantMasked: "",
			wantTokens: TokenMap{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked, tokens := Mask(tt.text)
			if masked != tt.wantMasked {
				t.Errorf("Mask() masked = %q, want %q", masked, tt.wantMasked)
			}
			if !reflect.DeepEqual(tokens, tt.wantTokens) {
				t.Errorf("Mask() tokens = %v, want %v", tokens, tt.wantTokens)
			}
		})
	}
}

func TestUnmask(t *testing.T) {
	tokens := TokenMap{"1": "{name}", "2": "{score}"}

	got := Unmask("Bravo {1}, tu as {2} points", tokens)
	want := "Bravo {name}, tu as {score} points"
	if got != want {
		t.Errorf("Unmask() = %q, want %q", got, want)
	}
}

func TestUnmaskUnknownReference(t *testing.T) {
	tokens := TokenMap{"1": "{name}"}

	// {7} has no entry; it is silently dropped.
	got := Unmask("Hello {1}{7}", tokens)
	if got != "Hello {name}" {
		t.Errorf("Unmask() = %q, want %q", got, "Hello {name}")
	}
}

func TestUnmaskEmpty(t *testing.T) {
	if got := Unmask("", TokenMap{"1": "{x}"}); got != "" {
		t.Errorf("Unmask(empty) = %q, want empty", got)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"plain text with no tokens",
		"{a}",
		"start {one} middle {two} end",
		"{0}{1}{2}",
		"unicode {couleur} café",
		"",
	}
	for _, s := range inputs {
		masked, tokens := Mask(s)
		if got := Unmask(masked, tokens); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
}

func TestDropped(t *testing.T) {
	_, tokens := Mask("{a} and {b} and {c}")

	lost := Dropped("only {1} and {3} survived", tokens)
	if !reflect.DeepEqual(lost, []string{"2"}) {
		t.Errorf("Dropped() = %v, want [2]", lost)
	}

	if lost := Dropped("{1} {2} {3}", tokens); lost != nil {
		t.Errorf("Dropped() = %v, want nil", lost)
	}

	if lost := Dropped("anything", TokenMap{}); lost != nil {
		t.Errorf("Dropped() on empty map = %v, want nil", lost)
	}
}
