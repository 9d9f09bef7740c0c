package i18n_test

import (
	"testing"

	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/i18n"
)

func withLanguages(langs ...concept.Language) concept.Concept {
	c := concept.Concept{ConceptID: "sets-intro", LocalizedContent: map[concept.Language]concept.LocalizedContent{}}
	for _, l := range langs {
		c.LocalizedContent[l] = concept.LocalizedContent{Title: "title-" + string(l)}
	}
	return c
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		available    []concept.Language
		requested    concept.Language
		wantOK       bool
		wantLang     concept.Language
		wantFallback bool
	}{
		{"requested urdu present", []concept.Language{concept.English, concept.Urdu}, concept.Urdu, true, concept.Urdu, false},
		{"urdu missing falls back", []concept.Language{concept.English}, concept.Urdu, true, concept.English, true},
		{"english requested", []concept.Language{concept.English}, concept.English, true, concept.English, false},
		{"only urdu, urdu requested", []concept.Language{concept.Urdu}, concept.Urdu, true, concept.Urdu, false},
		{"only urdu, english requested", []concept.Language{concept.Urdu}, concept.English, false, "", false},
		{"nothing", nil, concept.Urdu, false, "", false},
		{"unknown requested with english", []concept.Language{concept.English}, "fr", true, concept.English, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := i18n.Resolve(withLanguages(tt.available...), tt.requested)
			if ok != tt.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if res.Language != tt.wantLang || res.Fallback != tt.wantFallback {
				t.Errorf("Resolve() = (%s, fallback=%v), want (%s, fallback=%v)",
					res.Language, res.Fallback, tt.wantLang, tt.wantFallback)
			}
			if res.Content.Title != "title-"+string(tt.wantLang) {
				t.Errorf("Content.Title = %q", res.Content.Title)
			}
		})
	}
}

func TestResolve_EnglishNeverUnavailable(t *testing.T) {
	c := withLanguages(concept.English)
	for _, requested := range []concept.Language{concept.English, concept.Urdu, "", "de", "UR"} {
		if _, ok := i18n.Resolve(c, requested); !ok {
			t.Errorf("Resolve(%q) reported unavailable with an en entry", requested)
		}
	}
}

func TestResolve_UnavailableIsRepeatable(t *testing.T) {
	c := withLanguages()
	for range 3 {
		if _, ok := i18n.Resolve(c, concept.Urdu); ok {
			t.Fatal("Resolve() should stay unavailable")
		}
	}
}

func TestTitleAndIntroduction(t *testing.T) {
	c := concept.Concept{LocalizedContent: map[concept.Language]concept.LocalizedContent{
		concept.English: {Title: "Sets", Content: concept.Content{Introduction: "A set is a collection."}},
		concept.Urdu:    {Title: "  "},
	}}

	if got := i18n.Title(c, concept.Urdu); got != "Sets" {
		t.Errorf("Title(ur) with blank urdu title = %q, want Sets", got)
	}
	if got := i18n.Introduction(c, concept.Urdu); got != "A set is a collection." {
		t.Errorf("Introduction(ur) = %q", got)
	}

	empty := concept.Concept{}
	if got := i18n.Title(empty, concept.English); got != i18n.UntitledConcept {
		t.Errorf("Title(empty) = %q, want %q", got, i18n.UntitledConcept)
	}
	if got := i18n.Introduction(empty, concept.English); got != i18n.NoDescription {
		t.Errorf("Introduction(empty) = %q, want %q", got, i18n.NoDescription)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   concept.Language
		wantOK bool
	}{
		{"en", concept.English, true},
		{"EN", concept.English, true},
		{"en-US", concept.English, true},
		{"ur", concept.Urdu, true},
		{"ur-PK", concept.Urdu, true},
		{" ur ", concept.Urdu, true},
		{"fr", "", false},
		{"", "", false},
		{"not a tag!", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := i18n.Parse(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Parse(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		header string
		want   concept.Language
	}{
		{"", concept.English},
		{"ur-PK,ur;q=0.9,en;q=0.8", concept.Urdu},
		{"en-GB,en;q=0.9", concept.English},
		{"de-DE", concept.English},
		{"de;q=0.9,ur;q=0.5", concept.Urdu},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := i18n.Negotiate(tt.header); got != tt.want {
				t.Errorf("Negotiate(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
