package parser

import "testing"

func TestStripTags_Basic(t *testing.T) {
	got := StripTags(`Intro <span class="hl">Keycloak</span> <br/>`)
	if got != "Intro Keycloak " {
		t.Errorf("StripTags = %q, want %q", got, "Intro Keycloak ")
	}
}

func TestStripTags_Idempotent(t *testing.T) {
	inputs := []string{
		"plain",
		"<b>bold</b>",
		"<<nested>>text<>",
		"a < b and c > d",
		"x<y<t>>",
		"<img src='x'>caption",
	}
	for _, in := range inputs {
		once := StripTags(in)
		if twice := StripTags(once); twice != once {
			t.Errorf("StripTags(%q): once = %q, twice = %q", in, once, twice)
		}
	}
}

func TestHeading_Levels(t *testing.T) {
	level, title, ok := Heading("# Chapter One\n")
	if !ok || level != 1 || title != "Chapter One" {
		t.Errorf("Heading = (%d, %q, %v), want (1, %q, true)", level, title, ok, "Chapter One")
	}
	level, title, ok = Heading("## Section <em>A</em>  ")
	if !ok || level != 2 || title != "Section A" {
		t.Errorf("Heading = (%d, %q, %v), want (2, %q, true)", level, title, ok, "Section A")
	}
}

func TestHeading_NotAnEntry(t *testing.T) {
	for _, line := range []string{"### Deep", "#hashtag", "text # not heading", ""} {
		if _, _, ok := Heading(line); ok {
			t.Errorf("Heading(%q) should not match", line)
		}
	}
}

func TestIsHeadingMarker(t *testing.T) {
	if !IsHeadingMarker("### Deep") || !IsHeadingMarker("#tag") {
		t.Error("lines starting with # should count as heading markers")
	}
	if IsHeadingMarker(" # indented") {
		t.Error("indented hash should not count")
	}
}

func TestPracticalLabel(t *testing.T) {
	label, ok := PracticalLabel(`<!-- .slide: class="page-tp" data-label="TP 2 : Concepts" -->`)
	if !ok {
		t.Fatal("expected practical directive to match")
	}
	if label != "TP 2 : Concepts" {
		t.Errorf("label = %q, want %q", label, "TP 2 : Concepts")
	}
}

func TestPracticalLabel_NoLabel(t *testing.T) {
	if _, ok := PracticalLabel(`<!-- .slide: class="page-tp" -->`); ok {
		t.Error("directive without data-label should not match")
	}
	if _, ok := PracticalLabel(`<!-- .slide: class="page-title" data-label="x" -->`); ok {
		t.Error("other slide classes should not match")
	}
}
