package note

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNoteJSONBodyVariant(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	rich := Note{
		ID: "a", Title: "t", Category: CategoryPersonal,
		Body:      RichBody{Markup: "**bold**"},
		CreatedAt: created, UpdatedAt: created,
	}
	data, err := json.Marshal(rich)
	if err != nil {
		t.Fatalf("marshal rich: %v", err)
	}
	if strings.Contains(string(data), "codeLanguage") {
		t.Errorf("rich note serialized a codeLanguage: %s", data)
	}

	var got Note
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal rich: %v", err)
	}
	if _, ok := got.Body.(RichBody); !ok {
		t.Fatalf("round-tripped body is %T, want RichBody", got.Body)
	}
	if got.Body.Raw() != "**bold**" {
		t.Errorf("body = %q", got.Body.Raw())
	}

	code := rich
	code.Body = CodeBody{Source: "print(1)", Lang: "python"}
	data, err = json.Marshal(code)
	if err != nil {
		t.Fatalf("marshal code: %v", err)
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal code: %v", err)
	}
	cb, ok := got.Body.(CodeBody)
	if !ok {
		t.Fatalf("round-tripped body is %T, want CodeBody", got.Body)
	}
	if cb.Source != "print(1)" || cb.Lang != "python" {
		t.Errorf("code body = %+v", cb)
	}
}

func TestPlainText(t *testing.T) {
	rich := Note{Body: RichBody{Markup: "<b>x</b>"}}
	if got := rich.PlainText(); got != "x" {
		t.Errorf("rich PlainText = %q, want %q", got, "x")
	}
	// Code content is never interpreted as markup.
	code := Note{Body: CodeBody{Source: "<b>x</b>", Lang: "html"}}
	if got := code.PlainText(); got != "<b>x</b>" {
		t.Errorf("code PlainText = %q, want verbatim source", got)
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if !CategorySecret.Valid() {
		t.Error("SECRET should be valid")
	}
	if Category("ALL").Valid() {
		t.Error("ALL is a selector, not a stored category")
	}
}

func TestIsLanguage(t *testing.T) {
	if !IsLanguage("go") {
		t.Error("go should be a known language")
	}
	if IsLanguage("cobol") {
		t.Error("cobol is not in the tag set")
	}
}
