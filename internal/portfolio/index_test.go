package portfolio

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/amishk599/coldreach/internal/model"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadedIndex(t *testing.T, content string, linksPerSkill int) *Index {
	t.Helper()
	ix := NewIndex(writeCSV(t, content), linksPerSkill)
	if err := ix.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ix
}

func TestLoad_MissingFile(t *testing.T) {
	ix := NewIndex(filepath.Join(t.TempDir(), "nonexistent.csv"), 2)
	err := ix.Load()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var loadErr *model.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *model.LoadError, got %T: %v", err, err)
	}
}

func TestLoad_MissingTechstackColumn(t *testing.T) {
	ix := NewIndex(writeCSV(t, "Name,Links\nfoo,http://a\n"), 2)
	var loadErr *model.LoadError
	if err := ix.Load(); !errors.As(err, &loadErr) {
		t.Fatalf("expected *model.LoadError for missing techstack column, got %v", err)
	}
}

func TestLoad_MissingLinksColumn(t *testing.T) {
	ix := NewIndex(writeCSV(t, "Techstack,Name\nGo,foo\n"), 2)
	var loadErr *model.LoadError
	if err := ix.Load(); !errors.As(err, &loadErr) {
		t.Fatalf("expected *model.LoadError for missing links column, got %v", err)
	}
}

func TestLoad_SplitsCommaSeparatedTags(t *testing.T) {
	ix := loadedIndex(t, "Techstack,Links\n\"React, Node, MongoDB\",http://stack\n", 2)

	entries := ix.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for _, e := range entries {
		if e.Link != "http://stack" {
			t.Errorf("entry %q link = %q, want http://stack", e.Tag, e.Link)
		}
	}
}

func TestLoad_ReloadReplacesEntries(t *testing.T) {
	path := writeCSV(t, "Techstack,Links\nGo,http://a\nRust,http://b\n")
	ix := NewIndex(path, 2)
	if err := ix.Load(); err != nil {
		t.Fatalf("first Load: %v", err)
	}

	if err := os.WriteFile(path, []byte("Techstack,Links\nPython,http://c\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ix.Load(); err != nil {
		t.Fatalf("second Load: %v", err)
	}

	if got := ix.Lookup([]string{"Go"}); len(got) != 0 {
		t.Errorf("stale entry survived reload: %v", got)
	}
	if got := ix.Lookup([]string{"Python"}); !reflect.DeepEqual(got, []string{"http://c"}) {
		t.Errorf("Lookup(Python) = %v, want [http://c]", got)
	}
}

func TestLookup_EmptySkillsReturnsEmpty(t *testing.T) {
	ix := loadedIndex(t, "Techstack,Links\nGo,http://a\n", 2)

	got := ix.Lookup(nil)
	if len(got) != 0 {
		t.Errorf("Lookup(nil) = %v, want empty", got)
	}
	got = ix.Lookup([]string{})
	if len(got) != 0 {
		t.Errorf("Lookup([]) = %v, want empty", got)
	}
}

func TestLookup_ExactMatchCaseInsensitive(t *testing.T) {
	ix := loadedIndex(t, "Techstack,Links\nGo,http://a\nKubernetes,http://b\n", 2)

	got := ix.Lookup([]string{"go", "KUBERNETES"})
	want := []string{"http://a", "http://b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want %v", got, want)
	}
}

func TestLookup_OrderFollowsSkillsOrder(t *testing.T) {
	ix := loadedIndex(t, "Techstack,Links\nGo,http://a\nKubernetes,http://b\n", 2)

	got := ix.Lookup([]string{"Kubernetes", "Go"})
	want := []string{"http://b", "http://a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want %v", got, want)
	}
}

func TestLookup_DeduplicatesAcrossSkills(t *testing.T) {
	ix := loadedIndex(t, "Techstack,Links\nGo,http://a\nGolang,http://a\nKubernetes,http://b\n", 2)

	got := ix.Lookup([]string{"Go", "Golang", "Kubernetes"})
	want := []string{"http://a", "http://b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want deduplicated %v", got, want)
	}
}

func TestLookup_SubstringFallback(t *testing.T) {
	ix := loadedIndex(t, "Techstack,Links\nReact Native,http://rn\n", 2)

	// No exact tag "React" — substring fallback should still find React Native.
	got := ix.Lookup([]string{"React"})
	want := []string{"http://rn"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want %v", got, want)
	}
}

func TestLookup_ExactMatchBeatsSubstring(t *testing.T) {
	ix := loadedIndex(t, "Techstack,Links\nJava,http://java\nJavaScript,http://js\n", 5)

	// "Java" has an exact match, so the substring candidate (JavaScript) is skipped.
	got := ix.Lookup([]string{"Java"})
	want := []string{"http://java"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want %v", got, want)
	}
}

func TestLookup_CapsLinksPerSkill(t *testing.T) {
	csv := "Techstack,Links\nGo,http://a\nGo,http://b\nGo,http://c\n"
	ix := loadedIndex(t, csv, 2)

	got := ix.Lookup([]string{"Go"})
	want := []string{"http://a", "http://b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup = %v, want capped %v", got, want)
	}
}

func TestLookup_NeverExceedsCapTimesSkills(t *testing.T) {
	csv := "Techstack,Links\nGo,http://a\nGo,http://b\nGo,http://c\nRust,http://d\nRust,http://e\nRust,http://f\n"
	ix := loadedIndex(t, csv, 2)

	got := ix.Lookup([]string{"Go", "Rust"})
	if len(got) > 4 {
		t.Errorf("Lookup returned %d links, want at most cap*skills = 4", len(got))
	}
}

func TestLookup_UnknownSkillContributesNothing(t *testing.T) {
	ix := loadedIndex(t, "Techstack,Links\nGo,http://a\n", 2)

	got := ix.Lookup([]string{"COBOL"})
	if len(got) != 0 {
		t.Errorf("Lookup(COBOL) = %v, want empty", got)
	}
}
