package prompts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemplate(t *testing.T, dir, key, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewStoreMissingDir(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestGetTrimsAndNormalizesKey(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "responses/greeting.txt", "\n  Hello, {name}!  \n")

	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	withExt, err := store.Get("responses/greeting.txt")
	if err != nil {
		t.Fatal(err)
	}
	withoutExt, err := store.Get("responses/greeting")
	if err != nil {
		t.Fatal(err)
	}

	if withExt != "Hello, {name}!" {
		t.Errorf("expected trimmed content, got %q", withExt)
	}
	if withExt != withoutExt {
		t.Error("keys with and without extension should hit the same slot")
	}
}

func TestGetMissingTemplate(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, err = store.Get("responses/non_existent")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestGetCachesWithoutSecondDiskRead(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, "responses/greeting.txt", "Hello")

	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	first, err := store.Get("responses/greeting")
	if err != nil {
		t.Fatal(err)
	}

	// Remove the backing file; a cache hit must not touch the disk.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	second, err := store.Get("responses/greeting")
	if err != nil {
		t.Fatalf("expected cached read, got %v", err)
	}
	if first != second {
		t.Errorf("cached content changed: %q vs %q", first, second)
	}
}

func TestInvalidateForcesReRead(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, "responses/greeting.txt", "v1")

	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get("responses/greeting"); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	store.Invalidate()

	content, err := store.Get("responses/greeting")
	if err != nil {
		t.Fatal(err)
	}
	if content != "v2" {
		t.Errorf("expected re-read content v2, got %q", content)
	}
}

func TestRender(t *testing.T) {
	out, err := Render("Hi {name}, welcome to {company_name}!", map[string]string{
		"name":         "Sam",
		"company_name": "Pharmesol",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Hi Sam, welcome to Pharmesol!" {
		t.Errorf("unexpected render output: %q", out)
	}
}

func TestRenderMissingPlaceholder(t *testing.T) {
	_, err := Render("Hi {name}", map[string]string{})
	if !errors.Is(err, ErrMissingPlaceholder) {
		t.Fatalf("expected ErrMissingPlaceholder, got %v", err)
	}
}

func TestRenderIgnoresExtraVars(t *testing.T) {
	out, err := Render("plain text", map[string]string{"unused": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "plain text" {
		t.Errorf("unexpected output %q", out)
	}
}
