package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"2.jpg", "10.jpg", true},
		{"10.jpg", "2.jpg", false},
		{"1.jpg", "2.jpg", true},
		{"frame2.png", "frame10.png", true},
		{"frame10.png", "frame2.png", false},
		{"a.jpg", "b.jpg", true},
		{"9.jpg", "10.jpg", true},
		{"099.jpg", "100.jpg", true},
		{"frame.jpg", "frame1.jpg", true},
		// Zero-padding alone never reorders; the suffix decides.
		{"01a.jpg", "1b.jpg", true},
	}
	for _, tt := range tests {
		if got := NaturalLess(tt.a, tt.b); got != tt.want {
			t.Errorf("NaturalLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNaturalSortOrder(t *testing.T) {
	names := []string{"10.jpg", "1.jpg", "100.jpg", "2.jpg", "20.jpg", "3.jpg"}
	sort.Slice(names, func(i, j int) bool { return NaturalLess(names[i], names[j]) })

	want := []string{"1.jpg", "2.jpg", "3.jpg", "10.jpg", "20.jpg", "100.jpg"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("sorted = %v, want %v", names, want)
	}
}

func TestListImageFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"10.jpg", "2.jpg", "1.JPG", "3.png", "notes.txt", "clip.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "5.jpg"), 0755); err != nil {
		t.Fatal(err)
	}

	paths, err := ListImageFiles(dir)
	if err != nil {
		t.Fatalf("ListImageFiles failed: %v", err)
	}

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	// Images only (case-insensitive extensions), directories excluded,
	// natural numeric order.
	want := []string{"1.JPG", "2.jpg", "3.png", "10.jpg"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ListImageFiles = %v, want %v", names, want)
	}
}

func TestListImageFilesMissingDir(t *testing.T) {
	if _, err := ListImageFiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFileKey(t *testing.T) {
	// Integration test using the OS filesystem
	tmp, err := os.CreateTemp("", "slide_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmp.Name())

	// Write dummy content
	if _, err := tmp.Write([]byte("fake slide content")); err != nil {
		t.Fatal(err)
	}
	tmp.Close()

	key, err := FileKey(tmp.Name())
	if err != nil || key == "" {
		t.Errorf("Failed to generate key: %v", err)
	}

	// Verify Determinism
	key2, _ := FileKey(tmp.Name())
	if key != key2 {
		t.Errorf("Key is not deterministic. Got %s, then %s", key, key2)
	}

	// Verify Sensitivity (Change content -> Change Key)
	f, _ := os.OpenFile(tmp.Name(), os.O_APPEND|os.O_WRONLY, 0644)
	f.Write([]byte(" modification"))
	f.Close()

	key3, _ := FileKey(tmp.Name())
	if key == key3 {
		t.Error("Key did not change after file modification")
	}
}

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/exports/ml_lecture_week3", "ml_lecture_week3_slides.pdf"},
		{"/exports/ml_lecture_week3/", "ml_lecture_week3_slides.pdf"},
		{"screenshots", "screenshots_slides.pdf"},
		{"/tmp/My Deck Export", "My_Deck_Export_slides.pdf"},
		{".", "lecture_slides.pdf"},
		{"..", "lecture_slides.pdf"},
		{"/", "lecture_slides.pdf"},
		{"", "lecture_slides.pdf"},
	}
	for _, tt := range tests {
		if got := DeriveOutputPath(tt.in); got != tt.want {
			t.Errorf("DeriveOutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
