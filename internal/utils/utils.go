package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// --- 1. Process Safety ---

// Die is the unified exit strategy for slidedistill.
// It prints a formatted error box and terminates with a non-zero status.
func Die(context string, err error) {
	fmt.Fprintf(os.Stderr, "\n---------------------------------------------------------\n")
	fmt.Fprintf(os.Stderr, "🚨 SLIDEDISTILL ERROR: %s\n", context)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DETAILS: %v\n", err)
	}
	fmt.Fprintf(os.Stderr, "---------------------------------------------------------\n")
	os.Exit(1)
}

// --- 2. Frame Discovery & Ordering ---

// imageExts are the formats both the hash oracle and the PDF assembler accept.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ListImageFiles returns the image files directly inside dir, sorted in
// natural numeric order so that 10.jpg follows 2.jpg. Subdirectories and
// non-image files are ignored.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}

	sort.Slice(names, func(i, j int) bool {
		return NaturalLess(names[i], names[j])
	})

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// NaturalLess compares two strings treating runs of digits as integers, so
// "frame10.jpg" sorts after "frame2.jpg" instead of between "frame1" and
// "frame3". Numbers that only differ in zero-padding ("01" vs "1") compare
// equal and the comparison continues after them.
func NaturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			aNum, aRest := splitLeadingDigits(a)
			bNum, bRest := splitLeadingDigits(b)
			aNum = strings.TrimLeft(aNum, "0")
			bNum = strings.TrimLeft(bNum, "0")
			if aNum != bNum {
				// Digit strings compare as integers without overflow:
				// shorter means smaller, equal length means lexicographic.
				if len(aNum) != len(bNum) {
					return len(aNum) < len(bNum)
				}
				return aNum < bNum
			}
			a, b = aRest, bRest
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func splitLeadingDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// --- 3. File Identity ---

// FileKey creates a deterministic digest for a file based on its path, size,
// and modification time. Used as the fingerprint cache key: any change to the
// file invalidates the cached hash without reading its content.
func FileKey(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	input := fmt.Sprintf("%s-%d-%d", path, info.Size(), info.ModTime().UnixNano())
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:]), nil
}

// --- 4. Output Naming ---

// DeriveOutputPath picks a PDF name from the input directory when the user
// gave none. Fallback rules, in order:
//  1. the cleaned base name of the directory, spaces collapsed to underscores
//  2. "lecture" when the base is empty, a path separator, "." or ".."
//
// The result is "<name>_slides.pdf" in the current working directory.
func DeriveOutputPath(inputDir string) string {
	base := filepath.Base(filepath.Clean(inputDir))
	switch base {
	case "", ".", "..", string(filepath.Separator):
		base = "lecture"
	}
	base = strings.Join(strings.Fields(base), "_")
	if base == "" {
		base = "lecture"
	}
	return base + "_slides.pdf"
}
