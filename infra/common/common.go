package common

import (
	"crypto/md5"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// skipDirs never affect the API image.
var skipDirs = map[string]bool{"infra": true, "_examples": true}

// SourceHash fingerprints the Go sources and module files under root so the
// image tag only changes when the service does.
func SourceHash(root string) (string, error) {
	var hash string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSource(d.Name()) {
			return nil
		}

		fh, err := fileHash(path)
		if err != nil {
			return err
		}
		hash = combine(hash, fh)
		return nil
	})

	return hash, err
}

func isSource(name string) bool {
	return strings.HasSuffix(name, ".go") || name == "go.mod" || name == "go.sum" || name == "Dockerfile"
}

func fileHash(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func combine(a, b string) string {
	h := md5.New()
	io.WriteString(h, a+b)
	return fmt.Sprintf("%x", h.Sum(nil))
}
