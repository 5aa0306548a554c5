// Package reference loads the fixed collection of reference documents the
// assistant quotes from.
package reference

import (
	"bufio"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
	"github.com/custodia-labs/onboard/internal/logger"
)

//go:embed docs/*.md
var embedded embed.FS

// Ensure Source implements the interface.
var _ driven.ReferenceSource = (*Source)(nil)

// Source reads markdown files from a filesystem in file-name order.
// The order defines each document's citation number.
type Source struct {
	fsys fs.FS
	name string
}

// NewEmbeddedSource serves the built-in onboarding documents.
func NewEmbeddedSource() *Source {
	sub, err := fs.Sub(embedded, "docs")
	if err != nil {
		panic(err) // docs/ is embedded at compile time
	}
	return &Source{fsys: sub, name: "embedded"}
}

// NewDirSource serves markdown files from dir.
func NewDirSource(dir string) *Source {
	return &Source{fsys: os.DirFS(dir), name: dir}
}

// NewSource returns a directory source when dir is set, the embedded one otherwise.
func NewSource(dir string) *Source {
	if strings.TrimSpace(dir) == "" {
		return NewEmbeddedSource()
	}
	return NewDirSource(dir)
}

// NewFSSource serves markdown files from the root of fsys.
func NewFSSource(fsys fs.FS, name string) *Source {
	return &Source{fsys: fsys, name: name}
}

// Load reads every .md file in the source root.
func (s *Source) Load(ctx context.Context) ([]domain.ReferenceDocument, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read reference documents from %s: %w", s.name, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]domain.ReferenceDocument, 0, len(names))
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		docs = append(docs, domain.ReferenceDocument{
			Index: i,
			Title: extractTitle(string(body), name),
			Body:  string(body),
		})
	}

	logger.Debug("Reference source %s: %d documents", s.name, len(docs))
	return docs, nil
}

// extractTitle returns the first level-one heading, or a title derived from
// the file name.
func extractTitle(body, filename string) string {
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return titleFromFilename(filename)
}

// titleFromFilename turns "02-security_policy.md" into "security policy".
func titleFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, path.Ext(filename))
	name = strings.TrimLeft(name, "0123456789")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}
