// Package picker lists and selects documents from a local directory, standing
// in for the platform document chooser.
package picker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
)

// DefaultPatterns matches the document types a thesis review accepts.
var DefaultPatterns = []string{"*.pdf", "*.doc", "*.docx", "*.txt"}

var mimeByExt = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// Result is the outcome of one pick interaction. Exactly one of Descriptor,
// Canceled, or Err is meaningful.
type Result struct {
	Descriptor domain.Descriptor
	Canceled   bool
	Err        error
}

// Picker scans a directory for documents matching a pattern set.
type Picker struct {
	dir      string
	patterns []string
}

// New creates a Picker over dir. With no patterns it accepts the default
// document types.
func New(dir string, patterns ...string) *Picker {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &Picker{dir: dir, patterns: patterns}
}

// Dir returns the directory being scanned.
func (p *Picker) Dir() string { return p.dir }

// List returns descriptors for every matching regular file, sorted by name.
// A missing directory yields an empty list rather than an error.
func (p *Picker) List() ([]domain.Descriptor, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var docs []domain.Descriptor
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		if !p.matches(ent.Name()) {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			continue
		}
		docs = append(docs, domain.Descriptor{
			FileName:  ent.Name(),
			MimeType:  mimeOf(ent.Name()),
			SizeBytes: info.Size(),
			SourceRef: filepath.Join(p.dir, ent.Name()),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].FileName < docs[j].FileName })
	return docs, nil
}

// Pick resolves a single file by name within the picker directory.
func (p *Picker) Pick(name string) Result {
	path := filepath.Join(p.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Descriptor: domain.Descriptor{
		FileName:  name,
		MimeType:  mimeOf(name),
		SizeBytes: info.Size(),
		SourceRef: path,
	}}
}

// Canceled returns the result of a dismissed picker.
func (p *Picker) Canceled() Result {
	return Result{Canceled: true}
}

func (p *Picker) matches(name string) bool {
	lower := strings.ToLower(name)
	for _, pat := range p.patterns {
		if ok, err := doublestar.Match(pat, lower); err == nil && ok {
			return true
		}
	}
	return false
}

func mimeOf(name string) string {
	if m, ok := mimeByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return m
	}
	return "application/octet-stream"
}
