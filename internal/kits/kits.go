// Package kits provides the starter kit catalog: the built-in kits plus any
// kit files loaded from a directory or a git repository.
package kits

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conorfennell/versekeep/internal/domain"
	"github.com/conorfennell/versekeep/internal/validate"
)

//go:embed starter_kits.yaml
var builtinYAML []byte

// ErrInvalidKit wraps every kit that fails validation.
var ErrInvalidKit = errors.New("invalid starter kit")

// Catalog is a read-only, ordered set of starter kits keyed by id.
type Catalog struct {
	kits []domain.StarterKit
	byID map[string]int
}

// Builtin returns the catalog shipped with the binary.
func Builtin() *Catalog {
	kits, err := Parse(builtinYAML)
	if err != nil {
		// ALLOW-PANIC: the embedded catalog is fixed at build time
		panic(fmt.Sprintf("embedded starter kits: %v", err))
	}
	c, _ := NewCatalog(kits...)
	return c
}

// NewCatalog validates kits and indexes them. A later kit replaces an earlier
// one with the same id but keeps its position.
func NewCatalog(kits ...domain.StarterKit) (*Catalog, error) {
	c := &Catalog{byID: map[string]int{}}
	if err := c.add(kits); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) add(kits []domain.StarterKit) error {
	for _, k := range kits {
		if err := Validate(k); err != nil {
			return err
		}
		if i, ok := c.byID[k.ID]; ok {
			c.kits[i] = k
			continue
		}
		c.byID[k.ID] = len(c.kits)
		c.kits = append(c.kits, k)
	}
	return nil
}

// With returns a new catalog holding c's kits followed by more.
func (c *Catalog) With(more ...domain.StarterKit) (*Catalog, error) {
	out := &Catalog{
		kits: append([]domain.StarterKit{}, c.kits...),
		byID: make(map[string]int, len(c.byID)),
	}
	for id, i := range c.byID {
		out.byID[id] = i
	}
	if err := out.add(more); err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup returns the kit with the given id.
func (c *Catalog) Lookup(id string) (domain.StarterKit, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.StarterKit{}, false
	}
	return c.kits[i], true
}

// All returns the kits in catalog order.
func (c *Catalog) All() []domain.StarterKit {
	return append([]domain.StarterKit{}, c.kits...)
}

// Validate checks a kit's shape and that every verse is a valid card.
func Validate(k domain.StarterKit) error {
	if err := validate.Struct(k); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidKit, k.ID, err)
	}
	return nil
}

// Parse reads a YAML list of kits.
func Parse(data []byte) ([]domain.StarterKit, error) {
	var kits []domain.StarterKit
	if err := yaml.Unmarshal(data, &kits); err != nil {
		return nil, fmt.Errorf("failed to parse starter kits: %w", err)
	}
	for _, k := range kits {
		if err := Validate(k); err != nil {
			return nil, err
		}
	}
	return kits, nil
}

// LoadDir reads every *.yaml and *.yml file under dir, in lexical order.
// A file that fails to parse is logged and skipped so one bad file does not
// hide the rest.
func LoadDir(dir string) ([]domain.StarterKit, error) {
	var kits []domain.StarterKit
	var loadErrors int

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		fileKits, err := Parse(data)
		if err != nil {
			loadErrors++
			slog.Warn("Skipping starter kit file", "path", path, "error", err)
			return nil
		}
		kits = append(kits, fileKits...)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to load starter kits from %s: %w", dir, walkErr)
	}

	slog.Debug("Loaded starter kits", "dir", dir, "kits", len(kits), "errors", loadErrors)
	return kits, nil
}
