package defs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/milk9111/aitoolkit/behavior"
	"github.com/milk9111/aitoolkit/utility"
)

// Library holds compiled definitions addressable by name and swaps them
// atomically on reload. Lookups are safe from the tick goroutine while a
// watcher goroutine reloads files.
type Library struct {
	dir string
	reg *Registry
	log *zap.Logger

	mu     sync.RWMutex
	trees  map[string]behavior.Node
	utils  map[string]utility.AI
	hashes map[string]uint64
	owners map[string][]string // file -> names it declared
}

func NewLibrary(dir string, reg *Registry, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{
		dir:    dir,
		reg:    reg,
		log:    logger,
		trees:  map[string]behavior.Node{},
		utils:  map[string]utility.AI{},
		hashes: map[string]uint64{},
		owners: map[string][]string{},
	}
}

// LoadAll loads every .yaml/.yml definition file directly under the
// library directory.
func (l *Library) LoadAll() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("defs: read dir %s: %w", l.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isDefFile(entry.Name()) {
			continue
		}
		if err := l.ReloadFile(filepath.Join(l.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// ReloadFile parses, compiles, and swaps in one definition file. A file
// whose content hash is unchanged is skipped. A file that fails to
// compile leaves the previously loaded definitions in place.
func (l *Library) ReloadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("defs: read %s: %w", path, err)
	}

	sum := xxhash.Sum64(data)
	l.mu.RLock()
	prev, seen := l.hashes[path]
	l.mu.RUnlock()
	if seen && prev == sum {
		l.log.Debug("definitions unchanged", zap.String("file", path))
		return nil
	}

	doc, err := Parse(data)
	if err != nil {
		return fmt.Errorf("defs: %s: %w", path, err)
	}

	trees := make(map[string]behavior.Node, len(doc.Trees))
	for name, raw := range doc.Trees {
		node, err := l.reg.CompileTree(raw)
		if err != nil {
			return fmt.Errorf("defs: %s: tree %q: %w", path, name, err)
		}
		trees[name] = node
	}
	utils := make(map[string]utility.AI, len(doc.Utility))
	for name, raws := range doc.Utility {
		ai, err := l.reg.CompileConsiderations(raws)
		if err != nil {
			return fmt.Errorf("defs: %s: utility %q: %w", path, name, err)
		}
		utils[name] = ai
	}

	names := make([]string, 0, len(trees)+len(utils))

	l.mu.Lock()
	for _, name := range l.owners[path] {
		delete(l.trees, name)
		delete(l.utils, name)
	}
	for name, node := range trees {
		l.trees[name] = node
		names = append(names, name)
	}
	for name, ai := range utils {
		l.utils[name] = ai
		names = append(names, name)
	}
	l.owners[path] = names
	l.hashes[path] = sum
	l.mu.Unlock()

	l.log.Info("definitions loaded",
		zap.String("file", path),
		zap.Int("trees", len(trees)),
		zap.Int("utility", len(utils)))
	return nil
}

// InvalidateAll forgets file content hashes so the next LoadAll
// recompiles every definition, e.g. after a referenced script changed
// underneath an unchanged YAML file.
func (l *Library) InvalidateAll() {
	l.mu.Lock()
	l.hashes = map[string]uint64{}
	l.mu.Unlock()
}

// Tree returns the named behavior tree root.
func (l *Library) Tree(name string) (behavior.Node, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n, ok := l.trees[name]
	return n, ok
}

// Utility returns the named consideration set.
func (l *Library) Utility(name string) (utility.AI, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ai, ok := l.utils[name]
	return ai, ok
}

func isDefFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
