package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Loader reads prefabs from Dir on disk when present and falls back to the
// embedded copies. An empty Dir disables the disk override.
type Loader struct {
	Dir string
}

func (l *Loader) Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := l.readDisk(clean); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func (l *Loader) LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := l.readDisk(clean); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ModTime returns when the disk override for name was last written. name is
// either relative to Dir or a path inside Dir, as Watcher reports it.
func (l *Loader) ModTime(name string) (time.Time, bool) {
	if l == nil || l.Dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(l.resolve(name))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Changed keeps the paths whose modification time moved since the last call
// and records the new times in seen. A removed override counts as changed
// because the embedded copy takes its place.
func (l *Loader) Changed(paths []string, seen map[string]time.Time) []string {
	var out []string
	for _, p := range paths {
		if slices.Contains(out, p) {
			continue
		}
		mt, ok := l.ModTime(p)
		if !ok {
			delete(seen, p)
			out = append(out, p)
			continue
		}
		if prev, had := seen[p]; had && prev.Equal(mt) {
			continue
		}
		seen[p] = mt
		out = append(out, p)
	}
	return out
}

func (l *Loader) resolve(name string) string {
	if rel, err := filepath.Rel(l.Dir, name); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.Join(l.Dir, rel)
	}
	return l.diskPath(cleanPrefabPath(name))
}

func (l *Loader) readDisk(clean string) ([]byte, error) {
	if l == nil || l.Dir == "" {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(l.diskPath(clean))
}

func (l *Loader) diskPath(clean string) string {
	return filepath.Join(l.Dir, filepath.FromSlash(clean))
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "prefabs/") {
		return strings.TrimPrefix(s, "prefabs/")
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}
