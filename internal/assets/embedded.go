package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/go-tutorialsite/internal/fileutil"
)

//go:embed starter
var starter embed.FS

const starterRoot = "starter"

// StarterFiles lists the starter tree as slash-separated paths relative to
// its root, in lexical order.
func StarterFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(starter, starterRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, strings.TrimPrefix(p, starterRoot+"/"))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return files, nil
}

// StarterFile returns the contents of one starter file.
func StarterFile(rel string) ([]byte, error) {
	data, err := starter.ReadFile(path.Join(starterRoot, rel))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, rel)
	}
	return data, nil
}

// WriteStarter copies the starter tree into dir and returns the written paths.
// Unless force is set, nothing is written when any target already exists.
func WriteStarter(dir string, force bool) ([]string, error) {
	files, err := StarterFiles()
	if err != nil {
		return nil, err
	}

	if !force {
		var existing []string
		for _, rel := range files {
			target := filepath.Join(dir, filepath.FromSlash(rel))
			if fileutil.FileExists(target) {
				existing = append(existing, target)
			}
		}
		if len(existing) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrStarterExists, strings.Join(existing, ", "))
		}
	}

	written := make([]string, 0, len(files))
	for _, rel := range files {
		data, err := StarterFile(rel)
		if err != nil {
			return written, err
		}
		target := filepath.Join(dir, filepath.FromSlash(rel))
		if err := fileutil.WriteFile(target, data); err != nil {
			return written, err
		}
		written = append(written, target)
	}
	return written, nil
}
