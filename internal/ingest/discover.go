package ingest

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

var yearDir = regexp.MustCompile(`^\d{4}$`)

type SourceFile struct {
	Path string
	Year string
	Stem string
}

// Link is the identifier used for the article in the index document.
func (sf SourceFile) Link() string {
	return sf.Year + "/" + sf.Stem
}

// DiscoverSource lists <year>/<name><ext> files under the root of fsys, year
// folders ascending and files ascending within each.
func DiscoverSource(fsys fs.FS, ext string) ([]SourceFile, error) {
	years, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list content root: %w", err)
	}

	var out []SourceFile
	for _, y := range years {
		if !yearDir.MatchString(y.Name()) {
			continue
		}
		isDir, err := entryIsDir(fsys, y.Name(), y)
		if err != nil {
			return nil, err
		}
		if !isDir {
			continue
		}

		files, err := fs.ReadDir(fsys, y.Name())
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", y.Name(), err)
		}
		for _, f := range files {
			name := f.Name()
			if !strings.HasSuffix(name, ext) {
				continue
			}
			stem := strings.TrimSuffix(name, ext)
			if stem == "" {
				continue
			}
			p := path.Join(y.Name(), name)
			isDir, err := entryIsDir(fsys, p, f)
			if err != nil {
				return nil, err
			}
			if isDir {
				continue
			}
			out = append(out, SourceFile{Path: p, Year: y.Name(), Stem: stem})
		}
	}
	return out, nil
}

// entryIsDir follows symlinks, which fs.DirEntry.IsDir does not.
func entryIsDir(fsys fs.FS, name string, d fs.DirEntry) (bool, error) {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.IsDir(), nil
	}
	st, err := fs.Stat(fsys, name)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
	return st.IsDir(), nil
}
