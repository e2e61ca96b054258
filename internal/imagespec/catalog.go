package imagespec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/erinpentecost/LivelyJigsaw/internal/jigsaw"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Entry is one selectable puzzle image.
type Entry struct {
	Name   string           `json:"name" yaml:"name"`
	Path   string           `json:"path" yaml:"path"`
	Format string           `json:"format" yaml:"format"`
	Spec   jigsaw.ImageSpec `json:"spec" yaml:"spec"`
}

var catLog = log.With().Str("module", "imagespec").Logger()

// Catalog probes every supported image directly inside dir. Entries come back
// sorted by name. Files that fail to probe are logged and skipped.
func Catalog(ctx context.Context, dir string, threads int) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dirs in %q: %w", dir, err)
	}

	var mux sync.Mutex
	out := []Entry{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(threads, 1))
	for _, de := range dirEntries {
		if de.IsDir() || !Supported(de.Name()) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			spec, format, err := Probe(path)
			if err != nil {
				catLog.Warn().Err(err).Str("path", path).Msg("Skipping unreadable image")
				return nil
			}
			mux.Lock()
			defer mux.Unlock()
			out = append(out, Entry{
				Name:   de.Name(),
				Path:   path,
				Format: format,
				Spec:   spec,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("catalog %q: %w", dir, err)
	}

	slices.SortFunc(out, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	catLog.Debug().Str("dir", dir).Int("images", len(out)).Msg("Catalogued images")
	return out, nil
}
