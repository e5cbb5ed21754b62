package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/scene"
	"github.com/matzehuels/circuitdraw/pkg/script"
)

// Load reads and validates the document named by opts. It returns the raw
// source alongside so that callers can hash it.
func Load(opts Options) (*script.Document, []byte, error) {
	src := opts.Source
	if src == nil {
		data, err := os.ReadFile(opts.Path)
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", opts.Path)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", opts.Path, err)
		}
		src = data
	}
	name := opts.Path
	if name == "" {
		name = "<input>." + string(opts.Format)
	}
	doc, err := script.Parse(src, opts.Format, name)
	if err != nil {
		return nil, nil, err
	}
	doc.Path = opts.Path
	return doc, src, nil
}

// Build replays doc into a fresh builder.
func Build(ctx context.Context, doc *script.Document, opts Options) (*scene.Scene, error) {
	s, err := script.Run(ctx, doc, opts.RunOptions())
	if err != nil {
		return nil, err
	}
	if s.LeakedPushes > 0 {
		opts.Logger.Warn("saved positions never restored", "document", doc.Path, "pushes", s.LeakedPushes)
	}
	return s, nil
}
