package keywords

import (
	"fmt"

	"github.com/mindweave/mindweave/pkg/mindweave/internalerr"
)

var (
	errNoEmbedder = fmt.Errorf("no embedder configured: %w", internalerr.ErrEmbedderUnavailable)
	errEmbedShape = fmt.Errorf("embedding count mismatch: %w", internalerr.ErrEmbedderUnavailable)
)
