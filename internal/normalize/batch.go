package normalize

import (
	"context"
	"os"
	"sync"

	"gifforge/internal/services"
)

// NormalizeFiles normalizes every path concurrently and returns the results
// in input order, regardless of per-file completion timing.
//
// The batch is all-or-nothing: if any file fails to read or decode, the whole
// batch is discarded and the first failure (in input order) is returned.
// In-flight normalizations are allowed to finish; their results are dropped.
func (n *Normalizer) NormalizeFiles(ctx context.Context, paths []string) ([]Image, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	results := make([]Image, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	wg.Add(len(paths))
	for idx, path := range paths {
		go func(idx int, path string) {
			defer wg.Done()
			results[idx], errs[idx] = n.normalizeFile(ctx, path)
		}(idx, path)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (n *Normalizer) normalizeFile(ctx context.Context, path string) (Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return Image{}, services.Wrap(services.ErrRead, "normalizer", "open", path, err)
	}
	defer file.Close()
	return n.Normalize(ctx, file, path)
}

// FilterImagePaths drops paths whose extension does not declare a supported
// image type. Non-image selections are skipped silently, not reported.
func FilterImagePaths(paths []string) []string {
	filtered := make([]string, 0, len(paths))
	for _, path := range paths {
		if IsImagePath(path) {
			filtered = append(filtered, path)
		}
	}
	return filtered
}
