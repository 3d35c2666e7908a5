package reference

import (
	"context"

	"github.com/bianoble/skin-studio/internal/cache"
	"github.com/bianoble/skin-studio/internal/logging"
)

// CachingFetcher keeps the last good copy of every URL it fetches and
// serves that copy when a later fetch of the same URL fails. Local paths
// are passed through.
type CachingFetcher struct {
	Fetcher *Fetcher
	Cache   *cache.Cache
	Log     *logging.Logger
}

// Fetch returns the content at location, or the cached copy of a URL whose
// fetch failed. With no cached copy the fetch error is returned.
func (f *CachingFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	data, err := f.Fetcher.Fetch(ctx, location)
	if !IsURL(location) || f.Cache == nil {
		return data, err
	}

	if err == nil {
		if perr := f.Cache.Put(location, data); perr != nil {
			f.Log.Dbg("caching %s: %v", location, perr)
		}
		return data, nil
	}

	cached, ok, cerr := f.Cache.Get(location)
	if cerr != nil || !ok {
		return nil, err
	}
	f.Log.Warn("%v (using cached copy)", err)
	return cached, nil
}
