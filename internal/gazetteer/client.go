// Package gazetteer downloads Census Bureau Gazetteer "Places" files and
// parses them into place records.
package gazetteer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/fipsref/internal/transport"
	"github.com/agentstation/fipsref/pkg/constants"
	"github.com/agentstation/fipsref/pkg/errors"
	"github.com/agentstation/fipsref/pkg/logging"
	"github.com/agentstation/fipsref/pkg/registry"
)

const sourceName = "census gazetteer"

// Download describes one fetched and cached source file.
type Download struct {
	URL    string
	Path   string
	SHA256 string
}

// Client fetches per-state place files into a local cache directory.
type Client struct {
	BaseURL  string
	CacheDir string
	HTTP     *transport.Client
}

// NewClient creates a Gazetteer client caching into cacheDir.
func NewClient(cacheDir string, opts ...transport.Option) *Client {
	return &Client{
		BaseURL:  constants.GazetteerBaseURL,
		CacheDir: cacheDir,
		HTTP:     transport.New(sourceName, opts...),
	}
}

// Fetch downloads the place file for one state and overwrites its cached
// copy. The cache is replaced through a temp file and rename, so a failed
// download never leaves a truncated file behind.
func (c *Client) Fetch(ctx context.Context, year int, state registry.StateCode) (*Download, error) {
	url := SourceURL(c.BaseURL, year, state.Prefix)
	dest := CachePath(c.CacheDir, year, state.Prefix)
	logger := logging.FromContext(ctx)

	if err := os.MkdirAll(c.CacheDir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", c.CacheDir, err)
	}

	logger.Debug().Str("url", url).Msg("Downloading gazetteer file")

	resp, err := c.HTTP.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	tempFile, err := os.CreateTemp(c.CacheDir, filepath.Base(dest)+".*.tmp")
	if err != nil {
		return nil, errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()
	defer func() { _ = os.Remove(tempPath) }()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tempFile, h), resp.Body)
	if closeErr := tempFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, errors.WrapIO("write", dest, err)
	}

	if err := os.Rename(tempPath, dest); err != nil {
		return nil, errors.WrapIO("rename", dest, err)
	}

	sum := hex.EncodeToString(h.Sum(nil))
	logger.Debug().
		Str("path", dest).
		Int64("bytes", n).
		Str("sha256", sum).
		Msg("Cached gazetteer file")

	return &Download{URL: url, Path: dest, SHA256: sum}, nil
}
