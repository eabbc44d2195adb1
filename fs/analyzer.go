package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/diffinsight"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"
)

// Compile-time interface verification.
var _ diffinsight.Analyzer = (*Analyzer)(nil)

// cacheVersion is bumped whenever the entry layout changes; entries with a
// different version are treated as misses.
const cacheVersion = 1

// Analyzer wraps an Analyzer with a content-addressed file cache. Identical
// inputs that are analyzed concurrently share a single inner call.
type Analyzer struct {
	inner       diffinsight.Analyzer
	cacheDir    string
	namespace   string
	callTimeout time.Duration
	group       singleflight.Group
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithNamespace separates cache entries of different backends or models.
func WithNamespace(ns string) AnalyzerOption {
	return func(a *Analyzer) {
		a.namespace = ns
	}
}

// WithCallTimeout bounds the shared inner call, which does not end when the
// caller that started it gives up.
func WithCallTimeout(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		a.callTimeout = d
	}
}

// NewAnalyzer creates a new caching analyzer.
func NewAnalyzer(inner diffinsight.Analyzer, cacheDir string, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		inner:       inner,
		cacheDir:    cacheDir,
		callTimeout: diffinsight.DefaultAnalysisTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type cacheEntry struct {
	Version int                        `msgpack:"v"`
	Result  diffinsight.AnalysisResult `msgpack:"result"`
}

// Analyze returns a cached result or delegates to the inner analyzer.
// Failed calls are not cached.
func (a *Analyzer) Analyze(ctx context.Context, diff string) (*diffinsight.AnalysisResult, error) {
	key := a.key(diff)

	if cached, err := a.load(key); err == nil {
		return cached, nil
	}

	// The shared call outlives any one caller; each caller stops waiting
	// when its own context ends.
	ch := a.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.callTimeout)
		defer cancel()

		result, err := a.inner.Analyze(callCtx, diff)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, fmt.Errorf("fs: %w: inner analyzer returned nil", diffinsight.ErrMalformedResponse)
		}
		// Best-effort: a failed write only costs a later miss.
		_ = a.save(key, result)
		return result, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	// Callers sharing one flight must not share the result.
	return res.Val.(*diffinsight.AnalysisResult).Clone(), nil
}

func (a *Analyzer) key(diff string) string {
	h := sha256.New()
	h.Write([]byte(a.namespace))
	h.Write([]byte{0})
	h.Write([]byte(diff))
	return hex.EncodeToString(h.Sum(nil))
}

func (a *Analyzer) cachePath(key string) string {
	return filepath.Join(a.cacheDir, key[:2], key+".msgpack")
}

func (a *Analyzer) load(key string) (*diffinsight.AnalysisResult, error) {
	data, err := os.ReadFile(a.cachePath(key))
	if err != nil {
		return nil, err
	}

	var entry cacheEntry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	if entry.Version != cacheVersion {
		return nil, fmt.Errorf("fs: cache entry version %d, want %d", entry.Version, cacheVersion)
	}

	return &entry.Result, nil
}

func (a *Analyzer) save(key string, result *diffinsight.AnalysisResult) error {
	path := a.cachePath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := msgpack.Marshal(cacheEntry{Version: cacheVersion, Result: *result})
	if err != nil {
		return err
	}

	// Write to a temp file and rename so readers never see a partial entry.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
