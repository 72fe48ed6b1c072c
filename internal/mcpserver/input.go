package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/internal/options"
	"github.com/erraggy/annodoc/scanner"
)

// sourceInput represents the two ways sources can be given to a tool.
// Exactly one of Path or Files must be set.
type sourceInput struct {
	Path      string       `json:"path,omitempty"      jsonschema:"File or directory to scan"`
	Recursive *bool        `json:"recursive,omitempty" jsonschema:"Descend into subdirectories of path (default true)"`
	Exts      []string     `json:"exts,omitempty"      jsonschema:"Only scan files with these extensions, e.g. [\".go\", \".rs\"]"`
	Lang      string       `json:"lang,omitempty"      jsonschema:"Force a language instead of detecting it from file extensions"`
	Encoding  string       `json:"encoding,omitempty"  jsonschema:"Source encoding such as gbk or shift_jis (default utf-8)"`
	Files     []inlineFile `json:"files,omitempty"     jsonschema:"In-memory source files, scanned in the given order"`
}

// inlineFile is one in-memory source file.
type inlineFile struct {
	Name    string `json:"name"    jsonschema:"File name; its extension selects the language"`
	Content string `json:"content" jsonschema:"Source code"`
}

// resolve turns the input into extract sources.
func (s sourceInput) resolve() ([]extract.Source, error) {
	if err := options.ValidateSingleInputSource(
		"exactly one of path or files must be provided",
		"only one of path or files may be provided",
		s.Path != "", len(s.Files) > 0,
	); err != nil {
		return nil, err
	}

	if s.Path != "" {
		recursive := true
		if s.Recursive != nil {
			recursive = *s.Recursive
		}
		return extract.Collect([]extract.Input{{
			Path:      s.Path,
			Recursive: recursive,
			Exts:      s.Exts,
			Lang:      s.Lang,
			Encoding:  s.Encoding,
		}})
	}

	var forced *extract.Language
	if s.Lang != "" {
		l, ok := extract.LookupLanguage(s.Lang)
		if !ok {
			return nil, fmt.Errorf("unknown language %q", s.Lang)
		}
		forced = l
	}
	var total int64
	sources := make([]extract.Source, 0, len(s.Files))
	for i, f := range s.Files {
		total += int64(len(f.Content))
		if total > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content exceeds maximum %d bytes; use path input instead, or set ANNODOC_MAX_INLINE_SIZE to increase", cfg.MaxInlineSize)
		}
		if f.Name == "" {
			return nil, fmt.Errorf("files[%d]: name is required", i)
		}
		lang := forced
		if lang == nil {
			l, ok := extract.LanguageForFile(f.Name)
			if !ok {
				return nil, fmt.Errorf("files[%d]: no language for %s; set lang", i, f.Name)
			}
			lang = l
		}
		sources = append(sources, &extract.TextSource{File: f.Name, Lang: lang, Text: f.Content})
	}
	return sources, nil
}

// cacheEntry holds a cached scan result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *scanner.ScanResult
	insertAt  time.Time
	expiresAt time.Time
}

// scanCacheStore provides a session-scoped cache of scan results.
// Keys hash the scan settings together with every source's identity:
// path, size, and modification time for files, content for inline files.
type scanCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var scanCache = &scanCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *scanCacheStore) get(key string) *scanner.ScanResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.result
	}
	return nil
}

// put stores a result, evicting the least recently used entry if at capacity.
func (c *scanCacheStore) put(key string, result *scanner.ScanResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}
	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}
	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *scanCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a goroutine that periodically removes expired
// entries until ctx is cancelled. Only the first call spawns a sweeper.
func (c *scanCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *scanCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *scanCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey returns "" when a source cannot be identified, which
// disables caching for the call.
func makeCacheKey(settings string, sources []extract.Source) string {
	h := sha256.New()
	_, _ = io.WriteString(h, settings)
	for _, src := range sources {
		switch s := src.(type) {
		case *extract.FileSource:
			info, err := os.Stat(s.Path)
			if err != nil {
				return ""
			}
			_, _ = fmt.Fprintf(h, "\x00file:%s:%d:%d:%s", s.Path, info.Size(), info.ModTime().UnixNano(), s.Encoding)
		case *extract.TextSource:
			lang := ""
			if s.Lang != nil {
				lang = s.Lang.Name
			}
			_, _ = fmt.Fprintf(h, "\x00text:%s:%s:%d:", s.File, lang, len(s.Text))
			_, _ = io.WriteString(h, s.Text)
		default:
			return ""
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
