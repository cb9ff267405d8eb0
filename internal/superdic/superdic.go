// Package superdic fetches and decodes Scrabble3D SuperDic dictionaries.
//
// Dictionary files are downloaded on first use from the Scrabble3D
// Dictionaries repository and cached locally. The decoded word content
// is treated as sensitive: callers receive it only as an in-memory set
// and nothing in this package writes decoded words anywhere else.
package superdic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/wordoracle/internal/wordlist"
)

// BaseURL is the download root for <language>.dic.zip archives.
const BaseURL = "https://github.com/Scrabble3D/Dictionaries/raw/main"

var supportedLanguages = []string{
	"brazilian", "catalan", "deutsch", "english", "english_phonetic",
	"espanol", "francais", "greek", "hebrew", "hollands", "hungarian",
	"irish", "italiano", "latin", "persian", "polish", "portuguese",
	"romana", "russian", "scottishgaelic", "slovak", "suomi", "svenska",
	"tamil", "turkish",
}

// Dictionary describes a cached dictionary file.
type Dictionary struct {
	Language string
	Path     string
	Cached   bool
}

// Supported returns the supported language codes in sorted order.
func Supported() []string {
	out := append([]string(nil), supportedLanguages...)
	sort.Strings(out)
	return out
}

// IsSupported reports whether the language has a known dictionary.
func IsSupported(language string) bool {
	for _, lang := range supportedLanguages {
		if lang == language {
			return true
		}
	}
	return false
}

// Fetch returns the local dictionary file for the language, downloading
// and unpacking it into cacheDir on first use.
func Fetch(ctx context.Context, language, cacheDir string) (Dictionary, error) {
	return fetch(ctx, language, cacheDir, BaseURL)
}

func fetch(ctx context.Context, language, cacheDir, baseURL string) (Dictionary, error) {
	if !IsSupported(language) {
		return Dictionary{}, fmt.Errorf("unsupported language %q (available: %s)",
			language, strings.Join(Supported(), ", "))
	}
	if cacheDir == "" {
		return Dictionary{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Dictionary{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	destPath := filepath.Join(cacheDir, language+".dic")
	if _, err := os.Stat(destPath); err == nil {
		return Dictionary{Language: language, Path: destPath, Cached: true}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Dictionary{}, fmt.Errorf("failed to stat cached dictionary: %w", err)
	}

	url := fmt.Sprintf("%s/%s.dic.zip", baseURL, language)
	resp, err := httpRequest(ctx, url)
	if err != nil {
		return Dictionary{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return Dictionary{}, fmt.Errorf("unexpected dictionary status: %s", resp.Status)
	}

	zipBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return Dictionary{}, fmt.Errorf("failed to download dictionary: %w", err)
	}
	dicBytes, err := extractDic(zipBytes)
	if err != nil {
		return Dictionary{}, err
	}

	tmpFile, err := os.CreateTemp(cacheDir, "superdic-*.dic")
	if err != nil {
		return Dictionary{}, fmt.Errorf("failed to create temp dictionary: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(dicBytes); err != nil {
		return Dictionary{}, fmt.Errorf("failed to write dictionary: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return Dictionary{}, fmt.Errorf("failed to close temp dictionary: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return Dictionary{}, fmt.Errorf("failed to move dictionary into cache: %w", err)
	}

	return Dictionary{Language: language, Path: destPath, Cached: false}, nil
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// LoadSet decodes the dictionary's [Words] section into a normalized
// word set.
func LoadSet(path string) (wordlist.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	return DecodeWords(data)
}
