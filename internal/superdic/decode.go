package superdic

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/wordoracle/internal/wordlist"
)

// xorKey deobfuscates the base64-decoded [Words] section entries.
var xorKey = []byte("7AVFU8PP")

var wordsHeader = []byte("[Words]\r\n")

// extractDic returns the first .dic member of a downloaded zip archive.
func extractDic(zipBytes []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary zip: %w", err)
	}
	for _, file := range reader.File {
		if !strings.HasSuffix(file.Name, ".dic") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open zip entry: %w", err)
		}
		data, err := io.ReadAll(rc)
		if cerr := rc.Close(); cerr != nil {
			// Best-effort close of in-memory zip entry.
			_ = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read zip entry: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("no .dic file found in downloaded zip")
}

// DecodeWords parses a SuperDic file's [Words] section into a
// normalized word set. Each CRLF-terminated entry is base64, XORed with
// the repeating key; the word is the prefix before '='. Graded entries
// (metadata containing ";1" or ";2") are skipped.
func DecodeWords(data []byte) (wordlist.Set, error) {
	idx := bytes.Index(data, wordsHeader)
	if idx == -1 {
		return nil, fmt.Errorf("[Words] section not found in dictionary file")
	}
	set := make(wordlist.Set)
	for _, line := range bytes.Split(data[idx+len(wordsHeader):], []byte("\r\n")) {
		if len(line) == 0 {
			continue
		}
		decoded, err := decodeEntry(line)
		if err != nil {
			return nil, err
		}
		eq := strings.IndexByte(decoded, '=')
		if eq == -1 {
			return nil, fmt.Errorf("malformed dictionary entry: missing separator")
		}
		rest := decoded[eq+1:]
		if strings.Contains(rest, ";1") || strings.Contains(rest, ";2") {
			continue
		}
		word, ok := wordlist.Normalize(decoded[:eq])
		if !ok {
			continue
		}
		set.Add(word)
	}
	return set, nil
}

func decodeEntry(line []byte) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(string(line))
	if err != nil {
		return "", fmt.Errorf("failed to decode dictionary entry: %w", err)
	}
	for i := range raw {
		raw[i] ^= xorKey[i%len(xorKey)]
	}
	return string(raw), nil
}
