// Package bankfetch installs question bank documents published over HTTP,
// either bare or packed in a release archive, after verifying them.
package bankfetch

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/learntype/internal/questionbank"
)

var (
	ErrChecksum = errors.New("checksum verification failed")
	ErrNotNewer = errors.New("fetched bank is not newer than the installed bank")
)

// documentNames are the files looked for inside an archive.
var documentNames = []string{"bank.yaml", "bank.yml", "bank.json"}

const maxDocumentSize = 4 << 20

// Progress reports one stage of a fetch.
type Progress struct {
	Stage   string
	Message string
}

// Request describes what to fetch and where to install it.
type Request struct {
	// URL points at a bank document or a .tar.gz/.tgz/.zip archive holding
	// one.
	URL string
	// ChecksumsURL optionally points at a checksums.txt listing
	// "<sha256>  <asset>" lines; the asset is the last path element of URL.
	ChecksumsURL string
	// Dest is the installed bank file.
	Dest string
	// Force installs even when Dest already holds the same or a newer version.
	Force bool
}

// Result describes an installed bank.
type Result struct {
	Version  string
	Previous string
	Path     string
}

// Fetcher downloads and installs banks.
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

type Option func(*Fetcher)

func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch downloads, verifies, validates and installs a bank. A bank that
// fails any step leaves Dest untouched.
func (f *Fetcher) Fetch(ctx context.Context, req Request, progress func(Progress)) (*Result, error) {
	if progress == nil {
		progress = func(Progress) {}
	}
	if req.Dest == "" {
		return nil, errors.New("destination path is required")
	}
	asset, err := assetName(req.URL)
	if err != nil {
		return nil, err
	}

	progress(Progress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", asset)})
	data, err := f.download(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("download bank: %w", err)
	}

	if req.ChecksumsURL != "" {
		progress(Progress{Stage: "verify", Message: "Verifying checksum..."})
		sums, err := f.download(ctx, req.ChecksumsURL)
		if err != nil {
			return nil, fmt.Errorf("download checksums: %w", err)
		}
		expected, ok := parseChecksums(sums)[asset]
		if !ok {
			return nil, fmt.Errorf("no checksum found for %s", asset)
		}
		if err := verifyChecksum(data, expected); err != nil {
			return nil, err
		}
	}

	doc, err := extractDocument(data, asset)
	if err != nil {
		return nil, fmt.Errorf("extract bank: %w", err)
	}

	progress(Progress{Stage: "validate", Message: "Validating questions..."})
	bank, err := questionbank.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("validate bank: %w", err)
	}

	res := &Result{Version: bank.Version(), Path: req.Dest}
	if prev, err := questionbank.LoadFile(req.Dest); err == nil {
		res.Previous = prev.Version()
		if !req.Force && questionbank.CompareVersions(bank.Version(), prev.Version()) <= 0 {
			return nil, fmt.Errorf("%w: have %s, fetched %s", ErrNotNewer, prev.Version(), bank.Version())
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		f.logger.Warn("installed bank is unreadable, replacing it", zap.String("path", req.Dest), zap.Error(err))
	}

	progress(Progress{Stage: "install", Message: fmt.Sprintf("Installing %s...", bank.Version())})
	sum := sha256.Sum256(doc)
	if err := install(doc, req.Dest, sum[:]); err != nil {
		return nil, fmt.Errorf("install bank: %w", err)
	}

	f.logger.Info("question bank installed",
		zap.String("version", res.Version), zap.String("previous", res.Previous), zap.String("path", res.Path))
	progress(Progress{Stage: "done", Message: fmt.Sprintf("Installed bank %s", bank.Version())})
	return res, nil
}

func assetName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid bank url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid bank url %q: want http or https", rawURL)
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return "", fmt.Errorf("invalid bank url %q: no file name", rawURL)
	}
	return name, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("%s is larger than %d bytes", url, maxDocumentSize)
	}
	return data, nil
}

func parseChecksums(data []byte) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		result[strings.TrimPrefix(parts[1], "*")] = strings.ToLower(parts[0])
	}
	return result
}

func verifyChecksum(data []byte, expectedHex string) error {
	h := sha256.Sum256(data)
	actual := hex.EncodeToString(h[:])
	if actual != expectedHex {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, expectedHex, actual)
	}
	return nil
}

// extractDocument returns the bank document inside an archive asset, or
// data itself for a bare document.
func extractDocument(data []byte, asset string) ([]byte, error) {
	switch {
	case strings.HasSuffix(asset, ".tar.gz"), strings.HasSuffix(asset, ".tgz"):
		return extractFromTarGz(data)
	case strings.HasSuffix(asset, ".zip"):
		return extractFromZip(data)
	}
	return data, nil
}

func isDocument(name string) bool {
	base := filepath.Base(name)
	for _, n := range documentNames {
		if base == n {
			return true
		}
	}
	return false
}

func extractFromTarGz(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && isDocument(hdr.Name) {
			return io.ReadAll(io.LimitReader(tr, maxDocumentSize))
		}
	}
	return nil, fmt.Errorf("no bank document (%s) in archive", strings.Join(documentNames, ", "))
}

func extractFromZip(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range r.File {
		if !isDocument(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(io.LimitReader(rc, maxDocumentSize))
	}
	return nil, fmt.Errorf("no bank document (%s) in archive", strings.Join(documentNames, ", "))
}

// install writes doc to a temp file next to dest, checks what landed on
// disk, and renames it over dest.
func install(doc []byte, dest string, expectedHash []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bank dir: %w", err)
	}
	tmpDir, err := os.MkdirTemp(dir, ".learntype-bank-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	tmpFile := filepath.Join(tmpDir, filepath.Base(dest))
	if err := os.WriteFile(tmpFile, doc, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	written, err := os.ReadFile(tmpFile)
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	writtenHash := sha256.Sum256(written)
	if !bytes.Equal(writtenHash[:], expectedHash) {
		return fmt.Errorf("%w: temp file changed after write", ErrChecksum)
	}

	if err := os.Rename(tmpFile, dest); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
