package bankfetch

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learntype/internal/questionbank"
)

func bankDoc(t *testing.T, version string) []byte {
	t.Helper()
	def := questionbank.Default()
	qs := append(def.CoreQuestions(), def.FollowupQuestions()...)
	data, err := questionbank.Marshal(questionbank.MustNew(version, qs))
	require.NoError(t, err)
	return data
}

func sha(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func buildZip(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// serve publishes files by path.
func serve(t *testing.T, files map[string][]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestParseChecksums(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "normal",
			input: "ABC123  bank.yaml\ndef456 *bank.tar.gz\n",
			want: map[string]string{
				"bank.yaml":   "abc123",
				"bank.tar.gz": "def456",
			},
		},
		{
			name:  "empty",
			input: "",
			want:  map[string]string{},
		},
		{
			name:  "malformed lines skipped",
			input: "abc123  a.yaml\nbadline\n  \nfoo  bar  baz\nghi789  b.yaml\n",
			want: map[string]string{
				"a.yaml": "abc123",
				"b.yaml": "ghi789",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseChecksums([]byte(tt.input)))
		})
	}
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello world")

	t.Run("match", func(t *testing.T) {
		assert.NoError(t, verifyChecksum(data, sha(data)))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := verifyChecksum(data, "0000000000000000000000000000000000000000000000000000000000000000")
		assert.ErrorIs(t, err, ErrChecksum)
	})
}

func TestExtractDocument(t *testing.T) {
	doc := []byte("version: v1.0.0\n")

	t.Run("bare", func(t *testing.T) {
		got, err := extractDocument(doc, "bank.yaml")
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("tar.gz", func(t *testing.T) {
		got, err := extractDocument(buildTarGz(t, "release/bank.yaml", doc), "bank-v1.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("zip", func(t *testing.T) {
		got, err := extractDocument(buildZip(t, "bank.json", doc), "bank-v1.zip")
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := extractDocument(buildTarGz(t, "README.md", doc), "bank-v1.tgz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no bank document")
	})
}

func TestAssetName(t *testing.T) {
	name, err := assetName("https://example.com/releases/v1/bank.tar.gz?x=1")
	require.NoError(t, err)
	assert.Equal(t, "bank.tar.gz", name)

	_, err = assetName("ftp://example.com/bank.yaml")
	assert.Error(t, err)
	_, err = assetName("https://example.com/")
	assert.Error(t, err)
}

func TestFetch_InstallsVerifiedArchive(t *testing.T) {
	doc := bankDoc(t, "v1.2.0")
	archive := buildTarGz(t, "bank.yaml", doc)
	srv := serve(t, map[string][]byte{
		"/v1.2.0/bank.tar.gz":   archive,
		"/v1.2.0/checksums.txt": []byte(fmt.Sprintf("%s  bank.tar.gz\n", sha(archive))),
	})
	dest := filepath.Join(t.TempDir(), "banks", "bank.yaml")

	var stages []string
	res, err := New().Fetch(context.Background(), Request{
		URL:          srv.URL + "/v1.2.0/bank.tar.gz",
		ChecksumsURL: srv.URL + "/v1.2.0/checksums.txt",
		Dest:         dest,
	}, func(p Progress) { stages = append(stages, p.Stage) })
	require.NoError(t, err)

	assert.Equal(t, "v1.2.0", res.Version)
	assert.Empty(t, res.Previous)
	assert.Equal(t, []string{"download", "verify", "validate", "install", "done"}, stages)

	installed, err := questionbank.LoadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", installed.Version())
}

func TestFetch_RefusesOlderUnlessForced(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(dest, bankDoc(t, "v1.1.0"), 0o644))

	srv := serve(t, map[string][]byte{"/bank.yaml": bankDoc(t, "v1.0.0")})
	req := Request{URL: srv.URL + "/bank.yaml", Dest: dest}

	_, err := New().Fetch(context.Background(), req, nil)
	assert.ErrorIs(t, err, ErrNotNewer)

	req.Force = true
	res, err := New().Fetch(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, "v1.1.0", res.Previous)
	assert.Equal(t, "v1.0.0", res.Version)
}

func TestFetch_FailuresLeaveDestUntouched(t *testing.T) {
	good := bankDoc(t, "v1.0.0")
	tests := []struct {
		name  string
		files map[string][]byte
		req   func(base string) Request
	}{
		{
			name:  "checksum mismatch",
			files: map[string][]byte{"/bank.yaml": bankDoc(t, "v2.0.0"), "/sums": []byte(sha(good) + "  bank.yaml\n")},
			req: func(base string) Request {
				return Request{URL: base + "/bank.yaml", ChecksumsURL: base + "/sums"}
			},
		},
		{
			name:  "invalid bank",
			files: map[string][]byte{"/bank.yaml": []byte("version: v2.0.0\nquestions: []\n")},
			req:   func(base string) Request { return Request{URL: base + "/bank.yaml"} },
		},
		{
			name:  "not found",
			files: map[string][]byte{},
			req:   func(base string) Request { return Request{URL: base + "/bank.yaml"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "bank.yaml")
			require.NoError(t, os.WriteFile(dest, good, 0o644))
			srv := serve(t, tt.files)

			req := tt.req(srv.URL)
			req.Dest = dest
			_, err := New().Fetch(context.Background(), req, nil)
			require.Error(t, err)

			after, err := os.ReadFile(dest)
			require.NoError(t, err)
			assert.Equal(t, good, after)
		})
	}
}
