package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 32)...)
)

func memFile(name string, data []byte) File {
	return File{
		Filename: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func newTestStore(fs afero.Fs) *ImageStore {
	return NewImageStore(fs, Options{
		BaseURL:  "http://localhost:8080",
		MaxBytes: 1 << 20,
		MaxFiles: 4,
		Timeout:  5 * time.Second,
	}, zap.NewNop())
}

func countFiles(t *testing.T, fs afero.Fs) int {
	t.Helper()
	infos, err := afero.ReadDir(fs, "/")
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	return len(infos)
}

func TestSaveNamesAndURL(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(fs)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	stored, err := s.Save(context.Background(), memFile("Summer Dress.PNG", pngBytes))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !strings.HasPrefix(stored.Name, "summer-dress-1700000000000-") || !strings.HasSuffix(stored.Name, ".png") {
		t.Fatalf("unexpected name %q", stored.Name)
	}
	if stored.URL != "http://localhost:8080/images/"+stored.Name {
		t.Fatalf("unexpected url %q", stored.URL)
	}
	if ok, _ := afero.Exists(fs, "/"+stored.Name); !ok {
		t.Fatal("file not written")
	}
}

func TestSaveRejectsNonImage(t *testing.T) {
	s := newTestStore(afero.NewMemMapFs())
	_, err := s.Save(context.Background(), memFile("notes.png", []byte("just some text, not an image")))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestSaveRejectsOversized(t *testing.T) {
	s := newTestStore(afero.NewMemMapFs())
	s.opts.MaxBytes = 16
	_, err := s.Save(context.Background(), memFile("big.png", pngBytes))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}
}

func TestSaveAllKeepsInputOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(fs)

	stored, err := s.SaveAll(context.Background(), []File{
		memFile("front.png", pngBytes),
		memFile("back.jpg", jpegBytes),
		memFile("side.png", pngBytes),
	})
	if err != nil {
		t.Fatalf("save all: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("got %d results, want 3", len(stored))
	}
	for i, prefix := range []string{"front-", "back-", "side-"} {
		if !strings.HasPrefix(stored[i].Name, prefix) {
			t.Fatalf("result %d = %q, want prefix %q", i, stored[i].Name, prefix)
		}
	}
	if n := countFiles(t, fs); n != 3 {
		t.Fatalf("files on disk = %d, want 3", n)
	}
}

func TestSaveAllRollsBackOnFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(fs)

	_, err := s.SaveAll(context.Background(), []File{
		memFile("a.png", pngBytes),
		memFile("b.png", pngBytes),
		memFile("c.txt", []byte("plain text body")),
	})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
	if n := countFiles(t, fs); n != 0 {
		t.Fatalf("files left after rollback = %d, want 0", n)
	}
}

func TestSaveAllWriteFailure(t *testing.T) {
	s := newTestStore(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	if _, err := s.SaveAll(context.Background(), []File{memFile("a.png", pngBytes)}); err == nil {
		t.Fatal("expected write error on read-only fs")
	}
}

func TestSaveAllLimits(t *testing.T) {
	s := newTestStore(afero.NewMemMapFs())

	if _, err := s.SaveAll(context.Background(), nil); !errors.Is(err, ErrNoFile) {
		t.Fatalf("err = %v, want ErrNoFile", err)
	}

	files := make([]File, 5)
	for i := range files {
		files[i] = memFile("x.png", pngBytes)
	}
	if _, err := s.SaveAll(context.Background(), files); !errors.Is(err, ErrTooManyFiles) {
		t.Fatalf("err = %v, want ErrTooManyFiles", err)
	}
}

func TestHandlerServesStoredImage(t *testing.T) {
	s := newTestStore(afero.NewMemMapFs())
	stored, err := s.Save(context.Background(), memFile("logo.png", pngBytes))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/"+stored.Name, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !bytes.Equal(rec.Body.Bytes(), pngBytes) {
		t.Fatal("served bytes differ from stored bytes")
	}
}
