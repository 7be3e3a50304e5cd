package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"storefront-api/pkg/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoFile          = errors.New("image file is required")
	ErrUnsupportedType = errors.New("only png and jpeg images are allowed")
	ErrFileTooLarge    = errors.New("image file is too large")
	ErrTooManyFiles    = errors.New("too many image files")
)

var allowedTypes = []string{"image/png", "image/jpeg"}

// File is one upload waiting to be persisted.
type File struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// Stored describes a persisted upload.
type Stored struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FromMultipart adapts multipart headers to Files.
func FromMultipart(headers []*multipart.FileHeader) []File {
	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, File{
			Filename: fh.Filename,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files
}

type Options struct {
	BaseURL    string
	PublicPath string
	MaxBytes   int64
	MaxFiles   int
	Timeout    time.Duration
}

// ImageStore writes uploads to an afero filesystem rooted at the upload directory.
type ImageStore struct {
	fs   afero.Fs
	opts Options
	log  *zap.Logger
	now  func() time.Time
}

func NewImageStore(fs afero.Fs, opts Options, log *zap.Logger) *ImageStore {
	if opts.PublicPath == "" {
		opts.PublicPath = "/images"
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 10 << 20
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = 10
	}
	return &ImageStore{
		fs:   fs,
		opts: opts,
		log:  log.With(zap.String("storage", "images")),
		now:  time.Now,
	}
}

// NewOsImageStore roots the store at dir on the local disk.
func NewOsImageStore(dir string, opts Options, log *zap.Logger) (*ImageStore, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return NewImageStore(afero.NewBasePathFs(osFs, dir), opts, log), nil
}

// Save persists one image and returns its public URL.
func (s *ImageStore) Save(ctx context.Context, f File) (Stored, error) {
	if f.Open == nil {
		return Stored{}, ErrNoFile
	}
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}

	rc, err := f.Open()
	if err != nil {
		return Stored{}, fmt.Errorf("open upload %s: %w", f.Filename, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, s.opts.MaxBytes+1))
	if err != nil {
		return Stored{}, fmt.Errorf("read upload %s: %w", f.Filename, err)
	}
	if int64(len(data)) > s.opts.MaxBytes {
		return Stored{}, fmt.Errorf("%s: %w", f.Filename, ErrFileTooLarge)
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return Stored{}, fmt.Errorf("%s is %s: %w", f.Filename, mtype.String(), ErrUnsupportedType)
	}

	filename := f.Filename
	if path.Ext(filename) == "" {
		filename += mtype.Extension()
	}
	name := utils.MakeFileName(filename, s.now())

	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}
	if err := afero.WriteReader(s.fs, s.fsPath(name), bytes.NewReader(data)); err != nil {
		return Stored{}, fmt.Errorf("write upload %s: %w", name, err)
	}

	s.log.Debug("Image stored", zap.String("name", name), zap.String("mime", mtype.String()))
	return Stored{Name: name, URL: s.URL(name)}, nil
}

// SaveAll uploads files concurrently and returns them in input order.
// If any upload fails, files already written are removed and the first error is returned.
func (s *ImageStore) SaveAll(ctx context.Context, files []File) ([]Stored, error) {
	if len(files) == 0 {
		return nil, ErrNoFile
	}
	if len(files) > s.opts.MaxFiles {
		return nil, fmt.Errorf("%d files, max %d: %w", len(files), s.opts.MaxFiles, ErrTooManyFiles)
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	results := make([]Stored, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			stored, err := s.Save(gctx, f)
			if err != nil {
				return err
			}
			results[i] = stored
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		written := make([]string, 0, len(results))
		for _, r := range results {
			if r.Name != "" {
				written = append(written, r.Name)
			}
		}
		s.Remove(written...)
		s.log.Warn("Gallery upload failed, rolled back",
			zap.Int("files", len(files)),
			zap.Int("removed", len(written)),
			zap.Error(err))
		return nil, err
	}

	return results, nil
}

// Remove deletes stored files, ignoring ones already gone.
func (s *ImageStore) Remove(names ...string) {
	for _, name := range names {
		if err := s.fs.Remove(s.fsPath(name)); err != nil && !errors.Is(err, afero.ErrFileNotFound) {
			s.log.Warn("Failed to remove image", zap.String("name", name), zap.Error(err))
		}
	}
}

func (s *ImageStore) fsPath(name string) string {
	return "/" + name
}

// URL maps a stored name to the address clients fetch it from.
func (s *ImageStore) URL(name string) string {
	return s.opts.BaseURL + path.Join(s.opts.PublicPath, name)
}

func (s *ImageStore) PublicPath() string {
	return s.opts.PublicPath
}

// Handler serves stored images under the public path.
func (s *ImageStore) Handler() http.Handler {
	httpFs := afero.NewHttpFs(s.fs)
	return http.StripPrefix(s.opts.PublicPath, http.FileServer(httpFs.Dir("/")))
}
