package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/media"
	"github.com/fekuna/kitmed-catalog-service/internal/media/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound = apperror.NotFound("MediaNotFound")
	ErrEmpty    = apperror.Invalid("MediaEmpty")
	ErrTooLarge = apperror.Invalid("MediaTooLarge")
)

const sniffLen = 512

type Options struct {
	UploadDir     string
	PublicBaseURL string
	MaxSize       int64
}

type mediaUseCase struct {
	repo    media.Repository
	dir     string
	baseURL string
	maxSize int64
	logger  logger.ZapLogger
	now     func() time.Time
}

func NewMediaUseCase(repo media.Repository, opts Options, log logger.ZapLogger) media.UseCase {
	if opts.MaxSize <= 0 {
		opts.MaxSize = 20 << 20
	}
	return &mediaUseCase{
		repo:    repo,
		dir:     opts.UploadDir,
		baseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
		maxSize: opts.MaxSize,
		logger:  log,
		now:     time.Now,
	}
}

// head keeps the first bytes written to it for content sniffing.
type head struct {
	buf []byte
}

func (h *head) Write(p []byte) (int, error) {
	if room := sniffLen - len(h.buf); room > 0 {
		if len(p) < room {
			room = len(p)
		}
		h.buf = append(h.buf, p[:room]...)
	}
	return len(p), nil
}

func (uc *mediaUseCase) Upload(ctx context.Context, input *dto.UploadInput) (*model.Media, error) {
	tmpDir := filepath.Join(uc.dir, ".tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, apperror.Internal(err)
	}
	tmp, err := os.CreateTemp(tmpDir, "upload-*")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	// 1. Stream to disk while hashing
	hasher := sha256.New()
	sniff := &head{}
	n, err := io.Copy(io.MultiWriter(tmp, hasher, sniff), io.LimitReader(input.Content, uc.maxSize+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if n == 0 {
		return nil, ErrEmpty
	}
	if n > uc.maxSize {
		return nil, ErrTooLarge.WithData(map[string]interface{}{"Max": uc.maxSize})
	}
	hash := hex.EncodeToString(hasher.Sum(nil))

	// 2. Known content: drop the temp file
	existing, err := uc.repo.FindByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Duplicate = true
		return existing, nil
	}

	// 3. Move into the content-addressed tree
	ext := strings.ToLower(filepath.Ext(input.FileName))
	name := hash + ext
	finalPath := filepath.Join(uc.dir, hash[:2], name)
	if err := os.MkdirAll(filepath.Dir(finalPath), 0o755); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return nil, apperror.Internal(err)
	}

	mimeType := input.MimeType
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(sniff.buf)
	}

	m := &model.Media{
		ID:        uuid.New().String(),
		Hash:      hash,
		FileName:  filepath.Base(input.FileName),
		MimeType:  mimeType,
		Size:      n,
		Path:      finalPath,
		URL:       uc.baseURL + "/" + path.Join(hash[:2], name),
		CreatedAt: uc.now(),
	}

	// 4. Record; a concurrent upload of the same bytes may have won
	inserted, err := uc.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	if !inserted {
		winner, err := uc.repo.FindByHash(ctx, hash)
		if err != nil {
			return nil, err
		}
		if winner == nil {
			return nil, apperror.Internal(os.ErrNotExist)
		}
		winner.Duplicate = true
		return winner, nil
	}

	uc.logger.Info("media stored",
		zap.String("media_id", m.ID),
		zap.String("hash", hash),
		zap.Int64("size", n),
	)
	return m, nil
}

func (uc *mediaUseCase) GetMedia(ctx context.Context, id string) (*model.Media, error) {
	m, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

func (uc *mediaUseCase) LookupByHash(ctx context.Context, hash string) (*model.Media, error) {
	m, err := uc.repo.FindByHash(ctx, strings.ToLower(hash))
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}
