package poster

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"image/jpeg"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	ps "github.com/jovies/web-ui/services/poster"
)

const (
	PosterJPEGQuality = 85
	PosterMaxWidth    = 1000
)

type PosterArgs struct {
	path  string
	width int
}

func (s *PosterArgs) Key() string {
	return fmt.Sprintf("%v/%v", s.width, s.path)
}

func (s *Handler) bindPosterArgs(c *gin.Context) (*PosterArgs, error) {
	width, err := strconv.Atoi(c.Param("width"))
	if err != nil || width <= 0 || width > PosterMaxWidth {
		return nil, errors.Errorf("wrong width %v", c.Param("width"))
	}
	path := c.Param("path")
	if !ps.ValidPath(path) {
		return nil, errors.Errorf("wrong path %v", path)
	}
	return &PosterArgs{
		path:  strings.TrimPrefix(path, "/"),
		width: width,
	}, nil
}

func (s *Handler) poster(c *gin.Context) {
	pa, err := s.bindPosterArgs(c)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	b, err := s.getPoster(c.Request.Context(), pa)
	if err != nil {
		log.WithError(err).Error("failed to get resized image")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	etag := fmt.Sprintf(`"%x"`, sha256.Sum256(b))

	if match := c.Request.Header.Get("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("ETag", etag)
	c.Data(http.StatusOK, "image/jpeg", b)
}

// getPoster serves from cache when one is configured. A failing cache
// only gets logged, the poster is then resized from upstream.
func (s *Handler) getPoster(ctx context.Context, pa *PosterArgs) ([]byte, error) {
	if s.cache == nil {
		return s.resize(ctx, pa)
	}
	b, err := s.cache.Load(ctx, pa.Key())
	if err != nil {
		log.WithError(err).WithField("key", pa.Key()).Warn("poster cache unavailable")
	} else if b != nil {
		return b, nil
	}
	b, err = s.resize(ctx, pa)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Store(ctx, pa.Key(), b); err != nil {
		log.WithError(err).WithField("key", pa.Key()).Warn("failed to cache poster")
	}
	return b, nil
}

func (s *Handler) resize(ctx context.Context, pa *PosterArgs) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.r.Join(pa.path), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	resp, err := s.cl.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	src, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	var buf bytes.Buffer
	err = jpeg.Encode(&buf, imaging.Resize(src, pa.width, 0, imaging.Lanczos), &jpeg.Options{Quality: PosterJPEGQuality})
	if err != nil {
		return nil, errors.Wrap(err, "encode image")
	}
	return buf.Bytes(), nil
}
