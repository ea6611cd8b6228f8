package movie

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jovies/web-ui/models"
	"github.com/jovies/web-ui/services/movies"
	"github.com/jovies/web-ui/services/template"
	"github.com/jovies/web-ui/services/web"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type Getter interface {
	Get(ctx context.Context, id models.MovieID) (*models.MovieDetails, error)
	Videos(ctx context.Context, id models.MovieID) ([]models.Video, error)
}

type Data struct {
	Movie  *models.MovieDetails
	Videos []models.Video
}

type Handler struct {
	tb  template.Builder[*web.Context]
	api Getter
}

func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], api Getter) {
	h := &Handler{
		tb:  tm.MustRegisterViews("movie/*").WithLayout("main"),
		api: api,
	}
	r.GET("/movies/:id", h.get)
}

func (s *Handler) get(c *gin.Context) {
	id := models.MovieID(c.Param("id"))
	d, err := s.fetch(c.Request.Context(), id)
	if errors.Is(err, movies.ErrNotFound) {
		_ = c.AbortWithError(http.StatusNotFound, err)
		return
	} else if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.Wrapf(err, "failed to get movie %v", id))
		return
	}
	s.tb.Build("movie/get").HTML(http.StatusOK, web.NewContext(c).WithData(d))
}

func (s *Handler) fetch(ctx context.Context, id models.MovieID) (*Data, error) {
	d := &Data{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Movie, err = s.api.Get(ctx, id)
		return
	})
	g.Go(func() (err error) {
		d.Videos, err = s.api.Videos(ctx, id)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
