package index

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jovies/web-ui/models"
	"github.com/jovies/web-ui/services/template"
	"github.com/jovies/web-ui/services/web"
	"github.com/pkg/errors"
)

type Lister interface {
	List(ctx context.Context) ([]models.Movie, error)
}

type Data struct {
	Movies []models.Movie
}

type Handler struct {
	tb  template.Builder[*web.Context]
	api Lister
}

func RegisterHandler(r *gin.Engine, tm *template.Manager[*web.Context], api Lister) {
	h := &Handler{
		tb:  tm.MustRegisterViews("*").WithLayout("main"),
		api: api,
	}
	r.GET("/", h.index)
}

func (s *Handler) index(c *gin.Context) {
	movies, err := s.api.List(c.Request.Context())
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.Wrap(err, "failed to list movies"))
		return
	}
	s.tb.Build("index").HTML(http.StatusOK, web.NewContext(c).WithData(&Data{
		Movies: movies,
	}))
}
