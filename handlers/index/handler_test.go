package index

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/jovies/web-ui/models"
	"github.com/jovies/web-ui/services/movies"
	"github.com/jovies/web-ui/services/poster"
	"github.com/jovies/web-ui/services/template"
	"github.com/jovies/web-ui/services/web"
	"github.com/jovies/web-ui/templates"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	movies []models.Movie
	err    error
}

func (s *stubLister) List(_ context.Context) ([]models.Movie, error) {
	return s.movies, s.err
}

func setup(t *testing.T, api Lister) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	re := multitemplate.NewRenderer()
	tm := template.NewManager[*web.Context](re, templates.FS).
		WithHelper(web.NewHelperWithTitle("Jovies")).
		WithHelper(poster.NewHelper(poster.NewResolver(poster.DefaultBaseURL, false, 0)))
	r := gin.New()
	r.HTMLRender = re
	RegisterHandler(r, tm, api)
	require.NoError(t, tm.Init())
	return r
}

func get(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func upstream(t *testing.T, status int, body string) *movies.Api {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return movies.NewApi(srv.Client(), srv.URL, 0)
}

func cards(t *testing.T, w *httptest.ResponseRecorder) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find(".container").Length())
	return doc.Find(".container > .movie")
}

func TestHandler_Index(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		w := get(setup(t, upstream(t, http.StatusOK, `[]`)))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, cards(t, w).Length())
	})

	t.Run("one card per record in order", func(t *testing.T) {
		w := get(setup(t, upstream(t, http.StatusOK, `[
			{"id": 30, "poster_path": "/c.jpg", "title": "C"},
			{"id": 10, "poster_path": "/a.jpg", "title": "A"},
			{"id": 20, "poster_path": "/b.jpg", "title": "B"}
		]`)))
		require.Equal(t, http.StatusOK, w.Code)
		var ids, titles []string
		cards(t, w).Each(func(_ int, s *goquery.Selection) {
			id, _ := s.Attr("data-id")
			ids = append(ids, id)
			titles = append(titles, s.Find("a").Text())
		})
		assert.Equal(t, []string{"30", "10", "20"}, ids)
		assert.Equal(t, []string{"C", "A", "B"}, titles)
	})

	t.Run("card fields", func(t *testing.T) {
		w := get(setup(t, upstream(t, http.StatusOK, `[{"id": 1, "poster_path": "/abc.jpg", "title": "Dune"}]`)))
		require.Equal(t, http.StatusOK, w.Code)
		c := cards(t, w)
		require.Equal(t, 1, c.Length())
		src, ok := c.Find("img").Attr("src")
		require.True(t, ok)
		assert.True(t, strings.HasSuffix(src, "/abc.jpg"), src)
		assert.Equal(t, "Dune", c.Find("a").Text())
		href, _ := c.Find("a").Attr("href")
		assert.Equal(t, "/movies/1", href)
	})

	t.Run("same body renders same cards", func(t *testing.T) {
		r := setup(t, upstream(t, http.StatusOK, `[{"id": 1, "title": "A"}, {"id": 2, "title": "B"}]`))
		first := get(r).Body.String()
		second := get(r).Body.String()
		assert.Equal(t, first, second)
	})

	t.Run("network error", func(t *testing.T) {
		w := get(setup(t, &stubLister{err: errors.New("connection refused")}))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), `class="movie"`)
	})

	t.Run("invalid json", func(t *testing.T) {
		w := get(setup(t, upstream(t, http.StatusOK, `[{"id": 1, "title": "A"},`)))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), `class="container"`)
	})

	t.Run("not a list", func(t *testing.T) {
		w := get(setup(t, upstream(t, http.StatusOK, `{"results": []}`)))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
