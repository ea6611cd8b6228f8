package movies

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jovies/web-ui/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/webtor-io/lazymap"
)

const (
	apiURLFlag      = "movies-api-url"
	cacheExpireFlag = "movies-cache-expire"
)

const DefaultURL = "https://nomad-movies.nomadcoders.workers.dev/movies"

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   apiURLFlag,
			Usage:  "movies api url",
			EnvVar: "MOVIES_API_URL",
			Value:  DefaultURL,
		},
		cli.DurationFlag{
			Name:   cacheExpireFlag,
			Usage:  "movies api response cache expiration (0 disables cache)",
			EnvVar: "MOVIES_CACHE_EXPIRE",
			Value:  0,
		},
	)
}

// ErrNotFound is returned when the movies api answers with 404.
var ErrNotFound = errors.New("movie not found")

type Api struct {
	url     string
	cl      *http.Client
	list    *lazymap.LazyMap[[]models.Movie]
	details *lazymap.LazyMap[*models.MovieDetails]
	videos  *lazymap.LazyMap[[]models.Video]
}

func New(c *cli.Context, cl *http.Client) *Api {
	u := c.String(apiURLFlag)
	log.Infof("movies api endpoint %v", u)
	return NewApi(cl, u, c.Duration(cacheExpireFlag))
}

// NewApi makes Api for the listing endpoint u. Responses are memoized
// for expire when it is positive, otherwise every call hits the endpoint.
func NewApi(cl *http.Client, u string, expire time.Duration) *Api {
	api := &Api{
		url: strings.TrimSuffix(u, "/"),
		cl:  cl,
	}
	if expire > 0 {
		cfg := &lazymap.Config{
			Expire:      expire,
			ErrorExpire: 10 * time.Second,
		}
		list := lazymap.New[[]models.Movie](cfg)
		details := lazymap.New[*models.MovieDetails](cfg)
		videos := lazymap.New[[]models.Video](cfg)
		api.list = &list
		api.details = &details
		api.videos = &videos
	}
	return api
}

// List fetches the movie listing in the order returned by the endpoint.
func (api *Api) List(ctx context.Context) ([]models.Movie, error) {
	if api.list == nil {
		return api.fetchList(ctx)
	}
	return api.list.Get("list", func() ([]models.Movie, error) {
		ctx, cancel := detach(ctx)
		defer cancel()
		return api.fetchList(ctx)
	})
}

func (api *Api) fetchList(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := api.get(ctx, api.url, &movies); err != nil {
		return nil, err
	}
	if movies == nil {
		return nil, errors.New("movie list is null")
	}
	return movies, nil
}

func (api *Api) Get(ctx context.Context, id models.MovieID) (*models.MovieDetails, error) {
	if api.details == nil {
		return api.fetchDetails(ctx, id)
	}
	return api.details.Get(id.String(), func() (*models.MovieDetails, error) {
		ctx, cancel := detach(ctx)
		defer cancel()
		return api.fetchDetails(ctx, id)
	})
}

func (api *Api) fetchDetails(ctx context.Context, id models.MovieID) (*models.MovieDetails, error) {
	var md models.MovieDetails
	if err := api.get(ctx, api.movieURL(id), &md); err != nil {
		return nil, err
	}
	return &md, nil
}

func (api *Api) Videos(ctx context.Context, id models.MovieID) ([]models.Video, error) {
	if api.videos == nil {
		return api.fetchVideos(ctx, id)
	}
	return api.videos.Get(id.String(), func() ([]models.Video, error) {
		ctx, cancel := detach(ctx)
		defer cancel()
		return api.fetchVideos(ctx, id)
	})
}

func (api *Api) fetchVideos(ctx context.Context, id models.MovieID) ([]models.Video, error) {
	var videos []models.Video
	if err := api.get(ctx, api.movieURL(id)+"/videos", &videos); err != nil {
		return nil, err
	}
	if videos == nil {
		return nil, errors.New("video list is null")
	}
	return videos, nil
}

// cacheLoadTimeout bounds fetches that are no longer tied to a request.
const cacheLoadTimeout = 30 * time.Second

// detach keeps values of ctx but drops its cancellation, so a cached
// result never depends on the request that happened to load it.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), cacheLoadTimeout)
}

func (api *Api) movieURL(id models.MovieID) string {
	return fmt.Sprintf("%s/%s", api.url, url.PathEscape(id.String()))
}

func (api *Api) get(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := api.cl.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
