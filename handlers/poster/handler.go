package poster

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	ps "github.com/jovies/web-ui/services/poster"
)

const (
	posterCacheS3BucketFlag = "poster-cache-s3-bucket"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   posterCacheS3BucketFlag,
			Usage:  "s3 bucket for resized posters (empty disables cache)",
			EnvVar: "POSTER_CACHE_S3_BUCKET",
		},
	)
}

type Handler struct {
	cl    *http.Client
	r     *ps.Resolver
	cache ps.Cache
}

func RegisterHandler(c *cli.Context, r *gin.Engine, re *ps.Resolver, cl *http.Client, s3Cl *cs.S3Client) {
	if !re.Proxy() {
		return
	}
	h := &Handler{
		cl: cl,
		r:  re,
	}
	if sc := ps.NewS3Cache(s3Cl, c.String(posterCacheS3BucketFlag)); sc != nil {
		h.cache = sc
	}
	register(r, h)
}

func register(r *gin.Engine, h *Handler) {
	gr := r.Group("/poster")
	gr.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead},
	}))
	gr.GET("/:width/*path", h.poster)
	gr.HEAD("/:width/*path", h.poster)
}
