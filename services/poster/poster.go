package poster

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"
)

const (
	baseURLFlag    = "poster-base-url"
	proxyFlag      = "poster-proxy"
	proxyWidthFlag = "poster-proxy-width"
)

const (
	DefaultBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultWidth   = 342
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   baseURLFlag,
			Usage:  "base url for relative poster paths",
			EnvVar: "POSTER_BASE_URL",
			Value:  DefaultBaseURL,
		},
		cli.BoolFlag{
			Name:   proxyFlag,
			Usage:  "serve relative posters resized through /poster",
			EnvVar: "POSTER_PROXY",
		},
		cli.IntFlag{
			Name:   proxyWidthFlag,
			Usage:  "poster width used by cards when proxy is enabled",
			EnvVar: "POSTER_PROXY_WIDTH",
			Value:  DefaultWidth,
		},
	)
}

// Resolver turns poster_path fragments into loadable image locations.
type Resolver struct {
	base  string
	proxy bool
	width int
}

func New(c *cli.Context) *Resolver {
	return NewResolver(c.String(baseURLFlag), c.Bool(proxyFlag), c.Int(proxyWidthFlag))
}

func NewResolver(base string, proxy bool, width int) *Resolver {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Resolver{
		base:  strings.TrimSuffix(base, "/"),
		proxy: proxy,
		width: width,
	}
}

func (s *Resolver) Proxy() bool {
	return s.proxy
}

// URL returns image location for the card. Absolute paths are left as is,
// an empty path gives an empty location.
func (s *Resolver) URL(path string) string {
	if path == "" || isAbsolute(path) {
		return path
	}
	if s.proxy {
		return fmt.Sprintf("/poster/%d/%s", s.width, strings.TrimPrefix(path, "/"))
	}
	return s.Join(path)
}

// Join returns upstream location of the original artwork. The result
// always starts with the base url, whatever path holds.
func (s *Resolver) Join(path string) string {
	return s.base + "/" + strings.TrimLeft(path, "/")
}

// ValidPath reports whether path is a plain relative artwork path
// that Join can safely turn into an upstream location.
func ValidPath(path string) bool {
	p := strings.TrimPrefix(path, "/")
	return p != "" &&
		!isAbsolute(p) &&
		!strings.Contains(p, "://") &&
		!strings.Contains(path, "//") &&
		!strings.Contains(p, "..") &&
		!strings.Contains(p, "\\")
}

func isAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Helper exposes Resolver to templates.
type Helper struct {
	r *Resolver
}

func NewHelper(r *Resolver) *Helper {
	return &Helper{r: r}
}

func (s *Helper) PosterURL(path string) string {
	return s.r.URL(path)
}
