package main

import (
	"net/http"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	wi "github.com/jovies/web-ui/handlers/index"
	wm "github.com/jovies/web-ui/handlers/movie"
	wp "github.com/jovies/web-ui/handlers/poster"
	sta "github.com/jovies/web-ui/handlers/static"
	"github.com/jovies/web-ui/services/movies"
	"github.com/jovies/web-ui/services/poster"
	"github.com/jovies/web-ui/services/template"
	w "github.com/jovies/web-ui/services/web"
	"github.com/jovies/web-ui/templates"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterPprofFlags(c.Flags)
	c.Flags = cs.RegisterS3ClientFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = w.RegisterHelperFlags(c.Flags)
	c.Flags = movies.RegisterFlags(c.Flags)
	c.Flags = poster.RegisterFlags(c.Flags)
	c.Flags = wp.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting template renderer
	re := multitemplate.NewRenderer()

	// Setting Poster Resolver
	pr := poster.New(c)

	// Setting TemplateManager
	tm := template.NewManager[*w.Context](re, templates.FS).
		WithHelper(w.NewHelper(c)).
		WithHelper(poster.NewHelper(pr))

	var servers []cs.Servable
	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Pprof
	pprof := cs.NewPprof(c)
	if pprof != nil {
		servers = append(servers, pprof)
		defer pprof.Close()
	}

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false
	r.HTMLRender = re

	// Setting Web
	web, err := w.New(c, r)
	if err != nil {
		return err
	}
	servers = append(servers, web)
	defer web.Close()

	// Setting Static
	err = sta.RegisterHandler(r)
	if err != nil {
		return err
	}

	// Setting Movies Api
	api := movies.New(c, cl)

	// Setting IndexHandler
	wi.RegisterHandler(r, tm, api)

	// Setting MovieHandler
	wm.RegisterHandler(r, tm, api)

	// Setting S3 Client
	s3Cl := cs.NewS3Client(c, cl)

	// Setting PosterHandler
	wp.RegisterHandler(c, r, pr, cl, s3Cl)

	// Render templates
	err = tm.Init()
	if err != nil {
		return err
	}

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err = serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
