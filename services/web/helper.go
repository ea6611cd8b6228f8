package web

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"
)

const (
	titleFlag = "title"
)

func RegisterHelperFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   titleFlag,
			Usage:  "site title",
			Value:  "Jovies",
			EnvVar: "SITE_TITLE",
		},
	)
}

type Helper struct {
	title string
}

func NewHelper(c *cli.Context) *Helper {
	return NewHelperWithTitle(c.String(titleFlag))
}

func NewHelperWithTitle(title string) *Helper {
	return &Helper{title: title}
}

func (s *Helper) Title() string {
	return s.title
}

func (s *Helper) Asset(path string) string {
	return "/assets/" + strings.TrimPrefix(path, "/")
}

func (s *Helper) Comma(n int64) string {
	return humanize.Comma(n)
}

func (s *Helper) Rating(v float64) string {
	return humanize.FtoaWithDigits(v, 1)
}

func (s *Helper) Runtime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
