package static

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/jovies/web-ui/assets"
)

func RegisterHandler(r *gin.Engine) error {
	return register(r, assets.FS)
}

func register(r *gin.Engine, fsys fs.FS) error {
	if _, err := fs.Stat(fsys, "css"); err != nil {
		return errors.Wrap(err, "failed to find assets")
	}
	r.StaticFS("/assets", http.FS(fsys))
	return nil
}
