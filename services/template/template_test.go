package template

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testContext struct {
	Name string
	c    *gin.Context
}

func (s *testContext) GinContext() *gin.Context {
	return s.c
}

type testHelper struct{}

func (s *testHelper) Shout(v string) string {
	return v + "!"
}

var testFS = fstest.MapFS{
	"layouts/main.html":  {Data: []byte(`{{ define "layout" }}<body>{{ template "main" . }}</body>{{ end }}`)},
	"partials/name.html": {Data: []byte(`{{ define "name" }}<b>{{ . }}</b>{{ end }}`)},
	"views/hello.html":   {Data: []byte(`{{ define "main" }}hi {{ template "name" shout .Name }}{{ end }}`)},
	"views/bare/x.html":  {Data: []byte(`{{ define "main" }}x={{ .Name }}{{ end }}`)},
}

func TestManager_ToString(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tm := NewManager[*testContext](multitemplate.NewRenderer(), testFS).WithHelper(&testHelper{})
	withLayout := tm.MustRegisterViews("*").WithLayout("main")
	bare := tm.MustRegisterViews("bare/*")
	require.NoError(t, tm.Init())

	s, err := withLayout.Build("hello").ToString(&testContext{Name: "<Dune>"})
	require.NoError(t, err)
	assert.Equal(t, "<body>hi <b>&lt;Dune&gt;!</b></body>", s)

	s, err = bare.Build("bare/x").ToString(&testContext{Name: "y"})
	require.NoError(t, err)
	assert.Equal(t, "x=y", s)

	_, err = bare.Build("missing").ToString(&testContext{})
	assert.Error(t, err)
}

func TestTemplate_HTML(t *testing.T) {
	gin.SetMode(gin.TestMode)
	re := multitemplate.NewRenderer()
	tm := NewManager[*testContext](re, testFS).WithHelper(&testHelper{})
	tb := tm.MustRegisterViews("*").WithLayout("main")
	require.NoError(t, tm.Init())

	r := gin.New()
	r.HTMLRender = re
	r.GET("/", func(c *gin.Context) {
		tb.Build("hello").HTML(http.StatusTeapot, &testContext{Name: "Dune", c: c})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "<body>hi <b>Dune!</b></body>", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "posterURL", lowerFirst("PosterURL"))
	assert.Equal(t, "x", lowerFirst("X"))
}
