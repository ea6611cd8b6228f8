package template

import (
	"bytes"
	"html/template"
	"io/fs"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	viewsDir    = "views"
	layoutsDir  = "layouts"
	partialsDir = "partials"
	ext         = ".html"
)

// Context is what every view gets executed with.
type Context interface {
	GinContext() *gin.Context
}

type Builder[T Context] interface {
	Build(name string) *Template[T]
}

type Manager[T Context] struct {
	re        multitemplate.Renderer
	fs        fs.FS
	helpers   []any
	views     []*Views[T]
	templates map[string]*template.Template
	mux       sync.RWMutex
}

func NewManager[T Context](re multitemplate.Renderer, fsys fs.FS) *Manager[T] {
	return &Manager[T]{
		re:        re,
		fs:        fsys,
		templates: map[string]*template.Template{},
	}
}

// WithHelper registers every exported method of h as template function
// available to all views. Method names get their first letter lowercased.
func (s *Manager[T]) WithHelper(h any) *Manager[T] {
	s.helpers = append(s.helpers, h)
	return s
}

func (s *Manager[T]) MustRegisterViews(pattern string) *Views[T] {
	if _, err := fs.Glob(s.fs, viewsDir+"/"+pattern+ext); err != nil {
		panic(errors.Wrapf(err, "wrong views pattern %v", pattern))
	}
	v := &Views[T]{
		m:       s,
		pattern: pattern,
	}
	s.views = append(s.views, v)
	return v
}

// Init parses all registered views and hands them to the renderer.
func (s *Manager[T]) Init() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	partials, err := fs.Glob(s.fs, partialsDir+"/*"+ext)
	if err != nil {
		return errors.Wrap(err, "failed to glob partials")
	}
	for _, v := range s.views {
		files, err := fs.Glob(s.fs, viewsDir+"/"+v.pattern+ext)
		if err != nil {
			return errors.Wrapf(err, "failed to glob views %v", v.pattern)
		}
		funcs := makeFuncMap(append(append([]any{}, s.helpers...), v.helpers...)...)
		for _, f := range files {
			name := strings.TrimSuffix(strings.TrimPrefix(f, viewsDir+"/"), ext)
			t, err := s.parse(name, v.layout, funcs, partials, f)
			if err != nil {
				return errors.Wrapf(err, "failed to parse view %v", name)
			}
			s.templates[name] = t
			s.re.Add(name, t)
		}
	}
	return nil
}

func (s *Manager[T]) parse(name string, layout string, funcs template.FuncMap, partials []string, view string) (*template.Template, error) {
	body := `{{ template "main" . }}`
	files := append([]string{}, partials...)
	if layout != "" {
		body = `{{ template "layout" . }}`
		files = append(files, layoutsDir+"/"+layout+ext)
	}
	files = append(files, view)
	t, err := template.New(name).Funcs(funcs).Parse(body)
	if err != nil {
		return nil, err
	}
	return t.ParseFS(s.fs, files...)
}

func (s *Manager[T]) get(name string) (*template.Template, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	t, ok := s.templates[name]
	if !ok {
		return nil, errors.Errorf("template %v not found", name)
	}
	return t, nil
}

type Views[T Context] struct {
	m       *Manager[T]
	pattern string
	layout  string
	helpers []any
}

func (s *Views[T]) WithHelper(h any) *Views[T] {
	s.helpers = append(s.helpers, h)
	return s
}

func (s *Views[T]) WithLayout(name string) *BuilderWithLayout[T] {
	s.layout = name
	return &BuilderWithLayout[T]{v: s}
}

func (s *Views[T]) Build(name string) *Template[T] {
	return &Template[T]{m: s.m, name: name}
}

type BuilderWithLayout[T Context] struct {
	v *Views[T]
}

func (s *BuilderWithLayout[T]) Build(name string) *Template[T] {
	return s.v.Build(name)
}

type Template[T Context] struct {
	m    *Manager[T]
	name string
}

func (s *Template[T]) HTML(code int, c T) {
	c.GinContext().HTML(code, s.name, c)
}

func (s *Template[T]) ToString(c T) (string, error) {
	t, err := s.m.get(s.name)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	if err := t.Execute(&b, c); err != nil {
		return "", errors.Wrapf(err, "failed to execute template %v", s.name)
	}
	return b.String(), nil
}

func makeFuncMap(helpers ...any) template.FuncMap {
	fm := template.FuncMap{}
	for _, h := range helpers {
		v := reflect.ValueOf(h)
		t := v.Type()
		for i := 0; i < t.NumMethod(); i++ {
			fm[lowerFirst(t.Method(i).Name)] = v.Method(i).Interface()
		}
	}
	return fm
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}
