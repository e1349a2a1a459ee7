package router

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"heartsupport/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"timeAgo": func(t time.Time) string {
			return utils.TimeAgo(t, time.Now())
		},
		"truncate": utils.Truncate,
		"markdown": utils.RenderMarkdownHTML,
	}
}

// LoadTemplates pairs every view with the shared layouts.
func LoadTemplates(templatesDir string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(filepath.Join(templatesDir, "layouts", "*.html"))
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts found in %s", templatesDir)
	}

	views, err := filepath.Glob(filepath.Join(templatesDir, "views", "*.html"))
	if err != nil {
		return nil, err
	}
	fm := funcMap()
	for _, view := range views {
		files := append(append([]string{}, layouts...), view)
		r.AddFromFilesFuncs(filepath.Base(view), fm, files...)
	}
	return r, nil
}
