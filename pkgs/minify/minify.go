package minify

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	mCss "github.com/tdewolff/minify/v2/css"
	mHtml "github.com/tdewolff/minify/v2/html"
	mJs "github.com/tdewolff/minify/v2/js"
	mJson "github.com/tdewolff/minify/v2/json"
	"go.storeblocks.app/app/pkgs/contenttype"
)

type Minifier struct {
	i sync.Once
	m *minify.M
}

func (m *Minifier) init() {
	m.i.Do(func() {
		m.m = minify.New()
		m.m.AddFunc(contenttype.HTML, mHtml.Minify)
		m.m.AddFunc(contenttype.CSS, mCss.Minify)
		m.m.AddFunc(contenttype.JS, mJs.Minify)
		m.m.AddFunc(contenttype.JSON, mJson.Minify)
	})
}

func (m *Minifier) Get() *minify.M {
	m.init()
	return m.m
}
