package main

import (
	"fmt"
	"net/http"

	"go.storeblocks.app/app/pkgs/htmlbuilder"
)

type errorData struct {
	Title   string
	Message string
}

func (a *storeBlocks) renderErrorPage(hb *htmlbuilder.HtmlBuilder, rd *renderData) {
	a.renderPageShell(hb, rd, func() {
		ed := rd.Data.(*errorData)
		hb.WriteElementOpen("h1")
		hb.WriteEscaped(ed.Title)
		hb.WriteElementClose("h1")
		hb.WriteElementOpen("p")
		hb.WriteEscaped(ed.Message)
		hb.WriteElementClose("p")
	})
}

func (a *storeBlocks) serve404(w http.ResponseWriter, r *http.Request) {
	a.serveError(w, r, fmt.Sprintf("%s was not found", r.RequestURI), http.StatusNotFound)
}

func (a *storeBlocks) serveError(w http.ResponseWriter, r *http.Request, message string, status int) {
	title := fmt.Sprintf("%d %s", status, http.StatusText(status))
	a.renderWithStatusCode(w, r, status, a.renderErrorPage, &renderData{
		Title: title,
		Data:  &errorData{Title: title, Message: message},
	})
}
