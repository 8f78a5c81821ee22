package router

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/auth"
)

const pageLayout = `<!doctype html>
<html lang="id">
<head><meta charset="utf-8"><title>Idea Studio | {{.Title}}</title></head>
<body>
<main data-page="{{.Page}}">
<h1>{{.Title}}</h1>
{{if .Username}}<p>Signed in as <strong>{{.Username}}</strong></p>{{end}}
{{if .Callback}}<p data-callback="{{.Callback}}"></p>{{end}}
<p>{{.Hint}}</p>
</main>
</body>
</html>
`

var pageTemplate = template.Must(template.New("page").Parse(pageLayout))

type pageData struct {
	Page     string
	Title    string
	Hint     string
	Username string
	Callback string
}

// pages serves placeholder documents for the guarded routes. The UI itself
// talks to the JSON API.
type pages struct {
	logger *zap.SugaredLogger
}

func newPages(logger *zap.SugaredLogger) *pages { return &pages{logger: logger} }

func (p *pages) render(w http.ResponseWriter, r *http.Request, d pageData) {
	if c, ok := auth.FromContext(r.Context()); ok {
		d.Username = c.Username
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, d); err != nil {
		p.logger.Warnw("render page failed", "page", d.Page, "err", err)
	}
}

func (p *pages) dashboard(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, pageData{Page: "dashboard", Title: "Dashboard", Hint: "POST a brief to /api/generate."})
}

func (p *pages) login(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, pageData{
		Page:     "login",
		Title:    "Login",
		Hint:     "POST username and password to " + auth.LoginAPIPath + ".",
		Callback: r.URL.Query().Get("callbackUrl"),
	})
}

func (p *pages) admin(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, pageData{Page: "admin", Title: "User Management", Hint: "POST username and password to /api/user/create."})
}

func (p *pages) changePassword(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, pageData{Page: "change-password", Title: "Change Password", Hint: "POST newPassword to " + auth.ChangePasswordAPIPath + "."})
}
