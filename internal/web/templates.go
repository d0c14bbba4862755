package web

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avenclark/photosift/internal/app"
)

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type indexModel struct {
	View       *app.View
	Notice     string
	NoticeCode string
}

var notices = map[string]string{
	"empty":        "Nothing is selected in this round yet. Keep at least one image before advancing.",
	"confirm":      "The next round already has selections recorded. Advancing will clear them.",
	"exported":     "Round snapshot exported to the source directory.",
	"exportfailed": "Snapshot export failed. Check the source directory and try again.",
	"lastproject":  "The last remaining project cannot be deleted.",
}

func renderIndex(c echo.Context, view *app.View, notice string) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return indexTmpl.Execute(c.Response(), indexModel{
		View:       view,
		Notice:     notices[notice],
		NoticeCode: notice,
	})
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>photosift</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #16181d; color: #e7e9ee; }
header { display: flex; align-items: center; gap: 1rem; padding: 0.6rem 1rem; background: #20242c; }
header h1 { font-size: 1rem; margin: 0; }
header form { display: inline; }
main { display: grid; grid-template-columns: 2fr 1fr; gap: 1rem; padding: 1rem; }
.viewer { text-align: center; }
.viewer img { max-width: 100%; max-height: 70vh; border-radius: 4px; }
.grid { display: flex; flex-wrap: wrap; gap: 0.4rem; align-content: start; }
.grid a { display: block; width: 96px; }
.grid img { width: 100%; border-radius: 3px; border: 2px solid transparent; }
.grid .kept img { border-color: #5ec26a; }
.notice { margin: 0 1rem; padding: 0.5rem 0.8rem; background: #3a3320; border-radius: 4px; }
.notice form { display: inline; margin-left: 0.6rem; }
button { background: #32405e; color: inherit; border: 0; border-radius: 4px; padding: 0.3rem 0.7rem; cursor: pointer; }
input, select { background: #262b35; color: inherit; border: 1px solid #3a4150; border-radius: 4px; padding: 0.25rem 0.4rem; }
.muted { color: #9aa1ad; font-size: 0.85rem; }
footer { padding: 0.6rem 1rem; }
</style>
</head>
<body>
<header>
<h1>photosift</h1>
{{if .View.ProjectID}}
<span>{{.View.ProjectName}} &mdash; round {{.View.Round}}</span>
<span class="muted">{{len .View.Selections}} kept of {{len .View.Candidates}}</span>
<form method="post" action="/round/finish"><button>Export round</button></form>
<form method="post" action="/round/next"><button>Next round</button></form>
<form method="post" action="/round/switch">
<input type="number" name="round" min="1" value="{{.View.Round}}" style="width:4rem">
<button>Go</button>
</form>
<form method="post" action="/projects/switch">
<select name="id" onchange="this.form.submit()">
{{range .View.Projects}}<option value="{{.ID}}" {{if .Active}}selected{{end}}>{{.Name}}</option>{{end}}
</select>
</form>
{{end}}
</header>

{{if .Notice}}
<p class="notice">{{.Notice}}
{{if eq .NoticeCode "confirm"}}
<form method="post" action="/round/next"><input type="hidden" name="force" value="1"><button>Advance anyway</button></form>
{{end}}
</p>
{{end}}

{{if .View.ProjectID}}
<main>
<section class="viewer">
{{if .View.ViewedFile}}
<img src="/images/{{.View.ViewedFile}}" alt="{{.View.ViewedFile}}">
<p>
<span class="muted">{{.View.ViewedFile}}</span>
<button onclick="toggle('{{.View.ViewedFile}}')">{{if index .View.Selected .View.ViewedFile}}Drop{{else}}Keep{{end}}</button>
</p>
{{else}}
<p class="muted">No candidates in this round.</p>
{{end}}
</section>

<section class="grid">
{{$sel := .View.Selected}}
{{range .View.Candidates}}
<a href="#" class="{{if index $sel .}}kept{{end}}" id="thumb-{{.}}" onclick="view('{{.}}');return false" oncontextmenu="toggle('{{.}}');return false">
<img src="/images/{{.}}" alt="{{.}}" loading="lazy">
</a>
{{end}}
</section>
</main>

<footer>
<details>
<summary class="muted">Project settings</summary>
<form method="post" action="/settings">
<label>Source directory <input name="source_directory" value="{{.View.SourceDir}}"></label>
<label>Label <input name="auxiliary_label" value="{{.View.AuxLabel}}"></label>
<button>Save</button>
</form>
<form method="post" action="/projects">
<label>New project <input name="name" placeholder="name"></label>
<input name="source_directory" placeholder="directory">
<button>Create</button>
</form>
<form method="post" action="/projects/delete">
<input type="hidden" name="id" value="{{.View.ProjectID}}">
<button>Delete current project</button>
</form>
</details>
</footer>
{{else}}
<main><p class="muted">No projects yet.</p></main>
{{end}}

<script>
function view(name) {
  const form = document.createElement('form');
  form.method = 'post';
  form.action = '/view';
  const input = document.createElement('input');
  input.name = 'filename';
  input.value = name;
  form.appendChild(input);
  document.body.appendChild(form);
  form.submit();
}
function toggle(name) {
  const body = new URLSearchParams({filename: name});
  fetch('/toggle', {method: 'POST', body: body}).then(function () {
    window.location.reload();
  });
}
</script>
</body>
</html>
`
