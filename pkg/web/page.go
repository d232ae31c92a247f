package web

import "html/template"

const pageTemplateName = "page"

var pageTemplate = template.Must(template.New(pageTemplateName).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>EOS ping</title>
</head>
<body>
<div id="app">{{template "view" .}}</div>
<script>
const app = document.getElementById("app");

function ping() {
  fetch("ping", {method: "POST"});
}

function render(v) {
  app.textContent = "";
  if (v.kind === "button") {
    const b = document.createElement("button");
    b.textContent = v.text;
    b.onclick = ping;
    app.appendChild(b);
    return;
  }
  const s = document.createElement("span");
  s.style.color = v.color;
  s.textContent = v.text;
  app.appendChild(s);
}

app.querySelectorAll("button").forEach(function (b) { b.onclick = ping; });

new EventSource("events").addEventListener("view", function (e) {
  render(JSON.parse(e.data));
});
</script>
</body>
</html>
{{define "view"}}{{if eq .Kind "button"}}<button data-action="{{.Action}}">{{.Text}}</button>{{else}}<span style="color: {{.Color}}">{{.Text}}</span>{{end}}{{end}}`))
