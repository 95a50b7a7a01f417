// Package web は lintshift serve のフロントエンドを配信する。
// スキャン結果の取得は /api/scan(serve コマンド側)が担い、
// ここでは静的な UI シェルだけを返す。
package web

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/index.html assets/styles.css assets/ui.js
var content embed.FS

var indexTmpl = template.Must(template.ParseFS(content, "templates/index.html"))

type indexData struct {
	StylesPath string
	ScriptPath string
}

const (
	stylesPath = "/assets/styles.css"
	scriptPath = "/assets/ui.js"
)

// Register attaches the UI handlers to mux. API handlers are registered
// separately by the serve command.
func Register(mux *http.ServeMux) {
	mux.HandleFunc("/", serveIndex)
	mux.HandleFunc(stylesPath, serveAsset("assets/styles.css", "text/css; charset=utf-8"))
	mux.HandleFunc(scriptPath, serveAsset("assets/ui.js", "application/javascript; charset=utf-8"))
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Content-Security-Policy", "default-src 'none'; style-src 'self'; script-src 'self'; img-src 'self'; connect-src 'self'; form-action 'self'; base-uri 'none'")
	data := indexData{StylesPath: stylesPath, ScriptPath: scriptPath}
	if err := indexTmpl.Execute(w, data); err != nil {
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
	}
}

func serveAsset(name, contentType string) http.HandlerFunc {
	body, err := content.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write(body)
	}
}
