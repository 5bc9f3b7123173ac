package web

import (
	"embed"
	"encoding/base64"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static/*
var staticFS embed.FS

// StaticHandler returns an http.Handler that serves the embedded static
// files. It injects basePath into index.html so the frontend knows the
// URL prefix, and inlines the background image as encoded image data.
func StaticHandler(basePath string, background []byte) http.Handler {
	sub, _ := fs.Sub(staticFS, "static")
	fileServer := http.FileServerFS(sub)

	// Read index.html once at startup for injection
	indexBytes, _ := fs.ReadFile(sub, "index.html")
	indexHTML := string(indexBytes)

	// Inject base_path script tag right after <head>
	head := "<head>\n<script>window.__BASE_PATH='" + basePath + "';</script>"

	// Inline the background image so the page ships as a single document
	if len(background) > 0 {
		mime := http.DetectContentType(background)
		encoded := base64.StdEncoding.EncodeToString(background)
		head += "\n<style>body{background-image:url(\"data:" + mime + ";base64," + encoded + "\");" +
			"background-size:cover;background-position:center;background-repeat:no-repeat;}</style>"
	}

	injected := strings.Replace(indexHTML, "<head>", head, 1)

	// Rewrite static asset paths to include base_path prefix
	if basePath != "/" && basePath != "" {
		prefix := basePath + "/"
		injected = strings.ReplaceAll(injected, `href="/css/`, `href="`+prefix+`css/`)
		injected = strings.ReplaceAll(injected, `src="/js/`, `src="`+prefix+`js/`)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Serve injected index.html for root or index.html requests
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(injected))
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}
