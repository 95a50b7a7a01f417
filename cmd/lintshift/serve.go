package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pkg/browser"

	"github.com/phyten/lintshift/internal/engine"
	engineopts "github.com/phyten/lintshift/internal/engine/opts"
	"github.com/phyten/lintshift/internal/web"
)

func serveCmd(args []string) {
	fs := flag.NewFlagSet("lintshift serve", flag.ExitOnError)
	port := fs.Int("p", 8080, "listen port")
	fs.IntVar(port, "port", 8080, "listen port")
	repo := fs.String("repo", ".", "repo root to scan")
	open := fs.Bool("open", false, "open the UI in the default browser")
	if err := fs.Parse(args); err != nil {
		log.Fatal(err)
	}

	mux := http.NewServeMux()
	web.Register(mux)
	mux.HandleFunc("/api/scan", apiScanHandler(*repo))

	addr := fmt.Sprintf("127.0.0.1:%d", *port)
	url := "http://" + addr + "/"
	fmt.Fprintf(os.Stderr, "lintshift: serving on %s\n", url)

	if *open {
		go func() {
			time.Sleep(300 * time.Millisecond)
			if err := browser.OpenURL(url); err != nil {
				fmt.Fprintf(os.Stderr, "lintshift: could not open browser: %v\n", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// apiScanHandler はスキャンを実行して JSON で返す読み取り専用エンドポイント。
// クエリ経由で --fix を受け付けることは決してない。
func apiScanHandler(repoDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		o, err := engineopts.ApplyWebQueryToOptions(engineopts.Defaults(repoDir), r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		o.Fix = false
		o.Progress = false
		if err := engineopts.NormalizeAndValidate(&o); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res, err := engine.Run(r.Context(), o)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "no-store")
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(res); err != nil {
			log.Printf("lintshift: encode response: %v", err)
		}
	}
}
