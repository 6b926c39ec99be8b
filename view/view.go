package view

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/diewo77/go-jobtrack/auth"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

// layoutBase walks upward from a template path to find the directory that
// contains layout.html. If none is found, it returns the template's own
// directory.
func layoutBase(mainPath string) string {
	d := filepath.Dir(mainPath)
	for {
		lp := filepath.Join(d, "layout.html")
		if fi, err := os.Stat(lp); err == nil && !fi.IsDir() {
			return d
		}
		p := filepath.Dir(d)
		if p == d { // reached filesystem root
			return filepath.Dir(mainPath)
		}
		d = p
	}
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the shared template func map.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"year": func() int { return time.Now().Year() },
		"date": func(t time.Time) string { return t.Format("2006-01-02") },
		// dict creates a map from key-value pairs for passing to sub-templates.
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

// ResetForTests clears caches and forces base dir detection to rerun.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	baseDir = ""
	once = sync.Once{}
}

// Render parses and executes a template file with the layout and shared
// funcs. name is the filename (e.g. "job.html"). Login state and any
// pending flash message are injected into the data map.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if baseDir == "" {
		once.Do(detectBase)
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		_, loggedIn := auth.UserIDFromContext(r.Context())
		data["IsLoggedIn"] = loggedIn
	}
	if _, exists := data["Flash"]; !exists {
		if fm, ok := auth.PopFlash(w, r); ok {
			data["Flash"] = fm
		}
	}

	key := name
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[key]
		tplCache.RUnlock()
		if ok && t != nil {
			return t.Execute(w, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		// Tests may run with a different working directory.
		candidates := []string{
			filepath.Join("templates", name),
			filepath.Join("../templates", name),
			filepath.Join("../../templates", name),
			filepath.Join("../../../templates", name),
		}
		for _, c := range candidates {
			if fi, e2 := os.Stat(c); e2 == nil && !fi.IsDir() {
				mainPath = c
				break
			}
		}
		if _, err2 := os.Stat(mainPath); err2 != nil {
			return err
		}
	}

	baseDir = layoutBase(mainPath)
	layoutPath := filepath.Join(baseDir, "layout.html")
	partials := []string{
		filepath.Join(baseDir, "partials", "flash.html"),
		filepath.Join(baseDir, "partials", "nav.html"),
	}
	funcMap := Funcs()

	contentBytes, _ := os.ReadFile(mainPath)
	useLayout := !bytes.Contains(bytes.ToLower(contentBytes), []byte("<!doctype"))

	var t *template.Template
	if useLayout {
		if fi, err := os.Stat(layoutPath); err == nil && !fi.IsDir() {
			files := []string{layoutPath, mainPath}
			for _, p := range partials {
				if pf, err2 := os.Stat(p); err2 == nil && !pf.IsDir() {
					files = append(files, p)
				}
			}
			parsed, err := template.New("layout.html").Funcs(funcMap).ParseFiles(files...)
			if err != nil {
				return err
			}
			t = parsed
		} else {
			useLayout = false
		}
	}
	if !useLayout {
		parsed, err := template.New(name).Funcs(funcMap).ParseFiles(mainPath)
		if err != nil {
			return err
		}
		t = parsed
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[key] = t
		tplCache.Unlock()
	}
	if t == nil {
		return errors.New("template not cached")
	}
	return t.Execute(w, data)
}
