package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type recorder struct {
	infos, errs []string
}

func (r *recorder) Info(m string)  { r.infos = append(r.infos, m) }
func (r *recorder) Error(m string) { r.errs = append(r.errs, m) }
func (r *recorder) Done(string)    {}

func TestFromArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Config
		wantErr error
		infos   int
	}{
		{name: "dir and port", args: []string{"public", "8080"}, want: Config{Directory: "public", Port: 8080}},
		{name: "bad port", args: []string{"public", "http"}, wantErr: ErrInvalidPort},
		{name: "lone port", args: []string{"8080"}, want: Config{Directory: ".", Port: 8080}, infos: 1},
		{name: "lone dir", args: []string{"public"}, want: Config{Directory: "public", Port: DefaultPort}},
		{name: "none", args: nil, wantErr: ErrUsage},
		{name: "too many", args: []string{"a", "1", "b"}, wantErr: ErrUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recorder{}
			got, err := FromArgs("rhs", tt.args, log)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FromArgs err=%v want=%v", err, tt.wantErr)
				}
				if len(log.errs) != 1 {
					t.Fatalf("expected one logged error, got %q", log.errs)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromArgs error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("FromArgs got=%+v want=%+v", got, tt.want)
			}
			if len(log.infos) != tt.infos {
				t.Fatalf("infos got=%q want %d", log.infos, tt.infos)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "rhs.toml")
	if err := os.WriteFile(tomlPath, []byte("directory = \"/srv/www\"\nport = 8080\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "rhs.yaml")
	if err := os.WriteFile(yamlPath, []byte("directory: /srv/www\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(tomlPath)
	if err != nil {
		t.Fatalf("Load toml: %v", err)
	}
	if want := (Config{Directory: "/srv/www", Port: 8080}); got != want {
		t.Fatalf("Load toml got=%+v want=%+v", got, want)
	}

	got, err = Load(yamlPath)
	if err != nil {
		t.Fatalf("Load yaml: %v", err)
	}
	if want := (Config{Directory: "/srv/www", Port: DefaultPort}); got != want {
		t.Fatalf("Load yaml got=%+v want=%+v", got, want)
	}

	if _, err := Load(filepath.Join(dir, "rhs.ini")); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(t.TempDir(), "www")
	if err := os.Symlink(dir, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	got, err := Config{Directory: link, Port: 80}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	if got.Directory != want || got.Port != 80 {
		t.Fatalf("Resolve got=%+v want dir=%s", got, want)
	}

	file := filepath.Join(dir, "index.html")
	if err := os.WriteFile(file, []byte("home"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (Config{Directory: file}).Resolve(); err == nil {
		t.Fatalf("expected error for a regular file")
	}
	if _, err := (Config{Directory: filepath.Join(dir, "missing")}).Resolve(); err == nil {
		t.Fatalf("expected error for a missing directory")
	}
}
