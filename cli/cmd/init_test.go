package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

type initCLI struct {
	Level  string `default:"info"`
	Pretty bool   `default:"true"`
	Empty  string

	Init Init `cmd:""`
}

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	t.Run("no_context", func(t *testing.T) {
		if err := new(Init).Run(t.Context(), &IO{Out: new(bytes.Buffer)}); !errors.Is(err, ErrWriteConfig) {
			t.Errorf("Run error = %v, want ErrWriteConfig", err)
		}
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "config.yaml")

			if tt.exists {
				if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
					t.Fatal(err)
				}

				if err := os.WriteFile(path, []byte("existing: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			var cli initCLI

			parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: path})
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse([]string{"init"})
			if err != nil {
				t.Fatal(err)
			}

			cli.Init.Force = tt.force

			var out bytes.Buffer

			err = cli.Init.Run(WithContext(t.Context(), ktx), &IO{Out: &out})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil {
				return
			}

			b, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(b, &got); err != nil {
				t.Fatalf("generated config is not YAML: %v\n%s", err, b)
			}

			want := map[string]any{"level": "info", "pretty": true}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}

			if out.String() != path+"\n" {
				t.Errorf("output = %q, want path", out.String())
			}
		})
	}
}
