package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePrefix = "launchdash/internal/modules/"

var layers = []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"}

// imports returns the module-internal imports of every non-test Go file
// under root, keyed by slash path.
func imports(t *testing.T, root string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()
	out := map[string][]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		slash := filepath.ToSlash(path)
		for _, imp := range node.Imports {
			p := strings.Trim(imp.Path.Value, `"`)
			if strings.HasPrefix(p, "launchdash/") {
				out[slash] = append(out[slash], p)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	for path, deps := range imports(t, filepath.Join("..", "modules")) {
		module, layer := moduleName(path), detectLayer(path)
		if module == "" || layer == "" {
			continue
		}
		for _, dep := range deps {
			if !strings.HasPrefix(dep, modulePrefix) {
				continue
			}
			if violatesLayerRule(module, layer, dep) {
				t.Errorf("forbidden import in %s (%s): %s", path, layer, dep)
			}
		}
	}
}

func TestPlatformDoesNotImportModules(t *testing.T) {
	t.Parallel()
	for path, deps := range imports(t, filepath.Join("..", "platform")) {
		for _, dep := range deps {
			if strings.HasPrefix(dep, modulePrefix) || strings.HasPrefix(dep, "launchdash/internal/ui") {
				t.Errorf("platform package %s imports %s", path, dep)
			}
		}
	}
}

func TestUIUsesOnlyContracts(t *testing.T) {
	t.Parallel()
	for path, deps := range imports(t, filepath.Join("..", "ui")) {
		for _, dep := range deps {
			if strings.HasPrefix(dep, modulePrefix) && !isDTO(dep) && !isPortIn(dep) {
				t.Errorf("ui package %s reaches into %s", path, dep)
			}
		}
	}
}

func TestViolatesLayerRule(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, dep string
		want               bool
	}{
		{"dashboard", "adapter/in", modulePrefix + "dashboard/port/in", false},
		{"dashboard", "adapter/in", modulePrefix + "dashboard/domain", true},
		{"dashboard", "adapter/out", modulePrefix + "launches/port/in", false},
		{"dashboard", "adapter/out", modulePrefix + "launches/usecase", true},
		{"dashboard", "domain", modulePrefix + "dashboard/service", true},
		{"launches", "service", modulePrefix + "launches/port/out", false},
		{"launches", "usecase", modulePrefix + "launches/adapter/out", true},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.dep); got != tc.want {
			t.Errorf("violatesLayerRule(%s, %s, %s) = %v, want %v", tc.module, tc.layer, tc.dep, got, tc.want)
		}
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range layers {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func under(path, dir string) bool {
	return strings.Contains(path, "/"+dir+"/") || strings.HasSuffix(path, "/"+dir)
}

func violatesLayerRule(module, layer, dep string) bool {
	if !strings.HasPrefix(dep, modulePrefix+module+"/") {
		return !isPortIn(dep) && !isDTO(dep)
	}
	switch layer {
	case "adapter/in":
		return !isPortIn(dep) && !isDTO(dep)
	case "usecase":
		return under(dep, "adapter")
	case "service":
		return under(dep, "adapter") || under(dep, "usecase")
	case "domain", "dto", "port/in", "port/out":
		return under(dep, "adapter") || under(dep, "usecase") || under(dep, "service")
	default:
		return false
	}
}
