package extension

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"codeforge/pkg/extsdk"
)

// Entry file names recognized for directory-based extensions.
const (
	entryFilePrimary  = "extension.go"
	entryFileFallback = "main.go"
)

// manifestFile is the optional sidecar manifest carrying extension metadata
// when the source declares none.
const manifestFile = "extension.yaml"

// Loader resolves an extension file path to a live instance plus metadata.
//
// Extensions ship as readable Go source, not pre-built artifacts, so each
// load spins up a fresh yaegi interpreter: a new interpreter per call means
// no module cache to bypass (hot reload always sees on-disk edits), and the
// interpreter's GoPath is scoped to the extension's own directory so its
// local dependencies resolve relative to it, not to the host application.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a loader. A nil logger falls back to a no-op.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadResult is a successfully loaded extension: the native capability
// surface bound over the instance the source's New constructor produced,
// plus the resolved metadata.
type LoadResult struct {
	Instance any
	Metadata extsdk.Metadata
}

// Load evaluates the extension source at filePath and instantiates it.
// Every failure path logs and returns nil; Load never panics and never
// propagates an error to the caller, so one broken file cannot abort a
// discovery batch.
func (l *Loader) Load(filePath string) (result *LoadResult) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("panic while loading extension",
				zap.String("file", filePath), zap.Any("panic", r))
			result = nil
		}
	}()

	src, err := os.ReadFile(filePath)
	if err != nil {
		l.logger.Error("failed to read extension file",
			zap.String("file", filePath), zap.Error(err))
		return nil
	}

	pkgName, err := packageName(filePath, src)
	if err != nil {
		l.logger.Error("failed to parse extension package clause",
			zap.String("file", filePath), zap.Error(err))
		return nil
	}

	i := interp.New(interp.Options{GoPath: filepath.Dir(filePath)})
	if err := i.Use(stdlib.Symbols); err != nil {
		l.logger.Error("failed to load stdlib symbols",
			zap.String("file", filePath), zap.Error(err))
		return nil
	}
	if err := i.Use(extsdk.Symbols); err != nil {
		l.logger.Error("failed to load extsdk symbols",
			zap.String("file", filePath), zap.Error(err))
		return nil
	}

	if _, err := i.Eval(string(src)); err != nil {
		l.logger.Error("extension source evaluation failed",
			zap.String("file", filePath), zap.Error(err))
		return nil
	}

	instance, err := l.instantiate(i, pkgName)
	if err != nil {
		l.logger.Error("extension constructor failed",
			zap.String("file", filePath), zap.Error(err))
		return nil
	}

	metadata := l.resolveMetadata(i, pkgName, filePath)

	l.logger.Debug("loaded extension",
		zap.String("extension", metadata.Name),
		zap.String("version", metadata.Version),
		zap.String("file", filePath))

	return &LoadResult{Instance: instance, Metadata: metadata}
}

// instantiate calls the source's zero-argument New constructor inside the
// interpreter and binds the instance's capabilities to a native adapter.
// The instance must stay interpreter-side for capability resolution: values
// crossing out of yaegi lose their method set, so asserting capabilities on
// the returned value directly always fails.
func (l *Loader) instantiate(i *interp.Interpreter, pkgName string) (*interpExtension, error) {
	v, err := i.Eval(pkgName + ".New")
	if err != nil {
		return nil, ErrNoConstructor
	}

	fn := v
	if fn.Kind() == reflect.Interface {
		fn = fn.Elem()
	}
	if fn.Kind() != reflect.Func || fn.Type().NumIn() != 0 || fn.Type().NumOut() < 1 {
		return nil, ErrNoConstructor
	}

	if _, err := i.Eval(`import ` + sdkAlias + ` "codeforge/pkg/extsdk"`); err != nil {
		return nil, fmt.Errorf("bind extension sdk: %w", err)
	}
	if _, err := i.Eval("var " + instanceVar + " = " + pkgName + ".New()"); err != nil {
		return nil, fmt.Errorf("call %s.New: %w", pkgName, err)
	}
	if nv, err := i.Eval(instanceVar + " == nil"); err == nil && nv.Kind() == reflect.Bool && nv.Bool() {
		return nil, ErrNoConstructor
	}

	return bindCapabilities(i), nil
}

// resolveMetadata reads metadata with the precedence: package-level Metadata
// variable, extension.yaml sidecar, derivation from the file path.
func (l *Loader) resolveMetadata(i *interp.Interpreter, pkgName, filePath string) extsdk.Metadata {
	if v, err := i.Eval(pkgName + ".Metadata"); err == nil {
		if md, ok := v.Interface().(extsdk.Metadata); ok && md.Name != "" {
			if md.Version == "" {
				md.Version = "1.0.0"
			}
			return md
		}
	}

	if md, ok := l.sidecarMetadata(filePath); ok {
		return md
	}

	return extsdk.Metadata{Name: deriveName(filePath), Version: "1.0.0"}
}

// sidecarMetadata reads the optional extension.yaml next to the entry file.
func (l *Loader) sidecarMetadata(filePath string) (extsdk.Metadata, bool) {
	path := filepath.Join(filepath.Dir(filePath), manifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return extsdk.Metadata{}, false
	}

	var md extsdk.Metadata
	if err := yaml.Unmarshal(data, &md); err != nil {
		l.logger.Warn("invalid extension manifest",
			zap.String("file", path), zap.Error(err))
		return extsdk.Metadata{}, false
	}
	if md.Name == "" {
		md.Name = deriveName(filePath)
	}
	if md.Version == "" {
		md.Version = "1.0.0"
	}
	return md, true
}

// deriveName synthesizes an extension name from its file path: the parent
// directory name for directory entry files, the file stem otherwise.
func deriveName(filePath string) string {
	stem := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	if stem+".go" == entryFilePrimary || stem+".go" == entryFileFallback {
		return filepath.Base(filepath.Dir(filePath))
	}
	return stem
}

// packageName parses just the package clause of the extension source.
func packageName(filePath string, src []byte) (string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filePath, src, parser.PackageClauseOnly)
	if err != nil {
		return "", err
	}
	return f.Name.Name, nil
}
