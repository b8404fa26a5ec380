package extension

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codeforge/pkg/extsdk"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const fixtureWithMetadata = `package sndext

import "codeforge/pkg/extsdk"

var Metadata = extsdk.Metadata{
	Name:    "sound-effects",
	Version: "2.1.0",
	Author:  "tester",
}

type Ext struct{}

func New() interface{} { return &Ext{} }
`

const fixturePlain = `package myext

type Ext struct{}

func New() interface{} { return &Ext{} }
`

const fixturePartial = `package partial

import "codeforge/pkg/extsdk"

type Ext struct{}

func New() interface{} { return &Ext{} }

func (e *Ext) OnLoad(ec extsdk.Context) error { return nil }

func (e *Ext) OnPromptStarted(ev extsdk.Event, ec extsdk.Context) (extsdk.Event, error) {
	return nil, nil
}

func (e *Ext) GetTools(ec extsdk.Context) ([]extsdk.Tool, error) {
	return nil, nil
}
`

func TestLoaderLoadsWithStaticMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snd.go")
	writeFile(t, path, fixtureWithMetadata)

	res := NewLoader(zap.NewNop()).Load(path)
	require.NotNil(t, res)
	require.NotNil(t, res.Instance)
	assert.Equal(t, "sound-effects", res.Metadata.Name)
	assert.Equal(t, "2.1.0", res.Metadata.Version)
	assert.Equal(t, "tester", res.Metadata.Author)
}

func TestLoaderDerivesNameFromFileStem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeter.go")
	writeFile(t, path, fixturePlain)

	res := NewLoader(zap.NewNop()).Load(path)
	require.NotNil(t, res)
	assert.Equal(t, "greeter", res.Metadata.Name)
	assert.Equal(t, "1.0.0", res.Metadata.Version)
}

func TestLoaderDerivesNameFromParentDirForEntryFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my-plugin", "extension.go")
	writeFile(t, path, fixturePlain)

	res := NewLoader(zap.NewNop()).Load(path)
	require.NotNil(t, res)
	assert.Equal(t, "my-plugin", res.Metadata.Name)
}

func TestLoaderReadsSidecarManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my-plugin", "extension.go")
	writeFile(t, path, fixturePlain)
	writeFile(t, filepath.Join(dir, "my-plugin", "extension.yaml"),
		"name: fancy-plugin\nversion: 3.0.0\ndescription: does things\n")

	res := NewLoader(zap.NewNop()).Load(path)
	require.NotNil(t, res)
	assert.Equal(t, "fancy-plugin", res.Metadata.Name)
	assert.Equal(t, "3.0.0", res.Metadata.Version)
	assert.Equal(t, "does things", res.Metadata.Description)
}

func TestLoaderStaticMetadataBeatsSidecar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my-plugin", "extension.go")
	writeFile(t, path, fixtureWithMetadata)
	writeFile(t, filepath.Join(dir, "my-plugin", "extension.yaml"), "name: other-name\n")

	res := NewLoader(zap.NewNop()).Load(path)
	require.NotNil(t, res)
	assert.Equal(t, "sound-effects", res.Metadata.Name)
}

func TestLoaderBindsDeclaredCapabilities(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.go")
	writeFile(t, path, fixturePartial)

	res := NewLoader(zap.NewNop()).Load(path)
	require.NotNil(t, res)

	bridged, ok := res.Instance.(*interpExtension)
	require.True(t, ok, "loaded instances must carry the native adapter")
	assert.Equal(t, []string{"OnLoad", "GetTools", "OnPromptStarted"}, bridged.Capabilities())
	assert.NotNil(t, bridged.handler(extsdk.EventPromptStarted))
	assert.Nil(t, bridged.handler(extsdk.EventTaskCreated))
	assert.Nil(t, bridged.onUnload)
	assert.Nil(t, bridged.commands)
}

func TestLoaderIgnoresUndeclaredCapabilities(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeter.go")
	writeFile(t, path, fixturePlain)

	res := NewLoader(zap.NewNop()).Load(path)
	require.NotNil(t, res)

	bridged, ok := res.Instance.(*interpExtension)
	require.True(t, ok)
	assert.Empty(t, bridged.Capabilities())
}

func TestLoaderRejectsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.go")
	writeFile(t, path, "package broken\n\nfunc New( {")

	assert.Nil(t, NewLoader(zap.NewNop()).Load(path))
}

func TestLoaderRejectsMissingConstructor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noctor.go")
	writeFile(t, path, "package noctor\n\ntype Ext struct{}\n")

	assert.Nil(t, NewLoader(zap.NewNop()).Load(path))
}

func TestLoaderRejectsWrongConstructorShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badctor.go")
	writeFile(t, path, "package badctor\n\nfunc New(s string) interface{} { return s }\n")

	assert.Nil(t, NewLoader(zap.NewNop()).Load(path))
}

func TestLoaderRejectsMissingFile(t *testing.T) {
	assert.Nil(t, NewLoader(zap.NewNop()).Load(filepath.Join(t.TempDir(), "absent.go")))
}

func TestLoaderFreshInterpreterPerLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeter.go")
	writeFile(t, path, fixturePlain)

	loader := NewLoader(zap.NewNop())
	first := loader.Load(path)
	require.NotNil(t, first)

	// Edit on disk; a reload must see the new source, no cache involved.
	writeFile(t, path, fixtureWithMetadata)
	second := loader.Load(path)
	require.NotNil(t, second)
	assert.Equal(t, "sound-effects", second.Metadata.Name)
}
