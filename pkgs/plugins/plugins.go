// Package plugins implements a yaegi-based plugin host.
// Plugins are Go source trees interpreted at startup, each exposing a
// GetPlugin function whose result is checked against the plugin type
// interfaces registered by the host application.
package plugins

import (
	"fmt"
	"io/fs"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

type PluginHost struct {
	pluginTypes map[string]reflect.Type
	symbols     interp.Exports
	embeddedFS  fs.FS
	plugins     []*plugin
}

type plugin struct {
	config *PluginConfig
	value  reflect.Value
}

// PluginConfig is the configuration of a single plugin.
type PluginConfig struct {
	// Path is the storage path of the plugin (GOPATH-like layout).
	// An "embedded:" prefix loads it from the host's embedded source.
	Path string
	// ImportPath is the module path i.e. "github.com/user/module"
	ImportPath string
}

const embeddedPrefix = "embedded:"

// NewPluginHost initializes a PluginHost. pluginTypes maps a type name to
// the interface a plugin of that type must implement, embeddedFS (optional)
// provides bundled plugin source.
func NewPluginHost(pluginTypes map[string]reflect.Type, symbols interp.Exports, embeddedFS fs.FS) *PluginHost {
	return &PluginHost{
		pluginTypes: pluginTypes,
		symbols:     symbols,
		embeddedFS:  embeddedFS,
	}
}

// LoadPlugin loads a plugin and returns it once per plugin type it
// implements. A plugin implementing no registered type is an error.
func (h *PluginHost) LoadPlugin(config *PluginConfig) (map[string]any, error) {
	const errText = "LoadPlugin: %w"

	options := interp.Options{
		GoPath: config.Path,
	}
	if strings.HasPrefix(config.Path, embeddedPrefix) {
		if h.embeddedFS == nil {
			return nil, fmt.Errorf("LoadPlugin: no embedded plugin source")
		}
		options.GoPath = strings.TrimPrefix(config.Path, embeddedPrefix)
		options.SourcecodeFilesystem = h.embeddedFS
	}
	interpreter := interp.New(options)
	if err := interpreter.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf(errText, err)
	}
	if err := interpreter.Use(h.symbols); err != nil {
		return nil, fmt.Errorf(errText, err)
	}
	if _, err := interpreter.Eval(fmt.Sprintf("import %q", config.ImportPath)); err != nil {
		return nil, fmt.Errorf(errText, err)
	}
	v, err := interpreter.Eval(pkgName(config.ImportPath) + ".GetPlugin")
	if err != nil {
		return nil, fmt.Errorf(errText, err)
	}
	result := v.Call(nil)
	if len(result) != 1 {
		return nil, fmt.Errorf("LoadPlugin: GetPlugin must have exactly one return value")
	}
	p := &plugin{config: config, value: result[0]}

	matched := map[string]any{}
	pType := reflect.TypeOf(p.value.Interface())
	for name, ifaceType := range h.pluginTypes {
		if pType.Implements(ifaceType) {
			matched[name] = p.value.Interface()
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("LoadPlugin: %s implements no known plugin type", config.ImportPath)
	}
	h.plugins = append(h.plugins, p)
	return matched, nil
}

// GetPlugins returns all loaded plugins implementing the given type.
func (h *PluginHost) GetPlugins(typ string) (list []any) {
	ifaceType, ok := h.pluginTypes[typ]
	if !ok {
		return
	}
	for _, p := range h.plugins {
		if reflect.TypeOf(p.value.Interface()).Implements(ifaceType) {
			list = append(list, p.value.Interface())
		}
	}
	return
}

func pkgName(importPath string) string {
	name := importPath
	for i := len(importPath) - 1; i >= 0; i-- {
		if importPath[i] == '/' {
			name = importPath[i+1:]
			break
		}
	}
	return name
}
