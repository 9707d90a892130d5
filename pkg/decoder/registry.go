// ABOUTME: Plugin registry and decode/scan dispatch
// ABOUTME: Selects a plugin by file suffix or MIME type
package decoder

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/decode-go/pkg/source"
)

// ErrNoPlugin means no registered plugin claims the resource.
var ErrNoPlugin = errors.New("no decoder plugin for this resource")

// Registry holds the enabled plugins in registration order.
type Registry struct {
	plugins []Plugin
}

// NewRegistry registers the given plugins in order, running Init
// hooks. Plugins whose Init fails are skipped and logged, not fatal.
func NewRegistry(plugins ...Plugin) *Registry {
	r := &Registry{}
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			log.Printf("decoder: plugin %s disabled: %v", p.Name(), err)
		}
	}
	return r
}

// Register adds one plugin, running its Init hook if present.
func (r *Registry) Register(p Plugin) error {
	if ini, ok := p.(Initializer); ok {
		if err := ini.Init(); err != nil {
			return fmt.Errorf("init failed: %w", err)
		}
	}
	r.plugins = append(r.plugins, p)
	return nil
}

// Close runs the Finish hooks of all registered plugins.
func (r *Registry) Close() {
	for _, p := range r.plugins {
		if fin, ok := p.(Finisher); ok {
			fin.Finish()
		}
	}
}

// Plugins returns the enabled plugins.
func (r *Registry) Plugins() []Plugin { return r.plugins }

// BySuffix returns the first plugin claiming the suffix (without the
// leading dot, case-insensitive), or nil.
func (r *Registry) BySuffix(suffix string) Plugin {
	suffix = strings.TrimPrefix(suffix, ".")
	for _, p := range r.plugins {
		for _, s := range p.Suffixes() {
			if strings.EqualFold(s, suffix) {
				return p
			}
		}
	}
	return nil
}

// ByMime returns the first plugin claiming the MIME type, ignoring any
// parameters after ";", or nil.
func (r *Registry) ByMime(mime string) Plugin {
	mime = strings.TrimSpace(strings.SplitN(mime, ";", 2)[0])
	if mime == "" {
		return nil
	}
	for _, p := range r.plugins {
		for _, m := range p.MimeTypes() {
			if strings.EqualFold(m, mime) {
				return p
			}
		}
	}
	return nil
}

// DecodeFile selects a plugin by the path suffix and runs its file
// decode entry point.
func (r *Registry) DecodeFile(client Client, path string) error {
	p := r.BySuffix(filepath.Ext(path))
	if p == nil {
		return fmt.Errorf("%w: %s", ErrNoPlugin, path)
	}
	return p.FileDecode(client, path)
}

// DecodeStream selects a plugin for an opened byte source, by MIME
// type first and URI suffix second, and runs its stream decode entry
// point. mime may be empty.
func (r *Registry) DecodeStream(client Client, src source.Source, mime string) error {
	p := r.ByMime(mime)
	if p == nil {
		p = r.BySuffix(filepath.Ext(src.URI()))
	}
	if p == nil {
		return fmt.Errorf("%w: %s", ErrNoPlugin, src.URI())
	}
	return p.StreamDecode(client, src)
}

// ScanFile selects a plugin by the path suffix and probes the file.
// False means the resource cannot be scanned.
func (r *Registry) ScanFile(path string, tags TagSink) bool {
	p := r.BySuffix(filepath.Ext(path))
	if p == nil {
		return false
	}
	return p.ScanFile(path, tags)
}
