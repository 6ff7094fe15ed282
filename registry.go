package fat

import (
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Registry is a process-wide table of named, mounted volumes. It lets
// callers address files across several volumes with a single rooted path
// of the form "/name/rest/of/path", the way a Unix mount table addresses
// several devices under one tree, without this package taking on a real
// VFS layer of its own.
type Registry struct {
	mu      sync.Mutex
	volumes map[string]*FS
}

// NewRegistry returns an empty Registry, ready to use.
func NewRegistry() *Registry {
	return &Registry{volumes: make(map[string]*FS)}
}

// Mount mounts cfg.Device under cfg.Name and adds it to the registry. It
// returns an error if cfg.Name is empty, already taken, or the mount itself
// fails.
func (r *Registry) Mount(cfg MountConfig) (*FS, error) {
	if cfg.Name == "" {
		return nil, ErrParam
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.volumes[cfg.Name]; exists {
		return nil, ErrDenied
	}
	fsys := new(FS)
	err := fsys.MountWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	r.volumes[cfg.Name] = fsys
	return fsys, nil
}

// Umount removes name from the registry. It does not sync the volume or
// close the underlying device; UmountAll is the call that syncs.
func (r *Registry) Umount(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.volumes[name]; !ok {
		return ErrParam
	}
	delete(r.volumes, name)
	return nil
}

// UmountAll removes every registered volume, syncing each one first and
// aggregating every sync failure into a single error instead of stopping at
// the first one.
func (r *Registry) UmountAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result *multierror.Error
	for name, fsys := range r.volumes {
		if fr := fsys.sync(); fr != frOK {
			result = multierror.Append(result, classify(fr))
		}
		delete(r.volumes, name)
	}
	return result.ErrorOrNil()
}

// Resolve splits a rooted path of the form "/name/rest/of/path" into the
// volume registered as name and the remaining path to hand to one of that
// volume's own operations (OpenFile, Mkdir, Stat, ...). The remainder is
// always re-prefixed with "/" so it remains an absolute path within the
// volume.
func (r *Registry) Resolve(path string) (fsys *FS, rest string, err error) {
	name, rest := splitMountPath(path)
	if name == "" {
		return nil, "", ErrPath
	}
	r.mu.Lock()
	fsys, ok := r.volumes[name]
	r.mu.Unlock()
	if !ok {
		return nil, "", ErrPath
	}
	return fsys, rest, nil
}

// splitMountPath splits "/name/rest" into ("name", "/rest"). A bare
// "/name" or "name" yields ("name", "/").
func splitMountPath(path string) (name, rest string) {
	path = strings.TrimPrefix(path, "/")
	i := strings.IndexByte(path, '/')
	if i < 0 {
		return path, "/"
	}
	return path[:i], path[i:]
}
