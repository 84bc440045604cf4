// Package creation provides the node-creation dispatcher, which translates
// per-kind creation requests into uniform requests for a creation engine.
package creation

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/lookup"
	"github.com/mutagen-io/namei/pkg/naming"
)

// SymlinkMode is the mode assigned to every symbolic link: the link format
// bits with permissions 0755.
const SymlinkMode = unix.S_IFLNK | 0x1ed

// permissionMask extracts permission and special bits from a mode.
const permissionMask = 0o7777

// ErrInvalidNodeType indicates that a request named a node type that the
// operation cannot create. It matches os.ErrInvalid.
var ErrInvalidNodeType = errors.Wrap(os.ErrInvalid, "invalid node type")

// Request is a uniform node creation request.
type Request struct {
	// Type is the node type.
	Type NodeType
	// Directory is the parent directory identifier.
	Directory lookup.ID
	// Name is the raw name of the new entry.
	Name []byte
	// Mode is the full mode, including format bits.
	Mode uint32
	// Device is the device number, used only for device nodes.
	Device uint64
	// Target is the link target, used only for symbolic links. It is stored
	// without modification.
	Target string
}

// Engine creates nodes.
type Engine interface {
	// CreateNode creates a node and returns its identifier.
	CreateNode(ctx context.Context, request *Request) (lookup.ID, error)
}

// Dispatcher translates per-kind creation operations into engine requests.
type Dispatcher struct {
	// engine is the underlying creation engine.
	engine Engine
	// logger is the dispatcher logger.
	logger *logging.Logger
}

// NewDispatcher creates a new dispatcher. The logger may be nil.
func NewDispatcher(engine Engine, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{
		engine: engine,
		logger: logger,
	}
}

// dispatch validates and forwards a request.
func (d *Dispatcher) dispatch(ctx context.Context, request *Request) (lookup.ID, error) {
	if err := naming.CheckLength(request.Name); err != nil {
		return 0, err
	}
	d.logger.Debugf("Creating %s %q in directory %d with mode %#o",
		request.Type, request.Name, request.Directory, request.Mode,
	)
	return d.engine.CreateNode(ctx, request)
}

// Symlink creates a symbolic link. The link always receives SymlinkMode and
// the target is passed through unmodified.
func (d *Dispatcher) Symlink(ctx context.Context, directory lookup.ID, name []byte, target string) (lookup.ID, error) {
	return d.dispatch(ctx, &Request{
		Type:      TypeSymlink,
		Directory: directory,
		Name:      name,
		Mode:      SymlinkMode,
		Target:    target,
	})
}

// Create creates a regular file with the specified permissions.
func (d *Dispatcher) Create(ctx context.Context, directory lookup.ID, name []byte, mode uint32) (lookup.ID, error) {
	return d.dispatch(ctx, &Request{
		Type:      TypeRegular,
		Directory: directory,
		Name:      name,
		Mode:      unix.S_IFREG | (mode & permissionMask),
	})
}

// Mkdir creates a directory with the specified permissions.
func (d *Dispatcher) Mkdir(ctx context.Context, directory lookup.ID, name []byte, mode uint32) (lookup.ID, error) {
	return d.dispatch(ctx, &Request{
		Type:      TypeDirectory,
		Directory: directory,
		Name:      name,
		Mode:      unix.S_IFDIR | (mode & permissionMask),
	})
}

// Mknod creates a regular file, device node, named pipe, or socket, with the
// node type derived from the mode's format bits. Directories and symbolic
// links are rejected with ErrInvalidNodeType.
func (d *Dispatcher) Mknod(ctx context.Context, directory lookup.ID, name []byte, mode uint32, device uint64) (lookup.ID, error) {
	kind, err := NodeTypeFromMode(mode)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidNodeType, err.Error())
	}
	if kind == TypeDirectory || kind == TypeSymlink {
		return 0, errors.Wrapf(ErrInvalidNodeType, "mknod cannot create %s", kind)
	}
	if kind != TypeCharDevice && kind != TypeBlockDevice {
		device = 0
	}
	return d.dispatch(ctx, &Request{
		Type:      kind,
		Directory: directory,
		Name:      name,
		Mode:      kind.Format() | (mode & permissionMask),
		Device:    device,
	})
}

// Make creates a node of any type. The mode's permission bits are used for
// all types except symbolic links, which always receive SymlinkMode.
func (d *Dispatcher) Make(ctx context.Context, kind NodeType, directory lookup.ID, name []byte, mode uint32, device uint64, target string) (lookup.ID, error) {
	switch kind {
	case TypeSymlink:
		return d.Symlink(ctx, directory, name, target)
	case TypeDirectory:
		return d.Mkdir(ctx, directory, name, mode)
	case TypeRegular:
		return d.Create(ctx, directory, name, mode)
	case TypeCharDevice, TypeBlockDevice, TypeFIFO, TypeSocket:
		return d.Mknod(ctx, directory, name, kind.Format()|(mode&permissionMask), device)
	default:
		return 0, ErrInvalidNodeType
	}
}
