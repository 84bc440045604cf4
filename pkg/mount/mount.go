// Package mount serves a volume namespace over FUSE. Every name-bearing
// request from the kernel is routed through the namespace's resolver or
// creation dispatcher, so the mounted volume compares names under its match
// mode.
package mount

import (
	"context"
	"os"
	"syscall"
	"time"

	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/pkg/errors"

	"github.com/mutagen-io/namei/pkg/creation"
	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/lookup"
	"github.com/mutagen-io/namei/pkg/volume"
)

// Options configures a mount.
type Options struct {
	// Mountpoint is the directory where the volume is mounted. It is created
	// if it does not exist.
	Mountpoint string
	// Namespace is the namespace to serve.
	Namespace *volume.Namespace
	// EntryTimeout is the kernel cache lifetime for entries and attributes.
	EntryTimeout time.Duration
	// NegativeTimeout is the kernel cache lifetime for negative entries.
	NegativeTimeout time.Duration
	// AllowOther permits other users to access the mount. It requires
	// user_allow_other in /etc/fuse.conf.
	AllowOther bool
	// Logger is the mount logger. It may be nil.
	Logger *logging.Logger
}

// Mount mounts a namespace at the configured mountpoint. The caller must call
// Unmount on the returned server when done.
func Mount(options Options) (*fuse.Server, error) {
	// Validate options.
	if options.Mountpoint == "" {
		return nil, errors.New("mountpoint is required")
	} else if options.Namespace == nil {
		return nil, errors.New("namespace is required")
	}

	// Ensure the mountpoint exists.
	if err := os.MkdirAll(options.Mountpoint, 0o755); err != nil {
		return nil, errors.Wrapf(err, "unable to create mountpoint %s", options.Mountpoint)
	}

	// Create the root node.
	fs := &filesystem{
		namespace: options.Namespace,
		logger:    options.Logger,
		uid:       uint32(os.Getuid()),
		gid:       uint32(os.Getgid()),
	}
	root := &node{filesystem: fs, id: volume.RootID}

	// Perform the mount.
	entryTimeout := options.EntryTimeout
	negativeTimeout := options.NegativeTimeout
	server, err := gofuse.Mount(options.Mountpoint, root, &gofuse.Options{
		EntryTimeout:    &entryTimeout,
		AttrTimeout:     &entryTimeout,
		NegativeTimeout: &negativeTimeout,
		MountOptions: fuse.MountOptions{
			FsName:     "namei-" + options.Namespace.Volume.UUID().String(),
			Name:       "namei",
			AllowOther: options.AllowOther,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to mount volume at %s", options.Mountpoint)
	}
	options.Logger.Infof("Mounted %s volume at %s", options.Namespace.Volume.Mode(), options.Mountpoint)
	return server, nil
}

// filesystem is the state shared by all nodes of a mount.
type filesystem struct {
	// namespace is the served namespace.
	namespace *volume.Namespace
	// logger is the mount logger.
	logger *logging.Logger
	// uid is the owner reported for all nodes.
	uid uint32
	// gid is the group reported for all nodes.
	gid uint32
}

// fill populates FUSE attributes from volume attributes.
func (f *filesystem) fill(attributes volume.Attributes, out *fuse.Attr) {
	out.Ino = uint64(attributes.ID)
	out.Mode = attributes.Mode
	out.Size = attributes.Size
	out.Blocks = (attributes.Size + 511) / 512
	out.Nlink = attributes.Links
	out.Rdev = uint32(attributes.Device)
	out.Blksize = 4096
	out.Uid = f.uid
	out.Gid = f.gid
}

// errno converts an error to an errno, logging unexpected faults.
func (f *filesystem) errno(operation string, err error) syscall.Errno {
	errno := lookup.Errno(err)
	if errno == syscall.EIO {
		f.logger.Warn(errors.Wrapf(err, "%s failed", operation))
	} else {
		f.logger.Debugf("%s failed: %v", operation, err)
	}
	return errno
}

// node is a FUSE node for a volume object.
type node struct {
	gofuse.Inode
	// filesystem is the shared mount state.
	filesystem *filesystem
	// id is the volume object identifier.
	id lookup.ID
}

var _ gofuse.InodeEmbedder = (*node)(nil)
var _ gofuse.NodeLookuper = (*node)(nil)
var _ gofuse.NodeGetattrer = (*node)(nil)
var _ gofuse.NodeReaddirer = (*node)(nil)
var _ gofuse.NodeReadlinker = (*node)(nil)
var _ gofuse.NodeSymlinker = (*node)(nil)
var _ gofuse.NodeMkdirer = (*node)(nil)
var _ gofuse.NodeMknoder = (*node)(nil)
var _ gofuse.NodeCreater = (*node)(nil)
var _ gofuse.NodeOpener = (*node)(nil)
var _ gofuse.NodeReader = (*node)(nil)

// child creates the inode for a volume object and fills its entry attributes.
// The kernel inode number is the object identifier, so equivalent names map to
// a single kernel inode.
func (n *node) child(ctx context.Context, id lookup.ID, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	attributes, err := n.filesystem.namespace.Volume.Attributes(id)
	if err != nil {
		return nil, n.filesystem.errno("stat", err)
	}
	n.filesystem.fill(attributes, &out.Attr)
	return n.NewInode(ctx, &node{filesystem: n.filesystem, id: id}, gofuse.StableAttr{
		Mode: attributes.Mode & syscall.S_IFMT,
		Ino:  uint64(id),
	}), 0
}

// Lookup implements gofuse.NodeLookuper.Lookup.
func (n *node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	entry, err := n.filesystem.namespace.Lookup(ctx, n.id, []byte(name))
	if err != nil {
		return nil, n.filesystem.errno("lookup", err)
	} else if entry.Negative() {
		return nil, syscall.ENOENT
	}
	return n.child(ctx, entry.Object.ID(), out)
}

// Getattr implements gofuse.NodeGetattrer.Getattr.
func (n *node) Getattr(ctx context.Context, _ gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	attributes, err := n.filesystem.namespace.Volume.Attributes(n.id)
	if err != nil {
		return n.filesystem.errno("getattr", err)
	}
	n.filesystem.fill(attributes, &out.Attr)
	return 0
}

// Readdir implements gofuse.NodeReaddirer.Readdir.
func (n *node) Readdir(ctx context.Context) (gofuse.DirStream, syscall.Errno) {
	entries, err := n.filesystem.namespace.Volume.Entries(n.id)
	if err != nil {
		return nil, n.filesystem.errno("readdir", err)
	}
	result := make([]fuse.DirEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, fuse.DirEntry{
			Name: string(entry.Name),
			Mode: entry.Attributes.Mode,
			Ino:  uint64(entry.Attributes.ID),
		})
	}
	return gofuse.NewListDirStream(result), 0
}

// Readlink implements gofuse.NodeReadlinker.Readlink.
func (n *node) Readlink(ctx context.Context) ([]byte, syscall.Errno) {
	target, err := n.filesystem.namespace.Volume.Readlink(n.id)
	if err != nil {
		return nil, n.filesystem.errno("readlink", err)
	}
	return []byte(target), 0
}

// created finishes a creation operation.
func (n *node) created(ctx context.Context, operation string, name string, id lookup.ID, err error, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	if err != nil {
		return nil, n.filesystem.errno(operation, err)
	}
	n.filesystem.namespace.Created(ctx, n.id, []byte(name))
	return n.child(ctx, id, out)
}

// Symlink implements gofuse.NodeSymlinker.Symlink.
func (n *node) Symlink(ctx context.Context, target, name string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	id, err := n.filesystem.namespace.Dispatcher.Symlink(ctx, n.id, []byte(name), target)
	return n.created(ctx, "symlink", name, id, err, out)
}

// Mkdir implements gofuse.NodeMkdirer.Mkdir.
func (n *node) Mkdir(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	id, err := n.filesystem.namespace.Dispatcher.Mkdir(ctx, n.id, []byte(name), mode)
	return n.created(ctx, "mkdir", name, id, err, out)
}

// Mknod implements gofuse.NodeMknoder.Mknod.
func (n *node) Mknod(ctx context.Context, name string, mode uint32, device uint32, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	id, err := n.filesystem.namespace.Dispatcher.Mknod(ctx, n.id, []byte(name), mode, uint64(device))
	return n.created(ctx, "mknod", name, id, err, out)
}

// Create implements gofuse.NodeCreater.Create.
func (n *node) Create(ctx context.Context, name string, flags uint32, mode uint32, out *fuse.EntryOut) (*gofuse.Inode, gofuse.FileHandle, uint32, syscall.Errno) {
	id, err := n.filesystem.namespace.Dispatcher.Create(ctx, n.id, []byte(name), mode)
	inode, errno := n.created(ctx, "create", name, id, err, out)
	if errno != 0 {
		return nil, nil, 0, errno
	}
	return inode, nil, fuse.FOPEN_KEEP_CACHE, 0
}

// Open implements gofuse.NodeOpener.Open. Volume file contents are not stored,
// so only read access is permitted.
func (n *node) Open(ctx context.Context, flags uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EROFS
	}
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

// Read implements gofuse.NodeReader.Read. Regular files read as zeros up to
// their nominal size.
func (n *node) Read(ctx context.Context, _ gofuse.FileHandle, dest []byte, offset int64) (fuse.ReadResult, syscall.Errno) {
	attributes, err := n.filesystem.namespace.Volume.Attributes(n.id)
	if err != nil {
		return nil, n.filesystem.errno("read", err)
	} else if attributes.Type != creation.TypeRegular {
		return nil, syscall.EISDIR
	}
	if offset < 0 || uint64(offset) >= attributes.Size {
		return fuse.ReadResultData(nil), 0
	}
	length := attributes.Size - uint64(offset)
	if length > uint64(len(dest)) {
		length = uint64(len(dest))
	}
	data := dest[:length]
	for i := range data {
		data[i] = 0
	}
	return fuse.ReadResultData(data), 0
}
