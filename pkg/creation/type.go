package creation

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// NodeType identifies the kind of node being created.
type NodeType uint8

const (
	// TypeRegular indicates a regular file.
	TypeRegular NodeType = iota
	// TypeDirectory indicates a directory.
	TypeDirectory
	// TypeSymlink indicates a symbolic link.
	TypeSymlink
	// TypeCharDevice indicates a character device.
	TypeCharDevice
	// TypeBlockDevice indicates a block device.
	TypeBlockDevice
	// TypeFIFO indicates a named pipe.
	TypeFIFO
	// TypeSocket indicates a Unix domain socket.
	TypeSocket
)

// nodeTypeNames maps node types to their textual names.
var nodeTypeNames = map[NodeType]string{
	TypeRegular:     "file",
	TypeDirectory:   "directory",
	TypeSymlink:     "symlink",
	TypeCharDevice:  "char",
	TypeBlockDevice: "block",
	TypeFIFO:        "fifo",
	TypeSocket:      "socket",
}

// Supported indicates whether or not the node type is valid.
func (t NodeType) Supported() bool {
	_, ok := nodeTypeNames[t]
	return ok
}

// String returns a human-readable representation of the node type.
func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (t NodeType) MarshalText() ([]byte, error) {
	if !t.Supported() {
		return nil, errors.New("unknown node type")
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (t *NodeType) UnmarshalText(textBytes []byte) error {
	text := string(textBytes)
	for value, name := range nodeTypeNames {
		if name == text {
			*t = value
			return nil
		}
	}
	switch text {
	case "regular":
		*t = TypeRegular
	case "dir":
		*t = TypeDirectory
	case "link":
		*t = TypeSymlink
	default:
		return errors.Errorf("unknown node type specification: %s", text)
	}
	return nil
}

// Set implements pflag.Value.Set.
func (t *NodeType) Set(value string) error {
	return t.UnmarshalText([]byte(value))
}

// Type implements pflag.Value.Type.
func (t *NodeType) Type() string {
	return "node-type"
}

// Format returns the file format bits for the node type.
func (t NodeType) Format() uint32 {
	switch t {
	case TypeRegular:
		return unix.S_IFREG
	case TypeDirectory:
		return unix.S_IFDIR
	case TypeSymlink:
		return unix.S_IFLNK
	case TypeCharDevice:
		return unix.S_IFCHR
	case TypeBlockDevice:
		return unix.S_IFBLK
	case TypeFIFO:
		return unix.S_IFIFO
	case TypeSocket:
		return unix.S_IFSOCK
	default:
		return 0
	}
}

// NodeTypeFromMode derives a node type from the format bits of a mode. A mode
// with no format bits denotes a regular file.
func NodeTypeFromMode(mode uint32) (NodeType, error) {
	switch mode & unix.S_IFMT {
	case unix.S_IFREG, 0:
		return TypeRegular, nil
	case unix.S_IFDIR:
		return TypeDirectory, nil
	case unix.S_IFLNK:
		return TypeSymlink, nil
	case unix.S_IFCHR:
		return TypeCharDevice, nil
	case unix.S_IFBLK:
		return TypeBlockDevice, nil
	case unix.S_IFIFO:
		return TypeFIFO, nil
	case unix.S_IFSOCK:
		return TypeSocket, nil
	default:
		return 0, errors.Errorf("unknown file format: %#o", mode&unix.S_IFMT)
	}
}
