package mount

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/google/uuid"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/mutagen-io/namei/pkg/creation"
	"github.com/mutagen-io/namei/pkg/naming"
	"github.com/mutagen-io/namei/pkg/volume"
)

// fuseAvailable checks whether /dev/fuse is accessible. Tests that need a real
// FUSE mount call this and skip if the device is absent.
func fuseAvailable(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/dev/fuse"); err != nil {
		t.Skip("skipping: /dev/fuse not available")
	}
}

// testNamespace creates a namespace with a single file.
func testNamespace(t *testing.T, mode naming.MatchMode) *volume.Namespace {
	t.Helper()
	v, err := volume.New(uuid.Nil, mode, nil)
	if err != nil {
		t.Fatal("unable to create volume:", err)
	}
	namespace := volume.NewNamespace(v, volume.NamespaceOptions{}, nil)
	if _, err := namespace.Create(context.Background(), "File.TXT", volume.CreateOptions{
		Type:        creation.TypeRegular,
		Permissions: 0o644,
	}); err != nil {
		t.Fatal("unable to create file:", err)
	}
	return namespace
}

// testMount mounts a namespace and returns the mountpoint.
func testMount(t *testing.T, namespace *volume.Namespace) string {
	t.Helper()
	fuseAvailable(t)

	mountpoint := filepath.Join(t.TempDir(), "mount")
	server, err := Mount(Options{
		Mountpoint: mountpoint,
		Namespace:  namespace,
	})
	if err != nil {
		t.Skip("skipping: unable to mount:", err)
	}
	t.Cleanup(func() {
		if err := server.Unmount(); err != nil {
			t.Errorf("Unmount: %v", err)
		}
	})
	return mountpoint
}

func TestMountValidation(t *testing.T) {
	if _, err := Mount(Options{}); err == nil {
		t.Error("mount without mountpoint succeeded")
	}
	if _, err := Mount(Options{Mountpoint: t.TempDir()}); err == nil {
		t.Error("mount without namespace succeeded")
	}
}

func TestFill(t *testing.T) {
	fs := &filesystem{uid: 1000, gid: 100}
	var out fuse.Attr
	fs.fill(volume.Attributes{
		ID:     7,
		Type:   creation.TypeCharDevice,
		Mode:   syscall.S_IFCHR | 0o620,
		Size:   1000,
		Links:  1,
		Device: 0x0501,
	}, &out)
	if out.Ino != 7 || out.Mode != syscall.S_IFCHR|0o620 || out.Size != 1000 {
		t.Errorf("unexpected attributes: %+v", out)
	}
	if out.Blocks != 2 || out.Nlink != 1 || out.Rdev != 0x0501 {
		t.Errorf("unexpected derived attributes: %+v", out)
	}
	if out.Uid != 1000 || out.Gid != 100 {
		t.Errorf("unexpected ownership: %+v", out)
	}
}

func TestErrno(t *testing.T) {
	fs := &filesystem{}
	if errno := fs.errno("test", naming.ErrNameTooLong); errno != syscall.ENAMETOOLONG {
		t.Error("unexpected errno:", errno)
	}
	if errno := fs.errno("test", os.ErrClosed); errno != syscall.EIO {
		t.Error("unexpected errno:", errno)
	}
}

func TestMountCaseInsensitiveLookup(t *testing.T) {
	mountpoint := testMount(t, testNamespace(t, naming.CaseInsensitive))

	original, err := os.Stat(filepath.Join(mountpoint, "File.TXT"))
	if err != nil {
		t.Fatal("unable to stat file:", err)
	}
	folded, err := os.Stat(filepath.Join(mountpoint, "file.txt"))
	if err != nil {
		t.Fatal("unable to stat file under different case:", err)
	}
	if !os.SameFile(original, folded) {
		t.Error("equivalent names resolved to different files")
	}
}

func TestMountSensitiveLookup(t *testing.T) {
	mountpoint := testMount(t, testNamespace(t, naming.Sensitive))
	if _, err := os.Stat(filepath.Join(mountpoint, "file.txt")); !os.IsNotExist(err) {
		t.Error("differently cased name resolved on sensitive volume:", err)
	}
}

func TestMountSymlink(t *testing.T) {
	mountpoint := testMount(t, testNamespace(t, naming.Sensitive))
	link := filepath.Join(mountpoint, "link")
	if err := os.Symlink("../other", link); err != nil {
		t.Fatal("unable to create symlink:", err)
	}
	if target, err := os.Readlink(link); err != nil {
		t.Fatal("unable to read symlink:", err)
	} else if target != "../other" {
		t.Error("symlink target modified:", target)
	}
	if info, err := os.Lstat(link); err != nil {
		t.Fatal("unable to stat symlink:", err)
	} else if info.Mode().Perm() != 0o755 {
		t.Errorf("unexpected symlink permissions: %o", info.Mode().Perm())
	}
}

func TestMountMkdirCollision(t *testing.T) {
	mountpoint := testMount(t, testNamespace(t, naming.CaseInsensitive))
	if err := os.Mkdir(filepath.Join(mountpoint, "Docs"), 0o755); err != nil {
		t.Fatal("unable to create directory:", err)
	}
	if err := os.Mkdir(filepath.Join(mountpoint, "DOCS"), 0o755); !os.IsExist(err) {
		t.Error("equivalent directory creation did not collide:", err)
	}
	entries, err := os.ReadDir(mountpoint)
	if err != nil {
		t.Fatal("unable to read mount:", err)
	} else if len(entries) != 2 {
		t.Error("unexpected entry count:", len(entries))
	}
}
