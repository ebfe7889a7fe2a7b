// Package ipc resolves the local Unix-socket channel the clipkeep CLI
// sub-commands use to talk to a running watch daemon, instead of opening
// the database themselves.
package ipc

import (
	"net"
	"os"
	"path/filepath"
)

// SocketPath returns the path for the IPC socket.
//
// Resolution order: $CLIPKEEP_SOCKET, then $XDG_RUNTIME_DIR/clipkeep.sock,
// then $TMPDIR/clipkeep.sock.
func SocketPath() string {
	if s := os.Getenv("CLIPKEEP_SOCKET"); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "clipkeep.sock")
	}
	return filepath.Join(os.TempDir(), "clipkeep.sock")
}

// IsRunning reports whether a watch daemon appears to be listening on the
// IPC socket. A cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := net.Dial("unix", SocketPath())
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates a net.Listener on the IPC socket path, removing any stale
// socket file from a previous run first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	_ = os.Remove(path)
	return net.Listen("unix", path)
}

// Dial connects to the daemon's IPC socket.
func Dial() (net.Conn, error) {
	return net.Dial("unix", SocketPath())
}
