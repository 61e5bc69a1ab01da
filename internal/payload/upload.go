package payload

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// ResourcesDir is where the tester looks for payload files
const ResourcesDir = "/resources"

// UploaderConfig holds the tester's SSH credentials
type UploaderConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	// Timeout bounds connection setup and each remote command
	Timeout time.Duration
}

// Uploader copies payload files to the tester and removes them again
type Uploader struct {
	addr    string
	config  *ssh.ClientConfig
	timeout time.Duration
}

// NewUploader creates an uploader using password authentication
func NewUploader(cfg UploaderConfig) *Uploader {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Uploader{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		config: &ssh.ClientConfig{
			User: cfg.User,
			Auth: []ssh.AuthMethod{
				ssh.Password(cfg.Password),
			},
			HostKeyCallback: ssh.InsecureIgnoreHostKey(),
			Timeout:         cfg.Timeout,
		},
		timeout: cfg.Timeout,
	}
}

// Upload copies localPath to /resources/<base name> on the tester
func (u *Uploader) Upload(ctx context.Context, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open payload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat payload: %w", err)
	}
	name := filepath.Base(localPath)

	client, err := u.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	stdin, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdin: %w", err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdout: %w", err)
	}
	if err := session.Start("scp -t " + ResourcesDir + "/"); err != nil {
		return fmt.Errorf("failed to start scp: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		err := sendFile(stdin, stdout, name, info.Mode(), info.Size(), f)
		stdin.Close()
		if err != nil {
			done <- err
			return
		}
		done <- session.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", name, err)
		}
	case <-ctx.Done():
		session.Signal(ssh.SIGKILL)
		return ctx.Err()
	}

	log.Printf("payload: uploaded %s (%d bytes) to %s", name, info.Size(), u.addr)
	return nil
}

// Delete removes /resources/<name> from the tester
func (u *Uploader) Delete(ctx context.Context, name string) error {
	client, err := u.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := u.run(ctx, client, deleteCommand(name)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	log.Printf("payload: deleted %s from %s", name, u.addr)
	return nil
}

func (u *Uploader) connect(ctx context.Context) (*ssh.Client, error) {
	dialer := &net.Dialer{Timeout: u.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", u.addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, u.addr, u.config)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to establish SSH connection: %w", err)
	}
	return ssh.NewClient(sshConn, chans, reqs), nil
}

func (u *Uploader) run(ctx context.Context, client *ssh.Client, cmd string) (string, error) {
	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := session.CombinedOutput(cmd)
		done <- result{out, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return string(r.out), fmt.Errorf("command failed: %w", r.err)
		}
		return string(r.out), nil
	case <-ctx.Done():
		session.Signal(ssh.SIGKILL)
		return "", ctx.Err()
	case <-time.After(u.timeout):
		session.Signal(ssh.SIGKILL)
		return "", fmt.Errorf("command timeout")
	}
}

func deleteCommand(name string) string {
	return "rm -f " + ResourcesDir + "/" + shellQuote(name)
}

// shellQuote quotes s for a POSIX shell
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("@%+=:,./-_", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// sendFile speaks the source side of the scp protocol for a single file
func sendFile(w io.Writer, r io.Reader, name string, mode os.FileMode, size int64, body io.Reader) error {
	acks := bufio.NewReader(r)
	if err := readAck(acks); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "C%04o %d %s\n", mode.Perm(), size, name); err != nil {
		return err
	}
	if err := readAck(acks); err != nil {
		return err
	}
	if _, err := io.CopyN(w, body, size); err != nil {
		return err
	}
	if _, err := w.Write([]byte{0}); err != nil {
		return err
	}
	return readAck(acks)
}

func readAck(r *bufio.Reader) error {
	code, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("scp: %w", err)
	}
	if code == 0 {
		return nil
	}
	msg, _ := r.ReadString('\n')
	return fmt.Errorf("scp: remote error: %s", strings.TrimSpace(msg))
}
