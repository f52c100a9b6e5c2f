// pkg/object/sftp.go

package object

import (
	"context"
	"io"
	"net"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

type sftpStore struct {
	host   string
	root   string
	conn   *ssh.Client
	client *sftp.Client
}

// NewSftp wraps an established sftp client, paths are resolved below root.
func NewSftp(client *sftp.Client, host, root string) Backend {
	return &sftpStore{host: host, root: root, client: client}
}

func (s *sftpStore) String() string {
	return "sftp://" + s.host + s.root
}

func (s *sftpStore) Close() error {
	err := s.client.Close()
	if s.conn != nil {
		_ = s.conn.Close()
	}
	return err
}

func (s *sftpStore) path(key string) string {
	if s.root == "" {
		return path.Clean(key)
	}
	return path.Join(s.root, path.Clean("/"+key))
}

func (s *sftpStore) Info(ctx context.Context, key string) (FileInfo, error) {
	p := s.path(key)
	fi, err := s.client.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileInfo{}, errors.Wrapf(ErrNotFound, "%s", p)
		}
		return FileInfo{}, errors.Wrapf(err, "stat %s", p)
	}
	if fi.IsDir() {
		return FileInfo{}, errors.Errorf("%s is a directory", p)
	}
	return newFileInfo(fi.Size()), nil
}

func (s *sftpStore) ReadRange(ctx context.Context, key string, chunkSize int, offset int64) ([]byte, error) {
	p := s.path(key)
	f, err := s.client.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "%s", p)
		}
		return nil, errors.Wrapf(err, "open %s", p)
	}
	defer f.Close()

	buf := make([]byte, chunkSize)
	n, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "read %s at %d", p, offset)
	}
	return buf[:n], nil
}

// newSftp dials [sftp://][user@]host[:port]/root. The password falls back to
// SSH_PASSWORD, a private key is read from SSH_PRIVATE_KEY_PATH.
func newSftp(endpoint, user, pass string) (Backend, error) {
	if !strings.Contains(endpoint, "://") {
		endpoint = "sftp://" + endpoint
	}
	uri, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", endpoint)
	}
	host := uri.Host
	if uri.Port() == "" {
		host = net.JoinHostPort(uri.Hostname(), "22")
	}
	if user == "" && uri.User != nil {
		user = uri.User.Username()
		pass, _ = uri.User.Password()
	}
	if user == "" {
		user = os.Getenv("USER")
	}
	if pass == "" {
		pass = os.Getenv("SSH_PASSWORD")
	}

	var auth []ssh.AuthMethod
	if pass != "" {
		auth = append(auth, ssh.Password(pass))
	}
	if keyPath := os.Getenv("SSH_PRIVATE_KEY_PATH"); keyPath != "" {
		pem, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, errors.Wrapf(err, "read private key %s", keyPath)
		}
		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			return nil, errors.Wrapf(err, "parse private key %s", keyPath)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	config := &ssh.ClientConfig{
		User:            user,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         time.Second * 15,
	}
	conn, err := ssh.Dial("tcp", host, config)
	if err != nil {
		return nil, errors.Wrapf(err, "ssh %s", host)
	}
	client, err := sftp.NewClient(conn)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "sftp %s", host)
	}
	return &sftpStore{host: host, root: uri.Path, conn: conn, client: client}, nil
}

func init() {
	Register("sftp", newSftp)
}
