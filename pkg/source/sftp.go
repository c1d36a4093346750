// pkg/source/sftp.go

package source

import (
	"io"
	"net"
	"net/url"
	"os"

	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"

	"SparseBuf/pkg/utils"
)

type sftpFile struct {
	*sftp.File
	client *sftp.Client
	conn   *ssh.Client
	agent  net.Conn
}

func (f *sftpFile) Close() error {
	err := f.File.Close()
	_ = f.client.Close()
	_ = f.conn.Close()
	if f.agent != nil {
		_ = f.agent.Close()
	}
	return err
}

func sshAuth() ([]ssh.AuthMethod, net.Conn) {
	var methods []ssh.AuthMethod
	var conn net.Conn
	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		c, err := net.Dial("unix", sock)
		if err != nil {
			logger.Warnf("connect to ssh agent %s: %s", sock, err)
		} else {
			conn = c
			methods = append(methods, ssh.PublicKeysCallback(agent.NewClient(c).Signers))
		}
	}
	if pw := os.Getenv("SPARSEBUF_SSH_PASSWORD"); pw != "" {
		methods = append(methods, ssh.Password(pw))
	}
	return methods, conn
}

func openSFTP(u *url.URL, opts *Options) (io.ReadSeekCloser, uint64, error) {
	user := u.User.Username()
	if user == "" {
		user = os.Getenv("USER")
	}
	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), "22")
	}
	if u.Path == "" {
		return nil, 0, errors.Errorf("no path in %s", u.Redacted())
	}

	hostKeys, err := knownhosts.New(utils.ExpandHome(opts.KnownHosts))
	if err != nil {
		return nil, 0, errors.Wrapf(err, "load known hosts %s", opts.KnownHosts)
	}
	auth, agentConn := sshAuth()
	closeAgent := func() {
		if agentConn != nil {
			_ = agentConn.Close()
		}
	}
	if len(auth) == 0 {
		return nil, 0, errors.New("no ssh agent and SPARSEBUF_SSH_PASSWORD is not set")
	}

	conn, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            user,
		Auth:            auth,
		HostKeyCallback: hostKeys,
		Timeout:         opts.Timeout,
	})
	if err != nil {
		closeAgent()
		return nil, 0, errors.Wrapf(err, "ssh %s@%s", user, addr)
	}
	client, err := sftp.NewClient(conn)
	if err != nil {
		_ = conn.Close()
		closeAgent()
		return nil, 0, errors.Wrapf(err, "sftp %s", addr)
	}
	f, err := client.Open(u.Path)
	if err != nil {
		_ = client.Close()
		_ = conn.Close()
		closeAgent()
		return nil, 0, errors.Wrapf(err, "open %s", u.Path)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		_ = client.Close()
		_ = conn.Close()
		closeAgent()
		return nil, 0, errors.Wrapf(err, "stat %s", u.Path)
	}
	logger.Debugf("opened %s on %s, size: %d", u.Path, addr, fi.Size())
	return &sftpFile{f, client, conn, agentConn}, uint64(fi.Size()), nil
}
