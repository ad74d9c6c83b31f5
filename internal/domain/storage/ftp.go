package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/sirupsen/logrus"
)

// ftpConn is the subset of *ftp.ServerConn the adapter uses.
type ftpConn interface {
	Login(user, password string) error
	ChangeDir(path string) error
	MakeDir(path string) error
	Stor(path string, r io.Reader) error
	List(path string) ([]*ftp.Entry, error)
	Delete(path string) error
	Quit() error
}

// FTPStorage stores folders in the login directory of an FTP account. All paths are
// relative to that directory. Every call opens its own connection and closes it when done.
type FTPStorage struct {
	host     string
	username string
	password string
	timeout  time.Duration
	log      logrus.FieldLogger
	dial     func(ctx context.Context) (ftpConn, error)
}

func NewFTPStorage(host, username, password string, timeout time.Duration, log logrus.FieldLogger) *FTPStorage {
	s := &FTPStorage{host: host, username: username, password: password, timeout: timeout, log: log}
	s.dial = func(ctx context.Context) (ftpConn, error) {
		return ftp.Dial(s.host, ftp.DialWithContext(ctx), ftp.DialWithTimeout(s.timeout))
	}
	return s
}

func (s *FTPStorage) connect(ctx context.Context) (ftpConn, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("ftp dial: %w", err)
	}
	if err := conn.Login(s.username, s.password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("ftp login: %w", err)
	}
	return conn, nil
}

func (s *FTPStorage) quit(conn ftpConn) {
	if err := conn.Quit(); err != nil {
		s.log.WithError(err).Debug("ftp quit")
	}
}

func (s *FTPStorage) Put(ctx context.Context, folder, name string, r io.Reader) error {
	if err := checkNames(folder, name); err != nil {
		return err
	}
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer s.quit(conn)

	if err := conn.ChangeDir(folder); err != nil {
		if err := conn.MakeDir(folder); err != nil {
			return fmt.Errorf("ftp mkdir %s: %w", folder, err)
		}
		s.log.WithField("folder", folder).Info("created upload folder")
		if err := conn.ChangeDir(folder); err != nil {
			return fmt.Errorf("ftp cwd: %w", err)
		}
	}

	if err := conn.Stor(name, readerWithContext(ctx, r)); err != nil {
		return fmt.Errorf("ftp stor: %w", err)
	}
	return nil
}

func (s *FTPStorage) Remove(ctx context.Context, folder, name string) error {
	if err := checkNames(folder, name); err != nil {
		return err
	}
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer s.quit(conn)

	if err := conn.ChangeDir(folder); err != nil {
		if isUnavailable(err) {
			return ErrFolderNotFound
		}
		return fmt.Errorf("ftp cwd: %w", err)
	}
	if err := conn.Delete(name); err != nil {
		if isUnavailable(err) {
			return ErrFileNotFound
		}
		return fmt.Errorf("ftp delete: %w", err)
	}
	return nil
}

// List returns an empty slice when the folder does not exist yet.
func (s *FTPStorage) List(ctx context.Context, folder string) ([]Object, error) {
	if !ValidName(folder) {
		return nil, ErrInvalidName
	}
	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer s.quit(conn)

	entries, err := conn.List(folder)
	if err != nil {
		if isUnavailable(err) {
			return []Object{}, nil
		}
		return nil, fmt.Errorf("ftp list: %w", err)
	}

	objects := make([]Object, 0, len(entries))
	for _, e := range entries {
		if e.Type != ftp.EntryTypeFile {
			continue
		}
		objects = append(objects, Object{Name: e.Name, Size: int64(e.Size), ModifiedAt: e.Time})
	}
	return objects, nil
}

// 550: requested action not taken, file unavailable.
func isUnavailable(err error) bool {
	var tp *textproto.Error
	return errors.As(err, &tp) && tp.Code == ftp.StatusFileUnavailable
}
