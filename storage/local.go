package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes uploads under Root; the router serves Root at /uploads.
type LocalStore struct {
	Root    string
	BaseURL string
}

func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("mkdir uploads dir: %w", err)
	}
	return &LocalStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) path(bucket, key string) (string, error) {
	rel := filepath.Clean(filepath.Join(bucket, filepath.FromSlash(key)))
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.Root, rel), nil
}

func (s *LocalStore) Put(ctx context.Context, bucket, key string, body io.Reader, _ string) (string, error) {
	full, err := s.path(bucket, key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	_, err = io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		// never leave a partial upload behind
		if rmErr := os.Remove(full); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("⚠️ could not remove partial upload %s: %v", full, rmErr)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("write file: %w", err)
	}
	return s.BaseURL + "/uploads/" + bucket + "/" + strings.TrimLeft(key, "/"), nil
}

func (s *LocalStore) Delete(_ context.Context, bucket, key string) error {
	full, err := s.path(bucket, key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
