package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/archforge-ai/sdk/graph"
)

// EtcdOptions configures the etcd-backed store.
type EtcdOptions struct {
	// Endpoints lists the etcd cluster endpoints.
	Endpoints []string

	// Namespace prefixes every key. Default: "archforge".
	Namespace string

	// DialTimeout is the maximum time to wait for connection establishment.
	// Default: 5s.
	DialTimeout time.Duration
}

// EtcdStore implements Store on top of an etcd cluster. Useful when the
// deployment already runs etcd and adding Redis is not wanted.
type EtcdStore struct {
	client    *clientv3.Client
	namespace string
}

// NewEtcdStore connects to the cluster and verifies connectivity.
// The store must be closed with Close when no longer needed.
func NewEtcdStore(opts EtcdOptions) (*EtcdStore, error) {
	if len(opts.Endpoints) == 0 {
		return nil, fmt.Errorf("session: etcd endpoints cannot be empty")
	}
	if opts.Namespace == "" {
		opts.Namespace = "archforge"
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   opts.Endpoints,
		DialTimeout: opts.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("session: failed to create etcd client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := cli.Get(ctx, "health-check"); err != nil && err != context.DeadlineExceeded {
		cli.Close()
		return nil, fmt.Errorf("session: etcd health check failed: %w", err)
	}

	return &EtcdStore{client: cli, namespace: opts.Namespace}, nil
}

func (s *EtcdStore) key(id string) string {
	return fmt.Sprintf("/%s/graphs/%s", s.namespace, id)
}

// Get implements Store.
func (s *EtcdStore) Get(ctx context.Context, id string) (*graph.ArchGraph, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	resp, err := s.client.Get(ctx, s.key(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, ErrNotFound
	}

	var g graph.ArchGraph
	if err := json.Unmarshal(resp.Kvs[0].Value, &g); err != nil {
		return nil, fmt.Errorf("%w: corrupt graph payload: %v", ErrStorageFailed, err)
	}
	return &g, nil
}

// Set implements Store.
func (s *EtcdStore) Set(ctx context.Context, id string, g *graph.ArchGraph) error {
	if id == "" {
		return ErrInvalidID
	}
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("%w: failed to encode graph: %v", ErrStorageFailed, err)
	}
	if _, err := s.client.Put(ctx, s.key(id), string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	return nil
}

// Exists implements Store.
func (s *EtcdStore) Exists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrInvalidID
	}
	resp, err := s.client.Get(ctx, s.key(id), clientv3.WithCountOnly())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	return resp.Count > 0, nil
}

// Delete implements Store.
func (s *EtcdStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	resp, err := s.client.Delete(ctx, s.key(id))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	if resp.Deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the etcd connection.
func (s *EtcdStore) Close() error {
	return s.client.Close()
}
