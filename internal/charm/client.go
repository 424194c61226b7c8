// ABOUTME: Charm KV client wrapper for fitness record storage.
// ABOUTME: Implements storage.Repository with automatic cloud sync after writes.
package charm

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/harperreed/fitness/internal/storage"
)

const (
	// DefaultDBName is the Charm KV database holding fitness records.
	DefaultDBName = "fitness"
	// DefaultHost is the Charm server used when CHARM_HOST is unset.
	DefaultHost = "charm.2389.dev"
)

// ErrReadOnly is returned for writes while another process holds the lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// Options configures a Client.
type Options struct {
	DBName   string
	Host     string
	AutoSync bool
}

// Client stores fitness records in a Charm KV database.
type Client struct {
	kv       *kv.KV
	name     string
	autoSync bool
	mu       sync.RWMutex
}

// Open opens the Charm KV database and pulls remote changes.
func Open(opts Options) (*Client, error) {
	if opts.DBName == "" {
		opts.DBName = DefaultDBName
	}
	if err := ConfigureHost(opts.Host); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaultsFallback(opts.DBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	c := &Client{
		kv:       db,
		name:     opts.DBName,
		autoSync: opts.AutoSync,
	}

	// Pull remote data on startup (skip in read-only mode)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return c, nil
}

// ConfigureHost points the charm libraries at host, keeping an existing
// CHARM_HOST when host is empty.
func ConfigureHost(host string) error {
	if host == "" {
		if os.Getenv("CHARM_HOST") != "" {
			return nil
		}
		host = DefaultHost
	}
	if err := os.Setenv("CHARM_HOST", host); err != nil {
		return fmt.Errorf("set charm host: %w", err)
	}
	return nil
}

// Name returns the KV database name.
func (c *Client) Name() string {
	return c.name
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	return AccountID()
}

// AccountID returns the Charm user ID without opening the KV database.
func AccountID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// Get returns the record stored under key, or storage.ErrNotFound.
func (c *Client) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ok, err := c.hasKey(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, storage.ErrNotFound
	}
	data, err := c.kv.Get([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", key, err)
	}
	return data, nil
}

// Put stores a record and syncs when auto sync is on.
func (c *Client) Put(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}

	if err := c.kv.Set([]byte(key), data); err != nil {
		return fmt.Errorf("put record %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Delete removes a record. Missing records are ignored.
func (c *Client) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}

	ok, err := c.hasKey(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete record %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// hasKey scans the key list; the caller holds the lock.
func (c *Client) hasKey(key string) (bool, error) {
	keys, err := c.kv.Keys()
	if err != nil {
		return false, fmt.Errorf("list keys: %w", err)
	}
	return containsKey(keys, []byte(key)), nil
}

func containsKey(keys [][]byte, key []byte) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}
