// Package directory persists permission holders — users and the
// groups they can inherit from — and resolves "group.<name>" node
// references back to a live *permission.Holder for the inheritance
// walker. The Badger-backed implementation stores one key per holder,
// JSON-encoding its permanent node set.
package directory

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/permlattice/permlattice/internal/permission"
	"github.com/sirupsen/logrus"
)

// BadgerDirectory is a Badger-backed holder registry. It implements
// permission.GroupLookup directly, and also serves as the place a
// caller fetches a user's Holder before querying it.
type BadgerDirectory struct {
	db     *badger.DB
	log    *logrus.Logger
	sink   permission.EventSink
	cache  sync.Map // holderKey string -> *permission.Holder
}

// Options configures a BadgerDirectory.
type Options struct {
	DataDir    string
	SyncWrites bool
	Logger     *logrus.Logger
	Sink       permission.EventSink
}

// NewBadgerDirectory opens (creating if absent) a Badger database
// under <DataDir>/directory.
func NewBadgerDirectory(opts Options) (*BadgerDirectory, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	if opts.Sink == nil {
		opts.Sink = noopSink{}
	}

	dbPath := filepath.Join(opts.DataDir, "directory")
	badgerOpts := badger.DefaultOptions(dbPath).
		WithLogger(newBadgerLogger(opts.Logger)).
		WithSyncWrites(opts.SyncWrites).
		WithIndexCacheSize(32 << 20).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("directory: open badger db: %w", err)
	}

	opts.Logger.WithField("path", dbPath).Info("directory store opened")
	return &BadgerDirectory{db: db, log: opts.Logger, sink: opts.Sink}, nil
}

func holderKey(kind permission.HolderKind, name string) []byte {
	prefix := "user"
	if kind == permission.KindGroup {
		prefix = "group"
	}
	return []byte(fmt.Sprintf("holder:%s:%s", prefix, strings.ToLower(name)))
}

// storedNode is the on-disk shape for one permanent node: the legacy
// serialized form plus the value, which ExportToLegacy deliberately
// omits (see permission.FromSerializedNode).
type storedNode struct {
	Legacy string `json:"legacy"`
	Value  bool   `json:"value"`
}

// LookupGroup implements permission.GroupLookup.
func (d *BadgerDirectory) LookupGroup(name string) (*permission.Holder, bool) {
	return d.get(permission.KindGroup, name)
}

// GetOrCreateUser resolves a login name to the user's Holder. Per the
// object_name contract, a user's identity is a stable UUID rather than
// the (mutable, reusable) login name, so the first lookup of a new
// name mints one and remembers the mapping; later lookups of the same
// name always land on the same holder.
func (d *BadgerDirectory) GetOrCreateUser(name string) (*permission.Holder, error) {
	uid, err := d.resolveUserUUID(name)
	if err != nil {
		return nil, err
	}
	return d.getOrCreate(permission.KindUser, uid)
}

func usernameKey(name string) []byte {
	return []byte("username:" + strings.ToLower(name))
}

func (d *BadgerDirectory) resolveUserUUID(name string) (string, error) {
	var uid string
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			uid = string(val)
			return nil
		})
	})
	if err == nil {
		return uid, nil
	}
	if err != badger.ErrKeyNotFound {
		return "", fmt.Errorf("directory: resolve user %q: %w", name, err)
	}

	uid = uuid.New().String()
	if err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(usernameKey(name), []byte(uid))
	}); err != nil {
		return "", fmt.Errorf("directory: bind username %q: %w", name, err)
	}
	return uid, nil
}

// GetOrCreateGroup is GetOrCreateUser for groups.
func (d *BadgerDirectory) GetOrCreateGroup(name string) (*permission.Holder, error) {
	return d.getOrCreate(permission.KindGroup, name)
}

func (d *BadgerDirectory) get(kind permission.HolderKind, name string) (*permission.Holder, bool) {
	key := string(holderKey(kind, name))
	if cached, ok := d.cache.Load(key); ok {
		return cached.(*permission.Holder), true
	}

	nodes, err := d.loadNodes(kind, name)
	if err != nil {
		return nil, false
	}

	h := permission.NewHolder(kind, name, d.sink, d)
	h.SetNodes(nodes)
	actual, _ := d.cache.LoadOrStore(key, h)
	return actual.(*permission.Holder), true
}

func (d *BadgerDirectory) getOrCreate(kind permission.HolderKind, name string) (*permission.Holder, error) {
	if h, ok := d.get(kind, name); ok {
		return h, nil
	}
	h := permission.NewHolder(kind, name, d.sink, d)
	key := string(holderKey(kind, name))
	actual, loaded := d.cache.LoadOrStore(key, h)
	if loaded {
		return actual.(*permission.Holder), nil
	}
	return h, d.Save(h)
}

func (d *BadgerDirectory) loadNodes(kind permission.HolderKind, name string) ([]permission.Node, error) {
	var raw []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(holderKey(kind, name))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("directory: load %q: %w", name, err)
	}

	var stored []storedNode
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("directory: decode %q: %w", name, err)
	}

	nodes := make([]permission.Node, 0, len(stored))
	for _, s := range stored {
		n, err := permission.FromSerializedNode(s.Legacy, s.Value)
		if err != nil {
			d.log.WithError(err).WithField("holder", name).Warn("dropping malformed stored node")
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Save persists h's current permanent node set. Transient nodes are
// never written to disk — they are session-scoped by definition.
func (d *BadgerDirectory) Save(h *permission.Holder) error {
	legacy := permission.ExportToLegacy(h.Nodes())
	stored := make([]storedNode, 0, len(legacy))
	for l, v := range legacy {
		stored = append(stored, storedNode{Legacy: l, Value: v})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("directory: encode %q: %w", h.ObjectName(), err)
	}

	key := holderKey(h.Kind(), h.ObjectName())
	if err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	}); err != nil {
		return fmt.Errorf("directory: persist %q: %w", h.ObjectName(), err)
	}

	d.cache.Store(string(key), h)
	return nil
}

// Close closes the underlying Badger database.
func (d *BadgerDirectory) Close() error {
	return d.db.Close()
}

type noopSink struct{}

func (noopSink) Emit(permission.Event) {}

type badgerLogger struct{ logger *logrus.Logger }

func newBadgerLogger(l *logrus.Logger) *badgerLogger { return &badgerLogger{logger: l} }

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.logger.Errorf("[badger] "+format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.logger.Warnf("[badger] "+format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.logger.Debugf("[badger] "+format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.logger.Tracef("[badger] "+format, args...) }
