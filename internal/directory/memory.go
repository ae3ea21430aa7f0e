package directory

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/permlattice/permlattice/internal/permission"
)

// MemoryDirectory is an in-process GroupLookup/holder registry with
// no persistence, used by tests where durability isn't needed. The
// CLI always uses BadgerDirectory.
type MemoryDirectory struct {
	mu        sync.Mutex
	holders   map[string]*permission.Holder
	usernames map[string]string // lowercased login name -> user UUID
	sink      permission.EventSink
}

func NewMemoryDirectory(sink permission.EventSink) *MemoryDirectory {
	return &MemoryDirectory{
		holders:   make(map[string]*permission.Holder),
		usernames: make(map[string]string),
		sink:      sink,
	}
}

func (d *MemoryDirectory) LookupGroup(name string) (*permission.Holder, bool) {
	return d.get(permission.KindGroup, name)
}

// GetOrCreateUser mints a stable UUID object_name for a login name the
// first time it's seen, then always resolves that name back to the
// same holder.
func (d *MemoryDirectory) GetOrCreateUser(name string) (*permission.Holder, error) {
	d.mu.Lock()
	key := strings.ToLower(name)
	uid, ok := d.usernames[key]
	if !ok {
		uid = uuid.New().String()
		d.usernames[key] = uid
	}
	d.mu.Unlock()

	h, _ := d.getOrCreate(permission.KindUser, uid)
	return h, nil
}

func (d *MemoryDirectory) GetOrCreateGroup(name string) (*permission.Holder, error) {
	h, _ := d.getOrCreate(permission.KindGroup, name)
	return h, nil
}

func (d *MemoryDirectory) get(kind permission.HolderKind, name string) (*permission.Holder, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h, ok := d.holders[memKey(kind, name)]
	return h, ok
}

func (d *MemoryDirectory) getOrCreate(kind permission.HolderKind, name string) (*permission.Holder, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := memKey(kind, name)
	if h, ok := d.holders[key]; ok {
		return h, true
	}
	h := permission.NewHolder(kind, name, d.sink, d)
	d.holders[key] = h
	return h, false
}

func memKey(kind permission.HolderKind, name string) string {
	prefix := "user"
	if kind == permission.KindGroup {
		prefix = "group"
	}
	return prefix + ":" + strings.ToLower(name)
}
