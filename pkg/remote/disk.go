package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
)

// Disk is a collection stored as one JSON file per document under
// <base>/<encoded name>/. Other processes may write the same directory, so
// reads always go to the files and Add numbers documents after the highest
// seq found on disk.
type Disk struct {
	name string
	dir  string
	d    *diskv.Diskv

	mu  sync.Mutex
	seq int64
}

// envelope is the on-disk form. Seq preserves insertion order across reads.
type envelope struct {
	Seq  int64           `json:"seq"`
	Data json.RawMessage `json:"data"`
}

// OpenDisk opens (creating if needed) the named collection below base.
func OpenDisk(base, name string) (*Disk, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("remote: collection name required")
	}
	if base == "" {
		return nil, errors.New("remote: base path unknown")
	}
	dir := filepath.Join(base, toDirName(name))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("remote: ensure collection directory: %w", err)
	}
	d := &Disk{
		name: name,
		dir:  dir,
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      0,
		}),
	}
	seq, err := d.maxSeq(context.Background())
	if err != nil {
		return nil, err
	}
	d.seq = seq
	return d, nil
}

func (d *Disk) Name() string { return d.name }

// Dir is the directory holding the documents.
func (d *Disk) Dir() string { return d.dir }

type seqDocument struct {
	Document
	seq int64
}

func (d *Disk) readAll(ctx context.Context) ([]seqDocument, error) {
	all := make([]seqDocument, 0)
	for key := range d.d.Keys(ctx.Done()) {
		if strings.HasPrefix(key, ".") {
			continue
		}
		env, err := d.read(key)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, seqDocument{Document: Document{Key: key, Data: env.Data}, seq: env.Seq})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].seq == all[j].seq {
			return all[i].Key < all[j].Key
		}
		return all[i].seq < all[j].seq
	})
	return all, nil
}

func (d *Disk) maxSeq(ctx context.Context) (int64, error) {
	docs, err := d.readAll(ctx)
	if err != nil {
		return 0, err
	}
	var seq int64
	for _, doc := range docs {
		if doc.seq > seq {
			seq = doc.seq
		}
	}
	return seq, nil
}

func (d *Disk) read(key string) (envelope, error) {
	rc, err := d.d.ReadStream(key, true)
	if err != nil {
		return envelope{}, err
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return envelope{}, err
	}
	env := envelope{}
	if err := json.Unmarshal(val, &env); err != nil {
		return envelope{}, err
	}
	return env, nil
}

func (d *Disk) write(key string, env envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return d.d.Write(key, data)
}

func (d *Disk) Get(ctx context.Context) ([]Document, error) {
	all, err := d.readAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Document, len(all))
	for i, doc := range all {
		out[i] = doc.Document
	}
	return out, nil
}

func (d *Disk) Add(ctx context.Context, data any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := encode(data)
	if err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	onDisk, err := d.maxSeq(ctx)
	if err != nil {
		return "", err
	}
	if onDisk > d.seq {
		d.seq = onDisk
	}
	d.seq++
	key := uuid.NewString()
	if err := d.write(key, envelope{Seq: d.seq, Data: raw}); err != nil {
		return "", fmt.Errorf("remote: write %s: %w", key, err)
	}
	return key, nil
}

func (d *Disk) Where(field string, value any) Query {
	return filterQuery{fetch: d.Get, field: field, value: value}
}

func (d *Disk) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.d.Has(key) {
		return ErrNotFound
	}
	return d.d.Erase(key)
}

func (d *Disk) Update(ctx context.Context, key string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.d.Has(key) {
		return ErrNotFound
	}
	env, err := d.read(key)
	if err != nil {
		return fmt.Errorf("remote: read %s: %w", key, err)
	}
	merged, err := Merge(env.Data, fields)
	if err != nil {
		return err
	}
	env.Data = merged
	return d.write(key, env)
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}

func toDirName(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}
