package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"hash"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/robotomize/gocy/currency"
	"github.com/robotomize/gocy/internal/hashio"
	"github.com/robotomize/gocy/internal/logging"
)

var ErrHashingContentEqual = errors.New("hash of the ids file is equivalent to the previous version")

var flagIDs = flag.NewFlagSet("flagids", flag.ContinueOnError)

var (
	path     = flagIDs.String("target", "", "path to the folder with the currency assets")
	hashFunc = flagIDs.String("hash", "", "hash alg for compare files, variants: md5, sha1")
)

func main() {
	ctx := logging.WithLogger(context.Background(), logging.NewLogger("Gocyids: ", log.Lmsgprefix))
	logger := logging.FromContext(ctx)

	if err := flagIDs.Parse(os.Args[1:]); err != nil {
		logger.Fatalf("flag parse: %v", err)
	}

	if *path == "" {
		logger.Fatal("use -target <path> - path to the folder with the currency assets")
	}

	hasherFunc, err := hashio.ByName(*hashFunc)
	if err != nil {
		logger.Fatal(err)
	}

	if err := realMain(ctx, *path, hasherFunc); err != nil {
		if errors.Is(err, ErrHashingContentEqual) {
			logger.Printf("warning: %v", err)
			return
		}

		logger.Fatal(err)
	}

	logger.Printf("ids were assigned successfully, see %s", filepath.Join(*path, currency.IDsFile))
}

func realMain(ctx context.Context, dir string, hasherFunc func() hash.Hash) error {
	logger := logging.FromContext(ctx)
	fsys := os.DirFS(dir)

	registry, err := currency.Load(ctx, currency.WithFS(fsys), currency.WithSilenceMissingIDs())
	if err != nil {
		return fmt.Errorf("load currencies: %w", err)
	}

	entries := assignIDs(registry)

	content, err := encodeIDs(entries)
	if err != nil {
		return fmt.Errorf("encode ids: %w", err)
	}

	changed, err := hashio.Changed(fsys, currency.IDsFile, content, hasherFunc)
	if err != nil {
		return fmt.Errorf("compare ids: %w", err)
	}

	if !changed {
		return fmt.Errorf("%w, file: %s", ErrHashingContentEqual, currency.IDsFile)
	}

	if err := os.WriteFile(filepath.Join(dir, currency.IDsFile), content, 0o644); err != nil {
		return fmt.Errorf("write ids: %w", err)
	}

	logger.Printf("%d currencies got a new short id", len(registry.MissingIDs()))

	return nil
}

type idEntry struct {
	key string
	id  int
}

// assignIDs keeps every existing id and gives the currencies without one last+1, last+2 ... in key order
func assignIDs(registry *currency.Registry) []idEntry {
	all := registry.All()
	entries := make([]idEntry, 0, len(all))

	var last int
	for _, c := range all {
		if !c.HasID() {
			continue
		}

		entries = append(entries, idEntry{key: c.Key, id: c.ID})
		if c.ID > last {
			last = c.ID
		}
	}

	missing := registry.MissingIDs()
	sort.Slice(missing, func(i, j int) bool {
		return missing[i].Key < missing[j].Key
	})

	for _, c := range missing {
		last++
		entries = append(entries, idEntry{key: c.Key, id: last})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].id < entries[j].id
	})

	return entries
}

// encodeIDs writes a json object ordered by id
func encodeIDs(entries []idEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("{\n")
	for n, e := range entries {
		key, err := json.Marshal(e.key)
		if err != nil {
			return nil, fmt.Errorf("marshal key %s: %w", e.key, err)
		}

		fmt.Fprintf(&buf, "  %s: %d", key, e.id)
		if n < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}
