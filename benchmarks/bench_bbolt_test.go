package benchmarks

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/Giulio2002/mapped"

	bolt "go.etcd.io/bbolt"
)

const boltKeys = 100_000

// makeBoltDB fills a bbolt database so the scan benchmarks have a
// realistic mmap-backed file to chew on.
func makeBoltDB(b *testing.B) string {
	b.Helper()
	path := filepath.Join(b.TempDir(), "bench.db")

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		b.Fatal(err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte("bench"))
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		val := make([]byte, 64)
		for i := 0; i < boltKeys; i++ {
			binary.BigEndian.PutUint64(key, uint64(i))
			if err := bkt.Put(key, val); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		b.Fatal(err)
	}
	if err := db.Close(); err != nil {
		b.Fatal(err)
	}
	return path
}

// BenchmarkBoltFileScan compares walking a bbolt file through its
// cursor API against a raw sequential scan of the same file through a
// read-only mapping. The cursor pays for page traversal and binary
// search; the raw scan shows the floor the mapping itself sets.
// Run with: go test -bench=BenchmarkBoltFileScan -run=^$ ./benchmarks/
func BenchmarkBoltFileScan(b *testing.B) {
	path := makeBoltDB(b)

	b.Run("Cursor", func(b *testing.B) {
		db, err := bolt.Open(path, 0600, &bolt.Options{ReadOnly: true})
		if err != nil {
			b.Fatal(err)
		}
		defer db.Close()

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			var total int
			err := db.View(func(tx *bolt.Tx) error {
				c := tx.Bucket([]byte("bench")).Cursor()
				for k, v := c.First(); k != nil; k, v = c.Next() {
					total += len(v)
				}
				return nil
			})
			if err != nil {
				b.Fatal(err)
			}
			if total != boltKeys*64 {
				b.Fatalf("scan mismatch: %d", total)
			}
		}
	})

	b.Run("MappedRaw", func(b *testing.B) {
		f, err := os.Open(path)
		if err != nil {
			b.Fatal(err)
		}
		fi, err := f.Stat()
		if err != nil {
			f.Close()
			b.Fatal(err)
		}

		m, err := mapped.New(f, int(fi.Size()), mapped.Readonly, mapped.Shared)
		if err != nil {
			f.Close()
			b.Fatal(err)
		}
		defer m.Close()
		if m, err = m.WithAdvice(mapped.AdviceSequential); err != nil {
			b.Fatal(err)
		}

		b.SetBytes(fi.Size())
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			var sum byte
			for _, c := range m.Slice() {
				sum += c
			}
			_ = sum
		}
	})
}
