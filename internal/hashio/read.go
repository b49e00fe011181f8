package hashio

import (
	"bytes"
	"crypto/md5" //nolint
	"crypto/sha1"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
)

const size = 512

var ErrHashFuncNotFound = errors.New("hash func not found")

// ReadAll reads in blocks by buf size and hashes
func ReadAll(r io.Reader, hasher hash.Hash) ([]byte, error) {
	buf := make([]byte, size)
	for {
		n, err := r.Read(buf)
		if err != nil {
			if err == io.EOF {
				if n > 0 {
					hasher.Write(buf[:n])
				}
				break
			}

			return nil, fmt.Errorf("read: %w", err)
		}

		hasher.Write(buf[:n])
	}

	return hasher.Sum(nil), nil
}

// ReadFile hashes the whole content of the file from the virtual file system
func ReadFile(fsys fs.FS, fileName string, hasherFunc func() hash.Hash) ([]byte, error) {
	if hasherFunc == nil {
		return nil, ErrHashFuncNotFound
	}

	file, err := fsys.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", fileName, err)
	}
	defer file.Close()

	sum, err := ReadAll(file, hasherFunc())
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fileName, err)
	}

	return sum, nil
}

// Changed reports whether content differs from the file stored in fsys.
// A missing file is always considered changed
func Changed(fsys fs.FS, fileName string, content []byte, hasherFunc func() hash.Hash) (bool, error) {
	oldHash, err := ReadFile(fsys, fileName, hasherFunc)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}

		return false, fmt.Errorf("hashing file content: %w", err)
	}

	newHash, err := ReadAll(bytes.NewReader(content), hasherFunc())
	if err != nil {
		return false, fmt.Errorf("hashing new content: %w", err)
	}

	return !bytes.Equal(oldHash, newHash), nil
}

// ByName returns the hash constructor for the alg name, md5 is used for an empty name
func ByName(name string) (func() hash.Hash, error) {
	switch name {
	case "", "md5":
		return MD5(), nil
	case "sha1":
		return SHA1(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrHashFuncNotFound, name)
	}
}

func MD5() func() hash.Hash {
	return func() hash.Hash {
		return md5.New()
	}
}

func SHA1() func() hash.Hash {
	return func() hash.Hash {
		return sha1.New()
	}
}
