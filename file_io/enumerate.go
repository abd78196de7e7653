package file_io

import (
	"arkiv/checksum"
	L "arkiv/logger"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type EntryKind uint8

const (
	ENTRY_FILE EntryKind = iota
	// directory with at least one eligible child, structural only
	ENTRY_DIR
	// directory without eligible children, counts as one unit of work
	ENTRY_EMPTY_DIR
)

func (k EntryKind) String() string {
	switch k {
	case ENTRY_FILE:
		return "file"
	case ENTRY_DIR:
		return "dir"
	case ENTRY_EMPTY_DIR:
		return "empty_dir"
	default:
		return "unknown"
	}
}

// IsLeaf reports whether processing an entry of this kind advances progress.
func (k EntryKind) IsLeaf() bool {
	return k == ENTRY_FILE || k == ENTRY_EMPTY_DIR
}

// Entry is one filesystem node selected for archiving.
type Entry struct {
	AbsPath string
	// slash separated, relative to the source root
	RelPath string
	Kind    EntryKind
}

type FilesInfo struct {
	TotalFileCount uint64
	DirCount       uint64
	EmptyDirCount  uint64
	SizeInBytes    uint64
	ContentHash    string
}

// TotalEntries is the number of progress increments a full run issues.
func (fi *FilesInfo) TotalEntries() uint64 {
	return fi.TotalFileCount + fi.EmptyDirCount
}

type Enumeration struct {
	Root    string
	Entries []Entry
	Info    *FilesInfo
}

// Total is the number of leaf entries (files and empty directories).
func (e *Enumeration) Total() uint64 {
	return e.Info.TotalEntries()
}

// Enumerator produces the entries of a source tree.
type Enumerator interface {
	Enumerate(ctx context.Context, root string, ignorePaths map[string]bool) (*Enumeration, error)
}

// WalkEnumerator walks the real filesystem.
type WalkEnumerator struct{}

func (WalkEnumerator) Enumerate(ctx context.Context, root string, ignorePaths map[string]bool) (*Enumeration, error) {
	return Enumerate(ctx, root, ignorePaths)
}

// Enumerate walks root once. Unreadable subtrees are skipped, the root
// itself must be a readable directory.
func Enumerate(ctx context.Context, root string, ignorePaths map[string]bool) (*Enumeration, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	rootInfo, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot read source %s: %w", root, err)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", root)
	}

	enumeration := &Enumeration{Root: absRoot, Info: &FilesInfo{}}
	info := enumeration.Info
	contentHashWriter := checksum.NewSha256()

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkError error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkError != nil {
			if path == absRoot {
				return walkError
			}
			L.Debug(fmt.Sprintf("Enumerate: skipping unreadable %s: %v", path, walkError))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if ignorePaths[path] {
			L.Warn(fmt.Sprintf("Enumerate: skipping potentially conflicting path: %s", path))
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if isSpecialPath(path) {
			L.Debug(fmt.Sprintf("Enumerate: skipping potentially problematic path: %s", path))
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if path == absRoot {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			L.Debug(fmt.Sprintf("Enumerate: skipping %s: %v", path, err))
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		switch {
		case d.Type().IsRegular():
			fileInfo, err := d.Info()
			if err != nil {
				L.Debug(fmt.Sprintf("Enumerate: skipping vanished file %s: %v", path, err))
				return nil
			}
			enumeration.Entries = append(enumeration.Entries, Entry{AbsPath: path, RelPath: relPath, Kind: ENTRY_FILE})
			info.TotalFileCount++
			info.SizeInBytes += uint64(fileInfo.Size())
			contentHashWriter.Write([]byte(relPath))
			contentHashWriter.Write([]byte(strconv.FormatInt(fileInfo.Size(), 10)))
		case d.IsDir():
			eligible, err := countEligibleChildren(path, ignorePaths)
			if err != nil {
				L.Debug(fmt.Sprintf("Enumerate: skipping unreadable directory %s: %v", path, err))
				return fs.SkipDir
			}
			kind := ENTRY_DIR
			if eligible == 0 {
				kind = ENTRY_EMPTY_DIR
				info.EmptyDirCount++
			} else {
				info.DirCount++
			}
			enumeration.Entries = append(enumeration.Entries, Entry{AbsPath: path, RelPath: relPath, Kind: kind})
			contentHashWriter.Write([]byte(relPath + "/"))
		default:
			L.Debug(fmt.Sprintf("Enumerate: skipping special file type: %s (mode: %s)", path, d.Type().String()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	info.ContentHash = checksum.Base64EncodeStr(contentHashWriter.Sum(nil))
	return enumeration, nil
}

// CountEntries returns the number of leaf entries under root, using the
// same selection as Enumerate.
func CountEntries(ctx context.Context, root string, ignorePaths map[string]bool) (uint64, error) {
	e, err := Enumerate(ctx, root, ignorePaths)
	if err != nil {
		return 0, err
	}
	return e.Total(), nil
}

// ComputeFilesInfo returns the size and content hash of the tree under inputPath.
func ComputeFilesInfo(ctx context.Context, inputPath string, ignorePaths map[string]bool) (*FilesInfo, error) {
	e, err := Enumerate(ctx, inputPath, ignorePaths)
	if err != nil {
		return nil, err
	}
	return e.Info, nil
}

// countEligibleChildren counts the children of dirPath that the walk would
// turn into entries, so a directory holding only skipped children is
// classified as empty.
func countEligibleChildren(dirPath string, ignorePaths map[string]bool) (int, error) {
	children, err := os.ReadDir(dirPath)
	if err != nil {
		return 0, err
	}
	eligible := 0
	for _, child := range children {
		childPath := filepath.Join(dirPath, child.Name())
		if ignorePaths[childPath] || isSpecialPath(childPath) {
			continue
		}
		switch {
		case child.Type().IsRegular():
			eligible++
		case child.IsDir():
			if isListable(childPath) {
				eligible++
			}
		}
	}
	return eligible, nil
}

func isListable(dirPath string) bool {
	dir, err := os.Open(dirPath)
	if err != nil {
		return false
	}
	defer dir.Close()
	_, err = dir.ReadDir(1)
	return err == nil || err == io.EOF
}

func isSpecialPath(path string) bool {
	for _, prefix := range []string{"/proc", "/dev", "/sys"} {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
