// Package archive creates and extracts zip and tar.gz archives.
package archive

import (
	"archive/tar"
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/gzip"

	"github.com/navfs/navigator/internal/fserr"
)

// Summary reports what an archive operation touched.
type Summary struct {
	Archive   string `json:"archive"`
	Files     int    `json:"files"`
	TotalSize int64  `json:"totalSize"`
}

// CreateZip archives the directory at source into a zip file at output.
func CreateZip(ctx context.Context, source, output string) (*Summary, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fserr.FromOS("zip "+source, err)
	}
	if !info.IsDir() {
		return nil, fserr.Newf(fserr.NotADirectory, "%s is not a directory", source)
	}

	zipFile, err := os.Create(output)
	if err != nil {
		return nil, fserr.FromOS("create "+output, err)
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	defer zw.Close()

	sum := &Summary{Archive: output}
	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, source, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || path == source {
			return nil
		}

		rel, _ := filepath.Rel(source, path)

		mu.Lock()
		defer mu.Unlock()

		if d.IsDir() {
			_, err := zw.Create(rel + "/")
			return err
		}

		w, err := zw.Create(rel)
		if err != nil {
			return err
		}
		file, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer file.Close()

		size, _ := io.Copy(w, file)
		sum.TotalSize += size
		sum.Files++
		return nil
	})
	if err != nil {
		os.Remove(output)
		return nil, fserr.Wrap(fserr.IOFailure, "zip creation failed", err)
	}
	if err := zw.Close(); err != nil {
		os.Remove(output)
		return nil, fserr.Wrap(fserr.IOFailure, "zip finalize failed", err)
	}
	return sum, nil
}

// ExtractZip unpacks the zip archive into destination. Entries that would
// escape the destination are skipped.
func ExtractZip(ctx context.Context, archivePath, destination string) (*Summary, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fserr.FromOS("open "+archivePath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destination, 0o755); err != nil {
		return nil, fserr.FromOS("mkdir "+destination, err)
	}

	sum := &Summary{Archive: archivePath}
	for _, file := range reader.File {
		select {
		case <-ctx.Done():
			return nil, fserr.Wrap(fserr.IOFailure, "extraction canceled", ctx.Err())
		default:
		}

		destPath, ok := safeJoin(destination, file.Name)
		if !ok {
			continue
		}
		if file.FileInfo().IsDir() {
			os.MkdirAll(destPath, 0o755)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			continue
		}

		src, err := file.Open()
		if err != nil {
			continue
		}
		dst, err := os.Create(destPath)
		if err != nil {
			src.Close()
			continue
		}
		n, err := io.Copy(dst, src)
		src.Close()
		dst.Close()
		if err == nil {
			sum.Files++
			sum.TotalSize += n
		}
	}
	return sum, nil
}

// CreateTarGz archives the directory at source into a gzip-compressed tar
// file at output.
func CreateTarGz(ctx context.Context, source, output string) (*Summary, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fserr.FromOS("tar "+source, err)
	}
	if !info.IsDir() {
		return nil, fserr.Newf(fserr.NotADirectory, "%s is not a directory", source)
	}

	outFile, err := os.Create(output)
	if err != nil {
		return nil, fserr.FromOS("create "+output, err)
	}
	defer outFile.Close()

	gzw := gzip.NewWriter(outFile)
	defer gzw.Close()
	tw := tar.NewWriter(gzw)
	defer tw.Close()

	sum := &Summary{Archive: output}
	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, source, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || path == source {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(source, path)

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return nil
		}
		header.Name = rel

		mu.Lock()
		defer mu.Unlock()

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer file.Close()

		size, _ := io.Copy(tw, file)
		sum.TotalSize += size
		sum.Files++
		return nil
	})
	if err != nil {
		os.Remove(output)
		return nil, fserr.Wrap(fserr.IOFailure, "tar creation failed", err)
	}
	if err := tw.Close(); err != nil {
		os.Remove(output)
		return nil, fserr.Wrap(fserr.IOFailure, "tar finalize failed", err)
	}
	if err := gzw.Close(); err != nil {
		os.Remove(output)
		return nil, fserr.Wrap(fserr.IOFailure, "gzip finalize failed", err)
	}
	return sum, nil
}

// ExtractTarGz unpacks a tar or tar.gz archive into destination, with
// compression detected from the file name.
func ExtractTarGz(ctx context.Context, archivePath, destination string) (*Summary, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return nil, fserr.FromOS("open "+archivePath, err)
	}
	defer file.Close()

	if err := os.MkdirAll(destination, 0o755); err != nil {
		return nil, fserr.FromOS("mkdir "+destination, err)
	}

	var tr *tar.Reader
	if strings.HasSuffix(archivePath, ".gz") || strings.HasSuffix(archivePath, ".tgz") {
		gzr, err := gzip.NewReader(file)
		if err != nil {
			return nil, fserr.Wrap(fserr.IOFailure, "gzip open failed", err)
		}
		defer gzr.Close()
		tr = tar.NewReader(gzr)
	} else {
		tr = tar.NewReader(file)
	}

	sum := &Summary{Archive: archivePath}
	for {
		select {
		case <-ctx.Done():
			return nil, fserr.Wrap(fserr.IOFailure, "extraction canceled", ctx.Err())
		default:
		}

		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fserr.Wrap(fserr.IOFailure, "tar read failed", err)
		}

		destPath, ok := safeJoin(destination, header.Name)
		if !ok {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			os.MkdirAll(destPath, 0o755)
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
				continue
			}
			out, err := os.Create(destPath)
			if err != nil {
				continue
			}
			n, err := io.Copy(out, tr)
			out.Close()
			if err == nil {
				sum.Files++
				sum.TotalSize += n
			}
		case tar.TypeSymlink:
			os.Symlink(header.Linkname, destPath)
		}
	}
	return sum, nil
}

// Extract picks the extractor from the archive's extension.
func Extract(ctx context.Context, archivePath, destination string) (*Summary, error) {
	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		return ExtractZip(ctx, archivePath, destination)
	case ".tar", ".tgz", ".gz":
		return ExtractTarGz(ctx, archivePath, destination)
	default:
		return nil, fserr.Newf(fserr.InvalidArgument, "unsupported archive format %q", filepath.Ext(archivePath))
	}
}

// safeJoin joins name under base and rejects entries escaping base.
func safeJoin(base, name string) (string, bool) {
	dest := filepath.Join(base, name)
	if !strings.HasPrefix(dest, filepath.Clean(base)+string(os.PathSeparator)) {
		return "", false
	}
	return dest, true
}
