package apk

import (
	"archive/zip"
	stderrors "errors"
	"io"
	"io/fs"

	"github.com/lukhio/axml/errors"
)

// Well-known entry names at the archive root.
const (
	ManifestName      = "AndroidManifest.xml"
	ResourceTableName = "resources.arsc"
)

// Manifest reads the compiled AndroidManifest.xml out of the APK at path.
func Manifest(path string) ([]byte, error) {
	return extractFile(path, ManifestName)
}

// ResourceTable reads the compiled resources.arsc out of the APK at path.
// Packages without compiled resources fail with a not_found error.
func ResourceTable(path string) ([]byte, error) {
	return extractFile(path, ResourceTableName)
}

// ManifestFromReader reads the compiled manifest from an already-open APK.
func ManifestFromReader(r io.ReaderAt, size int64) ([]byte, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseExtract, errors.KindInvalidData, err,
			"opening zip archive")
	}
	return extract(zr, ManifestName)
}

func extractFile(path, name string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseExtract, errors.KindInvalidData, err,
			"opening "+path)
	}
	defer zr.Close()
	return extract(&zr.Reader, name)
}

func extract(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFound(errors.PhaseExtract, "archive entry", name)
		}
		return nil, errors.Wrap(errors.PhaseExtract, errors.KindInvalidData, err,
			"opening archive entry "+name)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseExtract, errors.KindInvalidData, err,
			"reading archive entry "+name)
	}
	return data, nil
}
