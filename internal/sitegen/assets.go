package sitegen

import (
	"io"
	"os"
	"path/filepath"

	"github.com/MarvStuff/Athlete-Wiki/internal/report"
)

// CopyStatic mirrors the static asset directory into the output directory.
// The fonts subdirectory is copied explicitly into public/fonts/ so the
// @font-face URLs injected by the transform pipeline always resolve. A
// missing static directory is fine; a missing fonts directory only matters
// when articles reference local fonts, so both degrade silently.
func CopyStatic(staticDir, outDir string) error {
	entries, err := os.ReadDir(staticDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.Name() == "fonts" {
			continue // handled below, into the fixed fonts path
		}
		src := filepath.Join(staticDir, entry.Name())
		dst := filepath.Join(outDir, entry.Name())
		if entry.IsDir() {
			if err := CopyDir(src, dst); err != nil {
				return err
			}
		} else if err := copyFile(src, dst); err != nil {
			return err
		}
	}

	fontsSrc := filepath.Join(staticDir, "fonts")
	if _, err := os.Stat(fontsSrc); err == nil {
		return CopyDir(fontsSrc, filepath.Join(outDir, "fonts"))
	}
	return nil
}

// CopySearchLib bundles the client-side search library into the output root.
// Shipping it locally instead of loading it from a CDN is part of the
// external-resource compliance story; a missing file is only a warning.
func CopySearchLib(libPath, outDir string, rep *report.BuildReport) {
	if _, err := os.Stat(libPath); err != nil {
		rep.Warnf("search library not found at %s", libPath)
		return
	}
	dst := filepath.Join(outDir, filepath.Base(libPath))
	if err := copyFile(libPath, dst); err != nil {
		rep.Warnf("copy search library: %v", err)
	}
}

// CopyDir recursively copies a directory tree.
func CopyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}
