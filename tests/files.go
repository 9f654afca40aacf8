// Package tests holds the self-bootstrapping conformance suites: the
// helpers here download the external corpora the long tests need.
package tests

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/sync/errgroup"
)

// pkgdir returns the directory of this package, so that downloaded files
// land next to the tests regardless of the working directory.
func pkgdir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("can't locate package directory")
	}
	return filepath.Dir(file)
}

// HarteCorpusDir is where the per-opcode conformance files live; the cpu
// package tests read them from there.
func HarteCorpusDir() string {
	return filepath.Join(pkgdir(), "..", "cpu", "testdata", "nes6502", "v1")
}

// FunctionalTestPath is the location of the Klaus Dormann functional test
// image.
func FunctionalTestPath() string {
	return filepath.Join(pkgdir(), "testdata", "6502_functional_test.bin")
}

func download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
		return err
	}

	tmpf, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*")
	if err != nil {
		return err
	}

	_, err = io.Copy(tmpf, resp.Body)
	tmpf.Close()
	if err != nil {
		os.Remove(tmpf.Name())
		return err
	}
	return os.Rename(tmpf.Name(), dest)
}

const harteBaseURL = `https://raw.githubusercontent.com/SingleStepTests/ProcessorTests/main/nes6502/v1`

// downloadHarteCorpus fetches the 256 per-opcode files (roughly a GiB,
// hence the parallelism).
func downloadHarteCorpus(tb testing.TB, dest string) {
	tb.Helper()

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(8)

	for opcode := 0; opcode < 256; opcode++ {
		name := fmt.Sprintf("%02x.json", opcode)
		g.Go(func() error {
			path := filepath.Join(dest, name)
			if _, err := os.Stat(path); err == nil {
				return nil
			}
			return download(ctx, harteBaseURL+"/"+name, path)
		})
	}

	if err := g.Wait(); err != nil {
		tb.Fatal(err)
	}
}

const functionalTestURL = `https://github.com/Klaus2m5/6502_65C02_functional_tests/raw/master/bin_files/6502_functional_test.bin`

func downloadFunctionalTest(tb testing.TB, dest string) {
	tb.Helper()

	if _, err := os.Stat(dest); err == nil {
		return
	}
	if err := download(context.Background(), functionalTestURL, dest); err != nil {
		tb.Fatal(err)
	}
}
