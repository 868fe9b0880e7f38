package batch

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"formdiff/internal/compare"
	"formdiff/internal/focus"
	"formdiff/internal/ocr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noText struct{}

func (noText) Extract(image.Image) ([]ocr.Word, error) { return nil, nil }

type brokenOCR struct{ err error }

func (b brokenOCR) Extract(image.Image) ([]ocr.Word, error) { return nil, b.err }

type noFocus struct{}

func (noFocus) Detect(image.Image, int) focus.Result { return focus.NewResult(nil, nil, nil) }

func factory(created, closed *int32) Factory {
	return func() (*compare.Comparator, func(), error) {
		atomic.AddInt32(created, 1)
		opts := compare.DefaultOptions()
		opts.PerceptualHash = false
		c := compare.NewComparator(opts, nil, noText{}, noFocus{})
		return c, func() { atomic.AddInt32(closed, 1) }, nil
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 60, 80))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

// setupFolders creates:
//
//	A: a.png b.png c.png corrupt.png notes.txt
//	B: a.png b.png corrupt.png (garbage) extra.png
func setupFolders(t *testing.T) (string, string) {
	t.Helper()
	dirA := t.TempDir()
	dirB := t.TempDir()

	for _, name := range []string{"b.png", "a.png", "c.png", "corrupt.png"} {
		writePNG(t, filepath.Join(dirA, name))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dirA, "notes.txt"), []byte("x"), 0o644))

	for _, name := range []string{"a.png", "b.png", "extra.png"} {
		writePNG(t, filepath.Join(dirB, name))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "corrupt.png"), []byte("garbage"), 0o644))
	return dirA, dirB
}

func TestPairFolders(t *testing.T) {
	dirA, dirB := setupFolders(t)

	pairs, missing, err := PairFolders(dirA, dirB)
	require.NoError(t, err)

	names := make([]string, len(pairs))
	for i, p := range pairs {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"a.png", "b.png", "corrupt.png"}, names)
	assert.Equal(t, []string{"c.png"}, missing)
	assert.Equal(t, filepath.Join(dirB, "a.png"), pairs[0].PathB)
}

func TestPairFoldersMissingFolder(t *testing.T) {
	_, _, err := PairFolders(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.Error(t, err)

	_, _, err = PairFolders(t.TempDir(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRunIsolatesFailures(t *testing.T) {
	dirA, dirB := setupFolders(t)
	var created, closed int32

	report, err := NewRunner(factory(&created, &closed), 2).Run(context.Background(), dirA, dirB)
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, "a.png", report.Results[0].ImageName)
	assert.Equal(t, "b.png", report.Results[1].ImageName)
	assert.Equal(t, 2, report.Passed())
	assert.Equal(t, 0, report.Failed())

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "corrupt.png", report.Failures[0].Name)
	assert.True(t, IsUnreadable(report.Failures[0]))

	assert.Equal(t, []string{"c.png"}, report.Missing)

	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&created))
	assert.Equal(t, created, closed)
}

func TestRunOCRFailureIsNotPass(t *testing.T) {
	dirA, dirB := setupFolders(t)
	missingLang := errors.New("failed loading language 'jpn'")

	runner := NewRunner(func() (*compare.Comparator, func(), error) {
		opts := compare.DefaultOptions()
		opts.PerceptualHash = false
		return compare.NewComparator(opts, nil, brokenOCR{err: missingLang}, noFocus{}), nil, nil
	}, 2)

	rep, err := runner.Run(context.Background(), dirA, dirB)
	require.NoError(t, err)

	assert.Empty(t, rep.Results)
	assert.Equal(t, 0, rep.Passed())
	require.Len(t, rep.Failures, 3)
	for _, f := range rep.Failures {
		if f.Name == "corrupt.png" {
			assert.True(t, IsUnreadable(f))
			continue
		}
		assert.ErrorIs(t, f, missingLang)
	}
}

func TestRunOrderIsDeterministic(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	names := []string{"f03.png", "f01.png", "f05.png", "f02.png", "f04.png"}
	for _, n := range names {
		writePNG(t, filepath.Join(dirA, n))
		writePNG(t, filepath.Join(dirB, n))
	}
	var created, closed int32

	report, err := NewRunner(factory(&created, &closed), 4).Run(context.Background(), dirA, dirB)
	require.NoError(t, err)

	got := make([]string, len(report.Results))
	for i, r := range report.Results {
		got[i] = r.ImageName
	}
	assert.Equal(t, []string{"f01.png", "f02.png", "f03.png", "f04.png", "f05.png"}, got)
}

func TestRunEmptyFolder(t *testing.T) {
	var created, closed int32
	report, err := NewRunner(factory(&created, &closed), 0).Run(context.Background(), t.TempDir(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Zero(t, atomic.LoadInt32(&created))
}

func TestRunCancelled(t *testing.T) {
	dirA, dirB := setupFolders(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var created, closed int32

	report, err := NewRunner(factory(&created, &closed), 1).Run(ctx, dirA, dirB)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Results)
}
