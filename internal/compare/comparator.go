// Package compare decides whether two screenshots of the same form show the
// same content and the same focused element.
package compare

import (
	"fmt"
	"image"

	"formdiff/internal/focus"
	"formdiff/internal/form"
	"formdiff/internal/header"
	"formdiff/internal/imageio"
	"formdiff/internal/ocr"

	"github.com/corona10/goimagehash"
)

// Options control a comparison.
type Options struct {
	IgnoreCase          bool
	SimilarityThreshold float64 // Jaccard similarity needed for a text match
	FocusTolerance      int     // Max per-axis drift of the primary focus, in pixels

	FieldDiff          bool    // Also report per-field differences
	FieldMatchDistance float64 // Max center distance for two fields to pair up
	Group              form.GroupParams

	Verbose        bool // Append the texts found on one side only
	PerceptualHash bool // Record the perception-hash distance
}

// DefaultOptions returns the standard comparison options.
func DefaultOptions() Options {
	return Options{
		IgnoreCase:          true,
		SimilarityThreshold: 1.0,
		FocusTolerance:      50,
		FieldDiff:           false,
		FieldMatchDistance:  100,
		Group:               form.DefaultGroupParams(),
		Verbose:             false,
		PerceptualHash:      true,
	}
}

// TextExtractor recognizes words in a header-cropped screenshot.
type TextExtractor interface {
	Extract(img image.Image) ([]ocr.Word, error)
}

// FocusDetector finds focus candidates in a header-cropped screenshot and
// reports them offsetY rows lower, in original image space.
type FocusDetector interface {
	Detect(img image.Image, offsetY int) focus.Result
}

// Comparator compares pairs of screenshots. It is not safe for concurrent
// use when its collaborators are not.
type Comparator struct {
	opts     Options
	cropper  *header.Cropper
	text     TextExtractor
	focus    FocusDetector
	observer Observer
}

// NewComparator creates a comparator from its collaborators.
func NewComparator(opts Options, cropper *header.Cropper, text TextExtractor, detector FocusDetector) *Comparator {
	if cropper == nil {
		cropper = header.NewCropper(header.DefaultParams())
	}
	return &Comparator{
		opts:     opts,
		cropper:  cropper,
		text:     text,
		focus:    detector,
		observer: NopObserver{},
	}
}

// SetObserver sets the observer receiving progress notifications.
func (c *Comparator) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}
	c.observer = o
}

// Options returns the comparator's options.
func (c *Comparator) Options() Options {
	return c.opts
}

// Analysis is everything extracted from one screenshot. All coordinates are
// in original image space.
type Analysis struct {
	Offset    int
	Method    header.Method
	Fragments []form.Fragment
	Focus     focus.Result
}

// Analyze crops the header off img, then extracts its text fragments and
// focus candidates. An OCR error is returned rather than read as an empty
// screenshot.
func (c *Comparator) Analyze(name string, version int, img image.Image) (Analysis, error) {
	crop := c.cropper.Apply(img)
	if crop.Method == header.MethodFallback {
		c.observer.HeaderFallback(name, version, crop.Reason)
	}

	words, err := c.text.Extract(crop.Image)
	if err != nil {
		c.observer.OCRFailed(name, version, err)
		return Analysis{}, fmt.Errorf("failed to recognize text in version %d: %w", version, err)
	}

	return Analysis{
		Offset:    crop.Offset,
		Method:    crop.Method,
		Fragments: ocr.Fragments(words, crop.Offset),
		Focus:     c.focus.Detect(crop.Image, crop.Offset),
	}, nil
}

// CompareImages compares two decoded screenshots.
func (c *Comparator) CompareImages(name string, imgA, imgB image.Image) (Result, error) {
	a, err := c.Analyze(name, 1, imgA)
	if err != nil {
		return Result{}, err
	}
	b, err := c.Analyze(name, 2, imgB)
	if err != nil {
		return Result{}, err
	}

	text := c.compareText(a.Fragments, b.Fragments)
	focusMatch, details := CompareFocus(a.Focus, b.Focus, c.opts.FocusTolerance)
	res := newResult(name, text, focusMatch, details)

	if c.opts.FieldDiff {
		res.FieldDifferences = c.CompareFields(c.opts.Group.Group(a.Fragments), c.opts.Group.Group(b.Fragments))
	}
	if c.opts.PerceptualHash {
		if d, err := PerceptualDistance(imgA, imgB); err == nil {
			res.PerceptualDistance = &d
		}
	}

	c.observer.Compared(res)
	return res, nil
}

// Compare loads and compares two screenshot files. The result is named after
// the first file.
func (c *Comparator) Compare(pathA, pathB string) (Result, error) {
	shotA, err := imageio.Load(pathA)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load version 1: %w", err)
	}
	shotB, err := imageio.Load(pathB)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load version 2: %w", err)
	}
	return c.CompareImages(shotA.Name, shotA.Image, shotB.Image)
}

// PerceptualDistance returns the Hamming distance between the perception
// hashes of two images. 0 means visually near-identical.
func PerceptualDistance(a, b image.Image) (int, error) {
	hashA, err := goimagehash.PerceptionHash(a)
	if err != nil {
		return 0, fmt.Errorf("failed to hash first image: %w", err)
	}
	hashB, err := goimagehash.PerceptionHash(b)
	if err != nil {
		return 0, fmt.Errorf("failed to hash second image: %w", err)
	}
	return hashA.Distance(hashB)
}
