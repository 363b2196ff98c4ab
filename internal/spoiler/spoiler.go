// Package spoiler decides whether chapter-bound content is safe to show a reader.
package spoiler

// Viewer is the reader a response is rendered for.
type Viewer struct {
	// Progress is the last chapter the reader has read.
	Progress int
	// Override replaces Progress when set, e.g. a reader who wants to browse
	// ahead or hide more than their progress would.
	Override *int
}

// Anonymous is the viewer used when nobody is signed in.
var Anonymous = Viewer{}

// EffectiveProgress returns the chapter the viewer is treated as having reached.
func (v Viewer) EffectiveProgress() int {
	if v.Override != nil && *v.Override >= 0 {
		return *v.Override
	}
	if v.Progress < 0 {
		return 0
	}
	return v.Progress
}

// Hides reports whether content bound to chapter must be hidden from the viewer.
func (v Viewer) Hides(chapter int) bool {
	return ShouldHide(chapter, v)
}

// ShouldHide reports whether content pinned to contentChapter is a spoiler for v.
// Content without a known chapter (<= 0) is never hidden.
func ShouldHide(contentChapter int, v Viewer) bool {
	if contentChapter <= 0 {
		return false
	}
	return contentChapter > v.EffectiveProgress()
}

// CanView reports whether a reader at progress meets a minimum-chapter requirement.
func CanView(minimumChapter, progress int) bool {
	return progress >= minimumChapter
}

// Resolve picks the viewer from the most specific source available: an explicit
// request override, then the stored override, then stored progress.
func Resolve(progress int, storedOverride, requestOverride *int) Viewer {
	v := Viewer{Progress: progress}
	switch {
	case requestOverride != nil && *requestOverride >= 0:
		v.Override = requestOverride
	case storedOverride != nil && *storedOverride >= 0:
		v.Override = storedOverride
	}
	return v
}
