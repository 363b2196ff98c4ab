// Package timeline groups story events into narrative sections for display.
//
// A section is either a gamble section (a gamble, the decisions, reveals and
// shifts that happen before it resolves, and the resolution) or a cluster of
// leftover events close to each other in chapter order.
package timeline

import (
	"cmp"
	"slices"

	"mangafandb/internal/microservices/http-api/models"
)

// DefaultProximity is the largest chapter gap between two leftover events that
// still keeps them in one cluster.
const DefaultProximity = 5

type Entry struct {
	ID      int64
	Type    models.EventType
	Chapter int
	ArcID   int64 // 0 when the event belongs to no arc
}

type SectionKind string

const (
	SectionGamble  SectionKind = "gamble"
	SectionCluster SectionKind = "cluster"
)

type Section struct {
	Kind         SectionKind
	GambleID     int64
	ResolutionID int64
	StartChapter int
	EndChapter   int
	Entries      []Entry
}

type ArcGroup struct {
	ArcID        int64
	StartChapter int
	EndChapter   int
	Sections     []Section
}

func compareEntries(a, b Entry) int {
	if c := cmp.Compare(a.Chapter, b.Chapter); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func isBridge(t models.EventType) bool {
	return t == models.EventDecision || t == models.EventReveal || t == models.EventShift
}

// BuildSections anchors on every resolution, pairs it with the nearest
// preceding gamble that is not already paired, and pulls in the bridging
// events between them. What is left is grouped by chapter proximity.
// A negative proximity selects DefaultProximity.
func BuildSections(entries []Entry, proximity int) []Section {
	if len(entries) == 0 {
		return nil
	}
	if proximity < 0 {
		proximity = DefaultProximity
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, compareEntries)
	used := make([]bool, len(sorted))

	var sections []Section
	for r, res := range sorted {
		if res.Type != models.EventResolution {
			continue
		}

		g := -1
		for j := r - 1; j >= 0; j-- {
			if !used[j] && sorted[j].Type == models.EventGamble {
				g = j
				break
			}
		}
		if g < 0 {
			continue
		}

		members := []Entry{sorted[g]}
		used[g] = true
		for k := g + 1; k < r; k++ {
			if !used[k] && isBridge(sorted[k].Type) {
				members = append(members, sorted[k])
				used[k] = true
			}
		}
		members = append(members, res)
		used[r] = true

		sections = append(sections, Section{
			Kind:         SectionGamble,
			GambleID:     sorted[g].ID,
			ResolutionID: res.ID,
			StartChapter: sorted[g].Chapter,
			EndChapter:   res.Chapter,
			Entries:      members,
		})
	}

	var cluster []Entry
	flush := func() {
		if len(cluster) == 0 {
			return
		}
		sections = append(sections, Section{
			Kind:         SectionCluster,
			StartChapter: cluster[0].Chapter,
			EndChapter:   cluster[len(cluster)-1].Chapter,
			Entries:      cluster,
		})
		cluster = nil
	}
	for i, e := range sorted {
		if used[i] {
			continue
		}
		if len(cluster) > 0 && e.Chapter-cluster[len(cluster)-1].Chapter > proximity {
			flush()
		}
		cluster = append(cluster, e)
	}
	flush()

	slices.SortStableFunc(sections, func(a, b Section) int {
		if c := cmp.Compare(a.StartChapter, b.StartChapter); c != 0 {
			return c
		}
		return compareEntries(a.Entries[0], b.Entries[0])
	})
	return sections
}

// GroupByArc buckets entries by arc and builds sections inside each bucket.
// Groups are ordered by their first chapter; events without an arc come last.
func GroupByArc(entries []Entry, proximity int) []ArcGroup {
	if len(entries) == 0 {
		return nil
	}

	buckets := make(map[int64][]Entry)
	for _, e := range entries {
		buckets[e.ArcID] = append(buckets[e.ArcID], e)
	}

	groups := make([]ArcGroup, 0, len(buckets))
	for arcID, bucket := range buckets {
		sections := BuildSections(bucket, proximity)
		g := ArcGroup{ArcID: arcID, Sections: sections}
		g.StartChapter = sections[0].StartChapter
		for _, s := range sections {
			g.StartChapter = min(g.StartChapter, s.StartChapter)
			g.EndChapter = max(g.EndChapter, s.EndChapter)
		}
		groups = append(groups, g)
	}

	slices.SortFunc(groups, func(a, b ArcGroup) int {
		if (a.ArcID == 0) != (b.ArcID == 0) {
			if a.ArcID == 0 {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(a.StartChapter, b.StartChapter); c != 0 {
			return c
		}
		return cmp.Compare(a.ArcID, b.ArcID)
	})
	return groups
}
