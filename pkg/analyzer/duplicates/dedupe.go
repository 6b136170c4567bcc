package duplicates

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/augurlabs/augur/pkg/issue"
)

// severity tier cutoffs: max block lines / affected files / average
// tokens. Meeting any one cutoff is enough for the tier.
type severityTier struct {
	severity  issue.Severity
	lines     int
	files     int
	avgTokens float64
}

var severityTiers = []severityTier{
	{issue.SeverityCritical, 50, 5, 200},
	{issue.SeverityHigh, 30, 3, 100},
	{issue.SeverityMedium, 15, 2, 50},
}

// groupSeverity derives a group's severity from its size and spread.
func groupSeverity(g *Group) issue.Severity {
	maxLines := 0
	totalTokens := 0
	for i := range g.Blocks {
		if l := g.Blocks[i].Lines(); l > maxLines {
			maxLines = l
		}
		totalTokens += g.Blocks[i].TokenCount
	}
	avgTokens := float64(totalTokens) / float64(len(g.Blocks))

	for _, tier := range severityTiers {
		if maxLines >= tier.lines || len(g.AffectedFiles) >= tier.files || avgTokens >= tier.avgTokens {
			return tier.severity
		}
	}
	return issue.SeverityLow
}

// newGroup assembles a group from its member blocks and computes the
// derived fields.
func (a *Analyzer) newGroup(kind Kind, members []Block, similarity float64) Group {
	g := Group{
		ID:         a.nextGroupID.Add(1),
		Kind:       kind,
		Blocks:     members,
		Similarity: similarity,
	}

	fileSet := make(map[string]struct{})
	for i := range members {
		fileSet[members[i].FilePath] = struct{}{}
		g.TotalLines += members[i].Lines()
	}
	g.AffectedFiles = make([]string, 0, len(fileSet))
	for f := range fileSet {
		g.AffectedFiles = append(g.AffectedFiles, f)
	}
	sort.Strings(g.AffectedFiles)

	g.Severity = groupSeverity(&g)
	return g
}

// deduplicate merges the three algorithms' output. Groups are ranked by
// severity then similarity; a group survives only if none of its blocks'
// lines were already claimed by a higher-ranked group. Claimed lines are
// tracked in a per-file bitmap.
func deduplicate(groups []Group) []Group {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Severity.Rank() != groups[j].Severity.Rank() {
			return groups[i].Severity.Rank() > groups[j].Severity.Rank()
		}
		return groups[i].Similarity > groups[j].Similarity
	})

	claimed := make(map[string]*roaring.Bitmap)
	kept := make([]Group, 0, len(groups))

	for _, g := range groups {
		conflict := false
		for i := range g.Blocks {
			b := &g.Blocks[i]
			if bm, ok := claimed[b.FilePath]; ok {
				span := roaring.New()
				span.AddRange(uint64(b.StartLine), uint64(b.EndLine)+1)
				if bm.Intersects(span) {
					conflict = true
					break
				}
			}
		}
		if conflict {
			continue
		}

		for i := range g.Blocks {
			b := &g.Blocks[i]
			bm, ok := claimed[b.FilePath]
			if !ok {
				bm = roaring.New()
				claimed[b.FilePath] = bm
			}
			bm.AddRange(uint64(b.StartLine), uint64(b.EndLine)+1)
		}
		kept = append(kept, g)
	}

	return kept
}
