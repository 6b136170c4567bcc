package duplicates

import "github.com/augurlabs/augur/pkg/issue"

// Kind identifies which algorithm produced a group.
type Kind string

const (
	KindExact      Kind = "exact"      // identical normalized lines
	KindStructural Kind = "structural" // identical shape, names/literals differ
	KindSemantic   Kind = "semantic"   // similar token sets
)

// String returns the string representation.
func (k Kind) String() string {
	return string(k)
}

// Block is one duplicated span of code.
type Block struct {
	Hash           uint64  `json:"hash"`
	NormalizedCode string  `json:"-"`
	OriginalCode   string  `json:"original_code,omitempty"`
	FilePath       string  `json:"file_path"`
	StartLine      uint32  `json:"start_line"`
	EndLine        uint32  `json:"end_line"`
	StartByte      uint32  `json:"start_byte"`
	EndByte        uint32  `json:"end_byte"`
	TokenCount     int     `json:"token_count"`
	Similarity     float64 `json:"similarity"`
}

// Lines returns the line span of the block.
func (b *Block) Lines() int {
	return int(b.EndLine - b.StartLine + 1)
}

// overlaps reports whether two blocks overlap within the same file.
func (b *Block) overlaps(other *Block) bool {
	if b.FilePath != other.FilePath {
		return false
	}
	return b.StartLine <= other.EndLine && other.StartLine <= b.EndLine
}

// Group is a set of mutually duplicated blocks found by one algorithm.
type Group struct {
	ID            uint64         `json:"id"`
	Kind          Kind           `json:"kind"`
	Blocks        []Block        `json:"blocks"`
	Similarity    float64        `json:"similarity"`
	Severity      issue.Severity `json:"severity"`
	TotalLines    int            `json:"total_lines"`
	AffectedFiles []string       `json:"affected_files"`
}

// Analysis is the full duplicate-detection result.
type Analysis struct {
	Groups  []Group       `json:"groups"`
	Issues  []issue.Issue `json:"issues"`
	Summary Summary       `json:"summary"`
}

// Summary provides aggregate duplication statistics.
type Summary struct {
	TotalFiles       int     `json:"total_files"`
	TotalBlocks      int     `json:"total_blocks"`
	TotalGroups      int     `json:"total_groups"`
	DuplicatedLines  int     `json:"duplicated_lines"`
	TotalLines       int     `json:"total_lines"`
	DuplicationRatio float64 `json:"duplication_ratio"`
}
