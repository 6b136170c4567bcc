package duplicates

import (
	"encoding/binary"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
)

// normalizedLine pairs a normalized line with its original line number.
type normalizedLine struct {
	text string
	line uint32
}

// normalizeBlockLines normalizes every line of a block's original code,
// dropping low-signal lines but remembering original line numbers.
func normalizeBlockLines(b *Block) []normalizedLine {
	lines := strings.Split(b.OriginalCode, "\n")
	out := make([]normalizedLine, 0, len(lines))
	for i, raw := range lines {
		if norm := normalizeLine(raw); norm != "" {
			out = append(out, normalizedLine{text: norm, line: b.StartLine + uint32(i)})
		}
	}
	return out
}

// findExact detects windows of identical normalized lines across blocks.
// Windows span minLines normalized lines and must carry a complexity
// score of at least minComplexity. Matching windows share a similarity
// of 1.0.
func (a *Analyzer) findExact(blocks []Block) []Group {
	type window struct {
		block *Block
		start uint32
		end   uint32
		code  string
	}

	buckets := make(map[uint64][]window)
	for i := range blocks {
		normalized := normalizeBlockLines(&blocks[i])
		if len(normalized) < a.minLines {
			continue
		}

		for start := 0; start+a.minLines <= len(normalized); start++ {
			span := normalized[start : start+a.minLines]
			texts := make([]string, len(span))
			for j, nl := range span {
				texts[j] = nl.text
			}
			if complexityScore(texts) < a.minComplexity {
				continue
			}

			joined := strings.Join(texts, "\n")
			hash := xxhash.Sum64String(joined)
			buckets[hash] = append(buckets[hash], window{
				block: &blocks[i],
				start: span[0].line,
				end:   span[len(span)-1].line,
				code:  joined,
			})
		}
	}

	hashes := make([]uint64, 0, len(buckets))
	for h := range buckets {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	var groups []Group
	for _, h := range hashes {
		wins := buckets[h]
		if len(wins) < 2 {
			continue
		}

		members := make([]Block, 0, len(wins))
		for _, w := range wins {
			candidate := Block{
				Hash:           h,
				NormalizedCode: w.code,
				OriginalCode:   w.block.OriginalCode,
				FilePath:       w.block.FilePath,
				StartLine:      w.start,
				EndLine:        w.end,
				StartByte:      w.block.StartByte,
				EndByte:        w.block.EndByte,
				TokenCount:     len(tokenize(w.code)),
				Similarity:     1.0,
			}
			if overlapsAny(candidate, members) {
				continue
			}
			members = append(members, candidate)
		}
		if len(members) < 2 {
			continue
		}

		groups = append(groups, a.newGroup(KindExact, members, 1.0))
	}
	return groups
}

// overlapsAny reports whether candidate overlaps a same-file member.
func overlapsAny(candidate Block, members []Block) bool {
	for i := range members {
		if candidate.overlaps(&members[i]) {
			return true
		}
	}
	return false
}

// findStructural detects blocks whose canonical token sequence is
// identical once identifiers and literals are collapsed to placeholders.
func (a *Analyzer) findStructural(blocks []Block) []Group {
	type candidate struct {
		block  *Block
		tokens int
	}

	buckets := make(map[uint64][]candidate)
	for i := range blocks {
		tokens := tokenize(stripComments(blocks[i].OriginalCode))
		if len(tokens) < a.minTokens {
			continue
		}

		canonical := strings.Join(canonicalTokens(tokens), " ")
		hash := blakeSum64(canonical)
		buckets[hash] = append(buckets[hash], candidate{block: &blocks[i], tokens: len(tokens)})
	}

	hashes := make([]uint64, 0, len(buckets))
	for h := range buckets {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	var groups []Group
	for _, h := range hashes {
		cands := buckets[h]
		if len(cands) < 2 {
			continue
		}

		members := make([]Block, 0, len(cands))
		for _, c := range cands {
			b := *c.block
			b.Hash = h
			b.TokenCount = c.tokens
			b.Similarity = 1.0
			if overlapsAny(b, members) {
				continue
			}
			members = append(members, b)
		}
		if len(members) < 2 {
			continue
		}

		groups = append(groups, a.newGroup(KindStructural, members, 1.0))
	}
	return groups
}

// blakeSum64 hashes a canonical token string down to 64 bits.
func blakeSum64(s string) uint64 {
	sum := blake3.Sum256([]byte(s))
	return binary.LittleEndian.Uint64(sum[:8])
}

// findSemantic groups blocks whose normalized token sets score at or
// above the similarity threshold under Jaccard comparison. Grouping is
// greedy: a block consumed into a group leaves the candidate pool.
func (a *Analyzer) findSemantic(blocks []Block) []Group {
	type candidate struct {
		block  *Block
		tokens int
		set    map[string]struct{}
	}

	var pool []candidate
	for i := range blocks {
		tokens := tokenize(stripComments(blocks[i].OriginalCode))
		if len(tokens) < a.minTokens {
			continue
		}
		pool = append(pool, candidate{
			block:  &blocks[i],
			tokens: len(tokens),
			set:    semanticTokenSet(tokens),
		})
	}

	consumed := make([]bool, len(pool))
	var groups []Group

	for i := range pool {
		if consumed[i] {
			continue
		}

		members := []Block{*pool[i].block}
		members[0].TokenCount = pool[i].tokens
		members[0].Similarity = 1.0
		var similaritySum float64
		matched := 0

		for j := i + 1; j < len(pool); j++ {
			if consumed[j] {
				continue
			}
			if pool[i].block.overlaps(pool[j].block) {
				continue
			}
			sim := jaccard(pool[i].set, pool[j].set)
			if sim < a.semanticThreshold {
				continue
			}

			b := *pool[j].block
			b.TokenCount = pool[j].tokens
			b.Similarity = sim
			if overlapsAny(b, members) {
				continue
			}
			members = append(members, b)
			consumed[j] = true
			similaritySum += sim
			matched++
		}

		if matched == 0 {
			continue
		}
		consumed[i] = true
		groups = append(groups, a.newGroup(KindSemantic, members, similaritySum/float64(matched)))
	}

	return groups
}
