package recommend

import (
	"context"
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"ergasia-marketplace/internal/domain"
)

var (
	ErrNoClicks       = errors.New("recommend: click history is empty")
	ErrMissingColumns = errors.New("recommend: click rows need userId, jobId and counter")
)

// tokenPattern keeps words of two or more characters.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// TFIDFRanker ranks jobs by the similarity of their tag names to the jobs a
// user has clicked.
type TFIDFRanker struct {
	TopN int
}

func NewTFIDFRanker(topN int) *TFIDFRanker {
	if topN < 1 {
		topN = DefaultPageSize
	}
	return &TFIDFRanker{TopN: topN}
}

// Rank returns up to TopN jobs closest to the clicked ones, excluding the
// clicked jobs themselves. The current user is the owner of the first click.
func (r *TFIDFRanker) Rank(p Payload) ([]WireJob, error) {
	if len(p.ListUserClickeds) == 0 {
		return nil, ErrNoClicks
	}
	for _, c := range p.ListUserClickeds {
		if c.UserID == "" || c.JobID == "" || c.Counter == "" {
			return nil, ErrMissingColumns
		}
	}
	if len(p.ListJobs) == 0 {
		return []WireJob{}, nil
	}

	currentUser := p.ListUserClickeds[0].UserID
	clicked := map[string]struct{}{}
	// Rows are selected by user alone; a non numeric counter still marks the job clicked.
	for _, c := range p.ListUserClickeds {
		if c.UserID == currentUser {
			clicked[c.JobID] = struct{}{}
		}
	}

	vectors := vectorize(p.ListJobs)

	var clickedIdx []int
	for i, j := range p.ListJobs {
		if _, ok := clicked[j.ID]; ok {
			clickedIdx = append(clickedIdx, i)
		}
	}
	if len(clickedIdx) == 0 {
		return []WireJob{}, nil
	}
	isClicked := make(map[int]bool, len(clickedIdx))
	for _, i := range clickedIdx {
		isClicked[i] = true
	}

	k := r.TopN + len(clickedIdx)
	if k > len(p.ListJobs) {
		k = len(p.ListJobs)
	}

	best := map[int]float64{}
	for _, ci := range clickedIdx {
		for _, n := range nearest(vectors, ci, k) {
			if isClicked[n.index] {
				continue
			}
			if sim, ok := best[n.index]; !ok || n.similarity > sim {
				best[n.index] = n.similarity
			}
		}
	}

	candidates := make([]neighbour, 0, len(best))
	for idx, sim := range best {
		candidates = append(candidates, neighbour{index: idx, similarity: sim})
	}
	sortNeighbours(candidates)

	if len(candidates) > r.TopN {
		candidates = candidates[:r.TopN]
	}
	out := make([]WireJob, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, p.ListJobs[c.index])
	}
	return out, nil
}

// Recommend ranks in process, so the selector can run without the HTTP service.
func (r *TFIDFRanker) Recommend(ctx context.Context, p Payload) ([]domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	top, err := r.Rank(p)
	if err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, 0, len(top))
	for _, w := range top {
		j, err := DecodeJob(w)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

var _ Ranker = (*TFIDFRanker)(nil)

type neighbour struct {
	index      int
	similarity float64
}

// nearest returns the k jobs with the highest cosine similarity to job i,
// including i itself.
func nearest(vectors []map[string]float64, i, k int) []neighbour {
	all := make([]neighbour, 0, len(vectors))
	for j := range vectors {
		all = append(all, neighbour{index: j, similarity: cosine(vectors[i], vectors[j])})
	}
	sortNeighbours(all)
	return all[:k]
}

func sortNeighbours(ns []neighbour) {
	sort.SliceStable(ns, func(a, b int) bool {
		if ns[a].similarity != ns[b].similarity {
			return ns[a].similarity > ns[b].similarity
		}
		return ns[a].index < ns[b].index
	})
}

// vectorize builds L2 normalised TF-IDF vectors over each job's tag names
// using smoothed idf: ln((1+n)/(1+df)) + 1.
func vectorize(jobs []WireJob) []map[string]float64 {
	docs := make([][]string, len(jobs))
	df := map[string]int{}
	for i, j := range jobs {
		docs[i] = tokenize(j.Tags)
		seen := map[string]bool{}
		for _, term := range docs[i] {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	n := float64(len(jobs))
	vectors := make([]map[string]float64, len(jobs))
	for i, terms := range docs {
		v := map[string]float64{}
		for _, term := range terms {
			v[term]++
		}
		var norm float64
		for term, tf := range v {
			w := tf * (math.Log((1+n)/(1+float64(df[term]))) + 1)
			v[term] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range v {
				v[term] /= norm
			}
		}
		vectors[i] = v
	}
	return vectors
}

func tokenize(tags []WireCategory) []string {
	var out []string
	for _, t := range tags {
		out = append(out, tokenPattern.FindAllString(strings.ToLower(t.Name), -1)...)
	}
	return out
}

// cosine expects unit vectors; a zero vector has similarity 0 with anything.
func cosine(a, b map[string]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	return dot
}
