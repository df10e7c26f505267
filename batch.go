package lingopipe

import (
	"context"
	"sync"
	"time"
)

// parallelThreshold is the minimum batch size for parallel cache lookups.
const parallelThreshold = 5

// BatchItem is the per-text outcome of a batch translation.
type BatchItem struct {
	Text   string  // Original text
	Result *Result // Translation result, nil on failure
	Err    error   // Failure reason, nil on success
}

// TranslateBatch translates multiple texts with the same language pair.
// Cached texts are resolved up front (in parallel for larger batches);
// the remaining texts go through the normal pipeline with a pacing delay
// between provider calls to avoid tripping upstream rate limits.
// Per-text failures do not abort the batch.
func (s *Service) TranslateBatch(ctx context.Context, texts []string, source, target string) []BatchItem {
	items := make([]BatchItem, len(texts))
	for i, text := range texts {
		items[i].Text = text
	}

	source = NormalizeCode(source)
	target = NormalizeCode(target)

	// Resolve cache hits up front so only misses pay the pacing delay.
	hits := s.lookupCached(texts, source, target)

	first := true
	for i := range items {
		if result, ok := hits[i]; ok {
			items[i].Result = result
			// Record the sanitized form, matching the provider path.
			s.record(Request{Text: Sanitize(texts[i]), Source: source, Target: target}, result)
			continue
		}

		if !first && s.pace > 0 {
			select {
			case <-ctx.Done():
				items[i].Err = ctx.Err()
				continue
			case <-time.After(s.pace):
			}
		}
		first = false

		result, err := s.Translate(ctx, Request{
			Text:      texts[i],
			Source:    source,
			Target:    target,
			SkipCache: true, // already missed above
		})
		if err != nil {
			items[i].Err = err
			continue
		}
		items[i].Result = result
	}

	return items
}

// lookupCached returns cache hits by input index. Larger batches are looked
// up in parallel.
func (s *Service) lookupCached(texts []string, source, target string) map[int]*Result {
	hits := make(map[int]*Result)
	if s.cache == nil || len(texts) == 0 {
		return hits
	}

	get := func(i int) (*Result, bool) {
		text := Sanitize(texts[i])
		if cached, ok := s.cache.Get(CacheKey(text, source, target)); ok {
			return &Result{
				Text:     cached,
				Source:   source,
				Target:   target,
				Provider: "cache",
				Cached:   true,
			}, true
		}
		return nil, false
	}

	if len(texts) < parallelThreshold {
		for i := range texts {
			if result, ok := get(i); ok {
				hits[i] = result
			}
		}
		return hits
	}

	type lookupResult struct {
		index  int
		result *Result
	}

	results := make(chan lookupResult, len(texts))
	var wg sync.WaitGroup

	for i := range texts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if result, ok := get(i); ok {
				results <- lookupResult{index: i, result: result}
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		hits[r.index] = r.result
	}

	return hits
}
