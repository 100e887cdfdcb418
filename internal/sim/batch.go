package sim

import (
	"context"
	"log/slog"
	"sync"

	"match3battle/internal/battle"
	"match3battle/internal/config"
)

const DefaultWorkers = 8

type MemberShare struct {
	Total int     `json:"total"`
	Ratio float64 `json:"ratio"`
}

type Summary struct {
	Runs        int                    `json:"runs"`
	Failed      int                    `json:"failed"`
	WinRate     float64                `json:"win_rate"`
	AvgTurns    float64                `json:"avg_turns"`
	AvgDamage   float64                `json:"avg_total_damage"`
	AvgMaxCombo float64                `json:"avg_max_combo"`
	TotalDamage int                    `json:"total_damage"`
	ByMember    map[string]MemberShare `json:"by_member"`
}

// RunBatch plays n battles on a pool of workers. Each run gets its own seed
// derived from seed, the worker and the job index.
func RunBatch(ctx context.Context, cat *config.Catalog, ref battle.Ref, seed int64, n, workers int, opts Options) Summary {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	opts.Record = false

	type stat struct {
		win, failed, turns, damage, combo int
		byMember                          map[string]int
	}
	st := stat{byMember: map[string]int{}}
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				res, err := RunSingle(ctx, cat, ref, seed+int64(workerID)*7919+int64(i), opts)

				mu.Lock()
				if err != nil {
					st.failed++
					mu.Unlock()
					slog.Warn("run failed", "job", i, "error", err)
					continue
				}
				if res.Win {
					st.win++
				}
				st.turns += res.Turns
				st.damage += res.TotalDamage
				st.combo += res.MaxCombo
				for k, v := range res.DamageByMember {
					st.byMember[k] += v
				}
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	sum := Summary{Runs: n, Failed: st.failed, TotalDamage: st.damage, ByMember: map[string]MemberShare{}}
	if done := n - st.failed; done > 0 {
		sum.WinRate = float64(st.win) / float64(done)
		sum.AvgTurns = float64(st.turns) / float64(done)
		sum.AvgDamage = float64(st.damage) / float64(done)
		sum.AvgMaxCombo = float64(st.combo) / float64(done)
	}
	for k, v := range st.byMember {
		share := 0.0
		if st.damage > 0 {
			share = float64(v) / float64(st.damage)
		}
		sum.ByMember[k] = MemberShare{Total: v, Ratio: share}
	}
	return sum
}
