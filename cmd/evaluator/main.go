package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cheesechase/config"
	"cheesechase/db"
	"cheesechase/game"
	"cheesechase/logging"
	"cheesechase/pathing"
	"cheesechase/program"
	"cheesechase/search"
	"cheesechase/sim"
	"cheesechase/store"
)

var totalRuns atomic.Int64
var totalWins atomic.Int64

type RunUpdate struct {
	WorkerID int
	Score    int
	Steps    int
	Win      bool
}

type runWriteRequest struct {
	rows []store.RunRow
	runs []db.Run
}

type model struct {
	runsDone    int
	wins        int
	bestScore   int
	startTime   time.Time
	recentRuns  []string
	updates     chan RunUpdate
}

func initialModel(updates chan RunUpdate) model {
	return model{
		startTime: time.Now(),
		bestScore: -1 << 31,
		updates:   updates,
	}
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tickCmd())
}

func waitForUpdate(updates chan RunUpdate) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		return m, tickCmd()
	case RunUpdate:
		m.runsDone++
		if msg.Win {
			m.wins++
		}
		if msg.Score > m.bestScore {
			m.bestScore = msg.Score
		}
		logMsg := fmt.Sprintf("Worker %d: Score %d, Steps %d, Win %v", msg.WorkerID, msg.Score, msg.Steps, msg.Win)
		m.recentRuns = append([]string{logMsg}, m.recentRuns...)
		if len(m.recentRuns) > 10 {
			m.recentRuns = m.recentRuns[:10]
		}
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)
	runsPerSec := float64(m.runsDone) / duration.Seconds()
	if duration.Seconds() < 1 {
		runsPerSec = 0
	}

	s := fmt.Sprintf("Runs Done:   %d\n", m.runsDone)
	s += fmt.Sprintf("Wins:        %d\n", m.wins)
	s += fmt.Sprintf("Best Score:  %d\n", m.bestScore)
	s += fmt.Sprintf("Duration:    %s\n", duration.Round(time.Second))
	s += fmt.Sprintf("Runs/Sec:    %.2f\n\n", runsPerSec)

	s += "Recent Runs:\n"
	for _, r := range m.recentRuns {
		s += r + "\n"
	}

	s += "\nPress q to quit.\n"
	return s
}

func main() {
	configPath := flag.String("config", "", "Path to yaml config (empty uses defaults)")
	outDir := flag.String("out-dir", "", "Output directory for run parquet batches (overrides config)")
	workers := flag.Int("workers", 0, "Number of sampler workers (overrides config)")
	runsPerFlush := flag.Int("runs-per-flush", 50, "Number of runs to buffer per parquet flush")
	maxRuns := flag.Int64("max-runs", 0, "If > 0, stop after generating this many runs (across all workers)")
	seed := flag.Int64("seed", 0, "Base random seed (0 derives one per worker)")
	useTUI := flag.Bool("tui", false, "Show the interactive dashboard instead of plain logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *outDir != "" {
		cfg.Eval.OutDir = *outDir
	}
	if *workers != 0 {
		cfg.Eval.Workers = *workers
	}
	logging.Setup(cfg.Log.Level)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	var lib program.Library = program.EmptyLibrary
	if cfg.Eval.LibraryPath != "" {
		loaded, err := program.LoadLibrary(cfg.Eval.LibraryPath)
		if err != nil {
			log.Fatalf("Failed to load program library: %v", err)
		}
		lib = loaded
	}

	archive, err := db.New(cfg.Eval.ArchivePath)
	if err != nil {
		log.Fatalf("Failed to open run archive: %v", err)
	}
	defer archive.Close()

	// One distance cache serves the whole process; the wall layer never
	// changes within a level.
	base := game.NewLevel3()
	cfg.ApplyGame(base)
	pathing.Install(pathing.Compute(&base.Wall))
	baseRec := base.Export()

	rewards := cfg.SimRewards()
	nWorkers := cfg.Eval.Workers
	if nWorkers <= 0 {
		nWorkers = 4
	}

	updates := make(chan RunUpdate, nWorkers)
	writeReqs := make(chan runWriteRequest, nWorkers*4)

	writerDone := make(chan struct{})
	go func() {
		runWriterLoop(cfg.Eval.OutDir, archive, *runsPerFlush, writeReqs)
		close(writerDone)
	}()

	var workerWG sync.WaitGroup
	for i := 0; i < nWorkers; i++ {
		workerWG.Add(1)
		go func(workerID int) {
			defer workerWG.Done()

			workerSeed := *seed + int64(workerID) + 1
			if *seed == 0 {
				workerSeed = time.Now().UnixNano() + int64(workerID)
			}
			rng := rand.New(rand.NewSource(workerSeed))

			opts := search.SamplerOptions{
				Batch: sim.BatchOptions{
					Workers: 1,
					Library: lib,
					Rewards: &rewards,
				},
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				opts.Batch.Seed = rng.Int63() + 1
				row, run, update, err := sampleOneRun(ctx, workerID, baseRec, rng, rewards, lib, opts)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("Worker %d: run failed: %v", workerID, err)
					continue
				}

				total := totalRuns.Add(1)
				if update.Win {
					totalWins.Add(1)
				}
				if *maxRuns > 0 && total >= *maxRuns {
					cancel()
				}

				writeReqs <- runWriteRequest{rows: []store.RunRow{row}, runs: []db.Run{run}}

				// Avoid blocking shutdown if the UI loop stops consuming.
				select {
				case updates <- update:
				default:
				}
			}
		}(i)
	}

	if *useTUI {
		p := tea.NewProgram(initialModel(updates), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatal(err)
		}
		cancel()
		workerWG.Wait()
		close(writeReqs)
		<-writerDone
		return
	}

	startTime := time.Now()
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Shutdown requested; waiting for workers to finish current runs...")
			workerWG.Wait()
			close(writeReqs)
			<-writerDone
			log.Printf("Shutdown complete: final parquet flush done (runs=%d wins=%d)", totalRuns.Load(), totalWins.Load())
			return
		case update := <-updates:
			log.Printf("Worker %d: Score %d, Steps %d, Win %v", update.WorkerID, update.Score, update.Steps, update.Win)
		case <-ticker.C:
			duration := time.Since(startTime)
			runs := totalRuns.Load()
			log.Printf("Stats: Runs: %d, Wins: %d, Runs/s: %.2f", runs, totalWins.Load(), float64(runs)/duration.Seconds())
		}
	}
}

// sampleOneRun grows one greedy program, replays it for the final outcome
// and packages the run for both sinks.
func sampleOneRun(ctx context.Context, workerID int, baseRec game.Record, rng *rand.Rand,
	rewards sim.Rewards, lib program.Library, opts search.SamplerOptions) (store.RunRow, db.Run, RunUpdate, error) {

	tokens, err := search.GreedyProgram(ctx, baseRec, rng, opts)
	if err != nil {
		return store.RunRow{}, db.Run{}, RunUpdate{}, err
	}

	state := game.New()
	if err := state.Import(baseRec); err != nil {
		return store.RunRow{}, db.Run{}, RunUpdate{}, err
	}
	runSeed := rng.Int63() + 1
	s := sim.New(state, pathing.Shared(), sim.Config{Seed: runSeed, Library: lib, Rewards: &rewards})
	result := s.Run(tokens)

	stateJSON, err := store.EncodeStateJSON(baseRec)
	if err != nil {
		return store.RunRow{}, db.Run{}, RunUpdate{}, err
	}

	runID := fmt.Sprintf("run-%d-%d-%d", workerID, time.Now().UnixNano(), runSeed)
	row := store.RunRow{
		RunID:    runID,
		Seed:     runSeed,
		Tokens:   store.TokensToRow(tokens),
		Score:    int32(result.Score),
		Steps:    int32(result.Steps),
		Win:      result.Win,
		Caught:   result.Caught,
		State:    stateJSON,
		Features: sim.Features(result.State),
		Source:   "greedy",
	}
	run := db.Run{
		ID:        runID,
		Seed:      runSeed,
		Tokens:    joinTokens(tokens),
		Score:     result.Score,
		Steps:     result.Steps,
		Win:       result.Win,
		Caught:    result.Caught,
		StateJSON: string(stateJSON),
		Source:    "greedy",
	}
	update := RunUpdate{WorkerID: workerID, Score: result.Score, Steps: result.Steps, Win: result.Win}
	return row, run, update, nil
}

func joinTokens(tokens []int) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = fmt.Sprint(t)
	}
	return strings.Join(parts, ",")
}

func runWriterLoop(outDir string, archive *db.DB, runsPerFlush int, in <-chan runWriteRequest) {
	if runsPerFlush <= 0 {
		runsPerFlush = 50
	}

	pendingRows := make([]store.RunRow, 0, runsPerFlush)
	pendingRuns := make([]db.Run, 0, runsPerFlush)

	flush := func(final bool) {
		if len(pendingRows) == 0 {
			return
		}
		outPath, err := store.WriteRunsBatchAtomic(outDir, pendingRows)
		if err != nil {
			log.Printf("Parquet flush failed (rows=%d): %v", len(pendingRows), err)
		} else if final {
			log.Printf("Parquet final flush ok: %s (rows=%d)", outPath, len(pendingRows))
		} else {
			log.Printf("Parquet flush ok: %s (rows=%d)", outPath, len(pendingRows))
		}
		if err := archive.InsertRuns(pendingRuns); err != nil {
			log.Printf("Archive insert failed (runs=%d): %v", len(pendingRuns), err)
		}
		pendingRows = pendingRows[:0]
		pendingRuns = pendingRuns[:0]
	}

	for req := range in {
		pendingRows = append(pendingRows, req.rows...)
		pendingRuns = append(pendingRuns, req.runs...)
		if len(pendingRows) >= runsPerFlush {
			flush(false)
		}
	}
	flush(true)
}
