package core

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gitglance/gitglance/internal/contract"
	"github.com/gitglance/gitglance/internal/ghclient"
	"github.com/gitglance/gitglance/internal/iocache"
	"github.com/gitglance/gitglance/internal/keyhash"
	"github.com/gitglance/gitglance/internal/report"
	"github.com/gitglance/gitglance/internal/svgcard"
	"github.com/gitglance/gitglance/schema"
)

// ExecuteUpdate runs one full update: fetch identity and pass-through
// metrics, reconcile the cache snapshot, rewrite the SVG cards, and
// print the summary. It is the entry point for the 'update' command.
func ExecuteUpdate(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	client := ghclient.New(cfg.Token, cfg.APIURL, cfg.Affiliation)

	user, err := client.AuthenticatedUser(ctx)
	if err != nil {
		return err
	}

	// Authorship can still match on account id and login, so a failed
	// email lookup degrades rather than aborts.
	verified, err := client.VerifiedEmails(ctx)
	if err != nil {
		contract.LogWarn("could not fetch verified emails", err)
		verified = nil
	}
	emails := EmailSet(verified)

	repoCount, starCount, err := CountOwned(ctx, client)
	if err != nil {
		return err
	}

	report.Progress(os.Stdout, "Reconciling commit history for %s...", cfg.Username)

	store := iocache.NewSnapshotStore(cfg.CacheDir, cfg.Username)
	hasher := keyhash.NewSalted(cfg.Salt)
	snapshot, err := UpdateSnapshot(ctx, client, store, hasher, user, emails)
	if err != nil {
		return err
	}

	summary := BuildSummary(cfg, snapshot, repoCount, starCount, time.Now().UTC())

	for _, card := range cfg.Cards {
		if err := svgcard.UpdateCard(filepath.Join(cfg.AssetDir, card), summary); err != nil {
			return err
		}
	}

	report.Progress(os.Stdout, "Done in %s.", time.Since(start).Round(time.Millisecond))
	return report.PrintSummary(os.Stdout, summary, cfg.UseColors, report.TerminalWidth(cfg.Width))
}

// ExecuteStats reduces the existing snapshot and prints the
// cache-derived metrics without touching the network. It is the entry
// point for the 'stats' command.
func ExecuteStats(cfg *contract.Config) error {
	store := iocache.NewSnapshotStore(cfg.CacheDir, cfg.Username)
	snapshot := store.Read()

	net, adds, dels := TotalLOC(snapshot)
	return report.PrintCacheSummary(os.Stdout, len(snapshot), TotalUserCommits(snapshot), net, adds, dels)
}

// BuildSummary assembles the complete metric set handed to rendering.
func BuildSummary(cfg *contract.Config, snapshot schema.Snapshot, repoCount, starCount int, now time.Time) schema.Summary {
	net, adds, dels := TotalLOC(snapshot)

	summary := schema.Summary{
		Stars:     starCount,
		Repos:     repoCount,
		Commits:   TotalUserCommits(snapshot),
		NetLOC:    net,
		Additions: adds,
		Deletions: dels,
	}
	if !cfg.Birthday.IsZero() {
		summary.Age = svgcard.FormatAge(cfg.Birthday, now)
	}
	return summary
}
