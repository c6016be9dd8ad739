package build

import (
	"context"
	"fmt"
	"github.com/natefinch/atomic"
	domainbuild "github.com/thluiz/vox/internal/domain/build"
	"github.com/thluiz/vox/internal/domain/config"
	domainerr "github.com/thluiz/vox/internal/domain/errors"
	"github.com/thluiz/vox/internal/history"
	"github.com/thluiz/vox/internal/home"
	"github.com/thluiz/vox/internal/ingest"
	"github.com/thluiz/vox/internal/rank"
	"github.com/thluiz/vox/internal/render"
	"go.uber.org/zap"
	"os"
	"strconv"
	"strings"
	"time"
)

// Recorder persists a summary of each run. *history.Store satisfies it.
type Recorder interface {
	Record(r history.RunRecord) error
	Prune(keep int) (int, error)
}

type Builder struct {
	Cfg     config.Config
	Log     *zap.Logger
	History Recorder
	// Now is used for run timestamps; defaults to time.Now.
	Now func() time.Time
}

type Result struct {
	Posts       int
	Drafts      int
	UniqueTags  int
	Recent      []string
	TopTags     []string
	Changed     bool
	Fingerprint domainbuild.Fingerprint
	Warnings    []ingest.Warning
}

// Run performs one update: collect the corpus, rank it, and rewrite the index
// document. Corpus level failures abort before anything is written.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	log := b.logger()
	root := b.Cfg.Content.Root
	indexPath := b.Cfg.IndexPath()

	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", domainerr.ErrContentRootMissing, root)
	}
	indexInfo, err := os.Stat(indexPath)
	if err != nil || indexInfo.IsDir() {
		return nil, fmt.Errorf("%w: %s", domainerr.ErrIndexMissing, indexPath)
	}

	corpus, err := ingest.Collect(ctx, os.DirFS(root), ingest.Options{
		Extension: b.Cfg.Content.Extension,
	})
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	for _, w := range corpus.Warnings {
		log.Debug("article skipped or patched", zap.String("path", w.Path), zap.String("reason", w.Msg))
	}
	if len(corpus.Posts) == 0 {
		return nil, fmt.Errorf("%w in %s", domainerr.ErrNoPublished, root)
	}
	log.Info("corpus collected",
		zap.Int("posts", len(corpus.Posts)),
		zap.Int("unique_tags", corpus.Tags.Len()),
		zap.Int("drafts", corpus.Drafts),
	)

	ranked := rank.Rank(corpus.Posts, corpus.Tags, corpus.Excluded, rank.Options{
		Recent:       b.Cfg.Home.RecentCount,
		Tags:         b.Cfg.Home.TopTags,
		WindowFactor: b.Cfg.Home.TagWindowFactor,
	})
	links := make([]string, 0, len(ranked.Recent))
	for _, p := range ranked.Recent {
		links = append(links, p.Link)
	}
	log.Info("recent posts selected", zap.Strings("links", links))
	log.Info("top tags selected", zap.Strings("tags", ranked.TopTags))

	items, err := render.NewItemRenderer(b.Cfg.Home.ItemTemplate)
	if err != nil {
		return nil, fmt.Errorf("item template: %w", err)
	}
	raw, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	current := string(raw)

	rw := home.NewRewriter(b.Cfg.Home.SectionHeading, items)
	next, err := rw.Rewrite(current, ranked.Recent, ranked.TopTags)
	if err != nil {
		return nil, fmt.Errorf("rewrite index: %w", err)
	}

	changed := next != current
	if changed {
		if err := writeIndex(indexPath, next, indexInfo.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("write index: %w", err)
		}
		log.Info("index updated", zap.String("path", indexPath))
	} else {
		log.Info("index unchanged", zap.String("path", indexPath))
	}

	fp := domainbuild.Fingerprint{
		CorpusHash: corpus.Hash,
		ConfigHash: b.configHash(),
		OutputHash: ingest.HashBytes([]byte(next)),
	}
	fp.ComputeRunHash()

	res := &Result{
		Posts:       len(corpus.Posts),
		Drafts:      corpus.Drafts,
		UniqueTags:  corpus.Tags.Len(),
		Recent:      links,
		TopTags:     ranked.TopTags,
		Changed:     changed,
		Fingerprint: fp,
		Warnings:    corpus.Warnings,
	}
	b.record(res)
	return res, nil
}

// record failures never fail the run; the index is already written.
func (b *Builder) record(res *Result) {
	if b.History == nil {
		return
	}
	log := b.logger()
	err := b.History.Record(history.RunRecord{
		At:         b.now(),
		Posts:      res.Posts,
		Drafts:     res.Drafts,
		UniqueTags: res.UniqueTags,
		Recent:     res.Recent,
		TopTags:    res.TopTags,
		Changed:    res.Changed,
		CorpusHash: res.Fingerprint.CorpusHash,
		ConfigHash: res.Fingerprint.ConfigHash,
		OutputHash: res.Fingerprint.OutputHash,
		RunHash:    res.Fingerprint.RunHash,
	})
	if err != nil {
		log.Warn("record run", zap.Error(err))
		return
	}
	if keep := b.Cfg.State.Keep; keep > 0 {
		if n, err := b.History.Prune(keep); err != nil {
			log.Warn("prune history", zap.Error(err))
		} else if n > 0 {
			log.Debug("history pruned", zap.Int("removed", n))
		}
	}
}

func (b *Builder) configHash() string {
	h := b.Cfg.Home
	return domainbuild.HashStrings(
		b.Cfg.Content.Extension,
		strconv.Itoa(h.RecentCount),
		strconv.Itoa(h.TopTags),
		strconv.Itoa(h.TagWindowFactor),
		h.SectionHeading,
		h.ItemTemplate,
	)
}

func (b *Builder) logger() *zap.Logger {
	if b.Log == nil {
		return zap.NewNop()
	}
	return b.Log
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func writeIndex(path, text string, perm os.FileMode) error {
	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return err
	}
	// the replacement file is created with default permissions
	return os.Chmod(path, perm)
}
