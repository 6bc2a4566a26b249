// Package refresher runs one refresh pass over the résumé: load the
// document, extract keywords from its body, rebuild the summary section and
// write the document back in place. Every failure is terminal for the run;
// the external scheduler simply triggers the next one.
package refresher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muhammadolammi/resumerefresher/internal/backup"
	"github.com/muhammadolammi/resumerefresher/internal/config"
	"github.com/muhammadolammi/resumerefresher/internal/document"
	"github.com/muhammadolammi/resumerefresher/internal/keywords"
	"github.com/muhammadolammi/resumerefresher/internal/section"
	"github.com/muhammadolammi/resumerefresher/internal/source"
)

// Report describes what a run did.
type Report struct {
	RunID      uuid.UUID
	Path       string
	Keywords   []string
	Replaced   bool // replaced an existing section rather than appending
	BackupPath string
	DryRun     bool
	Duration   time.Duration
}

// Service executes refresh runs for one configuration.
type Service struct {
	cfg config.Config
	log *zap.Logger
	now func() time.Time
}

// New builds a Service. A nil logger disables logging.
func New(cfg config.Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cfg: cfg, log: log, now: time.Now}
}

// WithClock fixes the service clock. Timestamps in the rewritten section
// and in backup names come from this clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Run performs one refresh pass and reports what changed.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	start := s.now()
	report := &Report{
		RunID:  uuid.New(),
		Path:   s.cfg.ResumePath,
		DryRun: s.cfg.DryRun,
	}
	log := s.log.With(zap.Stringer("run_id", report.RunID), zap.String("resume", s.cfg.ResumePath))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := document.Load(s.cfg.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("loading resume: %w", err)
	}
	defer doc.Close()

	loc := section.Locate(doc, s.cfg.Headings)
	report.Replaced = loc.Found

	kws, err := s.extractKeywords(doc, loc)
	if err != nil {
		return nil, err
	}
	report.Keywords = kws
	log.Debug("keywords extracted", zap.Int("count", len(kws)), zap.Strings("keywords", kws))

	block := section.Build(kws, s.now())
	section.Apply(doc, loc, block)

	if s.cfg.DryRun {
		report.Duration = s.now().Sub(start)
		log.Info("dry run complete, document untouched", zap.Int("keywords", len(kws)))
		return report, nil
	}

	if s.cfg.BackupDir != "" {
		snap, err := backup.Snapshot(s.cfg.ResumePath, s.cfg.BackupDir, s.now())
		if err != nil {
			return nil, fmt.Errorf("backing up resume: %w", err)
		}
		report.BackupPath = snap
		if s.cfg.BackupKeep > 0 {
			removed, err := backup.Prune(s.cfg.BackupDir, s.cfg.BackupKeep)
			if err != nil {
				return nil, fmt.Errorf("pruning backups: %w", err)
			}
			if removed > 0 {
				log.Debug("pruned old backups", zap.Int("removed", removed))
			}
		}
	}

	if err := doc.Save(s.cfg.ResumePath); err != nil {
		return nil, fmt.Errorf("saving resume: %w", err)
	}

	report.Duration = s.now().Sub(start)
	log.Info("resume refreshed",
		zap.Int("keywords", len(kws)),
		zap.Bool("replaced_section", report.Replaced),
		zap.String("backup", report.BackupPath),
		zap.Duration("took", report.Duration))
	return report, nil
}

// Keywords extracts the keyword set without touching the document, for the
// keywords subcommand and dry inspection.
func (s *Service) Keywords(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := document.Load(s.cfg.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("loading resume: %w", err)
	}
	defer doc.Close()

	return s.extractKeywords(doc, section.Locate(doc, s.cfg.Headings))
}

// extractKeywords pulls keyword input either from the configured source
// file or from the document body outside the located section. Excluding the
// section keeps repeated runs stable: the generated block never feeds its
// own words back into the keyword set.
func (s *Service) extractKeywords(doc *document.Document, loc section.Location) ([]string, error) {
	if s.cfg.SourcePath != "" {
		text, err := source.ExtractText(s.cfg.SourcePath)
		if err != nil {
			return nil, fmt.Errorf("reading keyword source: %w", err)
		}
		return keywords.Extract([]string{text}, s.cfg.KeywordOptions()), nil
	}
	return keywords.Extract(doc.TextsExcluding(loc.Start, loc.End), s.cfg.KeywordOptions()), nil
}
