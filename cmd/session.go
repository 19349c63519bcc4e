package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/agentic-research/spyglass/internal/config"
	"github.com/agentic-research/spyglass/internal/demo"
	"github.com/agentic-research/spyglass/internal/inspector"
	"github.com/agentic-research/spyglass/internal/journal"
	"github.com/agentic-research/spyglass/internal/metrics"
	"github.com/agentic-research/spyglass/internal/world"
	"github.com/agentic-research/spyglass/internal/writeback"
	"github.com/spf13/cobra"
)

// session is one command's inspected world with its edit sinks. The
// journal is opened on the first recorded batch, so commands that never
// write leave no database behind.
type session struct {
	cfg     config.Config
	scene   demo.Scene
	in      *inspector.Inspector
	journal *journal.Journal
	logger  *log.Logger
}

var errJournalDisabled = errors.New("journal is disabled")

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if journalPath != "" {
		cfg.JournalPath = journalPath
		cfg.JournalEnabled = true
	}
	if noJournal {
		cfg.JournalEnabled = false
	}

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	reg := cfg.Registry()
	demo.RegisterNames(reg)

	w := world.New()
	s := &session{cfg: cfg, scene: demo.Build(w), logger: logger}
	s.in = inspector.New(w, inspector.Options{
		Names:    reg,
		MaxDepth: cfg.MaxDepth,
		Widget:   cfg.Widget,
		Logger:   logger,
	})

	m, err := metrics.NewWriteMetrics()
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	s.in.AddRecorder(m.RecordResults)
	s.in.FrameObserver = m.RecordFrame

	if cfg.JournalEnabled {
		s.in.AddRecorder(s.record)
	}
	return s, nil
}

// openJournal returns the journal, opening it on first use.
func (s *session) openJournal() (*journal.Journal, error) {
	if s.journal != nil {
		return s.journal, nil
	}
	if !s.cfg.JournalEnabled {
		return nil, errJournalDisabled
	}
	j, err := journal.Open(s.cfg.JournalPath)
	if err != nil {
		return nil, err
	}
	s.journal = j
	return j, nil
}

func (s *session) record(ctx context.Context, results []writeback.Result) {
	j, err := s.openJournal()
	if err == nil {
		err = j.Record(ctx, time.Now(), results)
	}
	if err != nil {
		s.logger.Printf("journal: %v", err)
	}
}

// selectObject resolves ref and makes it the inspected object.
func (s *session) selectObject(ref string) (world.ObjectID, error) {
	var id world.ObjectID
	err := s.in.World.View(func(r *world.Reader) error {
		var err error
		id, err = inspector.FindObject(r, ref)
		return err
	})
	if err != nil {
		return id, err
	}
	s.in.State.Select(id)
	return id, nil
}

// frame runs one inspector cycle without input.
func (s *session) frame(ctx context.Context) (inspector.FrameReport, error) {
	return s.in.Frame(ctx, nil)
}

func (s *session) Close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}
