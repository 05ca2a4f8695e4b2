package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/export"
	"github.com/jdewit/bettrack/internal/notify"
)

// exportLockTTL bounds how long a stuck export can block the next one.
const exportLockTTL = time.Minute

// ExportService renders a user's bet history as CSV and uploads it to blob
// storage.
type ExportService struct {
	bets     *BetService
	blob     domain.BlobWriter
	reader   domain.BlobReader
	deleter  domain.BlobDeleter
	locks    domain.LockManager
	prefix   string
	notifier *notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewExportService creates an ExportService with all required dependencies.
func NewExportService(
	bets *BetService,
	blob domain.BlobWriter,
	reader domain.BlobReader,
	locks domain.LockManager,
	prefix string,
	notifier *notify.Notifier,
	logger *slog.Logger,
) *ExportService {
	return &ExportService{
		bets:     bets,
		blob:     blob,
		reader:   reader,
		locks:    locks,
		prefix:   prefix,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// WithDeleter enables DeleteExport with the given blob deleter.
func (s *ExportService) WithDeleter(d domain.BlobDeleter) *ExportService {
	s.deleter = d
	return s
}

// ExportResult describes one finished export.
type ExportResult struct {
	Path     string `json:"path"`
	BetCount int    `json:"bet_count"`
}

// ErrExportsDisabled is returned when no blob storage is configured.
var ErrExportsDisabled = errors.New("export_service: blob storage not configured")

// Export snapshots the user's full history to a timestamped CSV object.
// Concurrent exports for the same user are rejected with ErrLockHeld.
func (s *ExportService) Export(ctx context.Context, ownerID string) (ExportResult, error) {
	if s.blob == nil {
		return ExportResult{}, ErrExportsDisabled
	}

	unlock, err := s.locks.Acquire(ctx, "export:"+ownerID, exportLockTTL)
	if err != nil {
		return ExportResult{}, err
	}
	defer unlock()

	bets, err := s.bets.List(ctx, ownerID)
	if err != nil {
		return ExportResult{}, fmt.Errorf("export_service: load bets: %w", err)
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, bets); err != nil {
		return ExportResult{}, fmt.Errorf("export_service: render csv: %w", err)
	}

	path := fmt.Sprintf("%s/%s/bets-%s.csv",
		s.prefix, ownerID, s.now().UTC().Format("20060102-150405"))
	if err := s.blob.Put(ctx, path, &buf, "text/csv"); err != nil {
		return ExportResult{}, fmt.Errorf("export_service: upload: %w", err)
	}

	title, message := notify.ExportDoneMessage(path, len(bets))
	if nerr := s.notifier.Notify(ctx, notify.EventExportDone, title, message); nerr != nil {
		s.logger.WarnContext(ctx, "export_service: notification failed",
			slog.String("path", path),
			slog.String("error", nerr.Error()),
		)
	}

	s.logger.InfoContext(ctx, "export_service: export uploaded",
		slog.String("path", path),
		slog.Int("bets", len(bets)),
	)
	return ExportResult{Path: path, BetCount: len(bets)}, nil
}

// ListExports returns metadata for the user's previous exports, if a blob
// reader is configured.
func (s *ExportService) ListExports(ctx context.Context, ownerID string) ([]domain.BlobInfo, error) {
	if s.reader == nil {
		return nil, nil
	}
	infos, err := s.reader.List(ctx, s.prefix+"/"+ownerID+"/")
	if err != nil {
		return nil, fmt.Errorf("export_service: list: %w", err)
	}
	return infos, nil
}

// DeleteExport removes one of the user's stored exports. Paths outside the
// user's own export prefix are rejected with ErrForbidden, so one user
// cannot delete another's objects.
func (s *ExportService) DeleteExport(ctx context.Context, ownerID, path string) error {
	if s.deleter == nil {
		return ErrExportsDisabled
	}
	if !strings.HasPrefix(path, s.prefix+"/"+ownerID+"/") {
		return domain.ErrForbidden
	}
	if err := s.deleter.Delete(ctx, path); err != nil {
		return fmt.Errorf("export_service: delete %s: %w", path, err)
	}
	return nil
}
