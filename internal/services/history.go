package services

import (
	"context"
	"strings"
	"time"

	"github.com/mkowalik/peervote/internal/audit"
	"github.com/mkowalik/peervote/internal/errors"
	"github.com/mkowalik/peervote/internal/logger"
	"github.com/mkowalik/peervote/internal/models"
	"github.com/mkowalik/peervote/internal/repository"
)

// HistoryServiceRepository defines the repository methods needed by
// HistoryService.
type HistoryServiceRepository interface {
	GetWinner(ctx context.Context, id string) (*models.WinnerHistory, error)
	ListWinnersByYear(ctx context.Context, year int) ([]models.WinnerHistory, error)
	ListWinnersByYearMonth(ctx context.Context, year, month int) ([]models.WinnerHistory, error)
	ListWinnersForPeriod(ctx context.Context, periodID string) ([]models.WinnerHistory, error)
	GetGeneralWinnerForPeriod(ctx context.Context, periodID string) (*models.WinnerHistory, error)
	ListGroupWinnersForPeriod(ctx context.Context, periodID string) ([]models.WinnerHistory, error)
	GetYearlyWinner(ctx context.Context, year int) (*models.WinnerHistory, error)
	SetYearlyWinner(ctx context.Context, id string, yearly bool) error
	ClearYearlyWinnerForYear(ctx context.Context, year int) error
	AddReaction(ctx context.Context, winnerID string, r models.Reaction) error
	RemoveReaction(ctx context.Context, winnerID, userID, emoji string) error
	ListReactions(ctx context.Context, winnerID string) ([]models.Reaction, error)
}

// HistoryService serves recorded winners and manages the per-winner
// decorations: the yearly flag and emoji reactions.
type HistoryService struct {
	log   logger.Logger
	repo  HistoryServiceRepository
	audit audit.Recorder
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(log logger.Logger, repo HistoryServiceRepository, recorder audit.Recorder) *HistoryService {
	return &HistoryService{log: log, repo: repo, audit: recorder}
}

// Get returns one winner record by id.
func (s *HistoryService) Get(ctx context.Context, id string) (*models.WinnerHistory, error) {
	w, err := s.repo.GetWinner(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("winner record %q not found", id).WithCode(CodeWinnerNotFound)
		}
		return nil, errors.Dependency("winner lookup failed", err)
	}
	return w, nil
}

// ByYear returns all winner records of a year, newest month first.
func (s *HistoryService) ByYear(ctx context.Context, year int) ([]models.WinnerHistory, error) {
	winners, err := s.repo.ListWinnersByYear(ctx, year)
	if err != nil {
		return nil, errors.Dependency("listing winners failed", err)
	}
	return winners, nil
}

// ByYearMonth returns all winner records of one month.
func (s *HistoryService) ByYearMonth(ctx context.Context, year, month int) ([]models.WinnerHistory, error) {
	if month < 1 || month > 12 {
		return nil, errors.Validationf("month must be between 1 and 12, got %d", month)
	}
	winners, err := s.repo.ListWinnersByYearMonth(ctx, year, month)
	if err != nil {
		return nil, errors.Dependency("listing winners failed", err)
	}
	return winners, nil
}

// ForPeriod returns all winner records of a voting period.
func (s *HistoryService) ForPeriod(ctx context.Context, periodID string) ([]models.WinnerHistory, error) {
	winners, err := s.repo.ListWinnersForPeriod(ctx, periodID)
	if err != nil {
		return nil, errors.Dependency("listing winners failed", err)
	}
	return winners, nil
}

// GeneralForPeriod returns the period's GENERAL winner, if recorded.
func (s *HistoryService) GeneralForPeriod(ctx context.Context, periodID string) (*models.WinnerHistory, error) {
	w, err := s.repo.GetGeneralWinnerForPeriod(ctx, periodID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("no general winner recorded for period %q", periodID).
				WithCode(CodeWinnerNotFound)
		}
		return nil, errors.Dependency("winner lookup failed", err)
	}
	return w, nil
}

// GroupWinnersForPeriod returns the period's BY_GROUP winners.
func (s *HistoryService) GroupWinnersForPeriod(ctx context.Context, periodID string) ([]models.WinnerHistory, error) {
	winners, err := s.repo.ListGroupWinnersForPeriod(ctx, periodID)
	if err != nil {
		return nil, errors.Dependency("listing winners failed", err)
	}
	return winners, nil
}

// YearlyWinner returns the record flagged as the year's winner, if any.
func (s *HistoryService) YearlyWinner(ctx context.Context, year int) (*models.WinnerHistory, error) {
	w, err := s.repo.GetYearlyWinner(ctx, year)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("no yearly winner flagged for %d", year).WithCode(CodeWinnerNotFound)
		}
		return nil, errors.Dependency("winner lookup failed", err)
	}
	return w, nil
}

// MarkYearlyWinner flags a winner record as the winner of its year. At most
// one record per year carries the flag; a previously flagged record is
// unflagged implicitly.
func (s *HistoryService) MarkYearlyWinner(ctx context.Context, id, actor string) (*models.WinnerHistory, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ClearYearlyWinnerForYear(ctx, w.Year); err != nil {
		return nil, errors.Dependency("clearing yearly winner failed", err)
	}
	if err := s.repo.SetYearlyWinner(ctx, id, true); err != nil {
		return nil, errors.Dependency("flagging yearly winner failed", err)
	}
	w.IsYearlyWinner = true

	s.recordAudit(ctx, actor, "winner.mark_yearly", id, nil, w)
	s.log.Info("Yearly winner flagged", "winner_id", id, "year", w.Year)
	return w, nil
}

// UnmarkYearlyWinner removes the yearly flag from a winner record.
func (s *HistoryService) UnmarkYearlyWinner(ctx context.Context, id, actor string) error {
	w, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SetYearlyWinner(ctx, id, false); err != nil {
		return errors.Dependency("unflagging yearly winner failed", err)
	}
	s.recordAudit(ctx, actor, "winner.unmark_yearly", id, w, nil)
	return nil
}

// AddReaction records a user's emoji reaction to a winner. Repeating the
// same (user, emoji) pair is a no-op.
func (s *HistoryService) AddReaction(ctx context.Context, winnerID, userID, userName, emoji string) error {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return errors.Validation("emoji must not be empty")
	}
	if strings.TrimSpace(userID) == "" {
		return errors.Validation("user id must not be empty")
	}
	if _, err := s.Get(ctx, winnerID); err != nil {
		return err
	}
	r := models.Reaction{UserID: userID, UserName: userName, Emoji: emoji, CreatedAt: time.Now()}
	if err := s.repo.AddReaction(ctx, winnerID, r); err != nil {
		return errors.Dependency("adding reaction failed", err)
	}
	return nil
}

// RemoveReaction removes a user's emoji reaction. Removing a reaction that
// does not exist is a no-op.
func (s *HistoryService) RemoveReaction(ctx context.Context, winnerID, userID, emoji string) error {
	if _, err := s.Get(ctx, winnerID); err != nil {
		return err
	}
	if err := s.repo.RemoveReaction(ctx, winnerID, userID, emoji); err != nil {
		return errors.Dependency("removing reaction failed", err)
	}
	return nil
}

// Reactions lists a winner record's reactions in insertion order.
func (s *HistoryService) Reactions(ctx context.Context, winnerID string) ([]models.Reaction, error) {
	if _, err := s.Get(ctx, winnerID); err != nil {
		return nil, err
	}
	reactions, err := s.repo.ListReactions(ctx, winnerID)
	if err != nil {
		return nil, errors.Dependency("listing reactions failed", err)
	}
	return reactions, nil
}

func (s *HistoryService) recordAudit(ctx context.Context, actor, action, winnerID string, before, after any) {
	if err := s.audit.Record(ctx, actor, action, "winner_history", winnerID, before, after); err != nil {
		s.log.Warn("Audit record failed", "action", action, "winner_id", winnerID, "error", err)
	}
}
