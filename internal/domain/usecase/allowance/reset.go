package allowance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/persistence"
	"github.com/claimsy/karma/internal/domain/port/usecase"
)

// DefaultLockTTL bounds how long one workspace reset may hold its lock
const DefaultLockTTL = 5 * time.Minute

// DefaultHistoryLimit is the number of reset records returned when no limit is given
const DefaultHistoryLimit = 12

// ResetService tops up the giving balance of every member once per workspace per month
type ResetService struct {
	uow          persistence.UnitOfWork
	locker       persistence.Locker
	idGenerator  coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	lockTTL      time.Duration
}

var _ usecase.AllowanceUseCase = (*ResetService)(nil)

// NewResetService creates a new ResetService
func NewResetService(
	uow persistence.UnitOfWork,
	locker persistence.Locker,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	lockTTL time.Duration,
) *ResetService {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &ResetService{
		uow:          uow,
		locker:       locker,
		idGenerator:  idGenerator,
		timeProvider: timeProvider,
		logger:       logger,
		lockTTL:      lockTTL,
	}
}

// ResetAllWorkspacesAllowances resets every active workspace. A failing workspace
// is reported in its own result and does not stop the batch.
func (s *ResetService) ResetAllWorkspacesAllowances(ctx context.Context, trigger entity.ResetTrigger) ([]entity.ResetResult, error) {
	workspaces, err := s.uow.GetWorkspaceRepository(ctx).ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	month := entity.MonthKey(s.timeProvider.Now())
	results := make([]entity.ResetResult, 0, len(workspaces))

	for _, ws := range workspaces {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := s.resetWorkspace(ctx, ws, month, trigger, nil)
		if err != nil {
			resetErr := errs.NewResetError(ws.ID, month, err)
			fields := resetErr.LogFields()
			fields["trigger"] = string(trigger)
			s.logger.Error("Workspace reset failed", fields)
			result = &entity.ResetResult{
				WorkspaceID:   ws.ID,
				WorkspaceName: ws.Name,
				ResetMonth:    month,
				Errors:        []string{resetErr.Error()},
			}
		}
		results = append(results, *result)
	}

	summary := entity.Summarize(results)
	s.logger.Info("Monthly reset finished", map[string]any{
		"trigger":               string(trigger),
		"reset_month":           month,
		"workspaces":            summary.Workspaces,
		"reset":                 summary.Reset,
		"skipped":               summary.Skipped,
		"failed":                summary.Failed,
		"profiles_reset":        summary.ProfilesReset,
		"total_allowance_added": summary.TotalAllowanceAdded,
	})
	return results, nil
}

// ManualWorkspaceReset resets one workspace on behalf of actorID
func (s *ResetService) ManualWorkspaceReset(ctx context.Context, workspaceID, actorID int64) (*entity.ResetResult, error) {
	actor, err := s.uow.GetAccountRepository(ctx).GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, errs.ErrAccountNotFound) {
			return nil, errs.ErrUnauthorized
		}
		return nil, err
	}
	if !actor.CanResetWorkspace(workspaceID) {
		return nil, fmt.Errorf("%w: profile %d cannot reset workspace %d", errs.ErrForbidden, actorID, workspaceID)
	}

	ws, err := s.uow.GetWorkspaceRepository(ctx).GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.Active {
		return nil, errs.ErrWorkspaceNotFound
	}

	return s.resetWorkspace(ctx, ws, entity.MonthKey(s.timeProvider.Now()), entity.TriggerManual, &actorID)
}

// GetResetHistory lists the latest resets of a workspace
func (s *ResetService) GetResetHistory(ctx context.Context, workspaceID int64, limit int) (*usecase.ResetHistoryView, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	repo := s.uow.GetResetHistoryRepository(ctx)
	history, err := repo.ListByWorkspace(ctx, workspaceID, limit)
	if err != nil {
		return nil, err
	}
	done, err := repo.Exists(ctx, workspaceID, entity.MonthKey(s.timeProvider.Now()))
	if err != nil {
		return nil, err
	}

	return &usecase.ResetHistoryView{History: history, HasResetThisMonth: done}, nil
}

func (s *ResetService) resetWorkspace(
	ctx context.Context,
	ws *entity.Workspace,
	month string,
	trigger entity.ResetTrigger,
	triggeredBy *int64,
) (*entity.ResetResult, error) {
	result := &entity.ResetResult{
		WorkspaceID:   ws.ID,
		WorkspaceName: ws.Name,
		ResetMonth:    month,
		Errors:        []string{},
	}

	lock, err := s.locker.Obtain(ctx, fmt.Sprintf("reset:%d:%s", ws.ID, month), s.lockTTL)
	if err != nil {
		if errors.Is(err, errs.ErrLockNotObtained) {
			s.logger.Info("Workspace reset already running elsewhere", map[string]any{
				"workspace_id": ws.ID,
				"reset_month":  month,
			})
			result.Skipped = true
			return result, nil
		}
		return nil, err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("Failed to release reset lock", map[string]any{
				"workspace_id": ws.ID,
				"error":        err.Error(),
			})
		}
	}()

	err = persistence.Within(ctx, s.uow, func(txCtx context.Context) error {
		historyRepo := s.uow.GetResetHistoryRepository(txCtx)

		done, err := historyRepo.Exists(txCtx, ws.ID, month)
		if err != nil {
			return err
		}
		if done {
			return errs.ErrAlreadyReset
		}

		history := entity.NewResetHistory(s.idGenerator.NextID(), ws.ID, month, trigger, triggeredBy, s.timeProvider.Now())
		if err := historyRepo.Claim(txCtx, history); err != nil {
			return err
		}

		settings, err := s.uow.GetWorkspaceRepository(txCtx).GetSettings(txCtx, ws.ID)
		if err != nil {
			return err
		}

		members, err := s.uow.GetAccountRepository(txCtx).ListActiveByWorkspace(txCtx, ws.ID)
		if err != nil {
			return err
		}

		for _, member := range members {
			if err := s.topUpMember(txCtx, member.ID, settings.MonthlyAllowance); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("profile %d: %v", member.ID, err))
				continue
			}
			result.ProfilesReset++
			result.TotalAllowanceAdded += settings.MonthlyAllowance
		}

		history.Complete(result.ProfilesReset, result.TotalAllowanceAdded, result.Errors)
		return historyRepo.Update(txCtx, history)
	})
	if errors.Is(err, errs.ErrAlreadyReset) {
		result.Skipped = true
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Workspace allowance reset", map[string]any{
		"workspace_id":          ws.ID,
		"reset_month":           month,
		"trigger":               string(trigger),
		"profiles_reset":        result.ProfilesReset,
		"total_allowance_added": result.TotalAllowanceAdded,
		"errors":                len(result.Errors),
	})
	return result, nil
}

// topUpMember adds allowance under a savepoint so a failing member leaves the rest of the batch intact
func (s *ResetService) topUpMember(ctx context.Context, profileID, allowance int64) error {
	savepoint := fmt.Sprintf("member_%d", profileID)
	if err := s.uow.SavePoint(ctx, savepoint); err != nil {
		return err
	}

	accountRepo := s.uow.GetAccountRepository(ctx)
	_, err := accountRepo.LockByID(ctx, profileID)
	if err == nil {
		err = accountRepo.AddGivingBalance(ctx, profileID, allowance)
	}
	if err != nil {
		if rbErr := s.uow.RollbackTo(ctx, savepoint); rbErr != nil {
			return fmt.Errorf("%w (savepoint rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return nil
}
