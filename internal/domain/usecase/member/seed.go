package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	"github.com/claimsy/karma/internal/domain/port/persistence"
)

// DemoWorkspaceID is the id of the workspace created by SeedDemoWorkspace
const DemoWorkspaceID int64 = 1

type demoMember struct {
	id         int64
	name       string
	role       entity.Role
	department string
}

// Demo members; their ids are the token subjects used in development
var demoMembers = []demoMember{
	{id: 1, name: "Ada Admin", role: entity.RoleAdmin, department: "Engineering"},
	{id: 2, name: "Ben Builder", role: entity.RoleEmployee, department: "Engineering"},
	{id: 3, name: "Cleo Closer", role: entity.RoleEmployee, department: "Sales"},
	{id: 4, name: "Sam Super", role: entity.RoleSuperAdmin, department: "Platform"},
}

// SeedDemoWorkspace creates a demo workspace with settings and members unless it exists
func (m *MemberUseCase) SeedDemoWorkspace(ctx context.Context) error {
	_, err := m.uow.GetWorkspaceRepository(ctx).GetByID(ctx, DemoWorkspaceID)
	if err == nil {
		m.logger.Debug("Demo workspace already present", map[string]any{"workspace_id": DemoWorkspaceID})
		return nil
	}
	if !errors.Is(err, errs.ErrWorkspaceNotFound) {
		return err
	}

	settings, err := entity.NewWorkspaceSettings(DemoWorkspaceID, entity.DefaultCurrencyName, 100, 5, 20, 30, 500)
	if err != nil {
		return err
	}

	now := m.timeProvider.Now().UTC()
	ws := &entity.Workspace{
		ID:        DemoWorkspaceID,
		Name:      "Claimsy Demo",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = persistence.Within(ctx, m.uow, func(txCtx context.Context) error {
		if err := m.uow.GetWorkspaceRepository(txCtx).Create(txCtx, ws, settings); err != nil {
			return err
		}

		accountRepo := m.uow.GetAccountRepository(txCtx)
		for _, dm := range demoMembers {
			email := fmt.Sprintf("member%d@demo.claimsy.local", dm.id)
			account, err := entity.NewAccount(dm.id, DemoWorkspaceID, dm.name, email, dm.role, dm.department, settings.MonthlyAllowance, m.timeProvider)
			if err != nil {
				return err
			}
			if err := accountRepo.Create(txCtx, account); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Another instance seeded first
		if errors.Is(err, errs.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to seed demo workspace: %w", err)
	}

	m.logger.Info("Demo workspace seeded", map[string]any{
		"workspace_id": DemoWorkspaceID,
		"members":      len(demoMembers),
	})
	return nil
}
