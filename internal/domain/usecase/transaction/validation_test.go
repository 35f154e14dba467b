package transaction

import (
	"testing"

	"github.com/claimsy/karma/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func snapshotFixture() entity.TransferSnapshot {
	return entity.TransferSnapshot{
		Sender: &entity.Account{
			ID: 1, WorkspaceID: 10, Role: entity.RoleEmployee, Department: "eng", GivingBalance: 100, Active: true,
		},
		Receiver: &entity.Account{
			ID: 2, WorkspaceID: 10, Role: entity.RoleEmployee, Department: "sales", Active: true,
		},
		Settings: &entity.WorkspaceSettings{
			WorkspaceID:          10,
			CurrencyName:         "karma",
			MonthlyAllowance:     100,
			MinTransactionAmount: 5,
			MaxTransactionAmount: 20,
			DailyLimitPercentage: 30,
		},
	}
}

func TestTransactionValidator_Validate(t *testing.T) {
	tests := []struct {
		name         string
		amount       int64
		modify       func(s *entity.TransferSnapshot)
		config       func(c *Config)
		wantErrors   []string
		wantWarnings int
	}{
		{
			name:   "valid transfer",
			amount: 10,
		},
		{
			name:   "minimum amount is inclusive",
			amount: 5,
		},
		{
			name:   "maximum amount is inclusive",
			amount: 20,
		},
		{
			name:       "below minimum",
			amount:     4,
			wantErrors: []string{"Amount must be between 5 and 20 karma"},
		},
		{
			name:       "above maximum",
			amount:     21,
			wantErrors: []string{"Amount must be between 5 and 20 karma"},
		},
		{
			name:       "zero amount",
			amount:     0,
			wantErrors: []string{entity.MsgAmountNotPositive, "Amount must be between 5 and 20 karma"},
		},
		{
			name:   "self transfer",
			amount: 10,
			modify: func(s *entity.TransferSnapshot) {
				s.Receiver = s.Sender
			},
			wantErrors: []string{entity.MsgSelfTransfer},
		},
		{
			name:   "cross workspace",
			amount: 10,
			modify: func(s *entity.TransferSnapshot) {
				s.Receiver.WorkspaceID = 11
			},
			wantErrors: []string{entity.MsgSameWorkspace},
		},
		{
			name:   "inactive parties",
			amount: 10,
			modify: func(s *entity.TransferSnapshot) {
				s.Sender.Active = false
				s.Receiver.Active = false
			},
			wantErrors: []string{entity.MsgSenderInactive, entity.MsgReceiverInactive},
		},
		{
			name:   "insufficient balance",
			amount: 10,
			modify: func(s *entity.TransferSnapshot) {
				s.Sender.GivingBalance = 9
			},
			wantErrors: []string{entity.MsgInsufficientBalance},
		},
		{
			name:   "daily cap exceeded",
			amount: 15,
			modify: func(s *entity.TransferSnapshot) {
				s.SentToday = 20
			},
			wantErrors: []string{"Daily limit exceeded: 10 karma remaining today"},
		},
		{
			name:   "daily cap reached exactly warns",
			amount: 10,
			modify: func(s *entity.TransferSnapshot) {
				s.SentToday = 20
			},
			wantWarnings: 1,
		},
		{
			name:   "below warning band",
			amount: 6,
			modify: func(s *entity.TransferSnapshot) {
				s.SentToday = 20
			},
		},
		{
			name:   "inside warning band",
			amount: 7,
			modify: func(s *entity.TransferSnapshot) {
				s.SentToday = 20
			},
			wantWarnings: 1,
		},
		{
			name:   "every violation is collected",
			amount: 35,
			modify: func(s *entity.TransferSnapshot) {
				s.Sender.GivingBalance = 3
				s.Receiver.WorkspaceID = 11
			},
			wantErrors: []string{
				entity.MsgSameWorkspace,
				"Amount must be between 5 and 20 karma",
				entity.MsgInsufficientBalance,
				"Daily limit exceeded: 30 karma remaining today",
			},
		},
		{
			name:   "department rule off by default",
			amount: 10,
			modify: func(s *entity.TransferSnapshot) {
				s.Receiver.Department = "eng"
			},
		},
		{
			name:   "department rule blocks employees",
			amount: 10,
			modify: func(s *entity.TransferSnapshot) {
				s.Receiver.Department = "ENG"
			},
			config:     func(c *Config) { c.EnforceDepartmentRule = true },
			wantErrors: []string{entity.MsgDepartmentRule},
		},
		{
			name:   "department rule exempts admins",
			amount: 10,
			modify: func(s *entity.TransferSnapshot) {
				s.Sender.Role = entity.RoleAdmin
				s.Receiver.Department = "eng"
			},
			config: func(c *Config) { c.EnforceDepartmentRule = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := snapshotFixture()
			if tt.modify != nil {
				tt.modify(&snapshot)
			}
			config := DefaultConfig()
			if tt.config != nil {
				tt.config(&config)
			}

			result := NewTransactionValidator(config).Validate(snapshot, tt.amount)

			if len(tt.wantErrors) == 0 {
				assert.True(t, result.Valid)
				assert.Empty(t, result.Errors)
			} else {
				assert.False(t, result.Valid)
				assert.Equal(t, tt.wantErrors, result.Errors)
			}
			assert.Len(t, result.Warnings, tt.wantWarnings)
		})
	}
}

func TestTransactionValidator_WarningMessage(t *testing.T) {
	snapshot := snapshotFixture()
	snapshot.SentToday = 20

	result := NewTransactionValidator(DefaultConfig()).Validate(snapshot, 8)

	assert.True(t, result.Valid)
	assert.Equal(t, []string{"You are close to your daily limit: 28 of 30 karma used after this transfer"}, result.Warnings)
}

func TestTransactionValidator_ValidateMessage(t *testing.T) {
	validator := NewTransactionValidator(Config{MaxMessageLength: 10})

	assert.Empty(t, validator.ValidateMessage("short"))
	assert.Empty(t, validator.ValidateMessage("  ten chars!  "[:12]))
	assert.Equal(t, []string{"Message must be at most 10 characters"}, validator.ValidateMessage("eleven char"))
	// Multi-byte characters count once
	assert.Empty(t, validator.ValidateMessage("ありがとうございます"))
}

func TestConfig_Normalized(t *testing.T) {
	c := Config{}.normalized()

	assert.Equal(t, DefaultConfig(), c)
}
