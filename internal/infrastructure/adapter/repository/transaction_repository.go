package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func transactionEntityToModel(t *entity.Transaction) model.Transaction {
	var key *string
	if t.IdempotencyKey != "" {
		k := t.IdempotencyKey
		key = &k
	}
	return model.Transaction{
		ID:             t.ID,
		WorkspaceID:    t.WorkspaceID,
		SenderID:       t.SenderID,
		ReceiverID:     t.ReceiverID,
		Amount:         t.Amount,
		Message:        t.Message,
		IdempotencyKey: key,
		CreatedAt:      t.CreatedAt.UTC(),
	}
}

func transactionModelToEntity(m *model.Transaction) *entity.Transaction {
	t := &entity.Transaction{
		ID:          m.ID,
		WorkspaceID: m.WorkspaceID,
		SenderID:    m.SenderID,
		ReceiverID:  m.ReceiverID,
		Amount:      m.Amount,
		Message:     m.Message,
		CreatedAt:   m.CreatedAt.UTC(),
	}
	if m.IdempotencyKey != nil {
		t.IdempotencyKey = *m.IdempotencyKey
	}
	return t
}

func (r *TransactionRepository) handleError(operation string, err error, fields map[string]any) error {
	return handleDatabaseError(r.logger, r.errorClassifier, operation, err, errs.ErrTransactionNotFound, fields)
}

// Create appends a transaction to the ledger.
// A repeated (sender, idempotency key) pair yields errs.ErrDuplicate.
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	m := transactionEntityToModel(transaction)

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate transaction idempotency key", map[string]any{
				"sender_id":       transaction.SenderID,
				"idempotency_key": transaction.IdempotencyKey,
			})
		}
		return r.handleError("creating transaction", err, map[string]any{
			"transaction_id": transaction.ID,
			"sender_id":      transaction.SenderID,
		})
	}

	r.logger.Debug("Transaction created", map[string]any{
		"transaction_id": transaction.ID,
		"sender_id":      transaction.SenderID,
		"receiver_id":    transaction.ReceiverID,
		"amount":         transaction.Amount,
	})
	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	var m model.Transaction
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, r.handleError("getting transaction", err, map[string]any{"transaction_id": id})
	}
	return transactionModelToEntity(&m), nil
}

// GetBySenderAndKey finds the transaction a sender created with an idempotency key
func (r *TransactionRepository) GetBySenderAndKey(ctx context.Context, senderID int64, idempotencyKey string) (*entity.Transaction, error) {
	var m model.Transaction
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND idempotency_key = ?", senderID, idempotencyKey).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, r.handleError("getting transaction by idempotency key", err, map[string]any{
			"sender_id":       senderID,
			"idempotency_key": idempotencyKey,
		})
	}
	return transactionModelToEntity(&m), nil
}

// likePattern escapes LIKE wildcards in a search term
func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.ToLower(search)) + "%"
}

func ledgerScope(filter entity.TransactionFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("workspace_id = ?", filter.WorkspaceID)

		switch {
		case filter.Direction == entity.DirectionSent:
			db = db.Where("sender_id = ?", filter.ProfileID)
		case filter.Direction == entity.DirectionReceived:
			db = db.Where("receiver_id = ?", filter.ProfileID)
		case filter.View == entity.ViewYou:
			db = db.Where("(sender_id = ? OR receiver_id = ?)", filter.ProfileID, filter.ProfileID)
		}

		if filter.From != nil {
			db = db.Where("created_at >= ?", filter.From.UTC())
		}
		if filter.To != nil {
			db = db.Where("created_at < ?", filter.To.UTC())
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			db = db.Where(`LOWER(message) LIKE ? ESCAPE '\'`, likePattern(search))
		}
		return db
	}
}

// List returns one page of the workspace ledger, newest first
func (r *TransactionRepository) List(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionPage, error) {
	filter.Normalize()
	fields := map[string]any{
		"workspace_id": filter.WorkspaceID,
		"profile_id":   filter.ProfileID,
		"direction":    string(filter.Direction),
		"view":         string(filter.View),
	}

	var total int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Scopes(ledgerScope(filter)).
		Count(&total).Error
	if err != nil {
		return nil, r.handleError("counting transactions", err, fields)
	}

	var models []model.Transaction
	err = r.db.WithContext(ctx).Model(&model.Transaction{}).
		Scopes(ledgerScope(filter)).
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		return nil, r.handleError("listing transactions", err, fields)
	}

	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, transactionModelToEntity(&models[i]))
	}

	return &entity.TransactionPage{
		Transactions: transactions,
		Pagination:   entity.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

type leaderboardRow struct {
	ReceiverID    int64
	TotalReceived int64
	TransferCount int64
}

// Leaderboard ranks the receivers of a workspace by karma received since the given time
func (r *TransactionRepository) Leaderboard(ctx context.Context, workspaceID int64, since *time.Time, limit int) ([]entity.LeaderboardEntry, error) {
	if limit < 1 || limit > entity.MaxPageLimit {
		limit = entity.DefaultPageLimit
	}
	fields := map[string]any{"workspace_id": workspaceID}

	query := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("receiver_id, SUM(amount) AS total_received, COUNT(*) AS transfer_count").
		Where("workspace_id = ?", workspaceID)
	if since != nil {
		query = query.Where("created_at >= ?", since.UTC())
	}

	var rows []leaderboardRow
	err := query.
		Group("receiver_id").
		Order("total_received DESC").
		Order("receiver_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, r.handleError("aggregating leaderboard", err, fields)
	}
	if len(rows) == 0 {
		return []entity.LeaderboardEntry{}, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ReceiverID)
	}

	var accounts []model.Account
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return nil, r.handleError("loading leaderboard accounts", err, fields)
	}
	byID := make(map[int64]*model.Account, len(accounts))
	for i := range accounts {
		byID[accounts[i].ID] = &accounts[i]
	}

	entries := make([]entity.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entry := entity.LeaderboardEntry{
			Rank:          i + 1,
			ProfileID:     row.ReceiverID,
			TotalReceived: row.TotalReceived,
			TransferCount: row.TransferCount,
		}
		if acc, ok := byID[row.ReceiverID]; ok {
			entry.DisplayName = acc.DisplayName
			entry.Department = acc.Department
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
