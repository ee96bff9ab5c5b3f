package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"taskvault/internal/domain/models"
	"taskvault/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs the function directly; the services under test only
// care that reads and writes happen inside the callback.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	updateFn        func(ctx context.Context, user *models.User) error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.createFn == nil {
		user.ID = uuid.New()
		return nil
	}
	return f.createFn(ctx, user)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.getByIDFn == nil {
		return nil, nil
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getByUsernameFn == nil {
		return nil, nil
	}
	return f.getByUsernameFn(ctx, username)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmailFn == nil {
		return nil, nil
	}
	return f.getByEmailFn(ctx, email)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx, user)
}

type fakeFolderRepo struct {
	createFn            func(ctx context.Context, folder *models.Folder) error
	getByIDFn           func(ctx context.Context, id uuid.UUID) (*models.Folder, error)
	getByOwnerAndNameFn func(ctx context.Context, ownerID uuid.UUID, name string) (*models.Folder, error)
	listByOwnerFn       func(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error)
	updateFn            func(ctx context.Context, folder *models.Folder) error
	deleteSubtreeFn     func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (f *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if f.createFn == nil {
		folder.ID = uuid.New()
		return nil
	}
	return f.createFn(ctx, folder)
}

func (f *fakeFolderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	if f.getByIDFn == nil {
		return nil, nil
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeFolderRepo) GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*models.Folder, error) {
	if f.getByOwnerAndNameFn == nil {
		return nil, nil
	}
	return f.getByOwnerAndNameFn(ctx, ownerID, name)
}

func (f *fakeFolderRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error) {
	if f.listByOwnerFn == nil {
		return nil, nil
	}
	return f.listByOwnerFn(ctx, ownerID)
}

func (f *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx, folder)
}

func (f *fakeFolderRepo) DeleteSubtree(ctx context.Context, id uuid.UUID) (int64, error) {
	if f.deleteSubtreeFn == nil {
		return 1, nil
	}
	return f.deleteSubtreeFn(ctx, id)
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }
