package dummydb

import (
	"context"

	"github.com/trezcool/meritum/core/auth"
)

type adminRepository struct {
	db *adminTable
}

func NewAdminRepository(db *DB) auth.AdminRepository {
	return &adminRepository{db: db.admin}
}

func (repo *adminRepository) GetAdminByKey(ctx context.Context, key string) (auth.Admin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if adm, ok := repo.db.table[key]; ok {
		return *adm, nil
	}
	return auth.Admin{}, auth.ErrAdminNotFound
}

func (repo *adminRepository) QueryAllAdmins(ctx context.Context) ([]auth.Admin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	admins := make([]auth.Admin, 0, len(repo.db.table))
	for _, adm := range repo.db.table {
		admins = append(admins, *adm)
	}
	return admins, nil
}

func (repo *adminRepository) UpsertAdmin(ctx context.Context, adm auth.Admin) (auth.Admin, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[adm.Key] = &adm
	return adm, nil
}

func (repo *adminRepository) DeleteAdminByKey(ctx context.Context, key string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[key]; !ok {
		return auth.ErrAdminNotFound
	}
	delete(repo.db.table, key)
	return nil
}
