package models

// AllModels returns every persistence model in dependency order, for AutoMigrate.
func AllModels() []any {
	return []any{
		&LocationModel{},
		&AddressModel{},
		&UserModel{},
		&UserRoleModel{},
		&StoreModel{},
		&AccountModel{},
		&TransactionModel{},
		&CategoryModel{},
		&ProductModel{},
		&ProductTagModel{},
		&ProductPropertyModel{},
		&StoreItemModel{},
		&ProductFavoriteModel{},
	}
}
