package database

import (
	"context"

	"gorm.io/gorm"
)

// DB implements the Database interface on top of a gorm connection.
// The same implementation serves SQLite, PostgreSQL and MySQL; only the
// driver openers differ.
type DB struct {
	db *gorm.DB
}

// newDB migrates the schema and wraps the gorm connection.
func newDB(gormDB *gorm.DB) (*DB, error) {
	if err := gormDB.AutoMigrate(
		&User{},
		&Restaurant{},
		&Category{},
		&MenuItem{},
		&SocialMediaLink{},
		&QRCode{},
		&ActivityLog{},
	); err != nil {
		return nil, err
	}
	return &DB{db: gormDB}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn inside a transaction carried on the context. A
// context that already holds a transaction joins it instead of nesting.
func (d *DB) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := TransactionFromContext(ctx); tx != nil {
		return fn(ctx)
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTransaction(ctx, tx))
	})
}

func (d *DB) CreateUser(ctx context.Context, user *User) error {
	return getDBFromContext(ctx, d.db).Create(user).Error
}

func (d *DB) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := getDBFromContext(ctx, d.db).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DB) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := getDBFromContext(ctx, d.db).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DB) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := getDBFromContext(ctx, d.db).Order("id asc").Find(&users).Error
	return users, err
}

func (d *DB) UpdateUser(ctx context.Context, user *User) error {
	return getDBFromContext(ctx, d.db).Save(user).Error
}

func (d *DB) DeleteUser(ctx context.Context, id uint) error {
	return getDBFromContext(ctx, d.db).Delete(&User{}, id).Error
}

func (d *DB) CountSuperAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := getDBFromContext(ctx, d.db).
		Model(&User{}).
		Where("role = ?", RoleSuperAdmin).
		Count(&count).Error
	return count, err
}

func (d *DB) CreateRestaurant(ctx context.Context, restaurant *Restaurant) error {
	return getDBFromContext(ctx, d.db).Create(restaurant).Error
}

func (d *DB) GetRestaurantByID(ctx context.Context, id uint) (*Restaurant, error) {
	var restaurant Restaurant
	if err := getDBFromContext(ctx, d.db).First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (d *DB) GetRestaurantBySlug(ctx context.Context, slug string) (*Restaurant, error) {
	var restaurant Restaurant
	if err := getDBFromContext(ctx, d.db).Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (d *DB) GetRestaurantByAdminID(ctx context.Context, adminID uint) (*Restaurant, error) {
	var restaurant Restaurant
	if err := getDBFromContext(ctx, d.db).Where("admin_id = ?", adminID).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (d *DB) ListRestaurants(ctx context.Context) ([]*Restaurant, error) {
	var restaurants []*Restaurant
	err := getDBFromContext(ctx, d.db).Order("id asc").Find(&restaurants).Error
	return restaurants, err
}

func (d *DB) ListRestaurantsByAdminID(ctx context.Context, adminID uint) ([]*Restaurant, error) {
	var restaurants []*Restaurant
	err := getDBFromContext(ctx, d.db).
		Where("admin_id = ?", adminID).
		Order("id asc").
		Find(&restaurants).Error
	return restaurants, err
}

func (d *DB) UpdateRestaurant(ctx context.Context, restaurant *Restaurant) error {
	return getDBFromContext(ctx, d.db).Save(restaurant).Error
}

// DeleteRestaurant removes the restaurant together with all of its
// menu content inside a single transaction.
func (d *DB) DeleteRestaurant(ctx context.Context, id uint) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)
		children := []interface{}{
			&MenuItem{},
			&Category{},
			&SocialMediaLink{},
			&QRCode{},
		}
		for _, child := range children {
			if err := tx.Where("restaurant_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&Restaurant{}, id).Error
	})
}

func (d *DB) CreateCategory(ctx context.Context, category *Category) error {
	return getDBFromContext(ctx, d.db).Create(category).Error
}

func (d *DB) GetCategoryByID(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := getDBFromContext(ctx, d.db).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (d *DB) ListCategoriesByRestaurantID(ctx context.Context, restaurantID uint) ([]*Category, error) {
	var categories []*Category
	err := getDBFromContext(ctx, d.db).
		Where("restaurant_id = ?", restaurantID).
		Order("display_order asc, id asc").
		Find(&categories).Error
	return categories, err
}

func (d *DB) UpdateCategory(ctx context.Context, category *Category) error {
	return getDBFromContext(ctx, d.db).Save(category).Error
}

// DeleteCategory removes the category and the items filed under it, so
// no item is ever left pointing at a missing category.
func (d *DB) DeleteCategory(ctx context.Context, id uint) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := getDBFromContext(ctx, d.db)
		if err := tx.Where("category_id = ?", id).Delete(&MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Category{}, id).Error
	})
}

func (d *DB) CreateMenuItem(ctx context.Context, item *MenuItem) error {
	return getDBFromContext(ctx, d.db).Create(item).Error
}

func (d *DB) GetMenuItemByID(ctx context.Context, id uint) (*MenuItem, error) {
	var item MenuItem
	if err := getDBFromContext(ctx, d.db).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (d *DB) ListMenuItemsByRestaurantID(ctx context.Context, restaurantID uint) ([]*MenuItem, error) {
	var items []*MenuItem
	err := getDBFromContext(ctx, d.db).
		Where("restaurant_id = ?", restaurantID).
		Order("id asc").
		Find(&items).Error
	return items, err
}

func (d *DB) ListMenuItemsByCategoryID(ctx context.Context, categoryID uint) ([]*MenuItem, error) {
	var items []*MenuItem
	err := getDBFromContext(ctx, d.db).
		Where("category_id = ?", categoryID).
		Order("id asc").
		Find(&items).Error
	return items, err
}

func (d *DB) UpdateMenuItem(ctx context.Context, item *MenuItem) error {
	return getDBFromContext(ctx, d.db).Save(item).Error
}

func (d *DB) DeleteMenuItem(ctx context.Context, id uint) error {
	return getDBFromContext(ctx, d.db).Delete(&MenuItem{}, id).Error
}

func (d *DB) CreateSocialMediaLink(ctx context.Context, link *SocialMediaLink) error {
	return getDBFromContext(ctx, d.db).Create(link).Error
}

func (d *DB) GetSocialMediaLinkByID(ctx context.Context, id uint) (*SocialMediaLink, error) {
	var link SocialMediaLink
	if err := getDBFromContext(ctx, d.db).First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (d *DB) ListSocialMediaLinksByRestaurantID(ctx context.Context, restaurantID uint) ([]*SocialMediaLink, error) {
	var links []*SocialMediaLink
	err := getDBFromContext(ctx, d.db).
		Where("restaurant_id = ?", restaurantID).
		Order("id asc").
		Find(&links).Error
	return links, err
}

func (d *DB) UpdateSocialMediaLink(ctx context.Context, link *SocialMediaLink) error {
	return getDBFromContext(ctx, d.db).Save(link).Error
}

func (d *DB) DeleteSocialMediaLink(ctx context.Context, id uint) error {
	return getDBFromContext(ctx, d.db).Delete(&SocialMediaLink{}, id).Error
}

func (d *DB) CreateQRCode(ctx context.Context, code *QRCode) error {
	return getDBFromContext(ctx, d.db).Create(code).Error
}

func (d *DB) GetQRCodeByID(ctx context.Context, id uint) (*QRCode, error) {
	var code QRCode
	if err := getDBFromContext(ctx, d.db).First(&code, id).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (d *DB) ListQRCodesByRestaurantID(ctx context.Context, restaurantID uint) ([]*QRCode, error) {
	var codes []*QRCode
	err := getDBFromContext(ctx, d.db).
		Where("restaurant_id = ?", restaurantID).
		Order("id asc").
		Find(&codes).Error
	return codes, err
}

func (d *DB) DeleteQRCode(ctx context.Context, id uint) error {
	return getDBFromContext(ctx, d.db).Delete(&QRCode{}, id).Error
}

func (d *DB) CreateActivityLog(ctx context.Context, entry *ActivityLog) error {
	return getDBFromContext(ctx, d.db).Create(entry).Error
}

func (d *DB) ListActivityLogs(ctx context.Context, limit int) ([]*ActivityLog, error) {
	var entries []*ActivityLog
	q := getDBFromContext(ctx, d.db).Order("created_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&entries).Error
	return entries, err
}

func (d *DB) ListActivityLogsByRestaurantID(ctx context.Context, restaurantID uint, limit int) ([]*ActivityLog, error) {
	var entries []*ActivityLog
	q := getDBFromContext(ctx, d.db).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&entries).Error
	return entries, err
}
