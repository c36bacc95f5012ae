package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/manthrakodi/bridalstore/config"
	"github.com/manthrakodi/bridalstore/internal/domain"
)

func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	loglevel := logger.Silent
	if cfg.Debug {
		loglevel = logger.Info
	}
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(loglevel)}

	var db *gorm.DB
	var err error
	switch cfg.Type {
	case "sqlite":
		dbfile := filepath.Join(workdir, "data", cfg.Name+".db")
		db, err = gorm.Open(sqlite.Open(dbfile), gormConfig)
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			cfg.Host, cfg.User, cfg.Passwd, cfg.Name, cfg.Port)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	}
	if err != nil {
		zap.S().Panicf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Panicf("failed to access database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.IdleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}

// checkDemoProducts seeds a small demo catalog on first start.
func (a *Application) checkDemoProducts() {
	originalPrice := func(v float64) *float64 { return &v }
	defaultProducts := []domain.Product{
		{
			Name:          "Kanchipuram Silk Saree",
			Description:   "Handwoven pure silk saree with traditional zari border",
			Price:         12999, OriginalPrice: originalPrice(15999),
			Category: domain.CategorySaree, SubCategory: "silk",
			Images:   domain.StringList{"https://i.ibb.co/demo/kanchipuram.jpg"},
			Stock:    8, Featured: true,
			Attributes: domain.AttrMap{"color": "maroon", "fabric": "silk"},
		},
		{
			Name:        "Temple Jewellery Necklace Set",
			Description: "Antique gold finish necklace with matching jhumkas",
			Price:       4499,
			Category:    domain.CategoryOrnament, SubCategory: "necklace",
			Images:     domain.StringList{"https://i.ibb.co/demo/temple-set.jpg"},
			Stock:      15,
			Attributes: domain.AttrMap{"finish": "antique gold"},
		},
		{
			Name:          "Complete Bridal Set",
			Description:   "Saree, blouse and ornament combination for the wedding day",
			Price:         24999, OriginalPrice: originalPrice(29999),
			Category: domain.CategoryBridalSet,
			Images:   domain.StringList{"https://i.ibb.co/demo/bridal-set.jpg"},
			Stock:    3, Featured: true,
			Attributes: domain.AttrMap{"pieces": 3},
		},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.ID = uuid.NewString()
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create demo product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized demo product", zap.String("name", p.Name))
			}
		}
	}
}
