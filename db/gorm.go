package db

import (
	"fmt"
	"log"
	"time"

	"EchoFM/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormDB is the GORM connection. It coexists with the raw DB (*sql.DB): the
// catalog store runs its queries on DB, while GORM owns schema migration.
var GormDB *gorm.DB

// Migration models. These mirror model.User/Track/Playlist/PlaylistTrack
// but carry the schema tags, so the shared model package stays free of ORM
// concerns. Column names must match the queries in repository/mysql.go.

type userTable struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Username    string  `gorm:"size:100;not null;unique"`
	Password    string  `gorm:"size:255;not null"`
	DisplayName string  `gorm:"size:255;not null"`
	AvatarURL   *string `gorm:"size:767"`
}

func (userTable) TableName() string { return "users" }

type trackTable struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Title        string  `gorm:"size:255;not null"`
	Artist       string  `gorm:"size:255;not null"`
	UserID       int64   `gorm:"not null;index"`
	Genre        *string `gorm:"size:100"`
	Description  *string `gorm:"type:text"`
	AudioURL     string  `gorm:"size:767;not null"`
	ThumbnailURL *string `gorm:"size:767"`
	Duration     *int
	UploadedAt   time.Time `gorm:"not null"`
	PlayCount    int64     `gorm:"not null;default:0"`
}

func (trackTable) TableName() string { return "tracks" }

type playlistTable struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"size:255;not null"`
	UserID   int64  `gorm:"not null;index"`
	IsPublic bool   `gorm:"not null;default:true"`
}

func (playlistTable) TableName() string { return "playlists" }

type playlistTrackTable struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	PlaylistID int64     `gorm:"not null;index"`
	TrackID    int64     `gorm:"not null"`
	AddedAt    time.Time `gorm:"not null"`
}

func (playlistTrackTable) TableName() string { return "playlist_tracks" }

// ConnectGormDB establishes the GORM connection with a pooled underlying
// sql.DB.
func ConnectGormDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	GormDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect database with GORM: %w", err)
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to the database with GORM.")
	return nil
}

// MigrateSchema creates or updates the four catalog tables.
func MigrateSchema() error {
	if GormDB == nil {
		return fmt.Errorf("GORM connection not initialized")
	}

	err := GormDB.AutoMigrate(&userTable{}, &trackTable{}, &playlistTable{}, &playlistTrackTable{})
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Println("Database schema migration completed.")
	return nil
}

// CloseGormDB closes the GORM connection.
func CloseGormDB() error {
	if GormDB == nil {
		return nil
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
