package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// User represents a local user account
type User struct {
	BaseModel
	Username     string    `json:"username" gorm:"unique;not null"`
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Client represents a client record owned by a user
type Client struct {
	BaseModel
	FirstName       string    `json:"firstName" gorm:"not null"`
	LastName        string    `json:"lastName" gorm:"not null"`
	Identification  string    `json:"identification" gorm:"not null;index"`
	Cellphone       string    `json:"cellphone"`
	OtherPhone      string    `json:"otherPhone"`
	Address         string    `json:"address"`
	BirthDate       time.Time `json:"birthDate"`
	AffiliationDate time.Time `json:"affiliationDate"`
	Gender          string    `json:"gender" gorm:"type:varchar(1)"` // "F" or "M"
	PersonalNote    string    `json:"personalNote" gorm:"type:text"`
	Photo           string    `json:"photo" gorm:"type:text"` // base64-encoded image, opaque to the server
	InterestID      string    `json:"interestId" gorm:"not null"`
	UserID          string    `json:"userId" gorm:"not null;index"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Interest Interest `json:"-" gorm:"foreignKey:InterestID;constraint:OnDelete:RESTRICT"`
	User     *User    `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// Interest represents an entry in the global interest catalog that clients
// can be tagged with
type Interest struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"unique;not null"`
}

// DefaultInterestID is assigned to clients created without an explicit interest
const DefaultInterestID = "3fa85f64-5717-4562-b3fc-2c963f66afa6"

// DefaultInterests is the catalog seeded on first start. IDs are fixed so
// records created against one deployment stay valid against a reseeded one.
func DefaultInterests() []Interest {
	return []Interest{
		{ID: "3fa85f64-5717-4562-b3fc-2c963f66afa1", Name: "Technology and Gadgets"},
		{ID: "3fa85f64-5717-4562-b3fc-2c963f66afa2", Name: "Sports and Fitness"},
		{ID: "3fa85f64-5717-4562-b3fc-2c963f66afa3", Name: "Travel and Tourism"},
		{ID: "3fa85f64-5717-4562-b3fc-2c963f66afa4", Name: "Arts and Culture"},
		{ID: "3fa85f64-5717-4562-b3fc-2c963f66afa5", Name: "Gastronomy"},
		{ID: DefaultInterestID, Name: "Investments and Finance"},
	}
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&User{}, &Interest{}, &Client{},
	}

	return db.AutoMigrate(models...)
}

// SeedInterests inserts the default interest catalog, skipping entries that
// already exist
func SeedInterests(db *gorm.DB) error {
	for _, interest := range DefaultInterests() {
		var count int64
		if err := db.Model(&Interest{}).Where("id = ?", interest.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&interest).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// FindByID safely finds a record by string ID
func FindByID[T any](db *gorm.DB, id string, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}
