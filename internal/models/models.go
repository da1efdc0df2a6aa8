package models

import "time"

type User struct {
	ID              uint       `gorm:"primaryKey;autoIncrement"  json:"id"`
	Email           string     `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash    string     `gorm:"not null"                  json:"-"`
	Name            string     `json:"name"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (u *User) Verified() bool {
	return u.EmailVerifiedAt != nil
}

type AdminUser struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"      json:"username"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Role         string    `gorm:"not null"                  json:"role"`
	Permissions  []string  `gorm:"serializer:json"           json:"permissions"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// RefreshToken holds only the SHA-256 hex of the opaque token handed to the
// client; the plaintext is never persisted.
type RefreshToken struct {
	ID          uint      `gorm:"primaryKey"           json:"id"`
	TokenHash   string    `gorm:"uniqueIndex;not null" json:"-"`
	SubjectID   uint      `gorm:"index;not null"       json:"subject_id"`
	SubjectType string    `gorm:"not null"             json:"subject_type"`
	ExpiresAt   time.Time `gorm:"not null"             json:"expires_at"`
	Revoked     bool      `gorm:"default:false"        json:"revoked"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	CodePurposeVerifyEmail   = "verify_email"
	CodePurposeResetPassword = "reset_password"
)

type VerificationCode struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	CodeHash  string    `gorm:"not null"       json:"-"`
	Purpose   string    `gorm:"not null"       json:"purpose"`
	ExpiresAt time.Time `gorm:"not null"       json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string        `gorm:"not null"                 json:"name"`
	Slug          string        `gorm:"uniqueIndex;not null"     json:"slug"`
	ImageURL      string        `json:"image_url"`
	SubCategories []SubCategory `json:"sub_categories,omitempty"`
}

type SubCategory struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID uint   `gorm:"index;not null"           json:"category_id"`
	Name       string `gorm:"not null"                 json:"name"`
	Slug       string `gorm:"index;not null"           json:"slug"`
}

// Product prices are integer guaraní amounts, no fractional unit.
type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Description string    `gorm:"type:text"                json:"description"`
	Brand       string    `gorm:"index"                    json:"brand"`
	ImageURL    string    `json:"image_url"`
	Price       int64     `gorm:"not null"                 json:"price"`
	Rating      float64   `gorm:"default:0"                json:"rating"`
	Featured    bool      `gorm:"default:false"            json:"featured"`
	WeightKg    float64   `gorm:"default:1"                json:"weight_kg"`
	Stock       uint      `gorm:"default:0"                json:"stock"`
	CategoryID  uint      `gorm:"index"                    json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CarouselSlide struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string `gorm:"not null"                 json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `gorm:"not null"                 json:"image_url"`
	LinkURL  string `json:"link_url"`
	Position int    `gorm:"default:0"                json:"position"`
	Active   bool   `json:"active"`
}

type HomeCategory struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID uint `gorm:"uniqueIndex;not null"     json:"category_id"`
	Position   int  `gorm:"default:0"                json:"position"`
}

type LegalDocument struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug      string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Title     string    `gorm:"not null"                 json:"title"`
	Markdown  string    `gorm:"type:text"                json:"markdown"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID               uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint        `gorm:"index;not null"           json:"user_id"`
	Status           string      `gorm:"not null"                 json:"status"`
	Subtotal         int64       `gorm:"not null"                 json:"subtotal"`
	ShippingCost     int64       `gorm:"not null"                 json:"shipping_cost"`
	Total            int64       `gorm:"not null"                 json:"total"`
	City             string      `json:"city"`
	Department       string      `json:"department"`
	ShippingService  string      `json:"shipping_service"`
	WeightKg         float64     `json:"weight_kg"`
	IdempotencyKey   string      `gorm:"uniqueIndex;not null"     json:"-"`
	PaymentSessionID string      `json:"-"`
	TrackingCode     string      `json:"tracking_code"`
	Items            []OrderItem `json:"items"`
	CreatedAt        time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint   `gorm:"index;not null"           json:"order_id"`
	ProductID uint   `gorm:"not null"                 json:"product_id"`
	Name      string `gorm:"not null"                 json:"name"`
	Quantity  int    `gorm:"not null;check:quantity>0" json:"quantity"`
	UnitPrice int64  `gorm:"not null"                 json:"unit_price"`
	LineTotal int64  `gorm:"not null"                 json:"line_total"`
}
